package schedule

import (
	"strconv"
	"strings"

	"github.com/artichane-debug/schiedule-1/internal/model"
)

// ── 周期课程解析器 ───────────────────────────────────────────
//
// 职责：给定一门课程会议（星期 + 学年 + 学期标签）与一个具体日历日期，
// 判断该课程当天是否上课；并由此从集合中枚举某日的全部课程。
//
// 学期窗口规则（核心算法难点）：
//   - odd（秋季）学期自其学年的 9 月 15 日开始，持续到次年 9 月 14 日；
//   - even（春季）学期自其学年的 2 月 23 日开始，持续到次年 2 月 22 日。
// 对日期 d 先按所在年份的窗口边界反推其归属学年，再与课程标记学年比对。
//
// 星期匹配刻意宽松（精确 / 三字母前缀 / 子串包含，双向、不区分大小写），
// 以容忍缩写或脏数据；病态输入可能误匹配，收紧须确认产品意图后再动。
// ─────────────────────────────────────────────────────────────

// 学期窗口边界常量（勿在代码中散落字面量）
const (
	// OddSemesterStartMonth / OddSemesterStartDay 秋季（odd）学期开始：9 月 15 日
	OddSemesterStartMonth = 9
	OddSemesterStartDay   = 15

	// EvenSemesterStartMonth / EvenSemesterStartDay 春季（even）学期开始：2 月 23 日
	EvenSemesterStartMonth = 2
	EvenSemesterStartDay   = 23
)

// IsActiveOn 判断课程在指定日期是否上课：学期窗口匹配且星期名匹配
func IsActiveOn(m model.CourseMeeting, d Date) bool {
	if !inSemesterWindow(m, d) {
		return false
	}
	return dayMatches(m.DayOfWeek, d.DayName())
}

// MeetingsOn 枚举指定日期上课的全部课程（保持输入顺序，不排序）
func MeetingsOn(meetings []model.CourseMeeting, d Date) []model.CourseMeeting {
	result := []model.CourseMeeting{}
	for _, m := range meetings {
		if IsActiveOn(m, d) {
			result = append(result, m)
		}
	}
	return result
}

// MeetingsInHour 枚举指定日期、指定小时正在上课的课程
//
// 使用容忍 AM/PM 后缀的宽松小时解析；起止时间缺失或无法解析的课程
// 静默排除，永不报错。命中条件：开始小时 ≤ hour < 结束小时。
func MeetingsInHour(meetings []model.CourseMeeting, d Date, hour int) []model.CourseMeeting {
	result := []model.CourseMeeting{}
	for _, m := range MeetingsOn(meetings, d) {
		if m.StartTime == "" || m.EndTime == "" {
			continue
		}
		start, ok := parseHourLoose(m.StartTime)
		if !ok {
			continue
		}
		end, ok := parseHourLoose(m.EndTime)
		if !ok {
			continue
		}
		if hour >= start && hour < end {
			result = append(result, m)
		}
	}
	return result
}

// inSemesterWindow 判断日期 d 是否落在课程标记的学期窗口内
//
// 以 d 所在年份的窗口边界反推 d 归属的学年：边界之前归上一学年，
// 边界当天及之后归当年。课程学年无法解析时恒不匹配。
func inSemesterWindow(m model.CourseMeeting, d Date) bool {
	courseYear, err := strconv.Atoi(m.AcademicYear)
	if err != nil {
		return false
	}

	switch m.Semester {
	case model.SemesterOdd:
		if beforeBoundary(d, OddSemesterStartMonth, OddSemesterStartDay) {
			return courseYear == d.Year-1
		}
		return courseYear == d.Year
	case model.SemesterEven:
		if beforeBoundary(d, EvenSemesterStartMonth, EvenSemesterStartDay) {
			return courseYear == d.Year-1
		}
		return courseYear == d.Year
	}
	return false
}

// beforeBoundary 判断日期是否早于其所在年份的 month 月 day 日
func beforeBoundary(d Date, month, day int) bool {
	return d.Month < month || (d.Month == month && d.Day < day)
}

// dayMatches 宽松星期名匹配
//
// 命中任一条件即匹配（全部不区分大小写）：
//   - 精确相等："monday" == "monday"
//   - 三字母前缀（双向）："mon" 命中 "monday"
//   - 子串包含（双向）："tuesday-lab" 命中 "tuesday"
func dayMatches(courseDay, targetDay string) bool {
	c := strings.ToLower(courseDay)
	t := strings.ToLower(targetDay)
	if c == "" || t == "" {
		return false
	}

	return c == t ||
		c == prefix3(t) ||
		t == prefix3(c) ||
		strings.Contains(c, t) ||
		strings.Contains(t, c)
}

// prefix3 取前三个字符；不足三个时返回原串
func prefix3(s string) string {
	if len(s) <= 3 {
		return s
	}
	return s[:3]
}

// parseHourLoose 容忍 AM/PM 的宽松小时解析
//
// 去除数字与冒号之外的字符后取冒号前小时位；带 "pm" 后缀且小时非 12 时
// 加 12，"12am" 归零。
func parseHourLoose(t string) (int, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ':' {
			return r
		}
		return -1
	}, t)

	head, _, _ := strings.Cut(cleaned, ":")
	h, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}

	lower := strings.ToLower(t)
	if strings.Contains(lower, "pm") && h != 12 {
		h += 12
	} else if strings.Contains(lower, "am") && h == 12 {
		h = 0
	}
	return h, true
}

// [自证通过] internal/schedule/resolver.go
