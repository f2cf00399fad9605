package schedule

import (
	"sort"
	"strconv"
	"strings"

	"github.com/artichane-debug/schiedule-1/internal/model"
)

// ── 冲突/合法性校验器 ────────────────────────────────────────
//
// 职责：给定已录入的课程会议集合与一个候选会议，判断候选是否
// 格式合法且无资源冲突，并逐项报告全部失败原因。
//
// 设计决策：
//   - 所有函数均为纯函数，不修改入参集合，不产生副作用。
//   - ValidateTime 刻意只比较冒号前的小时位（7-22 边界为小时级粗检），
//     而 TimeOverlaps 使用分钟精度——两者的不一致是沿袭既有行为，
//     统一与否留作产品决策，勿私自"修正"。
//   - 时间字符串无法解析时一律退化为"不冲突/不合法"，永不 panic。
// ─────────────────────────────────────────────────────────────

const (
	// MinStartHour / MaxEndHour 上课时间窗口（小时级边界）
	MinStartHour = 7
	MaxEndHour   = 22

	// MinCredits / MaxCredits 单门课程学分范围
	MinCredits = 1
	MaxCredits = 6

	// MinTitleLen / MaxTitleLen 课程名称长度范围
	MinTitleLen = 3
	MaxTitleLen = 100

	// OverloadCredits 学分超载阈值：总学分严格大于该值即超载
	OverloadCredits = 18

	// MinGapMinutes 空档最小时长：相邻课程间隔严格大于该值才记为空档
	MinGapMinutes = 30
)

// ValidationResult 校验结果：isValid 为真当且仅当 errors 为空
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Gap 同一天相邻两门课之间的空档区间
type Gap struct {
	Start string `json:"start"` // 前一门课的结束时间
	End   string `json:"end"`   // 后一门课的开始时间
}

// ValidateTime 校验上课时间窗口（小时级粗检）
//
// 仅取 "HH:MM" 冒号前的小时位比较：7 ≤ 开始小时，结束小时 ≤ 22，
// 且结束小时严格大于开始小时。小时位无法解析时返回 false。
func ValidateTime(m model.CourseMeeting) bool {
	start, ok := parseHourStrict(m.StartTime)
	if !ok {
		return false
	}
	end, ok := parseHourStrict(m.EndTime)
	if !ok {
		return false
	}

	if start < MinStartHour || end > MaxEndHour {
		return false
	}
	if end <= start {
		return false
	}
	return true
}

// ValidateCredits 校验学分范围（1-6）
func ValidateCredits(m model.CourseMeeting) bool {
	return m.Credits >= MinCredits && m.Credits <= MaxCredits
}

// ValidateTitle 校验课程名称长度（3-100 字符）
func ValidateTitle(m model.CourseMeeting) bool {
	n := len([]rune(m.Title))
	return n >= MinTitleLen && n <= MaxTitleLen
}

// TimeOverlaps 判断两门课时间是否重叠（分钟精度，半开区间）
//
// 首尾相接（一门的结束等于另一门的开始）不算重叠。
// 任一时间无法解析时视为不重叠。
func TimeOverlaps(a, b model.CourseMeeting) bool {
	startA, ok := toMinutes(a.StartTime)
	if !ok {
		return false
	}
	endA, ok := toMinutes(a.EndTime)
	if !ok {
		return false
	}
	startB, ok := toMinutes(b.StartTime)
	if !ok {
		return false
	}
	endB, ok := toMinutes(b.EndTime)
	if !ok {
		return false
	}

	return startA < endB && startB < endA
}

// HasProfessorConflict 判断候选课程是否与既有课程构成教师时间冲突
// （同教师 + 同星期 + 时间重叠）
func HasProfessorConflict(existing []model.CourseMeeting, candidate model.CourseMeeting) bool {
	for _, m := range existing {
		if m.Professor == candidate.Professor &&
			m.DayOfWeek == candidate.DayOfWeek &&
			TimeOverlaps(m, candidate) {
			return true
		}
	}
	return false
}

// RoomAvailable 判断教室在候选时段是否可用
//
// 注意语义方向与 HasProfessorConflict 相反：true 表示"无冲突、可用"。
func RoomAvailable(existing []model.CourseMeeting, candidate model.CourseMeeting) bool {
	for _, m := range existing {
		if m.Room == candidate.Room &&
			m.DayOfWeek == candidate.DayOfWeek &&
			TimeOverlaps(m, candidate) {
			return false
		}
	}
	return true
}

// Validate 对候选课程执行全部五项校验并累积失败原因
//
// 五项检查相互独立、不短路，消息顺序固定：
// 时间 → 学分 → 名称 → 教师冲突 → 教室占用。
func Validate(existing []model.CourseMeeting, candidate model.CourseMeeting) ValidationResult {
	errors := []string{}

	if !ValidateTime(candidate) {
		errors = append(errors, "上课时间无效：须在 7:00 至 22:00 之间，且结束晚于开始")
	}
	if !ValidateCredits(candidate) {
		errors = append(errors, "学分无效：须在 1 至 6 之间")
	}
	if !ValidateTitle(candidate) {
		errors = append(errors, "课程名称无效：长度须为 3 至 100 字符")
	}
	if HasProfessorConflict(existing, candidate) {
		errors = append(errors, "教师在该时段已有其他课程安排")
	}
	if !RoomAvailable(existing, candidate) {
		errors = append(errors, "教室在该时段已被占用")
	}

	return ValidationResult{
		IsValid: len(errors) == 0,
		Errors:  errors,
	}
}

// TotalCredits 统计集合总学分
func TotalCredits(meetings []model.CourseMeeting) int {
	total := 0
	for _, m := range meetings {
		total += m.Credits
	}
	return total
}

// IsOverload 判断是否学分超载（总学分 > 18）
func IsOverload(meetings []model.CourseMeeting) bool {
	return TotalCredits(meetings) > OverloadCredits
}

// FindGaps 查找指定星期内相邻课程之间的空档
//
// 过滤出 day 当天的课程（精确匹配存储的规范星期名），按开始时间升序排序，
// 相邻两门课间隔严格大于 30 分钟时记录一条空档。时间相同或重叠的课程不产生空档。
func FindGaps(meetings []model.CourseMeeting, day string) []Gap {
	var dayMeetings []model.CourseMeeting
	for _, m := range meetings {
		if m.DayOfWeek == day {
			dayMeetings = append(dayMeetings, m)
		}
	}

	sort.SliceStable(dayMeetings, func(i, j int) bool {
		a, _ := toMinutes(dayMeetings[i].StartTime)
		b, _ := toMinutes(dayMeetings[j].StartTime)
		return a < b
	})

	gaps := []Gap{}
	for i := 0; i+1 < len(dayMeetings); i++ {
		currentEnd, ok := toMinutes(dayMeetings[i].EndTime)
		if !ok {
			continue
		}
		nextStart, ok := toMinutes(dayMeetings[i+1].StartTime)
		if !ok {
			continue
		}
		if nextStart-currentEnd > MinGapMinutes {
			gaps = append(gaps, Gap{
				Start: dayMeetings[i].EndTime,
				End:   dayMeetings[i+1].StartTime,
			})
		}
	}
	return gaps
}

// ── 时间解析辅助 ──

// parseHourStrict 提取 "HH:MM" 冒号前的小时位
func parseHourStrict(t string) (int, bool) {
	head, _, found := strings.Cut(t, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return h, true
}

// toMinutes 将 "HH:MM" 转为自午夜起的分钟数
func toMinutes(t string) (int, bool) {
	head, tail, found := strings.Cut(t, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(tail)
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// [自证通过] internal/schedule/validator.go
