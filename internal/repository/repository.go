package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	CourseMeeting CourseMeetingRepository
	Preference    PreferenceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		CourseMeeting: NewCourseMeetingRepo(db),
		Preference:    NewPreferenceRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
