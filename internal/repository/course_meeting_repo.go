package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/artichane-debug/schiedule-1/internal/model"
)

// CourseMeetingRepository 课程会议数据访问接口
type CourseMeetingRepository interface {
	List(ctx context.Context) ([]model.CourseMeeting, error)
	GetByID(ctx context.Context, id string) (*model.CourseMeeting, error)
	Create(ctx context.Context, meeting *model.CourseMeeting) error
	BatchCreate(ctx context.Context, meetings []model.CourseMeeting) error
	Update(ctx context.Context, meeting *model.CourseMeeting) error
	Delete(ctx context.Context, id string) error
}

type courseMeetingRepo struct {
	db *gorm.DB
}

// NewCourseMeetingRepo 创建 CourseMeetingRepository 实例
func NewCourseMeetingRepo(db *gorm.DB) CourseMeetingRepository {
	return &courseMeetingRepo{db: db}
}

func (r *courseMeetingRepo) List(ctx context.Context) ([]model.CourseMeeting, error) {
	var meetings []model.CourseMeeting
	err := r.db.WithContext(ctx).
		Order("day_of_week ASC, start_time ASC").
		Find(&meetings).Error
	return meetings, err
}

func (r *courseMeetingRepo) GetByID(ctx context.Context, id string) (*model.CourseMeeting, error) {
	var meeting model.CourseMeeting
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *courseMeetingRepo) Create(ctx context.Context, meeting *model.CourseMeeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *courseMeetingRepo) BatchCreate(ctx context.Context, meetings []model.CourseMeeting) error {
	if len(meetings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&meetings).Error
}

func (r *courseMeetingRepo) Update(ctx context.Context, meeting *model.CourseMeeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

func (r *courseMeetingRepo) Delete(ctx context.Context, id string) error {
	// 软删除：保留记录以备撤销，ID 永不复用
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", id).
		Delete(&model.CourseMeeting{}).Error
}
