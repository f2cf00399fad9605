package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/artichane-debug/schiedule-1/internal/model"
)

// PreferenceRepository 展示偏好数据访问接口
type PreferenceRepository interface {
	Get(ctx context.Context) (*model.Preference, error)
	Update(ctx context.Context, pref *model.Preference) error
}

type preferenceRepo struct {
	db *gorm.DB
}

// NewPreferenceRepo 创建 PreferenceRepository 实例
func NewPreferenceRepo(db *gorm.DB) PreferenceRepository {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Get(ctx context.Context) (*model.Preference, error) {
	var pref model.Preference
	err := r.db.WithContext(ctx).First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepo) Update(ctx context.Context, pref *model.Preference) error {
	return r.db.WithContext(ctx).Save(pref).Error
}
