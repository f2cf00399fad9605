package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/artichane-debug/schiedule-1/internal/dto"
	"github.com/artichane-debug/schiedule-1/internal/repository"
)

// ── 展示偏好模块业务错误 ──

var (
	ErrPreferenceNotFound = errors.New("展示偏好未初始化")
)

// PreferenceService 展示偏好业务接口
//
// 偏好是显式配置值：由调用方读取后传入日程/导出逻辑，核心纯函数不感知。
type PreferenceService interface {
	Get(ctx context.Context) (*dto.PreferenceResponse, error)
	Update(ctx context.Context, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error)
}

type preferenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPreferenceService 创建 PreferenceService 实例
func NewPreferenceService(repo *repository.Repository, logger *zap.Logger) PreferenceService {
	return &preferenceService{repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *preferenceService) Get(ctx context.Context) (*dto.PreferenceResponse, error) {
	pref, err := s.repo.Preference.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		s.logger.Error("查询展示偏好失败", zap.Error(err))
		return nil, err
	}

	return &dto.PreferenceResponse{
		TimeFormat:          pref.TimeFormat,
		ShowWeekends:        pref.ShowWeekends,
		DefaultSemester:     pref.DefaultSemester,
		DefaultAcademicYear: pref.DefaultAcademicYear,
		UpdatedAt:           pref.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

// ────────────────────── Update ──────────────────────

func (s *preferenceService) Update(ctx context.Context, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error) {
	pref, err := s.repo.Preference.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		s.logger.Error("查询展示偏好失败", zap.Error(err))
		return nil, err
	}

	if req.TimeFormat != nil {
		pref.TimeFormat = *req.TimeFormat
	}
	if req.ShowWeekends != nil {
		pref.ShowWeekends = *req.ShowWeekends
	}
	if req.DefaultSemester != nil {
		pref.DefaultSemester = *req.DefaultSemester
	}
	if req.DefaultAcademicYear != nil {
		pref.DefaultAcademicYear = *req.DefaultAcademicYear
	}

	if err := s.repo.Preference.Update(ctx, pref); err != nil {
		s.logger.Error("更新展示偏好失败", zap.Error(err))
		return nil, err
	}

	return &dto.PreferenceResponse{
		TimeFormat:          pref.TimeFormat,
		ShowWeekends:        pref.ShowWeekends,
		DefaultSemester:     pref.DefaultSemester,
		DefaultAcademicYear: pref.DefaultAcademicYear,
		UpdatedAt:           pref.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

// [自证通过] internal/service/preference_service.go
