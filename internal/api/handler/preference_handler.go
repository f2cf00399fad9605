package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/artichane-debug/schiedule-1/internal/dto"
	"github.com/artichane-debug/schiedule-1/internal/service"
	"github.com/artichane-debug/schiedule-1/pkg/response"
)

// PreferenceHandler 展示偏好模块 HTTP 处理器
type PreferenceHandler struct {
	prefSvc service.PreferenceService
}

// NewPreferenceHandler 创建 PreferenceHandler
func NewPreferenceHandler(prefSvc service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefSvc: prefSvc}
}

// GetPreferences 获取展示偏好
// GET /api/v1/preferences
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	pref, err := h.prefSvc.Get(c.Request.Context())
	if err != nil {
		h.handlePreferenceError(c, err)
		return
	}
	response.OK(c, pref)
}

// UpdatePreferences 更新展示偏好（未填字段不变）
// PUT /api/v1/preferences
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	var req dto.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13000, "参数校验失败")
		return
	}

	pref, err := h.prefSvc.Update(c.Request.Context(), &req)
	if err != nil {
		h.handlePreferenceError(c, err)
		return
	}
	response.OK(c, pref)
}

// handlePreferenceError 统一处理展示偏好模块业务错误
func (h *PreferenceHandler) handlePreferenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPreferenceNotFound):
		response.NotFound(c, 13001, "展示偏好未初始化")
	default:
		response.InternalError(c)
	}
}
