package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/artichane-debug/schiedule-1/internal/dto"
	"github.com/artichane-debug/schiedule-1/internal/schedule"
	"github.com/artichane-debug/schiedule-1/internal/service"
	"github.com/artichane-debug/schiedule-1/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock MeetingService ──

type mockMeetingService struct {
	listResult     []dto.MeetingResponse
	listErr        error
	getResult      *dto.MeetingResponse
	getErr         error
	createResult   *dto.MeetingResponse
	createErr      error
	updateResult   *dto.MeetingResponse
	updateErr      error
	deleteErr      error
	validateResult *dto.ValidationResponse
	validateErr    error
	statsResult    *dto.StatsResponse
	statsErr       error
	gapsResult     *dto.GapsResponse
	gapsErr        error
}

func (m *mockMeetingService) List(_ context.Context) ([]dto.MeetingResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockMeetingService) Get(_ context.Context, _ string) (*dto.MeetingResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockMeetingService) Create(_ context.Context, _ *dto.SaveMeetingRequest) (*dto.MeetingResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockMeetingService) Update(_ context.Context, _ string, _ *dto.SaveMeetingRequest) (*dto.MeetingResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockMeetingService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockMeetingService) Validate(_ context.Context, _ *dto.SaveMeetingRequest) (*dto.ValidationResponse, error) {
	return m.validateResult, m.validateErr
}
func (m *mockMeetingService) Stats(_ context.Context) (*dto.StatsResponse, error) {
	return m.statsResult, m.statsErr
}
func (m *mockMeetingService) Gaps(_ context.Context, _ string) (*dto.GapsResponse, error) {
	return m.gapsResult, m.gapsErr
}

// ── Mock ImportService ──

type mockImportService struct {
	result *dto.ImportICSResponse
	err    error
}

func (m *mockImportService) ImportICS(_ context.Context, _ io.Reader, _, _ string) (*dto.ImportICSResponse, error) {
	return m.result, m.err
}

// ── Mock AgendaService ──

type mockAgendaService struct {
	dayResult   *dto.DayAgendaResponse
	dayErr      error
	weekResult  *dto.WeekAgendaResponse
	weekErr     error
	monthResult *dto.MonthAgendaResponse
	monthErr    error
}

func (m *mockAgendaService) Day(_ context.Context, _ schedule.Date) (*dto.DayAgendaResponse, error) {
	return m.dayResult, m.dayErr
}
func (m *mockAgendaService) Week(_ context.Context, _ schedule.Date) (*dto.WeekAgendaResponse, error) {
	return m.weekResult, m.weekErr
}
func (m *mockAgendaService) Month(_ context.Context, _, _ int) (*dto.MonthAgendaResponse, error) {
	return m.monthResult, m.monthErr
}

// ── Mock PreferenceService ──

type mockPreferenceService struct {
	getResult    *dto.PreferenceResponse
	getErr       error
	updateResult *dto.PreferenceResponse
	updateErr    error
}

func (m *mockPreferenceService) Get(_ context.Context) (*dto.PreferenceResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockPreferenceService) Update(_ context.Context, _ *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error) {
	return m.updateResult, m.updateErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportWeek(_ context.Context, _ schedule.Date) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func validSaveRequest() dto.SaveMeetingRequest {
	return dto.SaveMeetingRequest{
		Title:        "Calculus I",
		Professor:    "Smith",
		Room:         "A-101",
		StartTime:    "09:00",
		EndTime:      "10:30",
		DayOfWeek:    "monday",
		AcademicYear: "2024",
		Semester:     "odd",
		Credits:      4,
	}
}

// ═══════════════════════════════════════════════════════════
// MeetingHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMeetingHandler_ListMeetings(t *testing.T) {
	mock := &mockMeetingService{
		listResult: []dto.MeetingResponse{{ID: "mtg-001", Title: "Calculus I"}},
	}
	h := NewMeetingHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/meetings", nil)

	r := gin.New()
	r.GET("/meetings", h.ListMeetings)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestMeetingHandler_GetMeeting_NotFound(t *testing.T) {
	mock := &mockMeetingService{getErr: service.ErrMeetingNotFound}
	h := NewMeetingHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/meetings/no-such-id", nil)

	r := gin.New()
	r.GET("/meetings/:id", h.GetMeeting)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestMeetingHandler_CreateMeeting_Success(t *testing.T) {
	mock := &mockMeetingService{
		createResult: &dto.MeetingResponse{ID: "mtg-001", Title: "Calculus I"},
	}
	h := NewMeetingHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/meetings", jsonBody(validSaveRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/meetings", h.CreateMeeting)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestMeetingHandler_CreateMeeting_BadJSON(t *testing.T) {
	h := NewMeetingHandler(&mockMeetingService{}, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/meetings", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/meetings", h.CreateMeeting)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestMeetingHandler_CreateMeeting_ValidationFailed(t *testing.T) {
	mock := &mockMeetingService{
		createErr: &service.ValidationError{
			Result: schedule.ValidationResult{
				IsValid: false,
				Errors:  []string{"Smith 教授在该时段已有其他课程"},
			},
		},
	}
	h := NewMeetingHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/meetings", jsonBody(validSaveRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/meetings", h.CreateMeeting)
	r.ServeHTTP(w, req)

	// 校验失败返回 422，携带逐项失败原因
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
	if resp.Data == nil {
		t.Error("expected validation errors in data")
	}
}

// 学分为 0 须通过请求绑定进入核心校验，由校验器累积报告而非绑定层 400
func TestMeetingHandler_CreateMeeting_ZeroCreditsReachesValidator(t *testing.T) {
	mock := &mockMeetingService{
		createErr: &service.ValidationError{
			Result: schedule.ValidationResult{
				IsValid: false,
				Errors:  []string{"学分无效：须在 1 至 6 之间"},
			},
		},
	}
	h := NewMeetingHandler(mock, &mockImportService{})

	body := validSaveRequest()
	body.Credits = 0

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/meetings", jsonBody(body))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/meetings", h.CreateMeeting)
	r.ServeHTTP(w, req)

	if w.Code == http.StatusBadRequest {
		t.Fatal("zero credits must not be rejected at binding")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11003 {
		t.Errorf("expected error code 11003, got %d", resp.Code)
	}
}

func TestMeetingHandler_UpdateMeeting_NotFound(t *testing.T) {
	mock := &mockMeetingService{updateErr: service.ErrMeetingNotFound}
	h := NewMeetingHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/meetings/no-such-id", jsonBody(validSaveRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/meetings/:id", h.UpdateMeeting)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestMeetingHandler_DeleteMeeting_Success(t *testing.T) {
	h := NewMeetingHandler(&mockMeetingService{}, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/meetings/mtg-001", nil)

	r := gin.New()
	r.DELETE("/meetings/:id", h.DeleteMeeting)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestMeetingHandler_ValidateMeeting_DryRun(t *testing.T) {
	mock := &mockMeetingService{
		validateResult: &dto.ValidationResponse{IsValid: false, Errors: []string{"教室 A-101 在该时段已被占用"}},
	}
	h := NewMeetingHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/meetings/validate", jsonBody(validSaveRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/meetings/validate", h.ValidateMeeting)
	r.ServeHTTP(w, req)

	// 试运行校验失败仍是 200：结果本身就是响应数据
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestMeetingHandler_GetGaps_MissingDay(t *testing.T) {
	h := NewMeetingHandler(&mockMeetingService{}, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/meetings/gaps", nil)

	r := gin.New()
	r.GET("/meetings/gaps", h.GetGaps)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestMeetingHandler_GetGaps_InvalidDay(t *testing.T) {
	mock := &mockMeetingService{gapsErr: service.ErrInvalidDayOfWeek}
	h := NewMeetingHandler(mock, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/meetings/gaps?day=funday", nil)

	r := gin.New()
	r.GET("/meetings/gaps", h.GetGaps)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestMeetingHandler_ImportICS_NoFileNoURL(t *testing.T) {
	h := NewMeetingHandler(&mockMeetingService{}, &mockImportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/meetings/import", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/meetings/import", h.ImportICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestMeetingHandler_ImportICS_FileUpload(t *testing.T) {
	mock := &mockImportService{
		result: &dto.ImportICSResponse{ImportedCount: 2},
	}
	h := NewMeetingHandler(&mockMeetingService{}, mock)

	// 构造 multipart 请求
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("academic_year", "2024")
	mw.WriteField("semester", "odd")
	part, _ := mw.CreateFormFile("file", "schedule.ics")
	part.Write([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/meetings/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	r := gin.New()
	r.POST("/meetings/import", h.ImportICS)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AgendaHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAgendaHandler_GetDay_Success(t *testing.T) {
	mock := &mockAgendaService{
		dayResult: &dto.DayAgendaResponse{Date: "2024-09-17", DayName: "tuesday"},
	}
	h := NewAgendaHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/agenda/day?date=2024-09-17", nil)

	r := gin.New()
	r.GET("/agenda/day", h.GetDay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAgendaHandler_GetDay_BadDate(t *testing.T) {
	h := NewAgendaHandler(&mockAgendaService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/agenda/day?date=17-09-2024", nil)

	r := gin.New()
	r.GET("/agenda/day", h.GetDay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAgendaHandler_GetDay_MissingDate(t *testing.T) {
	h := NewAgendaHandler(&mockAgendaService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/agenda/day", nil)

	r := gin.New()
	r.GET("/agenda/day", h.GetDay)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAgendaHandler_GetMonth_InvalidMonth(t *testing.T) {
	mock := &mockAgendaService{monthErr: service.ErrAgendaInvalidMonth}
	h := NewAgendaHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/agenda/month?year=2024&month=13", nil)

	r := gin.New()
	r.GET("/agenda/month", h.GetMonth)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAgendaHandler_GetMonth_NonNumericYear(t *testing.T) {
	h := NewAgendaHandler(&mockAgendaService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/agenda/month?year=abcd&month=9", nil)

	r := gin.New()
	r.GET("/agenda/month", h.GetMonth)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// PreferenceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestPreferenceHandler_GetPreferences(t *testing.T) {
	mock := &mockPreferenceService{
		getResult: &dto.PreferenceResponse{TimeFormat: "12", ShowWeekends: true},
	}
	h := NewPreferenceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/preferences", nil)

	r := gin.New()
	r.GET("/preferences", h.GetPreferences)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestPreferenceHandler_GetPreferences_NotFound(t *testing.T) {
	mock := &mockPreferenceService{getErr: service.ErrPreferenceNotFound}
	h := NewPreferenceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/preferences", nil)

	r := gin.New()
	r.GET("/preferences", h.GetPreferences)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}

func TestPreferenceHandler_UpdatePreferences_BadEnum(t *testing.T) {
	h := NewPreferenceHandler(&mockPreferenceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/preferences", jsonBody(map[string]string{"time_format": "36"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/preferences", h.UpdatePreferences)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportWeek_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("PK fake xlsx content"),
		filename: "schedule_2024-09-16.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/week?date=2024-09-17", nil)

	r := gin.New()
	r.GET("/export/week", h.ExportWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
}

func TestExportHandler_ExportWeek_NoMeetings(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoMeetings}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/week?date=2024-09-17", nil)

	r := gin.New()
	r.GET("/export/week", h.ExportWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ExportWeek_BadDate(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/week?date=not-a-date", nil)

	r := gin.New()
	r.GET("/export/week", h.ExportWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
