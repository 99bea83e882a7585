package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ward-roster-api/internal/dto"
	internalmiddleware "github.com/noah-isme/ward-roster-api/internal/middleware"
	"github.com/noah-isme/ward-roster-api/internal/models"
	"github.com/noah-isme/ward-roster-api/internal/service"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
)

type rosterGeneratorMock struct {
	captured   dto.GenerateRosterRequest
	publishErr error
}

func (m *rosterGeneratorMock) Generate(ctx context.Context, req dto.GenerateRosterRequest) (*dto.GenerateRosterResponse, error) {
	m.captured = req
	return &dto.GenerateRosterResponse{ProposalID: "proposal-1", Year: req.Year, Month: req.Month}, nil
}

func (m *rosterGeneratorMock) Publish(ctx context.Context, req dto.PublishRosterRequest) (int, error) {
	if m.publishErr != nil {
		return 0, m.publishErr
	}
	return 31, nil
}

func (m *rosterGeneratorMock) GetProposal(id string) (*dto.GenerateRosterResponse, error) {
	if id != "proposal-1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	return &dto.GenerateRosterResponse{ProposalID: id}, nil
}

func (m *rosterGeneratorMock) StartRun(ctx context.Context, req dto.RosterRunRequest) (*dto.RosterRunView, error) {
	return &dto.RosterRunView{RunID: "run-1", Status: dto.RunStatusQueued}, nil
}

func (m *rosterGeneratorMock) GetRun(id string) (*dto.RosterRunView, error) {
	return &dto.RosterRunView{RunID: id, Status: dto.RunStatusCompleted}, nil
}

func (m *rosterGeneratorMock) ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	return []models.Schedule{{ID: "sch-1", DoctorID: "doc-1", ServiceID: "svc-ward"}}, nil
}

type summaryMock struct{}

func (summaryMock) Get(ctx context.Context, year, month int) (*dto.RosterSummary, error) {
	return &dto.RosterSummary{Year: year, Month: month}, nil
}

type exportMock struct{}

func (exportMock) Render(ctx context.Context, year, month int, format string) (*service.ExportResult, error) {
	return &service.ExportResult{Filename: "roster.csv", ContentType: "text/csv", Payload: []byte("Date\n")}, nil
}

func TestRosterHandlerGenerate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &rosterGeneratorMock{}
	handler := &RosterHandler{roster: mockSvc, summary: summaryMock{}, export: exportMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/roster/generate", bytes.NewReader([]byte(`{"year":2026,"month":3}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2026, mockSvc.captured.Year)
	require.Equal(t, 3, mockSvc.captured.Month)
}

func TestRosterHandlerGenerateBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &RosterHandler{roster: &rosterGeneratorMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/roster/generate", bytes.NewReader([]byte(`{"year":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRosterHandlerPublishConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &rosterGeneratorMock{publishErr: appErrors.Clone(appErrors.ErrConflict, "proposal has coverage gaps")}
	handler := &RosterHandler{roster: mockSvc}

	req, _ := http.NewRequest(http.MethodPost, "/roster/publish", bytes.NewReader([]byte(`{"proposalId":"proposal-1"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Publish(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRosterHandlerSummaryRequiresPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &RosterHandler{roster: &rosterGeneratorMock{}, summary: summaryMock{}}

	req, _ := http.NewRequest(http.MethodGet, "/roster/summary?year=2026", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Summary(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRosterHandlerSchedules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &RosterHandler{roster: &rosterGeneratorMock{}}

	req, _ := http.NewRequest(http.MethodGet, "/schedules?year=2026&month=3", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Schedules(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "sch-1")
}

func TestRosterHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &RosterHandler{roster: &rosterGeneratorMock{}, export: exportMock{}}

	req, _ := http.NewRequest(http.MethodGet, "/roster/export?year=2026&month=3&format=csv", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "roster.csv")
}

func TestRosterHandlerPublishRequiresRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &RosterHandler{roster: &rosterGeneratorMock{}}
	router := gin.New()
	router.POST("/roster/publish", func(c *gin.Context) {
		c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Role: "viewer"})
	}, internalmiddleware.RequireRoles("planner", "admin"), handler.Publish)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/roster/publish", bytes.NewReader([]byte(`{"proposalId":"proposal-1"}`)))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}
