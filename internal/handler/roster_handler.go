package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ward-roster-api/internal/dto"
	"github.com/noah-isme/ward-roster-api/internal/models"
	"github.com/noah-isme/ward-roster-api/internal/service"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
	"github.com/noah-isme/ward-roster-api/pkg/response"
)

type rosterGenerator interface {
	Generate(ctx context.Context, req dto.GenerateRosterRequest) (*dto.GenerateRosterResponse, error)
	Publish(ctx context.Context, req dto.PublishRosterRequest) (int, error)
	GetProposal(id string) (*dto.GenerateRosterResponse, error)
	StartRun(ctx context.Context, req dto.RosterRunRequest) (*dto.RosterRunView, error)
	GetRun(id string) (*dto.RosterRunView, error)
	ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
}

type rosterSummarizer interface {
	Get(ctx context.Context, year, month int) (*dto.RosterSummary, error)
}

type rosterExporter interface {
	Render(ctx context.Context, year, month int, format string) (*service.ExportResult, error)
}

// RosterHandler exposes roster generation, publication, and reporting endpoints.
type RosterHandler struct {
	roster  rosterGenerator
	summary rosterSummarizer
	export  rosterExporter
}

// NewRosterHandler constructs the handler.
func NewRosterHandler(roster *service.RosterService, summary *service.SummaryService, export *service.ExportService) *RosterHandler {
	return &RosterHandler{roster: roster, summary: summary, export: export}
}

// Generate godoc
// @Summary Generate a roster proposal for one month
// @Description Builds a greedy, deterministic shift assignment and holds it for review. Coverage gaps and budget overruns are reported, not fatal.
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.GenerateRosterRequest true "Generate roster payload"
// @Success 200 {object} response.Envelope
// @Router /roster/generate [post]
func (h *RosterHandler) Generate(c *gin.Context) {
	var req dto.GenerateRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.roster.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Publish godoc
// @Summary Publish a held proposal as the month's roster
// @Description Atomically replaces any previously committed month. Proposals with coverage gaps require force.
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.PublishRosterRequest true "Publish roster payload"
// @Success 200 {object} response.Envelope
// @Router /roster/publish [post]
func (h *RosterHandler) Publish(c *gin.Context) {
	var req dto.PublishRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid publish payload"))
		return
	}
	count, err := h.roster.Publish(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload := gin.H{"published": count}
	if claims := claimsFromContext(c); claims != nil {
		payload["publishedBy"] = claims.UserID
	}
	response.JSON(c, http.StatusOK, payload, nil)
}

// Proposal godoc
// @Summary Fetch a held roster proposal
// @Tags Roster
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Router /roster/proposals/{id} [get]
func (h *RosterHandler) Proposal(c *gin.Context) {
	result, err := h.roster.GetProposal(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// StartRun godoc
// @Summary Queue an asynchronous roster generation run
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.RosterRunRequest true "Run payload"
// @Success 202 {object} response.Envelope
// @Router /roster/runs [post]
func (h *RosterHandler) StartRun(c *gin.Context) {
	var req dto.RosterRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid run payload"))
		return
	}
	run, err := h.roster.StartRun(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, run)
}

// Run godoc
// @Summary Fetch the state of an asynchronous run
// @Tags Roster
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Envelope
// @Router /roster/runs/{id} [get]
func (h *RosterHandler) Run(c *gin.Context) {
	run, err := h.roster.GetRun(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, run, nil)
}

// Schedules godoc
// @Summary List the committed assignments of a month
// @Tags Roster
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param doctor_id query string false "Doctor ID"
// @Param service_id query string false "Service ID"
// @Param time_slot query string false "Time slot"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *RosterHandler) Schedules(c *gin.Context) {
	year, month, err := periodFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.ScheduleFilter{
		Year:      year,
		Month:     month,
		DoctorID:  c.Query("doctor_id"),
		ServiceID: c.Query("service_id"),
		TimeSlot:  models.TimeSlot(c.Query("time_slot")),
	}
	schedules, err := h.roster.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}

// Summary godoc
// @Summary Per-doctor breakdown of the committed month
// @Tags Roster
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /roster/summary [get]
func (h *RosterHandler) Summary(c *gin.Context) {
	year, month, err := periodFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.summary.Get(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Export godoc
// @Summary Export the committed month as CSV or PDF
// @Tags Roster
// @Produce text/csv
// @Produce application/pdf
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /roster/export [get]
func (h *RosterHandler) Export(c *gin.Context) {
	year, month, err := periodFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.export.Render(c.Request.Context(), year, month, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

func periodFromQuery(c *gin.Context) (int, int, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrInvalidPeriod, "year must be an integer")
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return 0, 0, appErrors.Clone(appErrors.ErrInvalidPeriod, "month must be an integer")
	}
	return year, month, nil
}
