package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ward-roster-api/internal/models"
	"github.com/noah-isme/ward-roster-api/internal/service"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
	"github.com/noah-isme/ward-roster-api/pkg/response"
)

type unavailabilityManager interface {
	List(ctx context.Context, filter models.UnavailabilityFilter) ([]models.Unavailability, *models.Pagination, error)
	Create(ctx context.Context, req service.CreateUnavailabilityRequest) (*models.Unavailability, error)
	Delete(ctx context.Context, id string) error
}

// UnavailabilityHandler exposes unavailability endpoints.
type UnavailabilityHandler struct {
	service unavailabilityManager
}

// NewUnavailabilityHandler constructs the handler.
func NewUnavailabilityHandler(svc *service.UnavailabilityService) *UnavailabilityHandler {
	return &UnavailabilityHandler{service: svc}
}

// List godoc
// @Summary List unavailability records
// @Tags Unavailability
// @Produce json
// @Param doctor_id query string false "Doctor ID"
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} response.Envelope
// @Router /unavailability [get]
func (h *UnavailabilityHandler) List(c *gin.Context) {
	filter := models.UnavailabilityFilter{
		DoctorID: c.Query("doctor_id"),
		Year:     intQuery(c, "year"),
		Month:    intQuery(c, "month"),
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "page_size"),
	}
	records, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Create godoc
// @Summary Mark a doctor unavailable
// @Tags Unavailability
// @Accept json
// @Produce json
// @Param payload body service.CreateUnavailabilityRequest true "Unavailability payload"
// @Success 201 {object} response.Envelope
// @Router /unavailability [post]
func (h *UnavailabilityHandler) Create(c *gin.Context) {
	var req service.CreateUnavailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unavailability payload"))
		return
	}
	record, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Delete godoc
// @Summary Remove an unavailability record
// @Tags Unavailability
// @Param id path string true "Record ID"
// @Success 204
// @Router /unavailability/{id} [delete]
func (h *UnavailabilityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
