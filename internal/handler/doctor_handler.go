package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ward-roster-api/internal/models"
	"github.com/noah-isme/ward-roster-api/internal/service"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
	"github.com/noah-isme/ward-roster-api/pkg/response"
)

type doctorManager interface {
	List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Doctor, error)
	Create(ctx context.Context, req service.CreateDoctorRequest) (*models.Doctor, error)
	Update(ctx context.Context, id string, req service.UpdateDoctorRequest) (*models.Doctor, error)
	Delete(ctx context.Context, id string) error
	SetServices(ctx context.Context, id string, req service.SetDoctorServicesRequest) (*models.Doctor, error)
}

// DoctorHandler exposes doctor management endpoints.
type DoctorHandler struct {
	service doctorManager
}

// NewDoctorHandler constructs the handler.
func NewDoctorHandler(svc *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: svc}
}

// List godoc
// @Summary List doctors
// @Tags Doctors
// @Produce json
// @Param search query string false "Name or surname search"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /doctors [get]
func (h *DoctorHandler) List(c *gin.Context) {
	filter := models.DoctorFilter{
		Search:    c.Query("search"),
		Page:      intQuery(c, "page"),
		PageSize:  intQuery(c, "page_size"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	doctors, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctors, pagination)
}

// Get godoc
// @Summary Get one doctor with qualifications
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Envelope
// @Router /doctors/{id} [get]
func (h *DoctorHandler) Get(c *gin.Context) {
	doctor, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctor, nil)
}

// Create godoc
// @Summary Register a doctor
// @Tags Doctors
// @Accept json
// @Produce json
// @Param payload body service.CreateDoctorRequest true "Doctor payload"
// @Success 201 {object} response.Envelope
// @Router /doctors [post]
func (h *DoctorHandler) Create(c *gin.Context) {
	var req service.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid doctor payload"))
		return
	}
	doctor, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, doctor)
}

// Update godoc
// @Summary Update a doctor
// @Tags Doctors
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param payload body service.UpdateDoctorRequest true "Doctor payload"
// @Success 200 {object} response.Envelope
// @Router /doctors/{id} [put]
func (h *DoctorHandler) Update(c *gin.Context) {
	var req service.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid doctor payload"))
		return
	}
	doctor, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctor, nil)
}

// Delete godoc
// @Summary Remove a doctor
// @Tags Doctors
// @Param id path string true "Doctor ID"
// @Success 204
// @Router /doctors/{id} [delete]
func (h *DoctorHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetServices godoc
// @Summary Rewrite a doctor's qualified and preferred services
// @Tags Doctors
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param payload body service.SetDoctorServicesRequest true "Services payload"
// @Success 200 {object} response.Envelope
// @Router /doctors/{id}/services [put]
func (h *DoctorHandler) SetServices(c *gin.Context) {
	var req service.SetDoctorServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid services payload"))
		return
	}
	doctor, err := h.service.SetServices(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctor, nil)
}

func intQuery(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}
