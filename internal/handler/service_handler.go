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

type catalogManager interface {
	List(ctx context.Context, filter models.ServiceFilter) ([]models.Service, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, req service.CreateServiceRequest) (*models.Service, error)
	Update(ctx context.Context, id string, req service.UpdateServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, id string) error
}

// ServiceHandler exposes recurring service definition endpoints.
type ServiceHandler struct {
	service catalogManager
}

// NewServiceHandler constructs the handler.
func NewServiceHandler(svc *service.CatalogService) *ServiceHandler {
	return &ServiceHandler{service: svc}
}

// List godoc
// @Summary List recurring services
// @Tags Services
// @Produce json
// @Param search query string false "Name search"
// @Param time_slot query string false "Shift window filter"
// @Success 200 {object} response.Envelope
// @Router /services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	filter := models.ServiceFilter{
		Search:    c.Query("search"),
		TimeSlot:  models.TimeSlot(c.Query("time_slot")),
		Page:      intQuery(c, "page"),
		PageSize:  intQuery(c, "page_size"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	services, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, services, pagination)
}

// Get godoc
// @Summary Get one service
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Envelope
// @Router /services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	svc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, svc, nil)
}

// Create godoc
// @Summary Define a recurring service
// @Tags Services
// @Accept json
// @Produce json
// @Param payload body service.CreateServiceRequest true "Service payload"
// @Success 201 {object} response.Envelope
// @Router /services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	var req service.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid service payload"))
		return
	}
	svc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, svc)
}

// Update godoc
// @Summary Update a recurring service
// @Tags Services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param payload body service.UpdateServiceRequest true "Service payload"
// @Success 200 {object} response.Envelope
// @Router /services/{id} [put]
func (h *ServiceHandler) Update(c *gin.Context) {
	var req service.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid service payload"))
		return
	}
	svc, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, svc, nil)
}

// Delete godoc
// @Summary Remove a service definition
// @Tags Services
// @Param id path string true "Service ID"
// @Success 204
// @Router /services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
