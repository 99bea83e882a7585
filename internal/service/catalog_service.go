package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/ward-roster-api/internal/models"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
)

type serviceRepository interface {
	List(ctx context.Context, filter models.ServiceFilter) ([]models.Service, int, error)
	FindByID(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
}

// CreateServiceRequest holds payload for defining a recurring service.
type CreateServiceRequest struct {
	Name            string   `json:"name" validate:"required"`
	TimeSlot        string   `json:"time_slot" validate:"required"`
	Days            []string `json:"days" validate:"required,min=1,dive,required"`
	DoctorsRequired int      `json:"doctors_required" validate:"required,min=1"`
}

// UpdateServiceRequest holds payload for updating a service.
type UpdateServiceRequest struct {
	Name            string   `json:"name" validate:"required"`
	TimeSlot        string   `json:"time_slot" validate:"required"`
	Days            []string `json:"days" validate:"required,min=1,dive,required"`
	DoctorsRequired int      `json:"doctors_required" validate:"required,min=1"`
}

// CatalogService handles the department's recurring service definitions.
type CatalogService struct {
	repo      serviceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(repo serviceRepository, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, validator: validate, logger: logger}
}

// List returns services and pagination metadata.
func (s *CatalogService) List(ctx context.Context, filter models.ServiceFilter) ([]models.Service, *models.Pagination, error) {
	services, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list services")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return services, pagination, nil
}

// Get returns one service.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Service, error) {
	service, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "service not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load service")
	}
	return service, nil
}

// Create defines a new recurring service.
func (s *CatalogService) Create(ctx context.Context, req CreateServiceRequest) (*models.Service, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid service payload")
	}
	slot, days, err := normalizeServiceShape(req.TimeSlot, req.Days)
	if err != nil {
		return nil, err
	}
	service := &models.Service{
		Name:            req.Name,
		TimeSlot:        slot,
		Days:            days,
		DoctorsRequired: req.DoctorsRequired,
	}
	if err := s.repo.Create(ctx, service); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create service")
	}
	return service, nil
}

// Update modifies an existing service.
func (s *CatalogService) Update(ctx context.Context, id string, req UpdateServiceRequest) (*models.Service, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid service payload")
	}
	slot, days, err := normalizeServiceShape(req.TimeSlot, req.Days)
	if err != nil {
		return nil, err
	}
	service, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	service.Name = req.Name
	service.TimeSlot = slot
	service.Days = days
	service.DoctorsRequired = req.DoctorsRequired
	if err := s.repo.Update(ctx, service); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update service")
	}
	return service, nil
}

// Delete removes a service definition.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete service")
	}
	return nil
}

var weekdayNames = map[string]bool{
	time.Monday.String():    true,
	time.Tuesday.String():   true,
	time.Wednesday.String(): true,
	time.Thursday.String():  true,
	time.Friday.String():    true,
	time.Saturday.String():  true,
	time.Sunday.String():    true,
}

func normalizeServiceShape(rawSlot string, rawDays []string) (models.TimeSlot, pq.StringArray, error) {
	slot := models.TimeSlot(rawSlot)
	if !slot.Valid() || slot == models.SlotFullDay {
		return "", nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("time_slot %q is not a shift window", rawSlot))
	}
	seen := make(map[string]bool, len(rawDays))
	days := make(pq.StringArray, 0, len(rawDays))
	for _, day := range rawDays {
		if !weekdayNames[day] {
			return "", nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown weekday %q", day))
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	return slot, days, nil
}
