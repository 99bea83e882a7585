package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ward-roster-api/internal/models"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
)

type unavailabilityRepository interface {
	List(ctx context.Context, filter models.UnavailabilityFilter) ([]models.Unavailability, int, error)
	Create(ctx context.Context, record *models.Unavailability) error
	Delete(ctx context.Context, id string) error
}

type unavailabilityDoctorReader interface {
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
}

// CreateUnavailabilityRequest marks a doctor as unassignable.
type CreateUnavailabilityRequest struct {
	DoctorID string    `json:"doctor_id" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	TimeSlot string    `json:"time_slot" validate:"required"`
	Reason   string    `json:"reason"`
}

// UnavailabilityService handles unavailability use-cases.
type UnavailabilityService struct {
	repo      unavailabilityRepository
	doctors   unavailabilityDoctorReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUnavailabilityService constructs the unavailability service.
func NewUnavailabilityService(repo unavailabilityRepository, doctors unavailabilityDoctorReader, validate *validator.Validate, logger *zap.Logger) *UnavailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnavailabilityService{repo: repo, doctors: doctors, validator: validate, logger: logger}
}

// List returns unavailability records and pagination metadata.
func (s *UnavailabilityService) List(ctx context.Context, filter models.UnavailabilityFilter) ([]models.Unavailability, *models.Pagination, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unavailability")
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
	return records, pagination, nil
}

// Create registers an unavailability record. SlotFullDay blocks all windows
// of that date.
func (s *UnavailabilityService) Create(ctx context.Context, req CreateUnavailabilityRequest) (*models.Unavailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unavailability payload")
	}
	slot := models.TimeSlot(req.TimeSlot)
	if !slot.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown time_slot %q", req.TimeSlot))
	}
	if s.doctors != nil {
		if _, err := s.doctors.FindByID(ctx, req.DoctorID); err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "doctor not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load doctor")
		}
	}

	record := &models.Unavailability{
		DoctorID: req.DoctorID,
		Date:     req.Date.UTC().Truncate(24 * time.Hour),
		TimeSlot: slot,
		Reason:   req.Reason,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create unavailability")
	}
	return record, nil
}

// Delete removes an unavailability record.
func (s *UnavailabilityService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete unavailability")
	}
	return nil
}
