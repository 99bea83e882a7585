package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ward-roster-api/internal/models"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
)

type doctorRepository interface {
	List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error)
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
	Create(ctx context.Context, doctor *models.Doctor) error
	Update(ctx context.Context, doctor *models.Doctor) error
	Delete(ctx context.Context, id string) error
	ReplaceServices(ctx context.Context, doctorID string, qualified, preferred []string) error
}

type doctorServiceChecker interface {
	FindByID(ctx context.Context, id string) (*models.Service, error)
}

// CreateDoctorRequest holds payload for registering doctors.
type CreateDoctorRequest struct {
	Name         string `json:"name" validate:"required"`
	Surname      string `json:"surname" validate:"required"`
	WeeklyHours  int    `json:"weekly_hours" validate:"required,min=1,max=168"`
	IsSpecialist bool   `json:"is_specialist"`
}

// UpdateDoctorRequest holds payload for updating doctors.
type UpdateDoctorRequest struct {
	Name         string `json:"name" validate:"required"`
	Surname      string `json:"surname" validate:"required"`
	WeeklyHours  int    `json:"weekly_hours" validate:"required,min=1,max=168"`
	IsSpecialist bool   `json:"is_specialist"`
}

// SetDoctorServicesRequest rewrites a doctor's qualifications.
type SetDoctorServicesRequest struct {
	QualifiedServiceIDs []string `json:"qualified_service_ids" validate:"required,min=1,dive,required"`
	PreferredServiceIDs []string `json:"preferred_service_ids" validate:"omitempty,dive,required"`
}

// DoctorService handles doctor use-cases.
type DoctorService struct {
	repo      doctorRepository
	services  doctorServiceChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDoctorService constructs the doctor service.
func NewDoctorService(repo doctorRepository, services doctorServiceChecker, validate *validator.Validate, logger *zap.Logger) *DoctorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DoctorService{repo: repo, services: services, validator: validate, logger: logger}
}

// List returns doctors and pagination metadata.
func (s *DoctorService) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, *models.Pagination, error) {
	doctors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list doctors")
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
	return doctors, pagination, nil
}

// Get returns one doctor with qualifications attached.
func (s *DoctorService) Get(ctx context.Context, id string) (*models.Doctor, error) {
	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "doctor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load doctor")
	}
	return doctor, nil
}

// Create registers a new doctor.
func (s *DoctorService) Create(ctx context.Context, req CreateDoctorRequest) (*models.Doctor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid doctor payload")
	}
	doctor := &models.Doctor{
		Name:         req.Name,
		Surname:      req.Surname,
		WeeklyHours:  req.WeeklyHours,
		IsSpecialist: req.IsSpecialist,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create doctor")
	}
	return doctor, nil
}

// Update modifies an existing doctor.
func (s *DoctorService) Update(ctx context.Context, id string, req UpdateDoctorRequest) (*models.Doctor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid doctor payload")
	}
	doctor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doctor.Name = req.Name
	doctor.Surname = req.Surname
	doctor.WeeklyHours = req.WeeklyHours
	doctor.IsSpecialist = req.IsSpecialist
	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update doctor")
	}
	return doctor, nil
}

// Delete removes a doctor and its qualification links.
func (s *DoctorService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete doctor")
	}
	return nil
}

// SetServices rewrites a doctor's qualified and preferred services.
// Preferred IDs must be a subset of the qualified ones.
func (s *DoctorService) SetServices(ctx context.Context, id string, req SetDoctorServicesRequest) (*models.Doctor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid doctor services payload")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	qualified := make(map[string]bool, len(req.QualifiedServiceIDs))
	for _, serviceID := range req.QualifiedServiceIDs {
		if qualified[serviceID] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate service %s", serviceID))
		}
		qualified[serviceID] = true
		if s.services != nil {
			if _, err := s.services.FindByID(ctx, serviceID); err != nil {
				if err == sql.ErrNoRows {
					return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("service %s not found", serviceID))
				}
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load service")
			}
		}
	}
	for _, serviceID := range req.PreferredServiceIDs {
		if !qualified[serviceID] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("preferred service %s is not among the qualified ones", serviceID))
		}
	}

	if err := s.repo.ReplaceServices(ctx, id, req.QualifiedServiceIDs, req.PreferredServiceIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update doctor services")
	}
	return s.Get(ctx, id)
}
