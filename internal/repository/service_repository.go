package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

// ServiceRepository manages persistence for recurring department services.
type ServiceRepository struct {
	db *sqlx.DB
}

// NewServiceRepository constructs a ServiceRepository.
func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// List returns services matching the provided filters.
func (r *ServiceRepository) List(ctx context.Context, filter models.ServiceFilter) ([]models.Service, int, error) {
	base := "FROM services s"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(s.name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.TimeSlot != "" {
		conditions = append(conditions, fmt.Sprintf("s.time_slot = $%d", len(args)+1))
		args = append(args, filter.TimeSlot)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"name":       "s.name",
		"time_slot":  "s.time_slot",
		"created_at": "s.created_at",
	}
	if sortBy == "" {
		sortBy = "name"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "s.name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT s.id, s.name, s.time_slot, s.days, s.doctors_required, s.created_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var services []models.Service
	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}
	return services, total, nil
}

// ListAll returns every service ordered by ID for generation snapshots.
func (r *ServiceRepository) ListAll(ctx context.Context) ([]models.Service, error) {
	const query = `SELECT id, name, time_slot, days, doctors_required, created_at FROM services ORDER BY id ASC`
	var services []models.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("list all services: %w", err)
	}
	return services, nil
}

// FindByID fetches a service by ID.
func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*models.Service, error) {
	const query = `SELECT id, name, time_slot, days, doctors_required, created_at FROM services WHERE id = $1`
	var service models.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		return nil, err
	}
	return &service, nil
}

// Create inserts a new service record.
func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	if service.ID == "" {
		service.ID = uuid.NewString()
	}
	if service.CreatedAt.IsZero() {
		service.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO services (id, name, time_slot, days, doctors_required, created_at)
        VALUES (:id, :name, :time_slot, :days, :doctors_required, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, service); err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

// Update modifies an existing service.
func (r *ServiceRepository) Update(ctx context.Context, service *models.Service) error {
	const query = `UPDATE services SET name = :name, time_slot = :time_slot, days = :days, doctors_required = :doctors_required WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, service); err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// Delete removes a service and the qualification links pointing at it.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete service: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM doctor_services WHERE service_id = $1`, id); err != nil {
		return fmt.Errorf("delete service links: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete service: %w", err)
	}
	return nil
}
