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

// DoctorRepository manages persistence for doctor records and their
// service qualifications.
type DoctorRepository struct {
	db *sqlx.DB
}

// NewDoctorRepository constructs a DoctorRepository.
func NewDoctorRepository(db *sqlx.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// List returns doctors matching the provided filters.
func (r *DoctorRepository) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error) {
	base := "FROM doctors d"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(d.name) LIKE $%d OR LOWER(d.surname) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"surname":      "d.surname",
		"weekly_hours": "d.weekly_hours",
		"created_at":   "d.created_at",
	}
	if sortBy == "" {
		sortBy = "surname"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "d.surname"
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

	query := fmt.Sprintf(`SELECT d.id, d.name, d.surname, d.weekly_hours, d.is_specialist, d.created_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var doctors []models.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list doctors: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count doctors: %w", err)
	}
	return doctors, total, nil
}

// FindByID fetches a doctor with its qualifications loaded.
func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	const query = `SELECT id, name, surname, weekly_hours, is_specialist, created_at FROM doctors WHERE id = $1`
	var doctor models.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, err
	}
	if err := r.attachServices(ctx, []*models.Doctor{&doctor}); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// ListAllWithServices loads every doctor with qualified and preferred
// service IDs attached, as the generation engine consumes them.
func (r *DoctorRepository) ListAllWithServices(ctx context.Context) ([]models.Doctor, error) {
	const query = `SELECT id, name, surname, weekly_hours, is_specialist, created_at FROM doctors ORDER BY id ASC`
	var doctors []models.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("list doctors with services: %w", err)
	}

	refs := make([]*models.Doctor, len(doctors))
	for i := range doctors {
		refs[i] = &doctors[i]
	}
	if err := r.attachServices(ctx, refs); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *DoctorRepository) attachServices(ctx context.Context, doctors []*models.Doctor) error {
	if len(doctors) == 0 {
		return nil
	}
	const query = `SELECT id, doctor_id, service_id, is_preferred FROM doctor_services ORDER BY service_id ASC`
	var links []models.DoctorService
	if err := r.db.SelectContext(ctx, &links, query); err != nil {
		return fmt.Errorf("load doctor services: %w", err)
	}

	byDoctor := make(map[string]*models.Doctor, len(doctors))
	for _, doc := range doctors {
		byDoctor[doc.ID] = doc
	}
	for _, link := range links {
		doc, ok := byDoctor[link.DoctorID]
		if !ok {
			continue
		}
		doc.QualifiedServiceIDs = append(doc.QualifiedServiceIDs, link.ServiceID)
		if link.IsPreferred {
			doc.PreferredServiceIDs = append(doc.PreferredServiceIDs, link.ServiceID)
		}
	}
	return nil
}

// Create inserts a new doctor record.
func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if doctor.ID == "" {
		doctor.ID = uuid.NewString()
	}
	if doctor.CreatedAt.IsZero() {
		doctor.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO doctors (id, name, surname, weekly_hours, is_specialist, created_at)
        VALUES (:id, :name, :surname, :weekly_hours, :is_specialist, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doctor); err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}
	return nil
}

// Update modifies an existing doctor.
func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	const query = `UPDATE doctors SET name = :name, surname = :surname, weekly_hours = :weekly_hours, is_specialist = :is_specialist WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, doctor); err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	return nil
}

// Delete removes a doctor and its qualification links.
func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete doctor: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM doctor_services WHERE doctor_id = $1`, id); err != nil {
		return fmt.Errorf("delete doctor services: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete doctor: %w", err)
	}
	return nil
}

// ReplaceServices rewrites the doctor_services links for one doctor.
// Preferred service IDs must be a subset of the qualified ones; the
// service layer validates that before calling here.
func (r *DoctorRepository) ReplaceServices(ctx context.Context, doctorID string, qualified, preferred []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace doctor services: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM doctor_services WHERE doctor_id = $1`, doctorID); err != nil {
		return fmt.Errorf("clear doctor services: %w", err)
	}

	preferredSet := make(map[string]bool, len(preferred))
	for _, id := range preferred {
		preferredSet[id] = true
	}
	const insert = `INSERT INTO doctor_services (id, doctor_id, service_id, is_preferred) VALUES ($1, $2, $3, $4)`
	for _, serviceID := range qualified {
		if _, err = tx.ExecContext(ctx, insert, uuid.NewString(), doctorID, serviceID, preferredSet[serviceID]); err != nil {
			return fmt.Errorf("insert doctor service: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace doctor services: %w", err)
	}
	return nil
}
