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

// UnavailabilityRepository manages doctor unavailability records.
type UnavailabilityRepository struct {
	db *sqlx.DB
}

// NewUnavailabilityRepository constructs an UnavailabilityRepository.
func NewUnavailabilityRepository(db *sqlx.DB) *UnavailabilityRepository {
	return &UnavailabilityRepository{db: db}
}

// List returns unavailability records matching the provided filters.
func (r *UnavailabilityRepository) List(ctx context.Context, filter models.UnavailabilityFilter) ([]models.Unavailability, int, error) {
	base := "FROM unavailability u"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.DoctorID != "" {
		conditions = append(conditions, fmt.Sprintf("u.doctor_id = $%d", len(args)+1))
		args = append(args, filter.DoctorID)
	}
	if filter.Year > 0 && filter.Month > 0 {
		from, to := monthRange(filter.Year, filter.Month)
		conditions = append(conditions, fmt.Sprintf("u.date >= $%d AND u.date < $%d", len(args)+1, len(args)+2))
		args = append(args, from, to)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT u.id, u.doctor_id, u.date, u.time_slot, u.reason, u.created_at
        %s ORDER BY u.date ASC, u.doctor_id ASC LIMIT %d OFFSET %d`, base, size, offset)

	var records []models.Unavailability
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list unavailability: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count unavailability: %w", err)
	}
	return records, total, nil
}

// ListForMonth returns every record touching the given month, as the
// generation snapshot consumes them.
func (r *UnavailabilityRepository) ListForMonth(ctx context.Context, year, month int) ([]models.Unavailability, error) {
	from, to := monthRange(year, month)
	const query = `SELECT id, doctor_id, date, time_slot, reason, created_at
        FROM unavailability WHERE date >= $1 AND date < $2 ORDER BY date ASC, doctor_id ASC`
	var records []models.Unavailability
	if err := r.db.SelectContext(ctx, &records, query, from, to); err != nil {
		return nil, fmt.Errorf("list unavailability for month: %w", err)
	}
	return records, nil
}

// Create inserts a new unavailability record.
func (r *UnavailabilityRepository) Create(ctx context.Context, record *models.Unavailability) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO unavailability (id, doctor_id, date, time_slot, reason, created_at)
        VALUES (:id, :doctor_id, :date, :time_slot, :reason, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create unavailability: %w", err)
	}
	return nil
}

// Delete removes an unavailability record.
func (r *UnavailabilityRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM unavailability WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete unavailability: %w", err)
	}
	return nil
}

func monthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
