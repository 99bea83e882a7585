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

// ScheduleRepository manages committed roster assignments.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByMonth returns committed assignments for a month, optionally
// narrowed to one doctor, service, or shift window.
func (r *ScheduleRepository) ListByMonth(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	from, to := monthRange(filter.Year, filter.Month)
	args := []interface{}{from, to}
	conditions := []string{"date >= $1 AND date < $2"}

	if filter.DoctorID != "" {
		conditions = append(conditions, fmt.Sprintf("doctor_id = $%d", len(args)+1))
		args = append(args, filter.DoctorID)
	}
	if filter.ServiceID != "" {
		conditions = append(conditions, fmt.Sprintf("service_id = $%d", len(args)+1))
		args = append(args, filter.ServiceID)
	}
	if filter.TimeSlot != "" {
		conditions = append(conditions, fmt.Sprintf("time_slot = $%d", len(args)+1))
		args = append(args, filter.TimeSlot)
	}

	query := fmt.Sprintf(`SELECT id, doctor_id, service_id, date, time_slot, created_at
        FROM schedules WHERE %s ORDER BY date ASC, time_slot ASC, service_id ASC, doctor_id ASC`,
		strings.Join(conditions, " AND "))

	var schedules []models.Schedule
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// ReplaceMonth atomically swaps the committed roster for a month: the old
// assignments are removed and the new ones inserted in one transaction, so
// readers never observe a half-published month.
func (r *ScheduleRepository) ReplaceMonth(ctx context.Context, year, month int, schedules []models.Schedule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace month: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.replaceMonthTx(ctx, tx, year, month, schedules); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace month: %w", err)
	}
	return nil
}

// ReplaceMonthWithTx performs the swap on a caller-owned transaction.
func (r *ScheduleRepository) ReplaceMonthWithTx(ctx context.Context, tx *sqlx.Tx, year, month int, schedules []models.Schedule) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	return r.replaceMonthTx(ctx, tx, year, month, schedules)
}

func (r *ScheduleRepository) replaceMonthTx(ctx context.Context, tx *sqlx.Tx, year, month int, schedules []models.Schedule) error {
	from, to := monthRange(year, month)
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE date >= $1 AND date < $2`, from, to); err != nil {
		return fmt.Errorf("clear month schedules: %w", err)
	}

	now := time.Now().UTC()
	const insert = `INSERT INTO schedules (id, doctor_id, service_id, date, time_slot, created_at)
        VALUES (:id, :doctor_id, :service_id, :date, :time_slot, :created_at)`
	for i := range schedules {
		payload := schedules[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, tx, insert, &payload); err != nil {
			return fmt.Errorf("insert schedule: %w", err)
		}
		schedules[i] = payload
	}
	return nil
}

// DeleteMonth clears the committed roster for a month.
func (r *ScheduleRepository) DeleteMonth(ctx context.Context, year, month int) error {
	from, to := monthRange(year, month)
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE date >= $1 AND date < $2`, from, to); err != nil {
		return fmt.Errorf("delete month schedules: %w", err)
	}
	return nil
}
