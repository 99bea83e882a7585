package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

func TestScheduleRepositoryListByMonth(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "doctor_id", "service_id", "date", "time_slot", "created_at"}).
		AddRow("sch-1", "doc-1", "svc-ward", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "8-14", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, doctor_id, service_id, date, time_slot, created_at\n        FROM schedules WHERE date >= $1 AND date < $2 ORDER BY date ASC, time_slot ASC, service_id ASC, doctor_id ASC")).
		WithArgs(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(rows)

	schedules, err := repo.ListByMonth(context.Background(), models.ScheduleFilter{Year: 2026, Month: 3})
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReplaceMonth(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedules WHERE date >= $1 AND date < $2")).
		WithArgs(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(0, 31))
	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	schedules := []models.Schedule{
		{DoctorID: "doc-1", ServiceID: "svc-ward", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), TimeSlot: models.SlotMorning},
	}
	err := repo.ReplaceMonth(context.Background(), 2026, 3, schedules)
	require.NoError(t, err)
	assert.NotEmpty(t, schedules[0].ID, "IDs are assigned during insert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReplaceMonthRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedules WHERE date >= $1 AND date < $2")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ReplaceMonth(context.Background(), 2026, 3, nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
