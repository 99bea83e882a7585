package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ward-roster-api/internal/models"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
)

type monthDataStub struct {
	schedules []models.Schedule
	doctors   []models.Doctor
	services  []models.Service
	listCalls int
}

func (s *monthDataStub) ListByMonth(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	s.listCalls++
	return s.schedules, nil
}

func (s *monthDataStub) ListAllWithServices(ctx context.Context) ([]models.Doctor, error) {
	return s.doctors, nil
}

func (s *monthDataStub) ListAll(ctx context.Context) ([]models.Service, error) {
	return s.services, nil
}

type memCacheRepo struct {
	entries map[string][]byte
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{entries: map[string][]byte{}}
}

func (m *memCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.entries = map[string][]byte{}
	return nil
}

func fixtureMonthData() *monthDataStub {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	return &monthDataStub{
		schedules: []models.Schedule{
			{ID: "sch-1", DoctorID: "doc-1", ServiceID: "svc-ward", Date: day(2), TimeSlot: models.SlotMorning},
			{ID: "sch-2", DoctorID: "doc-1", ServiceID: "svc-night", Date: day(7), TimeSlot: models.SlotNight},
			{ID: "sch-3", DoctorID: "doc-2", ServiceID: "svc-ward", Date: day(2), TimeSlot: models.SlotAfternoon},
		},
		doctors: []models.Doctor{
			{ID: "doc-1", Name: "Anna", Surname: "Bianchi", WeeklyHours: 40},
			{ID: "doc-2", Name: "Luca", Surname: "Verdi", WeeklyHours: 38},
		},
		services: []models.Service{
			{ID: "svc-ward", Name: "Ward", TimeSlot: models.SlotMorning},
			{ID: "svc-night", Name: "On Call", TimeSlot: models.SlotNight},
		},
	}
}

func TestSummaryServiceGet(t *testing.T) {
	data := fixtureMonthData()
	svc := NewSummaryService(data, data, data, nil, time.Minute, nil)

	summary, err := svc.Get(context.Background(), 2026, 3)
	require.NoError(t, err)
	require.Equal(t, 2026, summary.Year)
	require.Equal(t, 3, summary.Month)
	require.Equal(t, 3, summary.TotalShifts)
	require.Len(t, summary.Doctors, 2)

	first := summary.Doctors[0]
	require.Equal(t, "doc-1", first.DoctorID)
	require.Equal(t, "Anna Bianchi", first.DoctorName)
	require.Equal(t, 2, first.TotalShifts)
	require.Equal(t, 18, first.TotalHours)
	require.Equal(t, 1, first.NightShifts)
	// 2026-03-07 is a Saturday
	require.Equal(t, 1, first.WeekendShifts)
	require.Equal(t, 1, first.ByService["Ward"])
	require.Equal(t, 1, first.ByService["On Call"])

	second := summary.Doctors[1]
	require.Equal(t, "doc-2", second.DoctorID)
	require.Equal(t, 6, second.TotalHours)
	require.Zero(t, second.NightShifts)
}

func TestSummaryServiceGetRejectsBadPeriod(t *testing.T) {
	data := fixtureMonthData()
	svc := NewSummaryService(data, data, data, nil, time.Minute, nil)

	_, err := svc.Get(context.Background(), 2026, 13)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidPeriod.Code, appErrors.FromError(err).Code)
}

func TestSummaryServiceGetUsesCache(t *testing.T) {
	data := fixtureMonthData()
	cacheSvc := NewCacheService(newMemCacheRepo(), nil, time.Minute, nil, true)
	svc := NewSummaryService(data, data, data, cacheSvc, time.Minute, nil)

	first, err := svc.Get(context.Background(), 2026, 3)
	require.NoError(t, err)
	require.Equal(t, 1, data.listCalls)

	second, err := svc.Get(context.Background(), 2026, 3)
	require.NoError(t, err)
	require.Equal(t, 1, data.listCalls)
	require.Equal(t, first.TotalShifts, second.TotalShifts)
}
