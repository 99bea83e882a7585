package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ward-roster-api/internal/dto"
	"github.com/noah-isme/ward-roster-api/internal/models"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
)

type mockRosterData struct {
	doctors        []models.Doctor
	services       []models.Service
	unavailability []models.Unavailability
	replaced       []models.Schedule
	replacedYear   int
	replacedMonth  int
	replaceErr     error
	invalidated    []string
}

func (m *mockRosterData) ListAllWithServices(ctx context.Context) ([]models.Doctor, error) {
	return m.doctors, nil
}

func (m *mockRosterData) ListAll(ctx context.Context) ([]models.Service, error) {
	return m.services, nil
}

func (m *mockRosterData) ListForMonth(ctx context.Context, year, month int) ([]models.Unavailability, error) {
	return m.unavailability, nil
}

func (m *mockRosterData) ListByMonth(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	return nil, nil
}

func (m *mockRosterData) ReplaceMonth(ctx context.Context, year, month int, schedules []models.Schedule) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replacedYear = year
	m.replacedMonth = month
	m.replaced = schedules
	return nil
}

func (m *mockRosterData) Invalidate(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	return nil
}

func fixtureRosterData() *mockRosterData {
	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	return &mockRosterData{
		doctors: []models.Doctor{
			{ID: "doc-1", Name: "Anna", Surname: "Bianchi", WeeklyHours: 40, QualifiedServiceIDs: []string{"svc-ward"}},
		},
		services: []models.Service{
			{ID: "svc-ward", Name: "Ward", TimeSlot: models.SlotMorning, Days: weekdays, DoctorsRequired: 1},
		},
	}
}

func newRosterService(data *mockRosterData) *RosterService {
	return NewRosterService(data, data, data, data, data, nil, validator.New(), zap.NewNop(), RosterConfig{
		ProposalTTL: time.Minute,
	})
}

func TestRosterServiceGenerate(t *testing.T) {
	data := fixtureRosterData()
	svc := newRosterService(data)

	resp, err := svc.Generate(context.Background(), dto.GenerateRosterRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ProposalID)
	assert.Len(t, resp.Assignments, 22)
	assert.Empty(t, resp.Gaps)
	assert.Equal(t, "Anna Bianchi", resp.Assignments[0].DoctorName)

	held, err := svc.GetProposal(resp.ProposalID)
	require.NoError(t, err)
	assert.Equal(t, resp.ProposalID, held.ProposalID)
}

func TestRosterServiceGenerateRejectsBadInput(t *testing.T) {
	svc := newRosterService(fixtureRosterData())

	_, err := svc.Generate(context.Background(), dto.GenerateRosterRequest{Year: 2026, Month: 13})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRosterServiceGenerateNoQualifiedDoctors(t *testing.T) {
	data := fixtureRosterData()
	data.doctors[0].QualifiedServiceIDs = nil
	svc := newRosterService(data)

	_, err := svc.Generate(context.Background(), dto.GenerateRosterRequest{Year: 2026, Month: 3})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRosterServicePublish(t *testing.T) {
	data := fixtureRosterData()
	svc := newRosterService(data)

	resp, err := svc.Generate(context.Background(), dto.GenerateRosterRequest{Year: 2026, Month: 3})
	require.NoError(t, err)

	count, err := svc.Publish(context.Background(), dto.PublishRosterRequest{ProposalID: resp.ProposalID})
	require.NoError(t, err)
	assert.Equal(t, 22, count)
	assert.Equal(t, 2026, data.replacedYear)
	assert.Equal(t, 3, data.replacedMonth)
	assert.Len(t, data.replaced, 22)
	require.Len(t, data.invalidated, 1)
	assert.Equal(t, "roster:summary:2026-03*", data.invalidated[0])

	// The proposal is consumed by publication.
	_, err = svc.GetProposal(resp.ProposalID)
	require.Error(t, err)
}

func TestRosterServicePublishUnknownProposal(t *testing.T) {
	svc := newRosterService(fixtureRosterData())

	_, err := svc.Publish(context.Background(), dto.PublishRosterRequest{ProposalID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRosterServicePublishBlocksGapsWithoutForce(t *testing.T) {
	data := fixtureRosterData()
	// A second service nobody covers after the first books the doctor's morning.
	data.services = append(data.services, models.Service{
		ID: "svc-clinic", Name: "Clinic", TimeSlot: models.SlotMorning,
		Days: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, DoctorsRequired: 1,
	})
	data.doctors[0].QualifiedServiceIDs = []string{"svc-ward", "svc-clinic"}
	svc := newRosterService(data)

	resp, err := svc.Generate(context.Background(), dto.GenerateRosterRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Gaps)

	_, err = svc.Publish(context.Background(), dto.PublishRosterRequest{ProposalID: resp.ProposalID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	count, err := svc.Publish(context.Background(), dto.PublishRosterRequest{ProposalID: resp.ProposalID, Force: true})
	require.NoError(t, err)
	assert.Equal(t, len(resp.Assignments), count)
}

func TestRosterServiceProposalExpires(t *testing.T) {
	data := fixtureRosterData()
	svc := NewRosterService(data, data, data, data, data, nil, validator.New(), zap.NewNop(), RosterConfig{
		ProposalTTL: time.Nanosecond,
	})

	resp, err := svc.Generate(context.Background(), dto.GenerateRosterRequest{Year: 2026, Month: 3})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, err = svc.GetProposal(resp.ProposalID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRosterServiceAsyncRun(t *testing.T) {
	data := fixtureRosterData()
	svc := newRosterService(data)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.StartWorkers(ctx)
	defer svc.StopWorkers()

	run, err := svc.StartRun(context.Background(), dto.RosterRunRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, dto.RunStatusQueued, run.Status)

	require.Eventually(t, func() bool {
		view, err := svc.GetRun(run.RunID)
		if err != nil {
			return false
		}
		return view.Status == dto.RunStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	view, err := svc.GetRun(run.RunID)
	require.NoError(t, err)
	require.NotNil(t, view.Result)
	assert.Len(t, view.Result.Assignments, 22)
	require.NotNil(t, view.FinishedAt)

	// The run result is a held proposal and can be published.
	count, err := svc.Publish(context.Background(), dto.PublishRosterRequest{ProposalID: view.Result.ProposalID})
	require.NoError(t, err)
	assert.Equal(t, 22, count)
}

func TestRosterServiceRunNotFound(t *testing.T) {
	svc := newRosterService(fixtureRosterData())

	_, err := svc.GetRun("missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
