package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ward-roster-api/internal/models"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
)

type doctorRepoStub struct {
	doctors           map[string]*models.Doctor
	created           *models.Doctor
	replacedQualified []string
	replacedPreferred []string
}

func (s *doctorRepoStub) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error) {
	out := make([]models.Doctor, 0, len(s.doctors))
	for _, doc := range s.doctors {
		out = append(out, *doc)
	}
	return out, len(out), nil
}

func (s *doctorRepoStub) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	doc, ok := s.doctors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *doc
	return &copied, nil
}

func (s *doctorRepoStub) Create(ctx context.Context, doctor *models.Doctor) error {
	doctor.ID = "doc-new"
	s.created = doctor
	return nil
}

func (s *doctorRepoStub) Update(ctx context.Context, doctor *models.Doctor) error {
	return nil
}

func (s *doctorRepoStub) Delete(ctx context.Context, id string) error {
	delete(s.doctors, id)
	return nil
}

func (s *doctorRepoStub) ReplaceServices(ctx context.Context, doctorID string, qualified, preferred []string) error {
	s.replacedQualified = qualified
	s.replacedPreferred = preferred
	return nil
}

type serviceCheckerStub struct {
	known map[string]bool
}

func (s serviceCheckerStub) FindByID(ctx context.Context, id string) (*models.Service, error) {
	if !s.known[id] {
		return nil, sql.ErrNoRows
	}
	return &models.Service{ID: id}, nil
}

func newDoctorServiceForTest() (*DoctorService, *doctorRepoStub) {
	repo := &doctorRepoStub{doctors: map[string]*models.Doctor{
		"doc-1": {ID: "doc-1", Name: "Anna", Surname: "Bianchi", WeeklyHours: 40},
	}}
	checker := serviceCheckerStub{known: map[string]bool{"svc-ward": true, "svc-night": true}}
	return NewDoctorService(repo, checker, nil, nil), repo
}

func TestDoctorServiceCreateRejectsInvalidHours(t *testing.T) {
	svc, repo := newDoctorServiceForTest()

	_, err := svc.Create(context.Background(), CreateDoctorRequest{Name: "Marco", Surname: "Rossi", WeeklyHours: 0})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Nil(t, repo.created)
}

func TestDoctorServiceGetNotFound(t *testing.T) {
	svc, _ := newDoctorServiceForTest()

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDoctorServiceSetServices(t *testing.T) {
	svc, repo := newDoctorServiceForTest()

	req := SetDoctorServicesRequest{
		QualifiedServiceIDs: []string{"svc-ward", "svc-night"},
		PreferredServiceIDs: []string{"svc-night"},
	}
	_, err := svc.SetServices(context.Background(), "doc-1", req)
	require.NoError(t, err)
	require.Equal(t, []string{"svc-ward", "svc-night"}, repo.replacedQualified)
	require.Equal(t, []string{"svc-night"}, repo.replacedPreferred)
}

func TestDoctorServiceSetServicesRejectsUnqualifiedPreference(t *testing.T) {
	svc, _ := newDoctorServiceForTest()

	req := SetDoctorServicesRequest{
		QualifiedServiceIDs: []string{"svc-ward"},
		PreferredServiceIDs: []string{"svc-night"},
	}
	_, err := svc.SetServices(context.Background(), "doc-1", req)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDoctorServiceSetServicesRejectsDuplicates(t *testing.T) {
	svc, _ := newDoctorServiceForTest()

	req := SetDoctorServicesRequest{
		QualifiedServiceIDs: []string{"svc-ward", "svc-ward"},
	}
	_, err := svc.SetServices(context.Background(), "doc-1", req)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDoctorServiceSetServicesUnknownService(t *testing.T) {
	svc, _ := newDoctorServiceForTest()

	req := SetDoctorServicesRequest{
		QualifiedServiceIDs: []string{"svc-surgery"},
	}
	_, err := svc.SetServices(context.Background(), "doc-1", req)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
