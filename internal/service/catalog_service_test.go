package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ward-roster-api/internal/models"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
)

type serviceRepoStub struct {
	services map[string]*models.Service
	created  *models.Service
}

func (s *serviceRepoStub) List(ctx context.Context, filter models.ServiceFilter) ([]models.Service, int, error) {
	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, *svc)
	}
	return out, len(out), nil
}

func (s *serviceRepoStub) FindByID(ctx context.Context, id string) (*models.Service, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *svc
	return &copied, nil
}

func (s *serviceRepoStub) Create(ctx context.Context, service *models.Service) error {
	service.ID = "svc-new"
	s.created = service
	return nil
}

func (s *serviceRepoStub) Update(ctx context.Context, service *models.Service) error {
	return nil
}

func (s *serviceRepoStub) Delete(ctx context.Context, id string) error {
	delete(s.services, id)
	return nil
}

func newCatalogServiceForTest() (*CatalogService, *serviceRepoStub) {
	repo := &serviceRepoStub{services: map[string]*models.Service{}}
	return NewCatalogService(repo, nil, nil), repo
}

func TestCatalogServiceCreateNormalizesDays(t *testing.T) {
	svc, repo := newCatalogServiceForTest()

	created, err := svc.Create(context.Background(), CreateServiceRequest{
		Name:            "Ward",
		TimeSlot:        "8-14",
		Days:            []string{"Monday", "Monday", "Friday"},
		DoctorsRequired: 1,
	})
	require.NoError(t, err)
	require.Equal(t, models.SlotMorning, created.TimeSlot)
	require.Len(t, created.Days, 2)
	require.Equal(t, "Monday", created.Days[0])
	require.Equal(t, "Friday", created.Days[1])
	require.NotNil(t, repo.created)
}

func TestCatalogServiceCreateRejectsFullDaySlot(t *testing.T) {
	svc, _ := newCatalogServiceForTest()

	_, err := svc.Create(context.Background(), CreateServiceRequest{
		Name:            "Ward",
		TimeSlot:        "FULL_DAY",
		Days:            []string{"Monday"},
		DoctorsRequired: 1,
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceCreateRejectsUnknownWindow(t *testing.T) {
	svc, _ := newCatalogServiceForTest()

	_, err := svc.Create(context.Background(), CreateServiceRequest{
		Name:            "Ward",
		TimeSlot:        "9-17",
		Days:            []string{"Monday"},
		DoctorsRequired: 1,
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceCreateRejectsUnknownWeekday(t *testing.T) {
	svc, _ := newCatalogServiceForTest()

	_, err := svc.Create(context.Background(), CreateServiceRequest{
		Name:            "Ward",
		TimeSlot:        "8-14",
		Days:            []string{"Funday"},
		DoctorsRequired: 1,
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
