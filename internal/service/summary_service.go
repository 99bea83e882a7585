package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ward-roster-api/internal/dto"
	"github.com/noah-isme/ward-roster-api/internal/models"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
)

type summaryScheduleReader interface {
	ListByMonth(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
}

type summaryDoctorReader interface {
	ListAllWithServices(ctx context.Context) ([]models.Doctor, error)
}

type summaryServiceReader interface {
	ListAll(ctx context.Context) ([]models.Service, error)
}

// SummaryService aggregates the committed roster per doctor for one month.
type SummaryService struct {
	schedules summaryScheduleReader
	doctors   summaryDoctorReader
	services  summaryServiceReader
	cache     *CacheService
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewSummaryService constructs the summary service.
func NewSummaryService(schedules summaryScheduleReader, doctors summaryDoctorReader, services summaryServiceReader, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *SummaryService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{
		schedules: schedules,
		doctors:   doctors,
		services:  services,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Get returns the per-doctor breakdown of the committed month. Results are
// cached until publication invalidates them.
func (s *SummaryService) Get(ctx context.Context, year, month int) (*dto.RosterSummary, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, appErrors.Clone(appErrors.ErrInvalidPeriod, "")
	}

	key := fmt.Sprintf("roster:summary:%d-%02d", year, month)
	var cached dto.RosterSummary
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	summary, err := s.compute(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.logger.Warn("summary cache set failed", zap.String("key", key), zap.Error(err))
	}
	return summary, nil
}

func (s *SummaryService) compute(ctx context.Context, year, month int) (*dto.RosterSummary, error) {
	schedules, err := s.schedules.ListByMonth(ctx, models.ScheduleFilter{Year: year, Month: month})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedules")
	}
	doctors, err := s.doctors.ListAllWithServices(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load doctors")
	}
	services, err := s.services.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load services")
	}

	doctorNames := make(map[string]string, len(doctors))
	for _, doc := range doctors {
		doctorNames[doc.ID] = doc.FullName()
	}
	serviceNames := make(map[string]string, len(services))
	for _, svc := range services {
		serviceNames[svc.ID] = svc.Name
	}

	perDoctor := make(map[string]*dto.DoctorSummary)
	for _, sched := range schedules {
		entry, ok := perDoctor[sched.DoctorID]
		if !ok {
			entry = &dto.DoctorSummary{
				DoctorID:   sched.DoctorID,
				DoctorName: doctorNames[sched.DoctorID],
				ByService:  make(map[string]int),
			}
			perDoctor[sched.DoctorID] = entry
		}
		entry.TotalShifts++
		entry.TotalHours += sched.TimeSlot.Hours()
		if sched.TimeSlot.IsNight() {
			entry.NightShifts++
		}
		wd := sched.Date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			entry.WeekendShifts++
		}
		name := serviceNames[sched.ServiceID]
		if name == "" {
			name = sched.ServiceID
		}
		entry.ByService[name]++
	}

	summary := &dto.RosterSummary{
		Year:        year,
		Month:       month,
		Doctors:     make([]dto.DoctorSummary, 0, len(perDoctor)),
		TotalShifts: len(schedules),
		GeneratedAt: time.Now().UTC(),
	}
	for _, entry := range perDoctor {
		summary.Doctors = append(summary.Doctors, *entry)
	}
	sort.Slice(summary.Doctors, func(i, j int) bool {
		return summary.Doctors[i].DoctorID < summary.Doctors[j].DoctorID
	})
	return summary, nil
}
