package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ward-roster-api/internal/dto"
	"github.com/noah-isme/ward-roster-api/internal/models"
	"github.com/noah-isme/ward-roster-api/internal/scheduler"
	appErrors "github.com/noah-isme/ward-roster-api/pkg/errors"
	"github.com/noah-isme/ward-roster-api/pkg/jobs"
)

type rosterDoctorSource interface {
	ListAllWithServices(ctx context.Context) ([]models.Doctor, error)
}

type rosterServiceSource interface {
	ListAll(ctx context.Context) ([]models.Service, error)
}

type rosterUnavailabilitySource interface {
	ListForMonth(ctx context.Context, year, month int) ([]models.Unavailability, error)
}

type rosterScheduleStore interface {
	ListByMonth(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
	ReplaceMonth(ctx context.Context, year, month int, schedules []models.Schedule) error
}

type summaryInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// RosterConfig governs roster generation behaviour.
type RosterConfig struct {
	ProposalTTL       time.Duration
	DepartmentOrder   []string
	WorkerConcurrency int
	WorkerRetries     int
}

// RosterService orchestrates roster generation, review, and publication.
type RosterService struct {
	doctors        rosterDoctorSource
	services       rosterServiceSource
	unavailability rosterUnavailabilitySource
	schedules      rosterScheduleStore
	cache          summaryInvalidator
	metrics        *MetricsService
	validator      *validator.Validate
	logger         *zap.Logger
	cfg            RosterConfig

	store *proposalStore
	runs  *runStore
	queue *jobs.Queue
}

// NewRosterService wires roster dependencies and its background run queue.
func NewRosterService(
	doctors rosterDoctorSource,
	services rosterServiceSource,
	unavailability rosterUnavailabilitySource,
	schedules rosterScheduleStore,
	cache summaryInvalidator,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg RosterConfig,
) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	if len(cfg.DepartmentOrder) == 0 {
		cfg.DepartmentOrder = scheduler.DefaultDepartmentOrder
	}

	s := &RosterService{
		doctors:        doctors,
		services:       services,
		unavailability: unavailability,
		schedules:      schedules,
		cache:          cache,
		metrics:        metrics,
		validator:      validate,
		logger:         logger,
		cfg:            cfg,
		store:          newProposalStore(cfg.ProposalTTL),
		runs:           newRunStore(),
	}
	s.queue = jobs.NewQueue("roster-runs", s.handleRunJob, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// StartWorkers launches the background run queue.
func (s *RosterService) StartWorkers(ctx context.Context) {
	s.queue.Start(ctx)
}

// StopWorkers cancels the background run queue and waits for workers.
func (s *RosterService) StopWorkers() {
	s.queue.Stop()
}

// Generate builds a roster proposal and holds it for review.
func (s *RosterService) Generate(ctx context.Context, req dto.GenerateRosterRequest) (*dto.GenerateRosterResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster generation payload")
	}
	return s.generate(ctx, req.Year, req.Month, req.DepartmentOrder)
}

func (s *RosterService) generate(ctx context.Context, year, month int, order []string) (*dto.GenerateRosterResponse, error) {
	snap, doctorNames, err := s.loadSnapshot(ctx, year, month)
	if err != nil {
		return nil, err
	}

	if len(order) == 0 {
		order = s.cfg.DepartmentOrder
	}
	engine := scheduler.New(scheduler.Config{
		DepartmentOrder:    order,
		PreferenceFirst:    true,
		BalanceUndesirable: true,
	})

	start := time.Now()
	result, err := engine.Generate(year, month, snap)
	if err != nil {
		var inputErr *scheduler.InputError
		if errors.As(err, &inputErr) {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, inputErr.Error())
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "roster generation failed")
	}
	if s.metrics != nil {
		s.metrics.ObserveRosterGeneration(time.Since(start), len(result.Gaps))
	}

	resp := s.buildResponse(uuid.NewString(), result, doctorNames)
	s.store.Save(rosterProposal{
		ProposalID:  resp.ProposalID,
		Year:        year,
		Month:       month,
		Result:      result,
		Response:    resp,
		RequestedAt: time.Now().UTC(),
	})

	s.logger.Info("roster proposal generated",
		zap.String("proposal_id", resp.ProposalID),
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("assignments", len(resp.Assignments)),
		zap.Int("gaps", len(resp.Gaps)),
		zap.Int("overruns", len(resp.Overruns)),
	)
	return resp, nil
}

// Publish commits a held proposal as the month's roster, replacing any
// previously committed month in a single transaction.
func (s *RosterService) Publish(ctx context.Context, req dto.PublishRosterRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster publish payload")
	}
	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	if len(proposal.Result.Gaps) > 0 && !req.Force {
		return 0, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("proposal has %d coverage gaps; set force to publish anyway", len(proposal.Result.Gaps)))
	}

	schedules := make([]models.Schedule, 0, len(proposal.Result.Assignments))
	for _, a := range proposal.Result.Assignments {
		schedules = append(schedules, models.Schedule{
			DoctorID:  a.DoctorID,
			ServiceID: a.ServiceID,
			Date:      a.Date,
			TimeSlot:  a.TimeSlot,
		})
	}
	if err := s.schedules.ReplaceMonth(ctx, proposal.Year, proposal.Month, schedules); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to publish roster")
	}

	if s.cache != nil {
		pattern := fmt.Sprintf("roster:summary:%d-%02d*", proposal.Year, proposal.Month)
		if err := s.cache.Invalidate(ctx, pattern); err != nil {
			s.logger.Warn("summary cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}

	s.store.Delete(req.ProposalID)
	s.logger.Info("roster published",
		zap.String("proposal_id", req.ProposalID),
		zap.Int("year", proposal.Year),
		zap.Int("month", proposal.Month),
		zap.Int("assignments", len(schedules)),
	)
	return len(schedules), nil
}

// ListSchedules returns the committed assignments of a month.
func (s *RosterService) ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	if filter.Month < 1 || filter.Month > 12 || filter.Year < 2000 || filter.Year > 2100 {
		return nil, appErrors.Clone(appErrors.ErrInvalidPeriod, "")
	}
	schedules, err := s.schedules.ListByMonth(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return schedules, nil
}

// GetProposal returns a held proposal for review.
func (s *RosterService) GetProposal(id string) (*dto.GenerateRosterResponse, error) {
	proposal, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	return proposal.Response, nil
}

// StartRun queues an asynchronous generation run and returns its descriptor.
func (s *RosterService) StartRun(ctx context.Context, req dto.RosterRunRequest) (*dto.RosterRunView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster run payload")
	}

	view := dto.RosterRunView{
		RunID:       uuid.NewString(),
		Status:      dto.RunStatusQueued,
		Year:        req.Year,
		Month:       req.Month,
		SubmittedAt: time.Now().UTC(),
	}
	s.runs.Save(view)

	if err := s.queue.Enqueue(jobs.Job{ID: view.RunID, Type: "roster.generate", Payload: req}); err != nil {
		s.runs.Fail(view.RunID, "run queue unavailable")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue roster run")
	}
	return &view, nil
}

// GetRun returns the current state of an asynchronous run.
func (s *RosterService) GetRun(id string) (*dto.RosterRunView, error) {
	view, ok := s.runs.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "roster run not found")
	}
	return &view, nil
}

func (s *RosterService) handleRunJob(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(dto.RosterRunRequest)
	if !ok {
		s.runs.Fail(job.ID, "malformed run payload")
		return nil
	}
	s.runs.MarkRunning(job.ID)

	resp, err := s.generate(ctx, req.Year, req.Month, req.DepartmentOrder)
	if err != nil {
		// Input problems will not heal on retry; record and stop.
		s.runs.Fail(job.ID, appErrors.FromError(err).Message)
		return nil
	}
	s.runs.Complete(job.ID, resp)
	return nil
}

func (s *RosterService) loadSnapshot(ctx context.Context, year, month int) (scheduler.Snapshot, map[string]string, error) {
	doctors, err := s.doctors.ListAllWithServices(ctx)
	if err != nil {
		return scheduler.Snapshot{}, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load doctors")
	}
	if len(doctors) == 0 {
		return scheduler.Snapshot{}, nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no doctors registered")
	}
	services, err := s.services.ListAll(ctx)
	if err != nil {
		return scheduler.Snapshot{}, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load services")
	}
	if len(services) == 0 {
		return scheduler.Snapshot{}, nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no services defined")
	}
	unavailability, err := s.unavailability.ListForMonth(ctx, year, month)
	if err != nil {
		return scheduler.Snapshot{}, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load unavailability")
	}

	names := make(map[string]string, len(doctors))
	for _, doc := range doctors {
		names[doc.ID] = doc.FullName()
	}
	snap := scheduler.Snapshot{
		Doctors:        doctors,
		Services:       services,
		Unavailability: unavailability,
	}
	return snap, names, nil
}

func (s *RosterService) buildResponse(proposalID string, result *scheduler.Result, names map[string]string) *dto.GenerateRosterResponse {
	resp := &dto.GenerateRosterResponse{
		ProposalID:  proposalID,
		Year:        result.Year,
		Month:       result.Month,
		Assignments: make([]dto.RosterAssignment, 0, len(result.Assignments)),
		Gaps:        make([]dto.RosterGap, 0, len(result.Gaps)),
		Overruns:    make([]dto.RosterOverrun, 0, len(result.Overruns)),
		Stats:       dto.NewRosterStats(result.Stats),
	}
	for _, a := range result.Assignments {
		resp.Assignments = append(resp.Assignments, dto.RosterAssignment{
			DoctorID:   a.DoctorID,
			DoctorName: names[a.DoctorID],
			ServiceID:  a.ServiceID,
			Date:       a.Date,
			TimeSlot:   a.TimeSlot,
		})
	}
	for _, g := range result.Gaps {
		resp.Gaps = append(resp.Gaps, dto.RosterGap{
			ServiceID:     g.ServiceID,
			ServiceName:   g.ServiceName,
			Date:          g.Date,
			TimeSlot:      g.TimeSlot,
			DoctorsNeeded: g.DoctorsNeeded,
		})
	}
	for _, o := range result.Overruns {
		resp.Overruns = append(resp.Overruns, dto.RosterOverrun{
			DoctorID:       o.DoctorID,
			DoctorName:     names[o.DoctorID],
			BudgetHours:    o.BudgetHours,
			AllocatedHours: o.AllocatedHours,
		})
	}
	return resp
}

// --- Proposal cache ---

type rosterProposal struct {
	ProposalID  string
	Year        int
	Month       int
	Result      *scheduler.Result
	Response    *dto.GenerateRosterResponse
	RequestedAt time.Time
}

type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]rosterProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		items: make(map[string]rosterProposal),
	}
}

func (s *proposalStore) Save(proposal rosterProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ProposalID] = proposal
}

func (s *proposalStore) Get(id string) (rosterProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return rosterProposal{}, false
	}
	if time.Since(proposal.RequestedAt) > s.ttl {
		s.Delete(id)
		return rosterProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// --- Run registry ---

type runStore struct {
	mu    sync.RWMutex
	items map[string]dto.RosterRunView
}

func newRunStore() *runStore {
	return &runStore{items: make(map[string]dto.RosterRunView)}
}

func (s *runStore) Save(view dto.RosterRunView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[view.RunID] = view
}

func (s *runStore) Get(id string) (dto.RosterRunView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view, ok := s.items[id]
	return view, ok
}

func (s *runStore) MarkRunning(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if view, ok := s.items[id]; ok {
		view.Status = dto.RunStatusRunning
		s.items[id] = view
	}
}

func (s *runStore) Complete(id string, resp *dto.GenerateRosterResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if view, ok := s.items[id]; ok {
		now := time.Now().UTC()
		view.Status = dto.RunStatusCompleted
		view.Result = resp
		view.FinishedAt = &now
		s.items[id] = view
	}
}

func (s *runStore) Fail(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if view, ok := s.items[id]; ok {
		now := time.Now().UTC()
		view.Status = dto.RunStatusFailed
		view.Error = message
		view.FinishedAt = &now
		s.items[id] = view
	}
}
