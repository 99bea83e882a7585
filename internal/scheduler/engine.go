package scheduler

import (
	"sort"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

// Config tunes the scoring policy. The defaults implement the department's
// agreed fairness rules; they are data, not hard fact, so callers may override.
type Config struct {
	DepartmentOrder    []string
	PreferenceFirst    bool
	BalanceUndesirable bool
}

// DefaultConfig returns the standard generation policy.
func DefaultConfig() Config {
	return Config{
		DepartmentOrder:    DefaultDepartmentOrder,
		PreferenceFirst:    true,
		BalanceUndesirable: true,
	}
}

// Engine produces a conflict-free monthly roster from an immutable snapshot.
// One Generate call is a single sequential computation: no I/O, no shared
// state, deterministic output for identical inputs. Runs for different months
// may execute concurrently as long as each gets its own call.
type Engine struct {
	cfg Config
}

// New builds an engine with the given policy. Start from DefaultConfig.
func New(cfg Config) *Engine {
	if len(cfg.DepartmentOrder) == 0 {
		cfg.DepartmentOrder = DefaultDepartmentOrder
	}
	return &Engine{cfg: cfg}
}

// Generate assigns doctors to every shift slot of the month, slot by slot in
// the fixed global order. The algorithm is greedy: per slot it ranks all
// eligible doctors and commits the top ones; a slot that cannot reach its
// required count is reported as a gap, never a run failure. Over-budget
// doctors are considered only once every under-budget candidate for the slot
// is exhausted, and any forced overrun is flagged per doctor.
func (e *Engine) Generate(year, month int, snap Snapshot) (*Result, error) {
	if err := validateSnapshot(snap); err != nil {
		return nil, err
	}

	slots, err := ExpandMonth(snap.Services, year, month, e.cfg.DepartmentOrder)
	if err != nil {
		return nil, err
	}

	doctors := make([]models.Doctor, len(snap.Doctors))
	copy(doctors, snap.Doctors)
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].ID < doctors[j].ID })

	state := newRunState()
	budget := newBudgetTracker(doctors, daysIn(year, month))
	unavail := indexUnavailability(snap.Unavailability)

	result := &Result{Year: year, Month: month}

	for _, slot := range slots {
		var eligible, overBudget []models.Doctor
		for _, doc := range doctors {
			switch checkEligibility(doc, slot, state, unavail, budget) {
			case ReasonEligible:
				eligible = append(eligible, doc)
			case ReasonOverBudget:
				overBudget = append(overBudget, doc)
			}
		}

		picks := rankCandidates(slot, eligible, state, budget, e.cfg)
		if len(picks) < slot.Required {
			// Coverage beats strict budget adherence: re-admit over-budget
			// doctors once nobody under budget is left for the slot.
			picks = append(picks, rankCandidates(slot, overBudget, state, budget, e.cfg)...)
		}
		if len(picks) > slot.Required {
			picks = picks[:slot.Required]
		}

		for _, pick := range picks {
			state.commit(pick.doctor.ID, slot.Date, slot.TimeSlot)
			budget.reserve(pick.doctor.ID, slot.TimeSlot)
			result.Assignments = append(result.Assignments, Assignment{
				DoctorID:  pick.doctor.ID,
				ServiceID: slot.ServiceID,
				Date:      slot.Date,
				TimeSlot:  slot.TimeSlot,
			})
		}

		outcome := SlotOutcome{Slot: slot, Status: SlotFilled, Assigned: len(picks)}
		if len(picks) < slot.Required {
			outcome.Status = SlotUnfillable
			result.Gaps = append(result.Gaps, Gap{
				ServiceID:     slot.ServiceID,
				ServiceName:   slot.ServiceName,
				Date:          slot.Date,
				TimeSlot:      slot.TimeSlot,
				DoctorsNeeded: slot.Required - len(picks),
			})
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.Overruns = budget.overruns(doctors)
	result.Stats = buildStats(result, doctors, budget)
	return result, nil
}

func validateSnapshot(snap Snapshot) error {
	for _, doc := range snap.Doctors {
		if doc.WeeklyHours <= 0 {
			return inputErrorf("doctor %s has a non-positive weekly hour budget", doc.ID)
		}
	}
	for _, svc := range snap.Services {
		if len(svc.Days) == 0 {
			continue
		}
		qualified := 0
		for _, doc := range snap.Doctors {
			if doc.IsQualifiedFor(svc.ID) {
				qualified++
			}
		}
		if qualified == 0 {
			return inputErrorf("service %s has no qualified doctors", svc.ID)
		}
	}
	return nil
}

func buildStats(result *Result, doctors []models.Doctor, budget *budgetTracker) Stats {
	stats := Stats{
		Slots:        len(result.Outcomes),
		Unfillable:   len(result.Gaps),
		BudgetBreaks: len(result.Overruns),
	}
	stats.Filled = stats.Slots - stats.Unfillable
	for _, doc := range doctors {
		hours := budget.hours(doc.ID)
		if hours > 0 {
			stats.DoctorsUsed++
			stats.TotalHours += hours
		}
	}
	return stats
}
