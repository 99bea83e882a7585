package scheduler

import (
	"math"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

// budgetTracker keeps the running allocated-hours ledger per doctor. The
// monthly budget scales the weekly quota to the month length, rounded to the
// nearest whole hour. Exceeding it is a soft constraint: the engine prefers
// under-budget doctors but lets the budget yield to coverage.
type budgetTracker struct {
	budget    map[string]int
	allocated map[string]int
}

func newBudgetTracker(doctors []models.Doctor, daysInMonth int) *budgetTracker {
	t := &budgetTracker{
		budget:    make(map[string]int, len(doctors)),
		allocated: make(map[string]int, len(doctors)),
	}
	for _, doc := range doctors {
		t.budget[doc.ID] = monthlyBudget(doc.WeeklyHours, daysInMonth)
	}
	return t
}

func monthlyBudget(weeklyHours, daysInMonth int) int {
	return int(math.Round(float64(weeklyHours) * float64(daysInMonth) / 7.0))
}

func (t *budgetTracker) reserve(doctorID string, slot models.TimeSlot) {
	t.allocated[doctorID] += slot.Hours()
}

func (t *budgetTracker) release(doctorID string, slot models.TimeSlot) {
	t.allocated[doctorID] -= slot.Hours()
	if t.allocated[doctorID] < 0 {
		t.allocated[doctorID] = 0
	}
}

// fits reports whether committing the window keeps the doctor at or under budget.
func (t *budgetTracker) fits(doctorID string, slot models.TimeSlot) bool {
	return t.allocated[doctorID]+slot.Hours() <= t.budget[doctorID]
}

func (t *budgetTracker) hours(doctorID string) int {
	return t.allocated[doctorID]
}

// overruns lists doctors whose realized hours ended above budget, in the order
// of the given doctor list so output stays deterministic.
func (t *budgetTracker) overruns(doctors []models.Doctor) []BudgetOverrun {
	var result []BudgetOverrun
	for _, doc := range doctors {
		if t.allocated[doc.ID] > t.budget[doc.ID] {
			result = append(result, BudgetOverrun{
				DoctorID:       doc.ID,
				BudgetHours:    t.budget[doc.ID],
				AllocatedHours: t.allocated[doc.ID],
			})
		}
	}
	return result
}
