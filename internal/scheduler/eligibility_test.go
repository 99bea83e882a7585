package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckEligibilityQualification(t *testing.T) {
	doc := models.Doctor{ID: "doc-1", WeeklyHours: 40, QualifiedServiceIDs: []string{"svc-a"}}
	slot := ShiftSlot{ServiceID: "svc-b", Date: date(2026, 3, 2), TimeSlot: models.SlotMorning, Required: 1}

	reason := checkEligibility(doc, slot, newRunState(), indexUnavailability(nil), newBudgetTracker([]models.Doctor{doc}, 31))
	assert.Equal(t, ReasonNotQualified, reason)
}

func TestCheckEligibilityUnavailability(t *testing.T) {
	doc := models.Doctor{ID: "doc-1", WeeklyHours: 40, QualifiedServiceIDs: []string{"svc-a"}}
	slot := ShiftSlot{ServiceID: "svc-a", Date: date(2026, 3, 2), TimeSlot: models.SlotMorning, Required: 1}

	blocked := indexUnavailability([]models.Unavailability{
		{DoctorID: "doc-1", Date: date(2026, 3, 2), TimeSlot: models.SlotMorning},
	})
	reason := checkEligibility(doc, slot, newRunState(), blocked, newBudgetTracker([]models.Doctor{doc}, 31))
	assert.Equal(t, ReasonUnavailable, reason)

	// A full-day marker blocks every window of that date.
	fullDay := indexUnavailability([]models.Unavailability{
		{DoctorID: "doc-1", Date: date(2026, 3, 2), TimeSlot: models.SlotFullDay},
	})
	for _, window := range models.AllShiftSlots() {
		slot.TimeSlot = window
		reason := checkEligibility(doc, slot, newRunState(), fullDay, newBudgetTracker([]models.Doctor{doc}, 31))
		assert.Equal(t, ReasonUnavailable, reason, "window %s", window)
	}

	// Another date stays open.
	slot = ShiftSlot{ServiceID: "svc-a", Date: date(2026, 3, 3), TimeSlot: models.SlotMorning, Required: 1}
	reason = checkEligibility(doc, slot, newRunState(), fullDay, newBudgetTracker([]models.Doctor{doc}, 31))
	assert.Equal(t, ReasonEligible, reason)
}

func TestCheckEligibilityDoubleBooking(t *testing.T) {
	doc := models.Doctor{ID: "doc-1", WeeklyHours: 80, QualifiedServiceIDs: []string{"svc-a"}}
	budget := newBudgetTracker([]models.Doctor{doc}, 31)
	state := newRunState()
	state.commit("doc-1", date(2026, 3, 2), models.SlotMorning)

	same := ShiftSlot{ServiceID: "svc-a", Date: date(2026, 3, 2), TimeSlot: models.SlotMorning, Required: 1}
	assert.Equal(t, ReasonDoubleBooked, checkEligibility(doc, same, state, indexUnavailability(nil), budget))

	// Afternoon of the same day does not overlap the morning.
	afternoon := ShiftSlot{ServiceID: "svc-a", Date: date(2026, 3, 2), TimeSlot: models.SlotAfternoon, Required: 1}
	assert.Equal(t, ReasonEligible, checkEligibility(doc, afternoon, state, indexUnavailability(nil), budget))
}

func TestNightSpansMidnight(t *testing.T) {
	doc := models.Doctor{ID: "doc-1", WeeklyHours: 80, QualifiedServiceIDs: []string{"svc-a"}}
	budget := newBudgetTracker([]models.Doctor{doc}, 31)
	state := newRunState()
	state.commit("doc-1", date(2026, 3, 2), models.SlotNight)

	// The night of the 2nd runs into the morning of the 3rd.
	nextMorning := ShiftSlot{ServiceID: "svc-a", Date: date(2026, 3, 3), TimeSlot: models.SlotMorning, Required: 1}
	assert.Equal(t, ReasonDoubleBooked, checkEligibility(doc, nextMorning, state, indexUnavailability(nil), budget))

	// The afternoon of the 3rd is clear.
	nextAfternoon := ShiftSlot{ServiceID: "svc-a", Date: date(2026, 3, 3), TimeSlot: models.SlotAfternoon, Required: 1}
	assert.Equal(t, ReasonEligible, checkEligibility(doc, nextAfternoon, state, indexUnavailability(nil), budget))

	// And the reverse direction: a committed morning blocks the previous night.
	state = newRunState()
	state.commit("doc-1", date(2026, 3, 3), models.SlotMorning)
	prevNight := ShiftSlot{ServiceID: "svc-a", Date: date(2026, 3, 2), TimeSlot: models.SlotNight, Required: 1}
	assert.Equal(t, ReasonDoubleBooked, checkEligibility(doc, prevNight, state, indexUnavailability(nil), budget))
}

func TestUnavailabilitySpansMidnight(t *testing.T) {
	doc := models.Doctor{ID: "doc-1", WeeklyHours: 80, QualifiedServiceIDs: []string{"svc-a"}}
	budget := newBudgetTracker([]models.Doctor{doc}, 31)
	night := ShiftSlot{ServiceID: "svc-a", Date: date(2026, 3, 10), TimeSlot: models.SlotNight, Required: 1}

	// A full-day absence on the 11th covers the tail of the night that
	// starts on the 10th.
	fullDay := indexUnavailability([]models.Unavailability{
		{DoctorID: "doc-1", Date: date(2026, 3, 11), TimeSlot: models.SlotFullDay},
	})
	assert.Equal(t, ReasonUnavailable, checkEligibility(doc, night, newRunState(), fullDay, budget))

	// So does a morning record on the 11th.
	morning := indexUnavailability([]models.Unavailability{
		{DoctorID: "doc-1", Date: date(2026, 3, 11), TimeSlot: models.SlotMorning},
	})
	assert.Equal(t, ReasonUnavailable, checkEligibility(doc, night, newRunState(), morning, budget))

	// An afternoon record on the 11th does not touch the night window.
	afternoon := indexUnavailability([]models.Unavailability{
		{DoctorID: "doc-1", Date: date(2026, 3, 11), TimeSlot: models.SlotAfternoon},
	})
	assert.Equal(t, ReasonEligible, checkEligibility(doc, night, newRunState(), afternoon, budget))

	// Reverse direction: a night record on the 9th reaches into the morning
	// of the 10th.
	prevNight := indexUnavailability([]models.Unavailability{
		{DoctorID: "doc-1", Date: date(2026, 3, 9), TimeSlot: models.SlotNight},
	})
	morningSlot := ShiftSlot{ServiceID: "svc-a", Date: date(2026, 3, 10), TimeSlot: models.SlotMorning, Required: 1}
	assert.Equal(t, ReasonUnavailable, checkEligibility(doc, morningSlot, newRunState(), prevNight, budget))
}

func TestCheckEligibilityBudget(t *testing.T) {
	doc := models.Doctor{ID: "doc-1", WeeklyHours: 2, QualifiedServiceIDs: []string{"svc-a"}}
	budget := newBudgetTracker([]models.Doctor{doc}, 28)
	budget.reserve("doc-1", models.SlotMorning)

	slot := ShiftSlot{ServiceID: "svc-a", Date: date(2026, 2, 10), TimeSlot: models.SlotMorning, Required: 1}
	assert.Equal(t, ReasonOverBudget, checkEligibility(doc, slot, newRunState(), indexUnavailability(nil), budget))
}

func TestRunStateReleaseRestores(t *testing.T) {
	state := newRunState()
	state.commit("doc-1", date(2026, 3, 7), models.SlotNight)
	assert.Equal(t, 1, state.undesirableCount("doc-1"))
	assert.True(t, state.hasOverlap("doc-1", date(2026, 3, 7), models.SlotNight))

	state.release("doc-1", date(2026, 3, 7), models.SlotNight)
	assert.Equal(t, 0, state.undesirableCount("doc-1"))
	assert.False(t, state.hasOverlap("doc-1", date(2026, 3, 7), models.SlotNight))
}
