package scheduler

import (
	"time"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

// RejectionReason explains why a doctor was filtered out for a slot.
type RejectionReason string

const (
	ReasonEligible     RejectionReason = ""
	ReasonNotQualified RejectionReason = "NOT_QUALIFIED"
	ReasonUnavailable  RejectionReason = "UNAVAILABLE"
	ReasonDoubleBooked RejectionReason = "DOUBLE_BOOKED"
	ReasonOverBudget   RejectionReason = "OVER_BUDGET"
)

// unavailabilityIndex answers "is this doctor blocked on this date+window" in
// constant time. A FULL_DAY record blocks every window of the date, and the
// night window is checked against the adjacent day because it runs past
// midnight.
type unavailabilityIndex map[string]map[string][]models.TimeSlot

func indexUnavailability(records []models.Unavailability) unavailabilityIndex {
	idx := make(unavailabilityIndex)
	for _, rec := range records {
		key := rec.Date.Format(dateKeyLayout)
		if idx[rec.DoctorID] == nil {
			idx[rec.DoctorID] = make(map[string][]models.TimeSlot)
		}
		idx[rec.DoctorID][key] = append(idx[rec.DoctorID][key], rec.TimeSlot)
	}
	return idx
}

func (idx unavailabilityIndex) blocks(doctorID string, date time.Time, slot models.TimeSlot) bool {
	byDate := idx[doctorID]
	for _, blocked := range byDate[date.Format(dateKeyLayout)] {
		if blocked == models.SlotFullDay || blocked == slot {
			return true
		}
	}
	// A night shift starting on this date occupies the early hours of the
	// next day, so next-day records intersect it. Same rule as
	// runState.hasOverlap, in both directions.
	if slot == models.SlotNight {
		next := date.AddDate(0, 0, 1).Format(dateKeyLayout)
		for _, blocked := range byDate[next] {
			if blocked == models.SlotFullDay || blocked == models.SlotMorning {
				return true
			}
		}
	}
	if slot == models.SlotMorning {
		prev := date.AddDate(0, 0, -1).Format(dateKeyLayout)
		for _, blocked := range byDate[prev] {
			if blocked == models.SlotNight {
				return true
			}
		}
	}
	return false
}

// checkEligibility applies the hard feasibility rules in order of cost:
// qualification, unavailability, double-booking, then the soft hour budget.
// Only reads state; committing is the engine's job. An OVER_BUDGET rejection
// is soft: the engine re-admits such candidates when nobody else is left.
func checkEligibility(
	doc models.Doctor,
	slot ShiftSlot,
	state *runState,
	unavail unavailabilityIndex,
	budget *budgetTracker,
) RejectionReason {
	if !doc.IsQualifiedFor(slot.ServiceID) {
		return ReasonNotQualified
	}
	if unavail.blocks(doc.ID, slot.Date, slot.TimeSlot) {
		return ReasonUnavailable
	}
	if state.hasOverlap(doc.ID, slot.Date, slot.TimeSlot) {
		return ReasonDoubleBooked
	}
	if !budget.fits(doc.ID, slot.TimeSlot) {
		return ReasonOverBudget
	}
	return ReasonEligible
}
