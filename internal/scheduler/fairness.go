package scheduler

import (
	"sort"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

// candidate pairs a doctor with the scoring inputs captured at ranking time,
// so the sort stays stable even as the ledgers mutate later in the run.
type candidate struct {
	doctor      models.Doctor
	preferred   bool
	hours       int
	undesirable int
}

// rankCandidates orders eligible doctors for a slot, best first. The score is
// a tuple compared lexicographically: preference match, allocated hours so
// far, night/weekend balance for undesirable slots, then doctor ID so that
// identical inputs always produce identical output.
func rankCandidates(slot ShiftSlot, docs []models.Doctor, state *runState, budget *budgetTracker, cfg Config) []candidate {
	undesirableSlot := isUndesirable(slot.Date, slot.TimeSlot)

	ranked := make([]candidate, 0, len(docs))
	for _, doc := range docs {
		ranked = append(ranked, candidate{
			doctor:      doc,
			preferred:   doc.Prefers(slot.ServiceID),
			hours:       budget.hours(doc.ID),
			undesirable: state.undesirableCount(doc.ID),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if cfg.PreferenceFirst && a.preferred != b.preferred {
			return a.preferred
		}
		if a.hours != b.hours {
			return a.hours < b.hours
		}
		if cfg.BalanceUndesirable && undesirableSlot && a.undesirable != b.undesirable {
			return a.undesirable < b.undesirable
		}
		return a.doctor.ID < b.doctor.ID
	})

	return ranked
}
