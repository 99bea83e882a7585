package scheduler

import (
	"time"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

const dateKeyLayout = "2006-01-02"

// runState is the ephemeral per-run ledger: which windows each doctor already
// covers per day and how many undesirable (night or weekend) shifts they have
// accumulated this month. Owned exclusively by one generation run.
type runState struct {
	assigned    map[string]map[string][]models.TimeSlot
	undesirable map[string]int
	history     map[string]int
}

func newRunState() *runState {
	return &runState{
		assigned:    make(map[string]map[string][]models.TimeSlot),
		undesirable: make(map[string]int),
		history:     make(map[string]int),
	}
}

func (s *runState) commit(doctorID string, date time.Time, slot models.TimeSlot) {
	key := date.Format(dateKeyLayout)
	if s.assigned[doctorID] == nil {
		s.assigned[doctorID] = make(map[string][]models.TimeSlot)
	}
	s.assigned[doctorID][key] = append(s.assigned[doctorID][key], slot)
	s.history[doctorID]++
	if isUndesirable(date, slot) {
		s.undesirable[doctorID]++
	}
}

func (s *runState) release(doctorID string, date time.Time, slot models.TimeSlot) {
	key := date.Format(dateKeyLayout)
	windows := s.assigned[doctorID][key]
	for i, w := range windows {
		if w == slot {
			s.assigned[doctorID][key] = append(windows[:i], windows[i+1:]...)
			break
		}
	}
	if s.history[doctorID] > 0 {
		s.history[doctorID]--
	}
	if isUndesirable(date, slot) && s.undesirable[doctorID] > 0 {
		s.undesirable[doctorID]--
	}
}

// hasOverlap reports whether the doctor already covers a window that overlaps
// the candidate one. The night window spans midnight, so a night on day D
// collides with the morning of D+1 in addition to anything on D itself.
func (s *runState) hasOverlap(doctorID string, date time.Time, slot models.TimeSlot) bool {
	for _, w := range s.assigned[doctorID][date.Format(dateKeyLayout)] {
		if w == slot {
			return true
		}
	}
	if slot == models.SlotMorning {
		prev := date.AddDate(0, 0, -1).Format(dateKeyLayout)
		for _, w := range s.assigned[doctorID][prev] {
			if w == models.SlotNight {
				return true
			}
		}
	}
	if slot == models.SlotNight {
		next := date.AddDate(0, 0, 1).Format(dateKeyLayout)
		for _, w := range s.assigned[doctorID][next] {
			if w == models.SlotMorning {
				return true
			}
		}
	}
	return false
}

func (s *runState) undesirableCount(doctorID string) int {
	return s.undesirable[doctorID]
}

func isUndesirable(date time.Time, slot models.TimeSlot) bool {
	if slot.IsNight() {
		return true
	}
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
