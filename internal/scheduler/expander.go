package scheduler

import (
	"sort"
	"time"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

// DefaultDepartmentOrder is the fixed display priority used when ranking
// services within one day: ward cover first, then delivery room, then the
// overnight on-call, then theatre. Configurable because service names are
// department data, not code.
var DefaultDepartmentOrder = []string{
	"Ward",
	"Delivery Room",
	"On Call",
	"Operating Theatre",
}

// ExpandMonth turns the service catalogue into the ordered sequence of shift
// slots that must be staffed in the given month. Slots are sorted by date,
// then department priority, then window, so scarce doctors are always offered
// to higher-priority services first.
func ExpandMonth(services []models.Service, year, month int, deptOrder []string) ([]ShiftSlot, error) {
	if month < 1 || month > 12 {
		return nil, inputErrorf("month %d out of range 1-12", month)
	}
	if year < 1 {
		return nil, inputErrorf("year %d out of range", year)
	}
	if len(deptOrder) == 0 {
		deptOrder = DefaultDepartmentOrder
	}

	rank := make(map[string]int, len(deptOrder))
	for i, name := range deptOrder {
		rank[name] = i
	}

	daysInMonth := daysIn(year, month)

	var slots []ShiftSlot
	for _, svc := range services {
		if !svc.TimeSlot.Valid() || svc.DoctorsRequired < 1 {
			return nil, inputErrorf("service %s has an invalid time slot or required count", svc.ID)
		}
		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			if !svc.RecursOn(date.Weekday()) {
				continue
			}
			slots = append(slots, ShiftSlot{
				ServiceID:   svc.ID,
				ServiceName: svc.Name,
				Date:        date,
				TimeSlot:    svc.TimeSlot,
				Required:    svc.DoctorsRequired,
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		ri, rj := deptRank(rank, slots[i].ServiceName), deptRank(rank, slots[j].ServiceName)
		if ri != rj {
			return ri < rj
		}
		ci, cj := windowRank(slots[i].TimeSlot), windowRank(slots[j].TimeSlot)
		if ci != cj {
			return ci < cj
		}
		return slots[i].ServiceID < slots[j].ServiceID
	})

	return slots, nil
}

func deptRank(rank map[string]int, name string) int {
	if r, ok := rank[name]; ok {
		return r
	}
	// Unlisted services queue after the known departments.
	return len(rank)
}

func windowRank(slot models.TimeSlot) int {
	switch slot {
	case models.SlotMorning:
		return 0
	case models.SlotAfternoon:
		return 1
	case models.SlotNight:
		return 2
	}
	return 3
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}
