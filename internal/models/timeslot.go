package models

// TimeSlot identifies one of the three daily shift windows used across the
// department: morning (8-14), afternoon (14-20) and night (20-8). The night
// window spans midnight and therefore lasts twelve hours.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "8-14"
	SlotAfternoon TimeSlot = "14-20"
	SlotNight     TimeSlot = "20-8"

	// SlotFullDay is a marker used only on unavailability records to block
	// every window of a calendar day. It never appears on services or shifts.
	SlotFullDay TimeSlot = "FULL_DAY"
)

// Valid reports whether the value is one of the three shift windows.
func (t TimeSlot) Valid() bool {
	switch t {
	case SlotMorning, SlotAfternoon, SlotNight:
		return true
	}
	return false
}

// Hours returns the duration of the shift window in whole hours.
func (t TimeSlot) Hours() int {
	switch t {
	case SlotMorning, SlotAfternoon:
		return 6
	case SlotNight:
		return 12
	}
	return 0
}

// IsNight reports whether the window spans midnight.
func (t TimeSlot) IsNight() bool {
	return t == SlotNight
}

// AllShiftSlots lists the shift windows in chronological order.
func AllShiftSlots() []TimeSlot {
	return []TimeSlot{SlotMorning, SlotAfternoon, SlotNight}
}
