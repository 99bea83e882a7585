package models

import "time"

// Unavailability marks a doctor as unassignable for one shift window of a
// calendar day, or the whole day when TimeSlot is SlotFullDay.
type Unavailability struct {
	ID        string    `db:"id" json:"id"`
	DoctorID  string    `db:"doctor_id" json:"doctor_id"`
	Date      time.Time `db:"date" json:"date"`
	TimeSlot  TimeSlot  `db:"time_slot" json:"time_slot"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Covers reports whether the record blocks the given date and shift window.
func (u Unavailability) Covers(date time.Time, slot TimeSlot) bool {
	if !sameDate(u.Date, date) {
		return false
	}
	return u.TimeSlot == SlotFullDay || u.TimeSlot == slot
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// UnavailabilityFilter scopes listing to a doctor and/or month.
type UnavailabilityFilter struct {
	DoctorID string
	Year     int
	Month    int
	Page     int
	PageSize int
}
