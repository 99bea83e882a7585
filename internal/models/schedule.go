package models

import "time"

// Schedule is one committed doctor-to-shift assignment.
type Schedule struct {
	ID        string    `db:"id" json:"id"`
	DoctorID  string    `db:"doctor_id" json:"doctor_id"`
	ServiceID string    `db:"service_id" json:"service_id"`
	Date      time.Time `db:"date" json:"date"`
	TimeSlot  TimeSlot  `db:"time_slot" json:"time_slot"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ScheduleFilter describes query params for listing schedules.
type ScheduleFilter struct {
	Year      int
	Month     int
	DoctorID  string
	ServiceID string
	TimeSlot  TimeSlot
}
