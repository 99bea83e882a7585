package models

import (
	"time"

	"github.com/lib/pq"
)

// Service is a recurring shift slot the department must staff: a named duty
// with a fixed time window, the weekdays it recurs on, and the number of
// distinct doctors required per occurrence.
type Service struct {
	ID              string         `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	TimeSlot        TimeSlot       `db:"time_slot" json:"time_slot"`
	Days            pq.StringArray `db:"days" json:"days"`
	DoctorsRequired int            `db:"doctors_required" json:"doctors_required"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// RecursOn reports whether the service occurs on the given weekday.
func (s Service) RecursOn(weekday time.Weekday) bool {
	name := weekday.String()
	for _, day := range s.Days {
		if day == name {
			return true
		}
	}
	return false
}

// ServiceFilter captures filtering options for listing services.
type ServiceFilter struct {
	Search    string
	TimeSlot  TimeSlot
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
