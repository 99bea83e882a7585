package models

import (
	"strings"
	"time"
)

// Doctor represents a physician on the department roster.
type Doctor struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Surname      string    `db:"surname" json:"surname"`
	WeeklyHours  int       `db:"weekly_hours" json:"weekly_hours"`
	IsSpecialist bool      `db:"is_specialist" json:"is_specialist"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	// Derived from the doctor_services join table, not columns on doctors.
	QualifiedServiceIDs []string `db:"-" json:"qualified_service_ids"`
	PreferredServiceIDs []string `db:"-" json:"preferred_service_ids"`
}

// FullName joins name and surname for display.
func (d Doctor) FullName() string {
	return strings.TrimSpace(d.Name + " " + d.Surname)
}

// IsQualifiedFor reports whether the doctor may cover the given service.
func (d Doctor) IsQualifiedFor(serviceID string) bool {
	for _, id := range d.QualifiedServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Prefers reports whether the doctor listed the service as preferred.
func (d Doctor) Prefers(serviceID string) bool {
	for _, id := range d.PreferredServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// DoctorService is a row of the doctor_services join table.
type DoctorService struct {
	ID          string `db:"id" json:"id"`
	DoctorID    string `db:"doctor_id" json:"doctor_id"`
	ServiceID   string `db:"service_id" json:"service_id"`
	IsPreferred bool   `db:"is_preferred" json:"is_preferred"`
}

// DoctorFilter captures filtering options for listing doctors.
type DoctorFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
