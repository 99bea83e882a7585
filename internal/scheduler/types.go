package scheduler

import (
	"fmt"
	"time"

	"github.com/noah-isme/ward-roster-api/internal/models"
)

// Snapshot is the immutable reference data one generation run reads. Callers
// load it before invoking the engine; the engine never touches storage.
type Snapshot struct {
	Doctors        []models.Doctor
	Services       []models.Service
	Unavailability []models.Unavailability
}

// ShiftSlot is one date+window occurrence of a service that must be staffed.
type ShiftSlot struct {
	ServiceID   string          `json:"service_id"`
	ServiceName string          `json:"service_name"`
	Date        time.Time       `json:"date"`
	TimeSlot    models.TimeSlot `json:"time_slot"`
	Required    int             `json:"required"`
}

// Assignment is a committed doctor-to-slot binding, the engine's output unit.
type Assignment struct {
	DoctorID  string          `json:"doctor_id"`
	ServiceID string          `json:"service_id"`
	Date      time.Time       `json:"date"`
	TimeSlot  models.TimeSlot `json:"time_slot"`
}

// SlotStatus tracks a slot through the assignment state machine.
type SlotStatus string

const (
	SlotPending         SlotStatus = "PENDING"
	SlotFilled          SlotStatus = "FILLED"
	SlotPartiallyFilled SlotStatus = "PARTIALLY_FILLED"
	SlotUnfillable      SlotStatus = "UNFILLABLE"
)

// SlotOutcome records the terminal state of one slot after the run.
type SlotOutcome struct {
	Slot     ShiftSlot  `json:"slot"`
	Status   SlotStatus `json:"status"`
	Assigned int        `json:"assigned"`
}

// Gap reports a slot that could not reach its required doctor count.
type Gap struct {
	ServiceID     string          `json:"service_id"`
	ServiceName   string          `json:"service_name"`
	Date          time.Time       `json:"date"`
	TimeSlot      models.TimeSlot `json:"time_slot"`
	DoctorsNeeded int             `json:"doctors_needed"`
}

// BudgetOverrun flags a doctor whose realized hours exceed the monthly budget
// because coverage forced an over-budget assignment. Informational, not an error.
type BudgetOverrun struct {
	DoctorID       string `json:"doctor_id"`
	BudgetHours    int    `json:"budget_hours"`
	AllocatedHours int    `json:"allocated_hours"`
}

// Stats summarises one generation run.
type Stats struct {
	Slots        int `json:"slots"`
	Filled       int `json:"filled"`
	Unfillable   int `json:"unfillable"`
	TotalHours   int `json:"total_hours"`
	DoctorsUsed  int `json:"doctors_used"`
	BudgetBreaks int `json:"budget_breaks"`
}

// Result is the complete outcome of a run: every assignment the engine could
// make plus a structured report of what it could not. A roster with gaps is
// still a usable roster, so gaps never fail the run.
type Result struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Assignments []Assignment    `json:"assignments"`
	Gaps        []Gap           `json:"gaps"`
	Outcomes    []SlotOutcome   `json:"outcomes"`
	Overruns    []BudgetOverrun `json:"overruns"`
	Stats       Stats           `json:"stats"`
}

// InputError marks invalid reference data or an invalid period. It is raised
// before any assignment is produced and is fatal to the call.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

func inputErrorf(format string, args ...interface{}) *InputError {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}
