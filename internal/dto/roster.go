package dto

import (
	"time"

	"github.com/noah-isme/ward-roster-api/internal/models"
	"github.com/noah-isme/ward-roster-api/internal/scheduler"
)

// GenerateRosterRequest asks for a roster proposal for one month.
type GenerateRosterRequest struct {
	Year            int      `json:"year" validate:"required,min=2000,max=2100"`
	Month           int      `json:"month" validate:"required,min=1,max=12"`
	DepartmentOrder []string `json:"departmentOrder" validate:"omitempty,min=1,dive,required"`
}

// RosterAssignment is one proposed or committed shift assignment.
type RosterAssignment struct {
	DoctorID   string          `json:"doctorId"`
	DoctorName string          `json:"doctorName"`
	ServiceID  string          `json:"serviceId"`
	Date       time.Time       `json:"date"`
	TimeSlot   models.TimeSlot `json:"timeSlot"`
}

// RosterGap reports a slot occurrence that could not reach its headcount.
type RosterGap struct {
	ServiceID     string          `json:"serviceId"`
	ServiceName   string          `json:"serviceName"`
	Date          time.Time       `json:"date"`
	TimeSlot      models.TimeSlot `json:"timeSlot"`
	DoctorsNeeded int             `json:"doctorsNeeded"`
}

// RosterOverrun reports a doctor pushed past the monthly hour budget.
type RosterOverrun struct {
	DoctorID       string `json:"doctorId"`
	DoctorName     string `json:"doctorName"`
	BudgetHours    int    `json:"budgetHours"`
	AllocatedHours int    `json:"allocatedHours"`
}

// RosterStats summarises one generation run.
type RosterStats struct {
	Slots        int `json:"slots"`
	Filled       int `json:"filled"`
	Unfillable   int `json:"unfillable"`
	TotalHours   int `json:"totalHours"`
	DoctorsUsed  int `json:"doctorsUsed"`
	BudgetBreaks int `json:"budgetBreaks"`
}

// GenerateRosterResponse returns a held proposal for review.
type GenerateRosterResponse struct {
	ProposalID  string             `json:"proposalId"`
	Year        int                `json:"year"`
	Month       int                `json:"month"`
	Assignments []RosterAssignment `json:"assignments"`
	Gaps        []RosterGap        `json:"gaps"`
	Overruns    []RosterOverrun    `json:"overruns"`
	Stats       RosterStats        `json:"stats"`
}

// PublishRosterRequest commits a held proposal as the month's roster.
type PublishRosterRequest struct {
	ProposalID string `json:"proposalId" validate:"required"`
	Force      bool   `json:"force"`
}

// RosterRunRequest starts an asynchronous generation run.
type RosterRunRequest struct {
	Year            int      `json:"year" validate:"required,min=2000,max=2100"`
	Month           int      `json:"month" validate:"required,min=1,max=12"`
	DepartmentOrder []string `json:"departmentOrder" validate:"omitempty,min=1,dive,required"`
}

// Run lifecycle states.
const (
	RunStatusQueued    = "QUEUED"
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// RosterRunView describes an asynchronous run and, once completed, its result.
type RosterRunView struct {
	RunID       string                  `json:"runId"`
	Status      string                  `json:"status"`
	Year        int                     `json:"year"`
	Month       int                     `json:"month"`
	Error       string                  `json:"error,omitempty"`
	Result      *GenerateRosterResponse `json:"result,omitempty"`
	SubmittedAt time.Time               `json:"submittedAt"`
	FinishedAt  *time.Time              `json:"finishedAt,omitempty"`
}

// DoctorSummary aggregates one doctor's committed month.
type DoctorSummary struct {
	DoctorID      string         `json:"doctorId"`
	DoctorName    string         `json:"doctorName"`
	TotalShifts   int            `json:"totalShifts"`
	TotalHours    int            `json:"totalHours"`
	NightShifts   int            `json:"nightShifts"`
	WeekendShifts int            `json:"weekendShifts"`
	ByService     map[string]int `json:"byService"`
}

// RosterSummary is the month-level committed roster breakdown.
type RosterSummary struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Doctors     []DoctorSummary `json:"doctors"`
	TotalShifts int             `json:"totalShifts"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// NewRosterStats converts engine stats into the API shape.
func NewRosterStats(stats scheduler.Stats) RosterStats {
	return RosterStats{
		Slots:        stats.Slots,
		Filled:       stats.Filled,
		Unfillable:   stats.Unfillable,
		TotalHours:   stats.TotalHours,
		DoctorsUsed:  stats.DoctorsUsed,
		BudgetBreaks: stats.BudgetBreaks,
	}
}
