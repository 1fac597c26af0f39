package timeentry

import "time"

// EntryType distinguishes live clock sessions from manually keyed entries.
type EntryType string

const (
	EntryTypeClock  EntryType = "clock"
	EntryTypeManual EntryType = "manual"
)

// Status enum for the clock session lifecycle.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusPaid       Status = "paid"
)

var StatusValues = []string{
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusApproved),
	string(StatusRejected),
	string(StatusPaid),
}

// TimeEntry is one clock-in/clock-out session for an employee.
// At most one entry per (employee, company) may be in_progress at a time;
// the storage layer enforces this with a partial unique index.
type TimeEntry struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	ShiftID     *string
	PayPeriodID *string
	EntryType   EntryType
	Status      Status

	ClockIn  time.Time
	ClockOut *time.Time

	TotalMinutes      int
	BreakMinutes      int
	RegularMinutes    int
	OvertimeMinutes   int
	DoubleTimeMinutes int

	ClockInIP         *string
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutIP        *string
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	Metadata          map[string]string

	ExportedToPayroll bool
	ExportedAt        *time.Time
	PayrollBatchID    *string

	ApprovedBy *string
	ApprovedAt *time.Time
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
}

// IsOpen reports whether the session is still running.
func (e *TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}

// IsLocked reports whether the entry has passed the payroll export point of no
// return. Locked entries must never be touched by recalculation paths.
func (e *TimeEntry) IsLocked() bool {
	return e.ExportedToPayroll || e.Status == StatusPaid
}
