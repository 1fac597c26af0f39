package payperiod

import (
	"strings"
	"time"

	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAY PERIOD DTOs
// ========================================

type GeneratePayPeriodsRequest struct {
	CompanyID string `json:"-"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Frequency string `json:"frequency"`  // weekly, biweekly, monthly
}

func (r *GeneratePayPeriodsRequest) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var ok bool

	if start, ok = validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if end, ok = validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be before end_date",
		})
	}

	if !validator.IsInSlice(strings.ToLower(r.Frequency), FrequencyValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "frequency",
			Message: "frequency must be one of: weekly, biweekly, monthly",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExportRequest struct {
	PayPeriodID string  `json:"-"`
	BatchID     *string `json:"batch_id,omitempty"` // generated when absent
}

type PayPeriodResponse struct {
	ID         string  `json:"id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Frequency  string  `json:"frequency"`
	Status     string  `json:"status"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *string `json:"approved_at,omitempty"`
}

// ========================================
// AGGREGATION DTOs
// ========================================

// EmployeeHours is the per-employee aggregate over approved and paid entries
// in a pay period. Hour figures are minutes/60 rounded to one decimal place.
type EmployeeHours struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	EmployeeEmail string          `json:"employee_email"`
	EntryCount    int             `json:"entry_count"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

// SummaryStatistics is a single aggregate pass over every entry in the
// period regardless of status. "Pending" counts entries not yet approved
// or paid.
type SummaryStatistics struct {
	TotalEntries       int             `json:"total_entries"`
	ApprovedEntries    int             `json:"approved_entries"`
	PendingEntries     int             `json:"pending_entries"`
	ExportedEntries    int             `json:"exported_entries"`
	NotExportedEntries int             `json:"not_exported_entries"`
	TotalHours         decimal.Decimal `json:"total_hours"`
	RegularHours       decimal.Decimal `json:"regular_hours"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	UniqueEmployees    int             `json:"unique_employees"`
}
