package timeentry

import (
	"strings"

	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

// ClockContext carries the optional capture context of a clock action:
// source IP, GPS coordinates and free-form device metadata.
type ClockContext struct {
	IP        *string           `json:"ip,omitempty"`
	Latitude  *float64          `json:"latitude,omitempty"`
	Longitude *float64          `json:"longitude,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// HasCoordinates reports whether both GPS coordinates are present.
func (c *ClockContext) HasCoordinates() bool {
	return c != nil && c.Latitude != nil && c.Longitude != nil
}

func (c *ClockContext) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if c == nil {
		return errs
	}

	if c.Latitude != nil && (*c.Latitude < -90 || *c.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if c.Longitude != nil && (*c.Longitude < -180 || *c.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	return errs
}

type ClockInRequest struct {
	EmployeeID string        `json:"-"`
	CompanyID  string        `json:"-"`
	ShiftID    *string       `json:"shift_id,omitempty"`
	Notes      *string       `json:"notes,omitempty"`
	Context    *ClockContext `json:"context,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	errs = append(errs, r.Context.validate()...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	EmployeeID string        `json:"-"`
	CompanyID  string        `json:"-"`
	Notes      *string       `json:"notes,omitempty"`
	Context    *ClockContext `json:"context,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}

	errs = append(errs, r.Context.validate()...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidationResult is the outcome of a pre-flight clock-in check. It never
// carries an error: every failing rule is enumerated so a UI can show them all.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// AutoClockOutResult is the per-entry outcome of a stale-entry reconciliation
// run. A failed entry does not abort the batch; it is reported here instead.
type AutoClockOutResult struct {
	EntryID    string `json:"entry_id"`
	EmployeeID string `json:"employee_id"`
	Success    bool   `json:"success"`
	Reason     string `json:"reason,omitempty"`
}

// ========================================
// ENTRY DTOs
// ========================================

// UpdateEntryRequest lets managers fix wrong clock data on an entry.
// Exported (paid) entries reject any update.
type UpdateEntryRequest struct {
	ID           string  `json:"-"`
	ClockInTime  *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockInTime != nil && *r.ClockInTime != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.ClockOutTime != nil && *r.ClockOutTime != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}

	if r.Status != nil && !validator.IsInSlice(strings.ToLower(*r.Status), StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // clock_in, clock_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EntryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, StatusValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(StatusValues, ", "),
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"clock_in", "clock_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: clock_in, clock_out, status",
			})
		}
	} else {
		f.SortBy = "clock_in" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	ID                string            `json:"id"`
	EmployeeID        string            `json:"employee_id"`
	EmployeeName      *string           `json:"employee_name,omitempty"`
	EntryType         string            `json:"entry_type"`
	Status            string            `json:"status"`
	ClockInTime       string            `json:"clock_in_time"`
	ClockOutTime      *string           `json:"clock_out_time,omitempty"`
	TotalMinutes      int               `json:"total_minutes"`
	BreakMinutes      int               `json:"break_minutes"`
	RegularMinutes    int               `json:"regular_minutes"`
	OvertimeMinutes   int               `json:"overtime_minutes"`
	DoubleTimeMinutes int               `json:"double_time_minutes"`
	ClockInIP         *string           `json:"clock_in_ip,omitempty"`
	ClockOutIP        *string           `json:"clock_out_ip,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	ExportedToPayroll bool              `json:"exported_to_payroll"`
	PayrollBatchID    *string           `json:"payroll_batch_id,omitempty"`
	Notes             *string           `json:"notes,omitempty"`
}

type ListEntriesResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Entries    []EntryResponse `json:"entries"`
}

// ClockStatusResponse tells a client whether it can clock in or out right now.
type ClockStatusResponse struct {
	HasActiveEntry bool           `json:"has_active_entry"`
	ActiveEntry    *EntryResponse `json:"active_entry,omitempty"`
	CanClockIn     bool           `json:"can_clock_in"`
	CanClockOut    bool           `json:"can_clock_out"`
}
