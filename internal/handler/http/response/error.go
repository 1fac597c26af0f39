package response

import (
	"errors"
	"net/http"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/payperiod"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/shift"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/timeentry"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Time entry domain errors
	switch {
	case errors.Is(err, timeentry.ErrActiveEntryExists):
		Conflict(w, "You already have an active time entry")
	case errors.Is(err, timeentry.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out")
	case errors.Is(err, timeentry.ErrNoActiveEntry):
		NotFound(w, "No active time entry")
	case errors.Is(err, timeentry.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timeentry.ErrEntryExported):
		Conflict(w, "Time entry has been exported to payroll and can no longer be changed")

	// Pay period domain errors
	case errors.Is(err, payperiod.ErrPayPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, payperiod.ErrInvalidFrequency):
		BadRequest(w, "Invalid pay period frequency", nil)
	case errors.Is(err, payperiod.ErrInvalidDateRange):
		BadRequest(w, "Start date must be before end date", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "You do not have access to this resource")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
