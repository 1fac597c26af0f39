package timeentry

import (
	"context"
)

// TimeClockService defines the clock-in/out state machine.
type TimeClockService interface {
	// ClockIn opens a new session for the employee. Fails with
	// ErrActiveEntryExists when the employee is already clocked in.
	ClockIn(ctx context.Context, req ClockInRequest) (EntryResponse, error)

	// ClockOut closes the employee's open session and runs the first-pass
	// minute split. Fails with ErrAlreadyClockedOut when there is nothing
	// open to close.
	ClockOut(ctx context.Context, req ClockOutRequest) (EntryResponse, error)

	// GetActiveEntry returns the open session, or nil when there is none.
	GetActiveEntry(ctx context.Context, employeeID, companyID string) (*TimeEntry, error)

	// HasActiveEntry reports whether the employee is currently clocked in.
	HasActiveEntry(ctx context.Context, employeeID, companyID string) (bool, error)

	// ValidateClockIn runs every pre-flight check and reports all failures
	// at once. It never returns a domain error for a failing rule.
	ValidateClockIn(ctx context.Context, req ClockInRequest) (ValidationResult, error)

	// AutoClockOutStaleEntries force-closes open sessions older than the
	// company policy's auto clock-out window, one outcome record per entry.
	AutoClockOutStaleEntries(ctx context.Context, companyID string) ([]AutoClockOutResult, error)

	// ClockStatus summarizes what the employee can do right now.
	ClockStatus(ctx context.Context, employeeID, companyID string) (ClockStatusResponse, error)

	// UpdateEntry fixes wrong clock data on an entry (manager action).
	UpdateEntry(ctx context.Context, companyID string, req UpdateEntryRequest) (EntryResponse, error)

	// ListEntries retrieves entries with filters and pagination.
	ListEntries(ctx context.Context, filter EntryFilter, companyID string) (ListEntriesResponse, error)
}
