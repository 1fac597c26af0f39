package timeentry

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access methods for time entries.
// All methods include companyID parameter to prevent cross-company data access.
type TimeEntryRepository interface {
	// Create inserts a new entry. When the entry is in_progress and the
	// employee already has an open session, the partial unique index on
	// (employee_id) WHERE clock_out IS NULL rejects the insert and the
	// repository returns ErrActiveEntryExists. This is what makes the
	// check-then-act in the service race-safe.
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// GetByID retrieves an entry by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (TimeEntry, error)

	// GetActiveEntry returns the single in_progress entry for an employee,
	// or nil when the employee is not clocked in.
	GetActiveEntry(ctx context.Context, employeeID string, companyID string) (*TimeEntry, error)

	// CloseEntry writes the clock-out fields of an open entry. The update is
	// guarded by clock_out IS NULL; zero rows affected means another writer
	// (live clock-out or the stale-entry job) won, and ErrAlreadyClockedOut
	// is returned.
	CloseEntry(ctx context.Context, entry TimeEntry) error

	// Update rewrites mutable fields of an entry. Rows with status=paid are
	// excluded by the statement itself; updating one returns ErrEntryExported.
	Update(ctx context.Context, entry TimeEntry) error

	// List retrieves entries with filters and pagination
	List(ctx context.Context, filter EntryFilter, companyID string) ([]TimeEntry, int64, error)

	// ListInProgressBefore returns open entries whose clock-in is older than
	// the cutoff, for the auto clock-out job.
	ListInProgressBefore(ctx context.Context, companyID string, cutoff time.Time) ([]TimeEntry, error)

	// ListByDateRange returns entries whose clock-in falls within
	// [start, end), optionally restricted to an employee and a status set.
	ListByDateRange(ctx context.Context, companyID string, start, end time.Time, statuses []Status, employeeID *string) ([]TimeEntry, error)

	// ApproveInRange flips every completed entry in the range to approved,
	// recording the approver. Already approved or paid rows are untouched.
	// Returns the number of entries approved.
	ApproveInRange(ctx context.Context, companyID string, start, end time.Time, approvedBy string, approvedAt time.Time) (int64, error)

	// MarkExported flags every approved, not-yet-exported entry in the range
	// as paid with the given batch ID. Returns the number of entries flagged.
	// Entries exported by an earlier batch are never touched again.
	MarkExported(ctx context.Context, companyID string, start, end time.Time, batchID string, exportedAt time.Time) (int64, error)
}
