package timeentry

import "errors"

// Time entry domain errors
var (
	// Clock state machine errors
	ErrActiveEntryExists = errors.New("you already have an active time entry")
	ErrAlreadyClockedOut = errors.New("already clocked out")
	ErrNoActiveEntry     = errors.New("no active time entry found")

	// General errors
	ErrEntryNotFound = errors.New("time entry not found")
	ErrEntryExported = errors.New("time entry has been exported to payroll and is immutable")
)
