package payperiod

import "errors"

// Pay period domain errors
var (
	ErrPayPeriodNotFound = errors.New("pay period not found")
	ErrInvalidFrequency  = errors.New("invalid pay period frequency")
	ErrInvalidDateRange  = errors.New("start date must be before end date")

	// ErrPeriodAlreadyExists is an internal signal: GeneratePayPeriods
	// swallows it to stay idempotent, it is never surfaced to callers.
	ErrPeriodAlreadyExists = errors.New("pay period already exists for this range")
)
