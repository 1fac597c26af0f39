package payperiod

import "time"

// Frequency enum
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

var FrequencyValues = []string{
	string(FrequencyWeekly),
	string(FrequencyBiweekly),
	string(FrequencyMonthly),
}

// Status enum
type Status string

const (
	StatusOpen     Status = "open"
	StatusApproved Status = "approved"
	StatusClosed   Status = "closed"
)

// PayPeriod is a company-scoped date range over which hours are aggregated,
// approved and exported. For a given (company, frequency) generated periods
// never overlap and never duplicate an existing [StartDate, EndDate) range.
type PayPeriod struct {
	ID         string
	CompanyID  string
	StartDate  time.Time
	EndDate    time.Time
	Frequency  Frequency
	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
