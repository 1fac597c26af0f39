package payperiod

import (
	"context"
	"time"
)

// PayPeriodRepository defines data access methods for pay periods.
// All methods include companyID parameter to prevent cross-company data access.
type PayPeriodRepository interface {
	// Create inserts a new period. A unique index on
	// (company_id, frequency, start_date, end_date) backs the idempotence of
	// generation; a duplicate insert returns ErrPeriodAlreadyExists.
	Create(ctx context.Context, period PayPeriod) (PayPeriod, error)

	// GetByID retrieves a period by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (PayPeriod, error)

	// Exists reports whether a period with the exact range is already present
	Exists(ctx context.Context, companyID string, frequency Frequency, startDate, endDate time.Time) (bool, error)

	// ListByCompany retrieves all periods of a company, newest first
	ListByCompany(ctx context.Context, companyID string) ([]PayPeriod, error)

	// Update rewrites the status and approval fields of a period
	Update(ctx context.Context, period PayPeriod) error
}
