package payperiod

import (
	"context"
)

// PayrollTimeService manages the pay-period lifecycle on top of the clock and
// overtime services: generation, aggregation, approval and export marking.
type PayrollTimeService interface {
	// GeneratePayPeriods partitions the requested range into consecutive
	// periods of the given frequency. Re-invoking with identical arguments
	// creates nothing new; already existing periods are skipped silently.
	GeneratePayPeriods(ctx context.Context, req GeneratePayPeriodsRequest) ([]PayPeriod, error)

	// CalculatePayPeriodHours aggregates approved and paid entries in the
	// period per employee. A non-nil employeeID restricts the result to one
	// employee.
	CalculatePayPeriodHours(ctx context.Context, companyID, payPeriodID string, employeeID *string) ([]EmployeeHours, error)

	// ApprovePayPeriod transitions the period to approved and cascades the
	// approval to every completed entry in its range.
	ApprovePayPeriod(ctx context.Context, companyID, payPeriodID, approvedBy string) (PayPeriod, error)

	// MarkAsExported flags every approved entry in the period as paid under
	// the given batch ID and returns the number of entries flagged.
	MarkAsExported(ctx context.Context, companyID string, req ExportRequest) (int64, error)

	// GetSummaryStatistics aggregates every entry in the period regardless
	// of status.
	GetSummaryStatistics(ctx context.Context, companyID, payPeriodID string) (SummaryStatistics, error)

	// ListPayPeriods returns all periods of the company, newest first.
	ListPayPeriods(ctx context.Context, companyID string) ([]PayPeriod, error)
}
