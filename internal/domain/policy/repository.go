package policy

import "context"

// PolicyRepository resolves the time policy of a company. Implementations
// return Default(companyID) when the company has no stored settings.
type PolicyRepository interface {
	GetByCompanyID(ctx context.Context, companyID string) (Policy, error)
}
