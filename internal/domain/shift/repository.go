package shift

import "context"

// ShiftRepository provides read-only access to shift templates.
type ShiftRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Shift, error)
	ListActive(ctx context.Context, companyID string) ([]Shift, error)
}
