package employee

import "time"

// Employee is the read-only identity this core needs: who the person is and
// whether overtime classification applies to them. Everything else about
// employees lives outside this subsystem.
type Employee struct {
	ID             string
	CompanyID      string
	FullName       string
	Email          string
	OvertimeExempt bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
