package shift

import "time"

// Shift is a reusable schedule template. It is read-only input to this core;
// nothing here mutates shifts beyond referencing them from time entries.
type Shift struct {
	ID           string
	CompanyID    string
	Name         string
	StartTime    time.Time
	EndTime      time.Time
	BreakMinutes int
	DaysOfWeek   []int // 1=Monday, ..., 7=Sunday
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeSchedule is the planned assignment of a shift to an employee on a
// date. Owned by the scheduling module; referenced here by ID only.
type EmployeeSchedule struct {
	ID         string
	EmployeeID string
	ShiftID    string
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
