package timeclock

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/policy"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/shift"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/timeentry"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwork-hq/timeclock-backend-go/internal/service/overtime"
)

type TimeClockServiceImpl struct {
	db *database.DB
	timeentry.TimeEntryRepository
	employee.EmployeeRepository
	policy.PolicyRepository
	shift.ShiftRepository
	calculator *overtime.Calculator
	now        func() time.Time
}

// ClockIn implements timeentry.TimeClockService.
func (s *TimeClockServiceImpl) ClockIn(ctx context.Context, req timeentry.ClockInRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	pol, err := s.PolicyRepository.GetByCompanyID(ctx, req.CompanyID)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to load company policy: %w", err)
	}

	active, err := s.TimeEntryRepository.GetActiveEntry(ctx, req.EmployeeID, req.CompanyID)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to check active entry: %w", err)
	}
	if active != nil {
		return timeentry.EntryResponse{}, timeentry.ErrActiveEntryExists
	}

	clockIn := s.calculator.RoundTime(s.now().UTC(), pol.RoundToMinutes)

	entry := timeentry.TimeEntry{
		EmployeeID: req.EmployeeID,
		CompanyID:  req.CompanyID,
		ShiftID:    req.ShiftID,
		EntryType:  timeentry.EntryTypeClock,
		Status:     timeentry.StatusInProgress,
		ClockIn:    clockIn,
		Notes:      req.Notes,
	}
	if req.Context != nil {
		entry.ClockInIP = req.Context.IP
		entry.ClockInLatitude = req.Context.Latitude
		entry.ClockInLongitude = req.Context.Longitude
		entry.Metadata = req.Context.Metadata
	}

	// A referenced shift must exist; its configured break seeds the entry
	// when the policy does not auto-deduct.
	if req.ShiftID != nil {
		sh, err := s.ShiftRepository.GetByID(ctx, *req.ShiftID, req.CompanyID)
		if err != nil {
			return timeentry.EntryResponse{}, err
		}
		if !pol.AutoDeductBreaks {
			entry.BreakMinutes = sh.BreakMinutes
		}
	}

	// The repository maps a unique violation on the open-session index to
	// ErrActiveEntryExists, so the loser of a concurrent clock-in race still
	// surfaces the right failure.
	created, err := s.TimeEntryRepository.Create(ctx, entry)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	slog.Info("Time clock: clocked in",
		"entry_id", created.ID,
		"employee_id", created.EmployeeID,
		"company_id", created.CompanyID,
		"clock_in", created.ClockIn)

	return mapEntryToResponse(created), nil
}

// ClockOut implements timeentry.TimeClockService.
func (s *TimeClockServiceImpl) ClockOut(ctx context.Context, req timeentry.ClockOutRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	pol, err := s.PolicyRepository.GetByCompanyID(ctx, req.CompanyID)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to load company policy: %w", err)
	}

	active, err := s.TimeEntryRepository.GetActiveEntry(ctx, req.EmployeeID, req.CompanyID)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to get active entry: %w", err)
	}
	if active == nil {
		return timeentry.EntryResponse{}, timeentry.ErrAlreadyClockedOut
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, req.CompanyID)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := s.now().UTC()
	entry, err := s.closeEntry(ctx, active, pol, emp.OvertimeExempt, now, req.Context, req.Notes)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	slog.Info("Time clock: clocked out",
		"entry_id", entry.ID,
		"employee_id", entry.EmployeeID,
		"company_id", entry.CompanyID,
		"clock_out", entry.ClockOut,
		"total_minutes", entry.TotalMinutes,
		"status", entry.Status)

	return mapEntryToResponse(*entry), nil
}

// closeEntry stamps the clock-out, runs the first-pass minute split and
// resolves the approval status, then persists through the race-guarded
// CloseEntry update. Shared by live clock-out and the stale-entry job.
func (s *TimeClockServiceImpl) closeEntry(ctx context.Context, active *timeentry.TimeEntry, pol policy.Policy, exempt bool, now time.Time, clockCtx *timeentry.ClockContext, notes *string) (*timeentry.TimeEntry, error) {
	if active.ClockOut != nil {
		return nil, timeentry.ErrAlreadyClockedOut
	}

	clockOut := s.calculator.RoundTime(now, pol.RoundToMinutes)
	active.ClockOut = &clockOut
	if clockCtx != nil {
		active.ClockOutIP = clockCtx.IP
		active.ClockOutLatitude = clockCtx.Latitude
		active.ClockOutLongitude = clockCtx.Longitude
	}
	if notes != nil {
		active.Notes = notes
	}

	split := s.calculator.CalculateEntryMinutes(active, pol, exempt)
	active.TotalMinutes = split.TotalMinutes
	active.BreakMinutes = split.BreakMinutes
	active.RegularMinutes = split.RegularMinutes
	active.OvertimeMinutes = split.OvertimeMinutes
	active.DoubleTimeMinutes = 0

	totalHours := float64(active.TotalMinutes) / 60.0
	if !pol.RequireApproval || totalHours <= pol.ApprovalThresholdHours {
		active.Status = timeentry.StatusApproved
		active.ApprovedAt = &now
	} else {
		active.Status = timeentry.StatusCompleted
	}

	if err := s.TimeEntryRepository.CloseEntry(ctx, *active); err != nil {
		return nil, err
	}

	return active, nil
}

// GetActiveEntry implements timeentry.TimeClockService.
func (s *TimeClockServiceImpl) GetActiveEntry(ctx context.Context, employeeID, companyID string) (*timeentry.TimeEntry, error) {
	return s.TimeEntryRepository.GetActiveEntry(ctx, employeeID, companyID)
}

// HasActiveEntry implements timeentry.TimeClockService.
func (s *TimeClockServiceImpl) HasActiveEntry(ctx context.Context, employeeID, companyID string) (bool, error) {
	active, err := s.TimeEntryRepository.GetActiveEntry(ctx, employeeID, companyID)
	if err != nil {
		return false, err
	}
	return active != nil, nil
}

// ValidateClockIn implements timeentry.TimeClockService. It runs every
// pre-flight rule and reports all failures together so a UI can display them
// at once; only infrastructure problems come back as an error.
func (s *TimeClockServiceImpl) ValidateClockIn(ctx context.Context, req timeentry.ClockInRequest) (timeentry.ValidationResult, error) {
	pol, err := s.PolicyRepository.GetByCompanyID(ctx, req.CompanyID)
	if err != nil {
		return timeentry.ValidationResult{}, fmt.Errorf("failed to load company policy: %w", err)
	}

	var failures []string

	active, err := s.TimeEntryRepository.GetActiveEntry(ctx, req.EmployeeID, req.CompanyID)
	if err != nil {
		return timeentry.ValidationResult{}, fmt.Errorf("failed to check active entry: %w", err)
	}
	if active != nil {
		failures = append(failures, "you already have an active time entry")
	}

	if pol.RequireGPS && !req.Context.HasCoordinates() {
		failures = append(failures, "GPS coordinates are required to clock in")
	}

	if len(pol.AllowedIPs) > 0 {
		ip := ""
		if req.Context != nil && req.Context.IP != nil {
			ip = *req.Context.IP
		}
		if !pol.AllowsIP(ip) {
			failures = append(failures, "your IP address is not allowed to clock in")
		}
	}

	return timeentry.ValidationResult{
		Valid:  len(failures) == 0,
		Errors: failures,
	}, nil
}

// AutoClockOutStaleEntries implements timeentry.TimeClockService. One bad
// entry never aborts the batch; it lands in its outcome record instead.
// Entries closed by an earlier run are absent from the stale set, so the job
// is safe to re-run.
func (s *TimeClockServiceImpl) AutoClockOutStaleEntries(ctx context.Context, companyID string) ([]timeentry.AutoClockOutResult, error) {
	pol, err := s.PolicyRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company policy: %w", err)
	}

	now := s.now().UTC()
	cutoff := now.Add(-time.Duration(pol.AutoClockOutHours) * time.Hour)

	stale, err := s.TimeEntryRepository.ListInProgressBefore(ctx, companyID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale entries: %w", err)
	}

	results := make([]timeentry.AutoClockOutResult, 0, len(stale))
	for i := range stale {
		entry := stale[i]

		exempt := false
		emp, err := s.EmployeeRepository.GetByID(ctx, entry.EmployeeID, companyID)
		if err == nil {
			exempt = emp.OvertimeExempt
		}

		closed, err := s.closeEntry(ctx, &entry, pol, exempt, now, nil, nil)
		if err != nil {
			results = append(results, timeentry.AutoClockOutResult{
				EntryID:    entry.ID,
				EmployeeID: entry.EmployeeID,
				Success:    false,
				Reason:     err.Error(),
			})
			continue
		}

		slog.Info("Time clock: auto clocked out stale entry",
			"entry_id", closed.ID,
			"employee_id", closed.EmployeeID,
			"company_id", companyID,
			"clock_in", closed.ClockIn,
			"clock_out", closed.ClockOut)

		results = append(results, timeentry.AutoClockOutResult{
			EntryID:    closed.ID,
			EmployeeID: closed.EmployeeID,
			Success:    true,
		})
	}

	return results, nil
}

// ClockStatus implements timeentry.TimeClockService.
func (s *TimeClockServiceImpl) ClockStatus(ctx context.Context, employeeID, companyID string) (timeentry.ClockStatusResponse, error) {
	active, err := s.TimeEntryRepository.GetActiveEntry(ctx, employeeID, companyID)
	if err != nil {
		return timeentry.ClockStatusResponse{}, fmt.Errorf("failed to get active entry: %w", err)
	}

	resp := timeentry.ClockStatusResponse{
		HasActiveEntry: active != nil,
		CanClockIn:     active == nil,
		CanClockOut:    active != nil,
	}
	if active != nil {
		mapped := mapEntryToResponse(*active)
		resp.ActiveEntry = &mapped
	}

	return resp, nil
}

// UpdateEntry implements timeentry.TimeClockService.
// This allows managers/owners to fix wrong clock times, breaks, etc.
func (s *TimeClockServiceImpl) UpdateEntry(ctx context.Context, companyID string, req timeentry.UpdateEntryRequest) (timeentry.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.EntryResponse{}, err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return timeentry.EntryResponse{}, err
	}

	// Exported entries are immutable; payroll export is the point of no return.
	if entry.IsLocked() {
		return timeentry.EntryResponse{}, timeentry.ErrEntryExported
	}

	if req.ClockInTime != nil && *req.ClockInTime != "" {
		t, _ := time.Parse(time.RFC3339, *req.ClockInTime)
		entry.ClockIn = t.UTC()
	}
	if req.ClockOutTime != nil && *req.ClockOutTime != "" {
		t, _ := time.Parse(time.RFC3339, *req.ClockOutTime)
		utc := t.UTC()
		entry.ClockOut = &utc
	}
	if req.BreakMinutes != nil {
		entry.BreakMinutes = *req.BreakMinutes
	}
	if req.Status != nil {
		entry.Status = timeentry.Status(*req.Status)
	}
	if req.Notes != nil {
		entry.Notes = req.Notes
	}

	// Recalculate the minute fields when both stamps are present.
	if entry.ClockOut != nil {
		total := int(entry.ClockOut.Sub(entry.ClockIn).Minutes()) - entry.BreakMinutes
		if total < 0 {
			total = 0
		}
		entry.TotalMinutes = total
		entry.RegularMinutes = total
		entry.OvertimeMinutes = 0
		entry.DoubleTimeMinutes = 0
	}

	if err := s.TimeEntryRepository.Update(ctx, entry); err != nil {
		return timeentry.EntryResponse{}, err
	}

	updated, err := s.TimeEntryRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return timeentry.EntryResponse{}, fmt.Errorf("failed to get updated entry: %w", err)
	}

	return mapEntryToResponse(updated), nil
}

// ListEntries implements timeentry.TimeClockService.
func (s *TimeClockServiceImpl) ListEntries(ctx context.Context, filter timeentry.EntryFilter, companyID string) (timeentry.ListEntriesResponse, error) {
	if err := filter.Validate(); err != nil {
		return timeentry.ListEntriesResponse{}, err
	}

	entries, total, err := s.TimeEntryRepository.List(ctx, filter, companyID)
	if err != nil {
		return timeentry.ListEntriesResponse{}, fmt.Errorf("failed to list entries: %w", err)
	}

	responses := make([]timeentry.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, mapEntryToResponse(e))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return timeentry.ListEntriesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Entries:    responses,
	}, nil
}

// mapEntryToResponse converts a TimeEntry entity to EntryResponse
func mapEntryToResponse(e timeentry.TimeEntry) timeentry.EntryResponse {
	var clockOut *string
	if e.ClockOut != nil {
		formatted := e.ClockOut.Format(time.RFC3339)
		clockOut = &formatted
	}

	return timeentry.EntryResponse{
		ID:                e.ID,
		EmployeeID:        e.EmployeeID,
		EmployeeName:      e.EmployeeName,
		EntryType:         string(e.EntryType),
		Status:            string(e.Status),
		ClockInTime:       e.ClockIn.Format(time.RFC3339),
		ClockOutTime:      clockOut,
		TotalMinutes:      e.TotalMinutes,
		BreakMinutes:      e.BreakMinutes,
		RegularMinutes:    e.RegularMinutes,
		OvertimeMinutes:   e.OvertimeMinutes,
		DoubleTimeMinutes: e.DoubleTimeMinutes,
		ClockInIP:         e.ClockInIP,
		ClockOutIP:        e.ClockOutIP,
		Metadata:          e.Metadata,
		ExportedToPayroll: e.ExportedToPayroll,
		PayrollBatchID:    e.PayrollBatchID,
		Notes:             e.Notes,
	}
}

func NewTimeClockService(
	db *database.DB,
	entryRepo timeentry.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	policyRepo policy.PolicyRepository,
	shiftRepo shift.ShiftRepository,
	calculator *overtime.Calculator,
) timeentry.TimeClockService {
	return &TimeClockServiceImpl{
		db:                  db,
		TimeEntryRepository: entryRepo,
		EmployeeRepository:  employeeRepo,
		PolicyRepository:    policyRepo,
		ShiftRepository:     shiftRepo,
		calculator:          calculator,
		now:                 time.Now,
	}
}
