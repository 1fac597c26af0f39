package payrolltime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/payperiod"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/policy"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/timeentry"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwork-hq/timeclock-backend-go/internal/service/overtime"
)

var sixty = decimal.NewFromInt(60)

type PayrollTimeServiceImpl struct {
	db *database.DB
	payperiod.PayPeriodRepository
	timeentry.TimeEntryRepository
	employee.EmployeeRepository
	policy.PolicyRepository
	calculator *overtime.Calculator
	now        func() time.Time
}

// GeneratePayPeriods implements payperiod.PayrollTimeService. The requested
// range is partitioned into consecutive periods; weekly and biweekly periods
// are fixed-length, monthly periods follow calendar month boundaries. The
// first and last period are clamped to the requested range.
func (s *PayrollTimeServiceImpl) GeneratePayPeriods(ctx context.Context, req payperiod.GeneratePayPeriodsRequest) ([]payperiod.PayPeriod, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	frequency := payperiod.Frequency(strings.ToLower(req.Frequency))

	var created []payperiod.PayPeriod
	for cur := start; cur.Before(end); {
		periodEnd := nextBoundary(cur, frequency)
		if periodEnd.After(end) {
			periodEnd = end
		}

		exists, err := s.PayPeriodRepository.Exists(ctx, req.CompanyID, frequency, cur, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to check pay period existence: %w", err)
		}
		if !exists {
			period, err := s.PayPeriodRepository.Create(ctx, payperiod.PayPeriod{
				CompanyID: req.CompanyID,
				StartDate: cur,
				EndDate:   periodEnd,
				Frequency: frequency,
				Status:    payperiod.StatusOpen,
			})
			if err != nil && !errors.Is(err, payperiod.ErrPeriodAlreadyExists) {
				return nil, err
			}
			// A concurrent generator may have inserted the same range between
			// the existence check and the insert; that duplicate is not an
			// error, the range is simply skipped.
			if err == nil {
				created = append(created, period)
			}
		}

		cur = periodEnd
	}

	slog.Info("Payroll: generated pay periods",
		"company_id", req.CompanyID,
		"frequency", frequency,
		"created", len(created))

	return created, nil
}

// nextBoundary returns the exclusive end of the period starting at cur.
func nextBoundary(cur time.Time, frequency payperiod.Frequency) time.Time {
	switch frequency {
	case payperiod.FrequencyWeekly:
		return cur.AddDate(0, 0, 7)
	case payperiod.FrequencyBiweekly:
		return cur.AddDate(0, 0, 14)
	default: // monthly
		return time.Date(cur.Year(), cur.Month()+1, 1, 0, 0, 0, 0, cur.Location())
	}
}

// CalculatePayPeriodHours implements payperiod.PayrollTimeService. Before
// aggregating, the weekly overtime pass is re-run over the period's closed
// entries so corrections made since clock-out are reflected; paid entries are
// immutable and keep their stored split.
func (s *PayrollTimeServiceImpl) CalculatePayPeriodHours(ctx context.Context, companyID, payPeriodID string, employeeID *string) ([]payperiod.EmployeeHours, error) {
	period, err := s.PayPeriodRepository.GetByID(ctx, payPeriodID, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.recalculatePeriod(ctx, companyID, period, employeeID); err != nil {
		return nil, err
	}

	statuses := []timeentry.Status{timeentry.StatusApproved, timeentry.StatusPaid}
	entries, err := s.TimeEntryRepository.ListByDateRange(ctx, companyID, period.StartDate, period.EndDate, statuses, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for pay period: %w", err)
	}

	byEmployee := make(map[string]*payperiod.EmployeeHours)
	var order []string
	totals := make(map[string]*[3]int) // total, regular, overtime minutes
	for i := range entries {
		e := &entries[i]
		agg, ok := byEmployee[e.EmployeeID]
		if !ok {
			agg = &payperiod.EmployeeHours{EmployeeID: e.EmployeeID}
			if e.EmployeeName != nil {
				agg.EmployeeName = *e.EmployeeName
			}
			if e.EmployeeEmail != nil {
				agg.EmployeeEmail = *e.EmployeeEmail
			}
			byEmployee[e.EmployeeID] = agg
			totals[e.EmployeeID] = &[3]int{}
			order = append(order, e.EmployeeID)
		}
		agg.EntryCount++
		totals[e.EmployeeID][0] += e.TotalMinutes
		totals[e.EmployeeID][1] += e.RegularMinutes
		// Double time counts toward overtime hours in the payroll view.
		totals[e.EmployeeID][2] += e.OvertimeMinutes + e.DoubleTimeMinutes
	}

	result := make([]payperiod.EmployeeHours, 0, len(order))
	for _, id := range order {
		agg := byEmployee[id]
		mins := totals[id]
		agg.TotalHours = minutesToHours(mins[0])
		agg.RegularHours = minutesToHours(mins[1])
		agg.OvertimeHours = minutesToHours(mins[2])
		result = append(result, *agg)
	}

	return result, nil
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Round(1)
}

// recalculatePeriod re-runs the weekly overtime attribution for every
// employee-week touching the period and persists entries whose split changed.
func (s *PayrollTimeServiceImpl) recalculatePeriod(ctx context.Context, companyID string, period payperiod.PayPeriod, employeeID *string) error {
	pol, err := s.PolicyRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to load company policy: %w", err)
	}

	// Widen the window to full weeks so entries outside the period still
	// count toward each week's thresholds.
	windowStart := startOfWeek(period.StartDate)
	windowEnd := startOfWeek(period.EndDate.Add(-time.Nanosecond)).AddDate(0, 0, 7)

	statuses := []timeentry.Status{timeentry.StatusCompleted, timeentry.StatusApproved}
	entries, err := s.TimeEntryRepository.ListByDateRange(ctx, companyID, windowStart, windowEnd, statuses, employeeID)
	if err != nil {
		return fmt.Errorf("failed to list entries for recalculation: %w", err)
	}

	exempt, err := s.exemptEmployees(ctx, companyID)
	if err != nil {
		return err
	}

	type weekKey struct {
		employeeID string
		weekStart  time.Time
	}
	weeks := make(map[weekKey][]*timeentry.TimeEntry)
	before := make(map[string][3]int)
	for i := range entries {
		e := &entries[i]
		key := weekKey{employeeID: e.EmployeeID, weekStart: startOfWeek(e.ClockIn)}
		weeks[key] = append(weeks[key], e)
		before[e.ID] = [3]int{e.RegularMinutes, e.OvertimeMinutes, e.DoubleTimeMinutes}
	}

	for key, weekEntries := range weeks {
		s.calculator.RecalculateWeekEntries(weekEntries, pol, exempt[key.employeeID])
		for _, e := range weekEntries {
			prev := before[e.ID]
			if prev[0] == e.RegularMinutes && prev[1] == e.OvertimeMinutes && prev[2] == e.DoubleTimeMinutes {
				continue
			}
			if err := s.TimeEntryRepository.Update(ctx, *e); err != nil {
				return fmt.Errorf("failed to persist recalculated entry: %w", err)
			}
		}
	}

	return nil
}

// startOfWeek returns midnight UTC of the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

func (s *PayrollTimeServiceImpl) exemptEmployees(ctx context.Context, companyID string) (map[string]bool, error) {
	employees, err := s.EmployeeRepository.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	exempt := make(map[string]bool, len(employees))
	for _, emp := range employees {
		exempt[emp.ID] = emp.OvertimeExempt
	}
	return exempt, nil
}

// ApprovePayPeriod implements payperiod.PayrollTimeService.
func (s *PayrollTimeServiceImpl) ApprovePayPeriod(ctx context.Context, companyID, payPeriodID, approvedBy string) (payperiod.PayPeriod, error) {
	period, err := s.PayPeriodRepository.GetByID(ctx, payPeriodID, companyID)
	if err != nil {
		return payperiod.PayPeriod{}, err
	}

	now := s.now().UTC()
	period.Status = payperiod.StatusApproved
	period.ApprovedBy = &approvedBy
	period.ApprovedAt = &now

	approved, err := s.TimeEntryRepository.ApproveInRange(ctx, companyID, period.StartDate, period.EndDate, approvedBy, now)
	if err != nil {
		return payperiod.PayPeriod{}, fmt.Errorf("failed to approve entries in period: %w", err)
	}

	if err := s.PayPeriodRepository.Update(ctx, period); err != nil {
		return payperiod.PayPeriod{}, err
	}

	slog.Info("Payroll: approved pay period",
		"company_id", companyID,
		"pay_period_id", payPeriodID,
		"approved_by", approvedBy,
		"entries_approved", approved)

	return period, nil
}

// MarkAsExported implements payperiod.PayrollTimeService. Entries already
// exported under an earlier batch are never re-flagged, so re-running an
// export only picks up entries approved since.
func (s *PayrollTimeServiceImpl) MarkAsExported(ctx context.Context, companyID string, req payperiod.ExportRequest) (int64, error) {
	period, err := s.PayPeriodRepository.GetByID(ctx, req.PayPeriodID, companyID)
	if err != nil {
		return 0, err
	}

	batchID := uuid.NewString()
	if req.BatchID != nil && *req.BatchID != "" {
		batchID = *req.BatchID
	}

	now := s.now().UTC()
	exported, err := s.TimeEntryRepository.MarkExported(ctx, companyID, period.StartDate, period.EndDate, batchID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to mark entries as exported: %w", err)
	}

	if period.Status == payperiod.StatusApproved {
		period.Status = payperiod.StatusClosed
		if err := s.PayPeriodRepository.Update(ctx, period); err != nil {
			return 0, err
		}
	}

	slog.Info("Payroll: marked pay period as exported",
		"company_id", companyID,
		"pay_period_id", req.PayPeriodID,
		"batch_id", batchID,
		"entries_exported", exported)

	return exported, nil
}

// GetSummaryStatistics implements payperiod.PayrollTimeService.
func (s *PayrollTimeServiceImpl) GetSummaryStatistics(ctx context.Context, companyID, payPeriodID string) (payperiod.SummaryStatistics, error) {
	period, err := s.PayPeriodRepository.GetByID(ctx, payPeriodID, companyID)
	if err != nil {
		return payperiod.SummaryStatistics{}, err
	}

	entries, err := s.TimeEntryRepository.ListByDateRange(ctx, companyID, period.StartDate, period.EndDate, nil, nil)
	if err != nil {
		return payperiod.SummaryStatistics{}, fmt.Errorf("failed to list entries for pay period: %w", err)
	}

	var stats payperiod.SummaryStatistics
	var totalMins, regularMins, overtimeMins int
	seen := make(map[string]struct{})
	for i := range entries {
		e := &entries[i]
		stats.TotalEntries++
		switch e.Status {
		case timeentry.StatusApproved, timeentry.StatusPaid:
			stats.ApprovedEntries++
		default:
			stats.PendingEntries++
		}
		if e.ExportedToPayroll {
			stats.ExportedEntries++
		} else {
			stats.NotExportedEntries++
		}
		totalMins += e.TotalMinutes
		regularMins += e.RegularMinutes
		overtimeMins += e.OvertimeMinutes + e.DoubleTimeMinutes
		seen[e.EmployeeID] = struct{}{}
	}

	stats.TotalHours = minutesToHours(totalMins)
	stats.RegularHours = minutesToHours(regularMins)
	stats.OvertimeHours = minutesToHours(overtimeMins)
	stats.UniqueEmployees = len(seen)

	return stats, nil
}

// ListPayPeriods implements payperiod.PayrollTimeService.
func (s *PayrollTimeServiceImpl) ListPayPeriods(ctx context.Context, companyID string) ([]payperiod.PayPeriod, error) {
	return s.PayPeriodRepository.ListByCompany(ctx, companyID)
}

func NewPayrollTimeService(
	db *database.DB,
	periodRepo payperiod.PayPeriodRepository,
	entryRepo timeentry.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	policyRepo policy.PolicyRepository,
	calculator *overtime.Calculator,
) payperiod.PayrollTimeService {
	return &PayrollTimeServiceImpl{
		db:                  db,
		PayPeriodRepository: periodRepo,
		TimeEntryRepository: entryRepo,
		EmployeeRepository:  employeeRepo,
		PolicyRepository:    policyRepo,
		calculator:          calculator,
		now:                 time.Now,
	}
}
