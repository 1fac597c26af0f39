package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/payperiod"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/timeentry"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/database"
)

type TimeClockJobs struct {
	timeClockSvc timeentry.TimeClockService
	payrollSvc   payperiod.PayrollTimeService
	db           *database.DB
}

func NewTimeClockJobs(
	timeClockSvc timeentry.TimeClockService,
	payrollSvc payperiod.PayrollTimeService,
	db *database.DB,
) *TimeClockJobs {
	return &TimeClockJobs{
		timeClockSvc: timeClockSvc,
		payrollSvc:   payrollSvc,
		db:           db,
	}
}

func (j *TimeClockJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_clock_out_stale_entries", 1*time.Hour, j.AutoClockOutStaleEntries)
	scheduler.AddJob("extend_pay_periods", 1*time.Hour, j.ExtendPayPeriods)
}

// AutoClockOutStaleEntries force-closes forgotten open sessions per company.
func (j *TimeClockJobs) AutoClockOutStaleEntries(ctx context.Context) error {
	slog.Info("Cron: Starting auto clock-out job")

	companyIDs, err := j.companiesWithOpenEntries(ctx)
	if err != nil {
		return err
	}

	totalClosed := 0
	for _, companyID := range companyIDs {
		results, err := j.timeClockSvc.AutoClockOutStaleEntries(ctx, companyID)
		if err != nil {
			slog.Error("Cron: Auto clock-out failed for company", "company_id", companyID, "error", err)
			continue
		}
		for _, r := range results {
			if r.Success {
				totalClosed++
			} else {
				slog.Warn("Cron: Could not auto clock out entry",
					"entry_id", r.EntryID,
					"employee_id", r.EmployeeID,
					"reason", r.Reason)
			}
		}
	}

	slog.Info("Cron: Auto clock-out job finished", "closed", totalClosed)
	return nil
}

// ExtendPayPeriods keeps each company's pay period coverage ahead of the
// calendar: when the newest period ends within the next week, the following
// period of the same frequency is generated. Runs hourly but only acts at
// midnight UTC.
func (j *TimeClockJobs) ExtendPayPeriods(ctx context.Context) error {
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting pay period extension job")

	companyIDs, err := j.companiesWithPayPeriods(ctx)
	if err != nil {
		return err
	}

	generated := 0
	for _, companyID := range companyIDs {
		periods, err := j.payrollSvc.ListPayPeriods(ctx, companyID)
		if err != nil || len(periods) == 0 {
			continue
		}

		// ListPayPeriods returns newest first.
		latest := periods[0]
		if latest.EndDate.After(time.Now().UTC().AddDate(0, 0, 7)) {
			continue
		}

		next := nextBoundaryFor(latest.EndDate, latest.Frequency)
		created, err := j.payrollSvc.GeneratePayPeriods(ctx, payperiod.GeneratePayPeriodsRequest{
			CompanyID: companyID,
			StartDate: latest.EndDate.Format("2006-01-02"),
			EndDate:   next.Format("2006-01-02"),
			Frequency: string(latest.Frequency),
		})
		if err != nil {
			slog.Error("Cron: Failed to extend pay periods", "company_id", companyID, "error", err)
			continue
		}
		generated += len(created)
	}

	slog.Info("Cron: Pay period extension job finished", "generated", generated)
	return nil
}

func nextBoundaryFor(start time.Time, frequency payperiod.Frequency) time.Time {
	switch frequency {
	case payperiod.FrequencyWeekly:
		return start.AddDate(0, 0, 7)
	case payperiod.FrequencyBiweekly:
		return start.AddDate(0, 0, 14)
	default:
		return time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, start.Location())
	}
}

func (j *TimeClockJobs) companiesWithOpenEntries(ctx context.Context) ([]string, error) {
	rows, err := j.db.Pool.Query(ctx, `
		SELECT DISTINCT company_id FROM time_entries
		WHERE status = 'in_progress' AND clock_out IS NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get companies with open entries: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (j *TimeClockJobs) companiesWithPayPeriods(ctx context.Context) ([]string, error) {
	rows, err := j.db.Pool.Query(ctx, `
		SELECT DISTINCT company_id FROM pay_periods
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get companies with pay periods: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}
