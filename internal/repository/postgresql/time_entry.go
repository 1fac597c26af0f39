package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/timeentry"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type timeEntryRepository struct {
	db *database.DB
}

const timeEntryColumns = `
	t.id, t.employee_id, t.company_id, t.shift_id, t.pay_period_id,
	t.entry_type, t.status, t.clock_in, t.clock_out,
	t.total_minutes, t.break_minutes, t.regular_minutes, t.overtime_minutes, t.double_time_minutes,
	t.clock_in_ip, t.clock_in_latitude, t.clock_in_longitude,
	t.clock_out_ip, t.clock_out_latitude, t.clock_out_longitude,
	t.metadata, t.exported_to_payroll, t.exported_at, t.payroll_batch_id,
	t.approved_by, t.approved_at, t.notes,
	t.created_at, t.updated_at`

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.CompanyID, &e.ShiftID, &e.PayPeriodID,
		&e.EntryType, &e.Status, &e.ClockIn, &e.ClockOut,
		&e.TotalMinutes, &e.BreakMinutes, &e.RegularMinutes, &e.OvertimeMinutes, &e.DoubleTimeMinutes,
		&e.ClockInIP, &e.ClockInLatitude, &e.ClockInLongitude,
		&e.ClockOutIP, &e.ClockOutLatitude, &e.ClockOutLongitude,
		&e.Metadata, &e.ExportedToPayroll, &e.ExportedAt, &e.PayrollBatchID,
		&e.ApprovedBy, &e.ApprovedAt, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			employee_id, company_id, shift_id, pay_period_id, entry_type, status,
			clock_in, clock_out, total_minutes, break_minutes,
			regular_minutes, overtime_minutes, double_time_minutes,
			clock_in_ip, clock_in_latitude, clock_in_longitude, metadata, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID,
		entry.CompanyID,
		entry.ShiftID,
		entry.PayPeriodID,
		entry.EntryType,
		entry.Status,
		entry.ClockIn,
		entry.ClockOut,
		entry.TotalMinutes,
		entry.BreakMinutes,
		entry.RegularMinutes,
		entry.OvertimeMinutes,
		entry.DoubleTimeMinutes,
		entry.ClockInIP,
		entry.ClockInLatitude,
		entry.ClockInLongitude,
		entry.Metadata,
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		// Partial unique index uniq_time_entries_active on (employee_id)
		// WHERE clock_out IS NULL: the loser of a concurrent clock-in race
		// lands here.
		if isUniqueViolation(err) {
			return timeentry.TimeEntry{}, timeentry.ErrActiveEntryExists
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string, companyID string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `,
			e.full_name AS employee_name,
			e.email AS employee_email
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1 AND t.company_id = $2
	`

	var e timeentry.TimeEntry
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&e.ID, &e.EmployeeID, &e.CompanyID, &e.ShiftID, &e.PayPeriodID,
		&e.EntryType, &e.Status, &e.ClockIn, &e.ClockOut,
		&e.TotalMinutes, &e.BreakMinutes, &e.RegularMinutes, &e.OvertimeMinutes, &e.DoubleTimeMinutes,
		&e.ClockInIP, &e.ClockInLatitude, &e.ClockInLongitude,
		&e.ClockOutIP, &e.ClockOutLatitude, &e.ClockOutLongitude,
		&e.Metadata, &e.ExportedToPayroll, &e.ExportedAt, &e.PayrollBatchID,
		&e.ApprovedBy, &e.ApprovedAt, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
		&e.EmployeeName, &e.EmployeeEmail,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry by ID: %w", err)
	}

	return e, nil
}

// GetActiveEntry implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) GetActiveEntry(ctx context.Context, employeeID string, companyID string) (*timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries t
		WHERE t.employee_id = $1
		  AND t.company_id = $2
		  AND t.status = $3
		  AND t.clock_out IS NULL
		ORDER BY t.clock_in DESC
		LIMIT 1
	`

	e, err := scanTimeEntry(q.QueryRow(ctx, query, employeeID, companyID, timeentry.StatusInProgress))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not clocked in
		}
		return nil, fmt.Errorf("failed to get active entry: %w", err)
	}

	return &e, nil
}

// CloseEntry implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) CloseEntry(ctx context.Context, entry timeentry.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET clock_out = $1,
			status = $2,
			total_minutes = $3,
			break_minutes = $4,
			regular_minutes = $5,
			overtime_minutes = $6,
			double_time_minutes = $7,
			clock_out_ip = $8,
			clock_out_latitude = $9,
			clock_out_longitude = $10,
			approved_by = $11,
			approved_at = $12,
			notes = COALESCE($13, notes),
			updated_at = $14
		WHERE id = $15
		  AND company_id = $16
		  AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query,
		entry.ClockOut,
		entry.Status,
		entry.TotalMinutes,
		entry.BreakMinutes,
		entry.RegularMinutes,
		entry.OvertimeMinutes,
		entry.DoubleTimeMinutes,
		entry.ClockOutIP,
		entry.ClockOutLatitude,
		entry.ClockOutLongitude,
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.Notes,
		time.Now(),
		entry.ID,
		entry.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to close time entry: %w", err)
	}

	// Zero rows means another writer already set clock_out; last writer wins.
	if tag.RowsAffected() == 0 {
		return timeentry.ErrAlreadyClockedOut
	}

	return nil
}

// Update implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) Update(ctx context.Context, entry timeentry.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET clock_in = $1,
			clock_out = $2,
			status = $3,
			total_minutes = $4,
			break_minutes = $5,
			regular_minutes = $6,
			overtime_minutes = $7,
			double_time_minutes = $8,
			pay_period_id = $9,
			approved_by = $10,
			approved_at = $11,
			notes = $12,
			updated_at = $13
		WHERE id = $14
		  AND company_id = $15
		  AND status <> 'paid'
	`

	tag, err := q.Exec(ctx, query,
		entry.ClockIn,
		entry.ClockOut,
		entry.Status,
		entry.TotalMinutes,
		entry.BreakMinutes,
		entry.RegularMinutes,
		entry.OvertimeMinutes,
		entry.DoubleTimeMinutes,
		entry.PayPeriodID,
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.Notes,
		time.Now(),
		entry.ID,
		entry.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either the row is missing or it is already exported to payroll.
		existing, err := r.GetByID(ctx, entry.ID, entry.CompanyID)
		if err != nil {
			return timeentry.ErrEntryNotFound
		}
		if existing.IsLocked() {
			return timeentry.ErrEntryExported
		}
		return timeentry.ErrEntryNotFound
	}

	return nil
}

// List implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) List(ctx context.Context, filter timeentry.EntryFilter, companyID string) ([]timeentry.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "t.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND t.clock_in >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND t.clock_in < ($%d::date + 1)", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM time_entries t WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	// Build ORDER BY
	orderByField := "t.clock_in"
	switch filter.SortBy {
	case "clock_out":
		orderByField = "t.clock_out"
	case "status":
		orderByField = "t.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+timeEntryColumns+`,
			e.full_name AS employee_name,
			e.email AS employee_email
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		var e timeentry.TimeEntry
		err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.CompanyID, &e.ShiftID, &e.PayPeriodID,
			&e.EntryType, &e.Status, &e.ClockIn, &e.ClockOut,
			&e.TotalMinutes, &e.BreakMinutes, &e.RegularMinutes, &e.OvertimeMinutes, &e.DoubleTimeMinutes,
			&e.ClockInIP, &e.ClockInLatitude, &e.ClockInLongitude,
			&e.ClockOutIP, &e.ClockOutLatitude, &e.ClockOutLongitude,
			&e.Metadata, &e.ExportedToPayroll, &e.ExportedAt, &e.PayrollBatchID,
			&e.ApprovedBy, &e.ApprovedAt, &e.Notes,
			&e.CreatedAt, &e.UpdatedAt,
			&e.EmployeeName, &e.EmployeeEmail,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, total, nil
}

// ListInProgressBefore implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) ListInProgressBefore(ctx context.Context, companyID string, cutoff time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries t
		WHERE t.company_id = $1
		  AND t.status = $2
		  AND t.clock_out IS NULL
		  AND t.clock_in < $3
		ORDER BY t.clock_in ASC
	`

	rows, err := q.Query(ctx, query, companyID, timeentry.StatusInProgress, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListByDateRange implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) ListByDateRange(ctx context.Context, companyID string, start, end time.Time, statuses []timeentry.Status, employeeID *string) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "t.company_id = $1 AND t.clock_in >= $2 AND t.clock_in < $3"
	args := []interface{}{companyID, start, end}
	argIdx := 4

	if len(statuses) > 0 {
		statusStrs := make([]string, 0, len(statuses))
		for _, s := range statuses {
			statusStrs = append(statusStrs, string(s))
		}
		baseWhere += fmt.Sprintf(" AND t.status = ANY($%d)", argIdx)
		args = append(args, statusStrs)
		argIdx++
	}

	if employeeID != nil && *employeeID != "" {
		baseWhere += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *employeeID)
	}

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries t
		WHERE ` + baseWhere + `
		ORDER BY t.clock_in ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries by date range: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]timeentry.TimeEntry, error) {
	var entries []timeentry.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ApproveInRange implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) ApproveInRange(ctx context.Context, companyID string, start, end time.Time, approvedBy string, approvedAt time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET status = $1,
			approved_by = $2,
			approved_at = $3,
			updated_at = $3
		WHERE company_id = $4
		  AND clock_in >= $5
		  AND clock_in < $6
		  AND status = $7
	`

	tag, err := q.Exec(ctx, query,
		timeentry.StatusApproved, approvedBy, approvedAt,
		companyID, start, end, timeentry.StatusCompleted,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to approve entries in range: %w", err)
	}

	return tag.RowsAffected(), nil
}

// MarkExported implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) MarkExported(ctx context.Context, companyID string, start, end time.Time, batchID string, exportedAt time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET status = $1,
			exported_to_payroll = TRUE,
			exported_at = $2,
			payroll_batch_id = $3,
			updated_at = $2
		WHERE company_id = $4
		  AND clock_in >= $5
		  AND clock_in < $6
		  AND status = $7
		  AND exported_to_payroll = FALSE
	`

	tag, err := q.Exec(ctx, query,
		timeentry.StatusPaid, exportedAt, batchID,
		companyID, start, end, timeentry.StatusApproved,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark entries exported: %w", err)
	}

	return tag.RowsAffected(), nil
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}
