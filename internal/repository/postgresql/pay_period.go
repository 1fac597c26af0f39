package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/payperiod"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payPeriodRepository struct {
	db *database.DB
}

// Create implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) Create(ctx context.Context, period payperiod.PayPeriod) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_periods (company_id, start_date, end_date, frequency, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		period.CompanyID,
		period.StartDate,
		period.EndDate,
		period.Frequency,
		period.Status,
	).Scan(&period.ID, &period.CreatedAt, &period.UpdatedAt)

	if err != nil {
		// Unique index on (company_id, frequency, start_date, end_date)
		// backs generation idempotence.
		if isUniqueViolation(err) {
			return payperiod.PayPeriod{}, payperiod.ErrPeriodAlreadyExists
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to create pay period: %w", err)
	}

	return period, nil
}

// GetByID implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) GetByID(ctx context.Context, id string, companyID string) (payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, start_date, end_date, frequency, status,
			   approved_by, approved_at, created_at, updated_at
		FROM pay_periods
		WHERE id = $1 AND company_id = $2
	`

	var p payperiod.PayPeriod
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.Frequency, &p.Status,
		&p.ApprovedBy, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payperiod.PayPeriod{}, payperiod.ErrPayPeriodNotFound
		}
		return payperiod.PayPeriod{}, fmt.Errorf("failed to get pay period by ID: %w", err)
	}

	return p, nil
}

// Exists implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) Exists(ctx context.Context, companyID string, frequency payperiod.Frequency, startDate, endDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM pay_periods
			WHERE company_id = $1
			  AND frequency = $2
			  AND start_date = $3
			  AND end_date = $4
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, frequency, startDate, endDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pay period existence: %w", err)
	}

	return exists, nil
}

// ListByCompany implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) ListByCompany(ctx context.Context, companyID string) ([]payperiod.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, start_date, end_date, frequency, status,
			   approved_by, approved_at, created_at, updated_at
		FROM pay_periods
		WHERE company_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	var periods []payperiod.PayPeriod
	for rows.Next() {
		var p payperiod.PayPeriod
		err := rows.Scan(
			&p.ID, &p.CompanyID, &p.StartDate, &p.EndDate, &p.Frequency, &p.Status,
			&p.ApprovedBy, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, nil
}

// Update implements payperiod.PayPeriodRepository.
func (r *payPeriodRepository) Update(ctx context.Context, period payperiod.PayPeriod) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_periods
		SET status = $1,
			approved_by = $2,
			approved_at = $3,
			updated_at = $4
		WHERE id = $5 AND company_id = $6
	`

	tag, err := q.Exec(ctx, query,
		period.Status,
		period.ApprovedBy,
		period.ApprovedAt,
		time.Now(),
		period.ID,
		period.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pay period: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return payperiod.ErrPayPeriodNotFound
	}

	return nil
}

func NewPayPeriodRepository(db *database.DB) payperiod.PayPeriodRepository {
	return &payPeriodRepository{db: db}
}
