package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/policy"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type policyRepository struct {
	db *database.DB
}

// GetByCompanyID implements policy.PolicyRepository.
// Companies without stored settings get the default policy.
func (r *policyRepository) GetByCompanyID(ctx context.Context, companyID string) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT company_id, round_to_minutes, auto_deduct_breaks,
			   break_threshold_minutes, required_break_minutes,
			   require_approval, approval_threshold_hours,
			   state_overtime_rules, double_time_threshold_minutes,
			   require_gps, allowed_ips, auto_clock_out_hours, updated_at
		FROM company_time_policies
		WHERE company_id = $1
	`

	var p policy.Policy
	err := q.QueryRow(ctx, query, companyID).Scan(
		&p.CompanyID, &p.RoundToMinutes, &p.AutoDeductBreaks,
		&p.BreakThresholdMinutes, &p.RequiredBreakMinutes,
		&p.RequireApproval, &p.ApprovalThresholdHours,
		&p.StateOvertimeRules, &p.DoubleTimeThresholdMinutes,
		&p.RequireGPS, &p.AllowedIPs, &p.AutoClockOutHours, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Default(companyID), nil
		}
		return policy.Policy{}, fmt.Errorf("failed to get company time policy: %w", err)
	}

	return p, nil
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}
