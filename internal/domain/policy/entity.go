package policy

import (
	"net/netip"
	"time"
)

// OvertimeRule selects the jurisdiction whose overtime rules apply.
type OvertimeRule string

const (
	OvertimeRuleFederal    OvertimeRule = "federal"
	OvertimeRuleCalifornia OvertimeRule = "california"
)

// Policy is the resolved time & attendance configuration of a company,
// loaded once per operation and passed explicitly into every service call.
// It is treated as an immutable value; nothing in this core writes to it.
type Policy struct {
	CompanyID string

	// Rounding granularity in minutes for clock timestamps; 0 disables rounding.
	RoundToMinutes int

	// Break auto-deduction
	AutoDeductBreaks      bool
	BreakThresholdMinutes int
	RequiredBreakMinutes  int

	// Approval
	RequireApproval       bool
	ApprovalThresholdHours float64

	// Overtime
	StateOvertimeRules OvertimeRule
	// DoubleTimeThresholdMinutes applies to the federal rule only; nil means
	// the jurisdiction has no double-time tier.
	DoubleTimeThresholdMinutes *int

	// Clock-in requirements
	RequireGPS bool
	// AllowedIPs holds exact addresses ("203.0.113.7") and CIDR ranges
	// ("10.0.0.0/8"). Empty means any address is accepted.
	AllowedIPs []string

	// AutoClockOutHours is the age past which an open session is force-closed.
	AutoClockOutHours int

	UpdatedAt time.Time
}

// Default returns the policy applied when a company has no stored settings.
func Default(companyID string) Policy {
	return Policy{
		CompanyID:              companyID,
		RoundToMinutes:         0,
		AutoDeductBreaks:       false,
		BreakThresholdMinutes:  360,
		RequiredBreakMinutes:   30,
		RequireApproval:        false,
		ApprovalThresholdHours: 12,
		StateOvertimeRules:     OvertimeRuleFederal,
		RequireGPS:             false,
		AutoClockOutHours:      16,
	}
}

// AllowsIP reports whether ip matches the allow-list. An empty list allows
// everything. Entries are exact addresses or CIDR prefixes; an address is in a
// prefix when its bits, masked to the prefix length, equal the masked base.
func (p *Policy) AllowsIP(ip string) bool {
	if len(p.AllowedIPs) == 0 {
		return true
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}

	for _, allowed := range p.AllowedIPs {
		if prefix, err := netip.ParsePrefix(allowed); err == nil {
			if prefix.Contains(addr) {
				return true
			}
			continue
		}
		if exact, err := netip.ParseAddr(allowed); err == nil && exact == addr {
			return true
		}
	}

	return false
}
