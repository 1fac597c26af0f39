package overtime

import (
	"sort"
	"time"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/policy"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/timeentry"
)

const (
	weeklyOvertimeThresholdMinutes  = 40 * 60 // 2400
	dailyOvertimeThresholdMinutes   = 8 * 60  // 480
	dailyDoubleTimeThresholdMinutes = 12 * 60 // 720
)

// EntrySplit is the first-pass per-entry minute classification done at
// clock-out. Overtime stays zero here: overtime is a weekly concept and is
// assigned later by the weekly pass.
type EntrySplit struct {
	TotalMinutes    int
	RegularMinutes  int
	OvertimeMinutes int
	BreakMinutes    int
}

// WeeklySplit is the jurisdiction-correct classification of one employee's
// work week.
type WeeklySplit struct {
	RegularMinutes    int
	OvertimeMinutes   int
	DoubleTimeMinutes int
}

// Calculator classifies worked minutes into regular, overtime and double-time
// buckets under a company policy. It is pure computation; all state lives in
// the entries handed to it.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// RoundTime snaps t to the nearest multiple of granularity minutes past the
// hour. Ties round up; the carry propagates into the hour. Granularity 0
// disables rounding. Seconds are dropped before rounding.
func (c *Calculator) RoundTime(t time.Time, granularity int) time.Time {
	if granularity <= 0 {
		return t
	}

	t = t.Truncate(time.Minute)
	rem := t.Minute() % granularity
	if rem == 0 {
		return t
	}

	if rem*2 >= granularity {
		return t.Add(time.Duration(granularity-rem) * time.Minute)
	}
	return t.Add(-time.Duration(rem) * time.Minute)
}

// CalculateBreakMinutes returns the break auto-deduction for a session of
// totalMinutes under the policy: nothing when auto-deduction is off or the
// session is under the threshold, the fixed required break otherwise.
func (c *Calculator) CalculateBreakMinutes(totalMinutes int, pol policy.Policy) int {
	if !pol.AutoDeductBreaks {
		return 0
	}
	if totalMinutes < pol.BreakThresholdMinutes {
		return 0
	}
	return pol.RequiredBreakMinutes
}

// CalculateEntryMinutes runs the first-pass split for a single entry at
// clock-out time. Entries without both timestamps classify to zero. The
// manually recorded break is honored when auto-deduction is off.
func (c *Calculator) CalculateEntryMinutes(entry *timeentry.TimeEntry, pol policy.Policy, overtimeExempt bool) EntrySplit {
	if entry.ClockIn.IsZero() || entry.ClockOut == nil {
		return EntrySplit{}
	}

	total := int(entry.ClockOut.Sub(entry.ClockIn).Minutes())
	if total < 0 {
		total = 0
	}

	breakMins := entry.BreakMinutes
	if pol.AutoDeductBreaks {
		breakMins = c.CalculateBreakMinutes(total, pol)
	}

	total -= breakMins
	if total < 0 {
		total = 0
	}

	// The per-entry pass never splits overtime; exempt or not, everything
	// lands in the regular bucket until the weekly pass reclassifies it.
	return EntrySplit{
		TotalMinutes:   total,
		RegularMinutes: total,
		BreakMinutes:   breakMins,
	}
}

// CalculateWeeklyOvertime classifies one employee's work week. The entries
// must all belong to the same employee and week. Jurisdiction is selected by
// the policy; unknown values fall back to the federal rule.
func (c *Calculator) CalculateWeeklyOvertime(entries []timeentry.TimeEntry, pol policy.Policy, overtimeExempt bool) WeeklySplit {
	sum := 0
	for i := range entries {
		sum += entries[i].TotalMinutes
	}

	if overtimeExempt {
		return WeeklySplit{RegularMinutes: sum}
	}

	switch pol.StateOvertimeRules {
	case policy.OvertimeRuleCalifornia:
		return c.californiaWeekly(entries)
	default:
		return c.federalWeekly(sum, pol)
	}
}

// federalWeekly applies the 40-hour weekly threshold, with an optional
// double-time tier above pol.DoubleTimeThresholdMinutes.
func (c *Calculator) federalWeekly(sum int, pol policy.Policy) WeeklySplit {
	regular := sum
	if regular > weeklyOvertimeThresholdMinutes {
		regular = weeklyOvertimeThresholdMinutes
	}
	remainder := sum - regular

	if pol.DoubleTimeThresholdMinutes == nil {
		return WeeklySplit{RegularMinutes: regular, OvertimeMinutes: remainder}
	}

	dtThreshold := *pol.DoubleTimeThresholdMinutes
	overtime := dtThreshold - regular
	if overtime > remainder {
		overtime = remainder
	}
	if overtime < 0 {
		overtime = 0
	}
	doubleTime := sum - dtThreshold
	if doubleTime < 0 {
		doubleTime = 0
	}

	return WeeklySplit{
		RegularMinutes:    regular,
		OvertimeMinutes:   overtime,
		DoubleTimeMinutes: doubleTime,
	}
}

// californiaWeekly applies the daily 8h/12h tiers per entry, then layers the
// 40-hour weekly cap on the regular bucket only. Double time is unaffected by
// the weekly cap.
func (c *Calculator) californiaWeekly(entries []timeentry.TimeEntry) WeeklySplit {
	var regular, overtime, doubleTime int
	for i := range entries {
		dReg, dOT, dDT := californiaDaily(entries[i].TotalMinutes)
		regular += dReg
		overtime += dOT
		doubleTime += dDT
	}

	if regular > weeklyOvertimeThresholdMinutes {
		overtime += regular - weeklyOvertimeThresholdMinutes
		regular = weeklyOvertimeThresholdMinutes
	}

	return WeeklySplit{
		RegularMinutes:    regular,
		OvertimeMinutes:   overtime,
		DoubleTimeMinutes: doubleTime,
	}
}

func californiaDaily(total int) (regular, overtime, doubleTime int) {
	regular = total
	if regular > dailyOvertimeThresholdMinutes {
		regular = dailyOvertimeThresholdMinutes
	}
	if total > dailyOvertimeThresholdMinutes {
		overtime = total - dailyOvertimeThresholdMinutes
		if overtime > dailyDoubleTimeThresholdMinutes-dailyOvertimeThresholdMinutes {
			overtime = dailyDoubleTimeThresholdMinutes - dailyOvertimeThresholdMinutes
		}
	}
	if total > dailyDoubleTimeThresholdMinutes {
		doubleTime = total - dailyDoubleTimeThresholdMinutes
	}
	return regular, overtime, doubleTime
}

// RecalculateWeekEntries writes the weekly classification back onto each
// entry. The daily (California) rule already yields per-entry numbers; the
// federal weekly totals are attributed proportionally to each entry's share
// of the weekly total, with the integer remainder assigned to the last entry.
// Entries are processed in clock-in order, so the attribution is
// deterministic. Paid entries must be filtered out by the caller.
func (c *Calculator) RecalculateWeekEntries(entries []*timeentry.TimeEntry, pol policy.Policy, overtimeExempt bool) {
	if len(entries) == 0 {
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ClockIn.Before(entries[j].ClockIn)
	})

	if overtimeExempt {
		for _, e := range entries {
			e.RegularMinutes = e.TotalMinutes
			e.OvertimeMinutes = 0
			e.DoubleTimeMinutes = 0
		}
		return
	}

	if pol.StateOvertimeRules == policy.OvertimeRuleCalifornia {
		c.recalculateCalifornia(entries)
		return
	}
	c.recalculateFederal(entries, pol)
}

func (c *Calculator) recalculateFederal(entries []*timeentry.TimeEntry, pol policy.Policy) {
	sum := 0
	for _, e := range entries {
		sum += e.TotalMinutes
	}
	if sum == 0 {
		for _, e := range entries {
			e.RegularMinutes, e.OvertimeMinutes, e.DoubleTimeMinutes = 0, 0, 0
		}
		return
	}

	values := make([]timeentry.TimeEntry, len(entries))
	for i, e := range entries {
		values[i] = *e
	}
	week := c.CalculateWeeklyOvertime(values, pol, false)

	// Regular minutes proportional to each entry's share of the weekly
	// total. The integer remainder is assigned from the last entry
	// backwards, bounded by each entry's own minutes.
	allocated := 0
	for _, e := range entries {
		e.RegularMinutes = e.TotalMinutes * week.RegularMinutes / sum
		allocated += e.RegularMinutes
	}
	for i := len(entries) - 1; i >= 0 && allocated < week.RegularMinutes; i-- {
		spare := entries[i].TotalMinutes - entries[i].RegularMinutes
		add := week.RegularMinutes - allocated
		if add > spare {
			add = spare
		}
		entries[i].RegularMinutes += add
		allocated += add
	}

	// What is left of each entry splits between overtime and double time,
	// double time again proportional with the remainder assigned from the
	// back.
	premium := week.OvertimeMinutes + week.DoubleTimeMinutes
	dtAllocated := 0
	for _, e := range entries {
		rem := e.TotalMinutes - e.RegularMinutes
		dt := 0
		if premium > 0 {
			dt = rem * week.DoubleTimeMinutes / premium
		}
		e.DoubleTimeMinutes = dt
		e.OvertimeMinutes = rem - dt
		dtAllocated += dt
	}
	for i := len(entries) - 1; i >= 0 && dtAllocated < week.DoubleTimeMinutes; i-- {
		add := week.DoubleTimeMinutes - dtAllocated
		if add > entries[i].OvertimeMinutes {
			add = entries[i].OvertimeMinutes
		}
		entries[i].DoubleTimeMinutes += add
		entries[i].OvertimeMinutes -= add
		dtAllocated += add
	}
}

func (c *Calculator) recalculateCalifornia(entries []*timeentry.TimeEntry) {
	sumRegular := 0
	for _, e := range entries {
		dReg, dOT, dDT := californiaDaily(e.TotalMinutes)
		e.RegularMinutes = dReg
		e.OvertimeMinutes = dOT
		e.DoubleTimeMinutes = dDT
		sumRegular += dReg
	}

	if sumRegular <= weeklyOvertimeThresholdMinutes {
		return
	}

	// Weekly 40-hour cap on the regular bucket only: trim each entry's
	// regular proportionally, moving the trimmed minutes into its overtime.
	capped := weeklyOvertimeThresholdMinutes
	allocated := 0
	original := make([]int, len(entries))
	for i, e := range entries {
		original[i] = e.RegularMinutes
		e.RegularMinutes = e.RegularMinutes * capped / sumRegular
		allocated += e.RegularMinutes
	}
	for i := len(entries) - 1; i >= 0 && allocated < capped; i-- {
		spare := original[i] - entries[i].RegularMinutes
		add := capped - allocated
		if add > spare {
			add = spare
		}
		entries[i].RegularMinutes += add
		allocated += add
	}
	for i, e := range entries {
		e.OvertimeMinutes += original[i] - e.RegularMinutes
	}
}
