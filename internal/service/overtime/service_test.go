package overtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/policy"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/timeentry"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return parsed
}

func entryOf(t *testing.T, clockIn, clockOut string) *timeentry.TimeEntry {
	t.Helper()
	out := mustTime(t, clockOut)
	return &timeentry.TimeEntry{
		ClockIn:  mustTime(t, clockIn),
		ClockOut: &out,
	}
}

func weekEntry(totalMinutes int, clockIn string) timeentry.TimeEntry {
	parsed, _ := time.Parse(time.RFC3339, clockIn)
	return timeentry.TimeEntry{ClockIn: parsed, TotalMinutes: totalMinutes}
}

// ========================================
// ROUNDING
// ========================================

func TestCalculator_RoundTime(t *testing.T) {
	c := NewCalculator()

	cases := []struct {
		name        string
		input       string
		granularity int
		want        string
	}{
		{"rounds down below midpoint", "2025-03-10T09:07:00Z", 15, "2025-03-10T09:00:00Z"},
		{"ties round up", "2025-03-10T09:08:00Z", 15, "2025-03-10T09:15:00Z"},
		{"exact boundary unchanged", "2025-03-10T09:15:00Z", 15, "2025-03-10T09:15:00Z"},
		{"carry into next hour", "2025-03-10T09:53:00Z", 15, "2025-03-10T10:00:00Z"},
		{"six minute granularity", "2025-03-10T09:04:00Z", 6, "2025-03-10T09:06:00Z"},
		{"granularity zero disables rounding", "2025-03-10T09:07:00Z", 0, "2025-03-10T09:07:00Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.RoundTime(mustTime(t, tc.input), tc.granularity)
			assert.Equal(t, mustTime(t, tc.want), got)
		})
	}
}

func TestCalculator_RoundTime_DropsSeconds(t *testing.T) {
	c := NewCalculator()

	// 09:07:59 truncates to 09:07 before rounding, so it still rounds down.
	got := c.RoundTime(mustTime(t, "2025-03-10T09:07:59Z"), 15)
	assert.Equal(t, mustTime(t, "2025-03-10T09:00:00Z"), got)
}

// ========================================
// BREAK DEDUCTION
// ========================================

func TestCalculator_CalculateBreakMinutes(t *testing.T) {
	pol := policy.Policy{
		AutoDeductBreaks:      true,
		BreakThresholdMinutes: 360,
		RequiredBreakMinutes:  30,
	}

	assert.Equal(t, 30, NewCalculator().CalculateBreakMinutes(480, pol))
	assert.Equal(t, 30, NewCalculator().CalculateBreakMinutes(360, pol), "threshold is inclusive")
	assert.Equal(t, 0, NewCalculator().CalculateBreakMinutes(359, pol))

	pol.AutoDeductBreaks = false
	assert.Equal(t, 0, NewCalculator().CalculateBreakMinutes(480, pol))
}

// ========================================
// PER-ENTRY SPLIT
// ========================================

func TestCalculator_CalculateEntryMinutes_EightHourDay(t *testing.T) {
	c := NewCalculator()
	entry := entryOf(t, "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")

	split := c.CalculateEntryMinutes(entry, policy.Policy{}, false)

	assert.Equal(t, 480, split.TotalMinutes)
	assert.Equal(t, 480, split.RegularMinutes)
	assert.Equal(t, 0, split.OvertimeMinutes)
	assert.Equal(t, 0, split.BreakMinutes)
}

func TestCalculator_CalculateEntryMinutes_AutoBreakDeducted(t *testing.T) {
	c := NewCalculator()
	pol := policy.Policy{
		AutoDeductBreaks:      true,
		BreakThresholdMinutes: 360,
		RequiredBreakMinutes:  30,
	}
	entry := entryOf(t, "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")

	split := c.CalculateEntryMinutes(entry, pol, false)

	assert.Equal(t, 450, split.TotalMinutes)
	assert.Equal(t, 30, split.BreakMinutes)
	assert.Equal(t, 450, split.RegularMinutes)
}

func TestCalculator_CalculateEntryMinutes_ManualBreakHonored(t *testing.T) {
	c := NewCalculator()
	entry := entryOf(t, "2025-03-10T09:00:00Z", "2025-03-10T17:00:00Z")
	entry.BreakMinutes = 45

	split := c.CalculateEntryMinutes(entry, policy.Policy{}, false)

	assert.Equal(t, 435, split.TotalMinutes)
	assert.Equal(t, 45, split.BreakMinutes)
}

func TestCalculator_CalculateEntryMinutes_OpenEntryIsZero(t *testing.T) {
	c := NewCalculator()
	entry := &timeentry.TimeEntry{ClockIn: mustTime(t, "2025-03-10T09:00:00Z")}

	split := c.CalculateEntryMinutes(entry, policy.Policy{}, false)

	assert.Equal(t, EntrySplit{}, split)
}

// ========================================
// WEEKLY OVERTIME — FEDERAL
// ========================================

func TestCalculator_CalculateWeeklyOvertime_FederalUnderThreshold(t *testing.T) {
	c := NewCalculator()
	entries := []timeentry.TimeEntry{
		weekEntry(480, "2025-03-10T09:00:00Z"),
		weekEntry(480, "2025-03-11T09:00:00Z"),
		weekEntry(480, "2025-03-12T09:00:00Z"),
	}

	week := c.CalculateWeeklyOvertime(entries, policy.Policy{StateOvertimeRules: policy.OvertimeRuleFederal}, false)

	assert.Equal(t, WeeklySplit{RegularMinutes: 1440}, week)
}

func TestCalculator_CalculateWeeklyOvertime_FederalOverThreshold(t *testing.T) {
	c := NewCalculator()
	entries := []timeentry.TimeEntry{
		weekEntry(528, "2025-03-10T09:00:00Z"),
		weekEntry(528, "2025-03-11T09:00:00Z"),
		weekEntry(528, "2025-03-12T09:00:00Z"),
		weekEntry(528, "2025-03-13T09:00:00Z"),
		weekEntry(528, "2025-03-14T09:00:00Z"),
	}

	week := c.CalculateWeeklyOvertime(entries, policy.Policy{StateOvertimeRules: policy.OvertimeRuleFederal}, false)

	assert.Equal(t, WeeklySplit{RegularMinutes: 2400, OvertimeMinutes: 240}, week)
}

func TestCalculator_CalculateWeeklyOvertime_FederalDoubleTimeTier(t *testing.T) {
	c := NewCalculator()
	dt := 3000
	pol := policy.Policy{
		StateOvertimeRules:         policy.OvertimeRuleFederal,
		DoubleTimeThresholdMinutes: &dt,
	}
	entries := []timeentry.TimeEntry{
		weekEntry(1650, "2025-03-10T09:00:00Z"),
		weekEntry(1650, "2025-03-12T09:00:00Z"),
	}

	week := c.CalculateWeeklyOvertime(entries, pol, false)

	assert.Equal(t, WeeklySplit{RegularMinutes: 2400, OvertimeMinutes: 600, DoubleTimeMinutes: 300}, week)
}

func TestCalculator_CalculateWeeklyOvertime_ExemptAllRegular(t *testing.T) {
	c := NewCalculator()
	entries := []timeentry.TimeEntry{weekEntry(780, "2025-03-10T07:00:00Z")}

	week := c.CalculateWeeklyOvertime(entries, policy.Policy{StateOvertimeRules: policy.OvertimeRuleCalifornia}, true)

	assert.Equal(t, WeeklySplit{RegularMinutes: 780}, week)
}

// ========================================
// WEEKLY OVERTIME — CALIFORNIA
// ========================================

func TestCalculator_CalculateWeeklyOvertime_CaliforniaDailyTier(t *testing.T) {
	c := NewCalculator()
	pol := policy.Policy{StateOvertimeRules: policy.OvertimeRuleCalifornia}

	// A single ten-hour day: two hours of daily overtime.
	week := c.CalculateWeeklyOvertime([]timeentry.TimeEntry{weekEntry(600, "2025-03-10T08:00:00Z")}, pol, false)
	assert.Equal(t, WeeklySplit{RegularMinutes: 480, OvertimeMinutes: 120}, week)

	// A single thirteen-hour day: four hours overtime, one hour double time.
	week = c.CalculateWeeklyOvertime([]timeentry.TimeEntry{weekEntry(780, "2025-03-10T07:00:00Z")}, pol, false)
	assert.Equal(t, WeeklySplit{RegularMinutes: 480, OvertimeMinutes: 240, DoubleTimeMinutes: 60}, week)
}

func TestCalculator_CalculateWeeklyOvertime_CaliforniaWeeklyCap(t *testing.T) {
	c := NewCalculator()
	pol := policy.Policy{StateOvertimeRules: policy.OvertimeRuleCalifornia}

	// Six eight-hour days: no daily overtime, but 2880 regular minutes exceed
	// the 40-hour weekly cap by 480.
	entries := make([]timeentry.TimeEntry, 6)
	days := []string{"10", "11", "12", "13", "14", "15"}
	for i, d := range days {
		entries[i] = weekEntry(480, "2025-03-"+d+"T09:00:00Z")
	}

	week := c.CalculateWeeklyOvertime(entries, pol, false)

	assert.Equal(t, WeeklySplit{RegularMinutes: 2400, OvertimeMinutes: 480}, week)
}

// ========================================
// WEEKLY WRITE-BACK
// ========================================

func TestCalculator_RecalculateWeekEntries_FederalProportional(t *testing.T) {
	c := NewCalculator()
	pol := policy.Policy{StateOvertimeRules: policy.OvertimeRuleFederal}

	entries := make([]*timeentry.TimeEntry, 6)
	days := []string{"10", "11", "12", "13", "14", "15"}
	for i, d := range days {
		e := weekEntry(480, "2025-03-"+d+"T09:00:00Z")
		entries[i] = &e
	}

	c.RecalculateWeekEntries(entries, pol, false)

	// 2880 total against a 2400 regular cap: each entry keeps 5/6 of its
	// minutes as regular.
	sumRegular, sumOvertime := 0, 0
	for _, e := range entries {
		assert.Equal(t, 400, e.RegularMinutes)
		assert.Equal(t, 80, e.OvertimeMinutes)
		assert.Equal(t, 0, e.DoubleTimeMinutes)
		sumRegular += e.RegularMinutes
		sumOvertime += e.OvertimeMinutes
	}
	assert.Equal(t, 2400, sumRegular)
	assert.Equal(t, 480, sumOvertime)
}

func TestCalculator_RecalculateWeekEntries_FederalRemainderConserved(t *testing.T) {
	c := NewCalculator()
	pol := policy.Policy{StateOvertimeRules: policy.OvertimeRuleFederal}

	// Uneven totals that do not divide evenly: the attributed minutes must
	// still sum exactly to the weekly buckets.
	e1 := weekEntry(700, "2025-03-10T09:00:00Z")
	e2 := weekEntry(955, "2025-03-11T09:00:00Z")
	e3 := weekEntry(1001, "2025-03-12T09:00:00Z")
	entries := []*timeentry.TimeEntry{&e1, &e2, &e3}

	c.RecalculateWeekEntries(entries, pol, false)

	sumRegular, sumOvertime := 0, 0
	for _, e := range entries {
		assert.Equal(t, e.TotalMinutes, e.RegularMinutes+e.OvertimeMinutes+e.DoubleTimeMinutes)
		sumRegular += e.RegularMinutes
		sumOvertime += e.OvertimeMinutes
	}
	assert.Equal(t, 2400, sumRegular)
	assert.Equal(t, 256, sumOvertime)
}

func TestCalculator_RecalculateWeekEntries_CaliforniaPerDay(t *testing.T) {
	c := NewCalculator()
	pol := policy.Policy{StateOvertimeRules: policy.OvertimeRuleCalifornia}

	e1 := weekEntry(600, "2025-03-10T08:00:00Z")
	e2 := weekEntry(780, "2025-03-11T07:00:00Z")
	entries := []*timeentry.TimeEntry{&e1, &e2}

	c.RecalculateWeekEntries(entries, pol, false)

	assert.Equal(t, 480, e1.RegularMinutes)
	assert.Equal(t, 120, e1.OvertimeMinutes)
	assert.Equal(t, 0, e1.DoubleTimeMinutes)

	assert.Equal(t, 480, e2.RegularMinutes)
	assert.Equal(t, 240, e2.OvertimeMinutes)
	assert.Equal(t, 60, e2.DoubleTimeMinutes)
}

func TestCalculator_RecalculateWeekEntries_CaliforniaWeeklyCapTrims(t *testing.T) {
	c := NewCalculator()
	pol := policy.Policy{StateOvertimeRules: policy.OvertimeRuleCalifornia}

	entries := make([]*timeentry.TimeEntry, 6)
	days := []string{"10", "11", "12", "13", "14", "15"}
	for i, d := range days {
		e := weekEntry(480, "2025-03-"+d+"T09:00:00Z")
		entries[i] = &e
	}

	c.RecalculateWeekEntries(entries, pol, false)

	sumRegular, sumOvertime := 0, 0
	for _, e := range entries {
		assert.Equal(t, e.TotalMinutes, e.RegularMinutes+e.OvertimeMinutes)
		sumRegular += e.RegularMinutes
		sumOvertime += e.OvertimeMinutes
	}
	assert.Equal(t, 2400, sumRegular)
	assert.Equal(t, 480, sumOvertime)
}

func TestCalculator_RecalculateWeekEntries_ExemptAllRegular(t *testing.T) {
	c := NewCalculator()

	e1 := weekEntry(780, "2025-03-10T07:00:00Z")
	e1.OvertimeMinutes = 120 // stale split from an earlier pass
	entries := []*timeentry.TimeEntry{&e1}

	c.RecalculateWeekEntries(entries, policy.Policy{StateOvertimeRules: policy.OvertimeRuleCalifornia}, true)

	assert.Equal(t, 780, e1.RegularMinutes)
	assert.Equal(t, 0, e1.OvertimeMinutes)
	assert.Equal(t, 0, e1.DoubleTimeMinutes)
}
