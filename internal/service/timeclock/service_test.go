package timeclock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/policy"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/shift"
	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/timeentry"
	"github.com/clockwork-hq/timeclock-backend-go/internal/service/overtime"
)

const (
	testCompanyID  = "company-1"
	testEmployeeID = "employee-1"
)

// ========================================
// IN-MEMORY FAKES
// ========================================

type fakeEntryRepo struct {
	seq     int
	entries map[string]*timeentry.TimeEntry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]*timeentry.TimeEntry)}
}

func (r *fakeEntryRepo) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	// Mirrors the partial unique index on open sessions.
	if entry.ClockOut == nil {
		for _, e := range r.entries {
			if e.EmployeeID == entry.EmployeeID && e.ClockOut == nil {
				return timeentry.TimeEntry{}, timeentry.ErrActiveEntryExists
			}
		}
	}
	r.seq++
	entry.ID = fmt.Sprintf("entry-%d", r.seq)
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	stored := entry
	r.entries[entry.ID] = &stored
	return entry, nil
}

func (r *fakeEntryRepo) GetByID(ctx context.Context, id string, companyID string) (timeentry.TimeEntry, error) {
	e, ok := r.entries[id]
	if !ok || e.CompanyID != companyID {
		return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
	}
	return *e, nil
}

func (r *fakeEntryRepo) GetActiveEntry(ctx context.Context, employeeID string, companyID string) (*timeentry.TimeEntry, error) {
	for _, e := range r.entries {
		if e.EmployeeID == employeeID && e.CompanyID == companyID && e.Status == timeentry.StatusInProgress && e.ClockOut == nil {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) CloseEntry(ctx context.Context, entry timeentry.TimeEntry) error {
	stored, ok := r.entries[entry.ID]
	if !ok || stored.ClockOut != nil {
		return timeentry.ErrAlreadyClockedOut
	}
	updated := entry
	r.entries[entry.ID] = &updated
	return nil
}

func (r *fakeEntryRepo) Update(ctx context.Context, entry timeentry.TimeEntry) error {
	stored, ok := r.entries[entry.ID]
	if !ok {
		return timeentry.ErrEntryNotFound
	}
	if stored.Status == timeentry.StatusPaid {
		return timeentry.ErrEntryExported
	}
	updated := entry
	r.entries[entry.ID] = &updated
	return nil
}

func (r *fakeEntryRepo) List(ctx context.Context, filter timeentry.EntryFilter, companyID string) ([]timeentry.TimeEntry, int64, error) {
	var result []timeentry.TimeEntry
	for _, e := range r.entries {
		if e.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(e.Status) != *filter.Status {
			continue
		}
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

func (r *fakeEntryRepo) ListInProgressBefore(ctx context.Context, companyID string, cutoff time.Time) ([]timeentry.TimeEntry, error) {
	var result []timeentry.TimeEntry
	for _, e := range r.entries {
		if e.CompanyID == companyID && e.Status == timeentry.StatusInProgress && e.ClockIn.Before(cutoff) {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *fakeEntryRepo) ListByDateRange(ctx context.Context, companyID string, start, end time.Time, statuses []timeentry.Status, employeeID *string) ([]timeentry.TimeEntry, error) {
	var result []timeentry.TimeEntry
	for _, e := range r.entries {
		if e.CompanyID != companyID || e.ClockIn.Before(start) || !e.ClockIn.Before(end) {
			continue
		}
		if employeeID != nil && e.EmployeeID != *employeeID {
			continue
		}
		if len(statuses) > 0 {
			matched := false
			for _, s := range statuses {
				if e.Status == s {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, *e)
	}
	return result, nil
}

func (r *fakeEntryRepo) ApproveInRange(ctx context.Context, companyID string, start, end time.Time, approvedBy string, approvedAt time.Time) (int64, error) {
	var count int64
	for _, e := range r.entries {
		if e.CompanyID == companyID && e.Status == timeentry.StatusCompleted && !e.ClockIn.Before(start) && e.ClockIn.Before(end) {
			e.Status = timeentry.StatusApproved
			e.ApprovedBy = &approvedBy
			e.ApprovedAt = &approvedAt
			count++
		}
	}
	return count, nil
}

func (r *fakeEntryRepo) MarkExported(ctx context.Context, companyID string, start, end time.Time, batchID string, exportedAt time.Time) (int64, error) {
	var count int64
	for _, e := range r.entries {
		if e.CompanyID == companyID && e.Status == timeentry.StatusApproved && !e.ExportedToPayroll && !e.ClockIn.Before(start) && e.ClockIn.Before(end) {
			e.Status = timeentry.StatusPaid
			e.ExportedToPayroll = true
			e.ExportedAt = &exportedAt
			e.PayrollBatchID = &batchID
			count++
		}
	}
	return count, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.IsActive {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	s, ok := r.shifts[id]
	if !ok || s.CompanyID != companyID {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *fakeShiftRepo) ListActive(ctx context.Context, companyID string) ([]shift.Shift, error) {
	var result []shift.Shift
	for _, s := range r.shifts {
		if s.CompanyID == companyID && s.IsActive {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakePolicyRepo struct {
	policy policy.Policy
}

func (r *fakePolicyRepo) GetByCompanyID(ctx context.Context, companyID string) (policy.Policy, error) {
	if r.policy.CompanyID == "" {
		return policy.Default(companyID), nil
	}
	return r.policy, nil
}

// ========================================
// SETUP
// ========================================

func newTestService(t *testing.T, pol policy.Policy, now time.Time) (*TimeClockServiceImpl, *fakeEntryRepo) {
	t.Helper()

	entryRepo := newFakeEntryRepo()
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:        testEmployeeID,
			CompanyID: testCompanyID,
			FullName:  "Test Employee",
			Email:     "test@example.com",
			IsActive:  true,
		},
	}}
	policyRepo := &fakePolicyRepo{policy: pol}
	shiftRepo := &fakeShiftRepo{shifts: map[string]shift.Shift{
		"shift-1": {
			ID:           "shift-1",
			CompanyID:    testCompanyID,
			Name:         "Day Shift",
			BreakMinutes: 45,
			IsActive:     true,
		},
	}}

	svc := NewTimeClockService(nil, entryRepo, employeeRepo, policyRepo, shiftRepo, overtime.NewCalculator())
	impl := svc.(*TimeClockServiceImpl)
	impl.now = func() time.Time { return now }
	return impl, entryRepo
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

// ========================================
// CLOCK IN
// ========================================

func TestTimeClockService_ClockIn_Success(t *testing.T) {
	ctx := context.Background()
	pol := policy.Default(testCompanyID)
	pol.RoundToMinutes = 15
	svc, _ := newTestService(t, pol, mustTime(t, "2025-03-10T09:07:30Z"))

	resp, err := svc.ClockIn(ctx, timeentry.ClockInRequest{
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
	})

	require.NoError(t, err)
	assert.Equal(t, string(timeentry.StatusInProgress), resp.Status)
	assert.Equal(t, string(timeentry.EntryTypeClock), resp.EntryType)
	assert.Equal(t, "2025-03-10T09:00:00Z", resp.ClockInTime)
	assert.Nil(t, resp.ClockOutTime)
}

func TestTimeClockService_ClockIn_AlreadyActive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	req := timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID}
	_, err := svc.ClockIn(ctx, req)
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, req)
	assert.ErrorIs(t, err, timeentry.ErrActiveEntryExists)
}

func TestTimeClockService_ClockIn_CapturesContext(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	ip := "203.0.113.7"
	lat, long := 37.77, -122.41
	resp, err := svc.ClockIn(ctx, timeentry.ClockInRequest{
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
		Context: &timeentry.ClockContext{
			IP:        &ip,
			Latitude:  &lat,
			Longitude: &long,
			Metadata:  map[string]string{"device": "kiosk-3"},
		},
	})

	require.NoError(t, err)
	stored := repo.entries[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, &ip, stored.ClockInIP)
	assert.Equal(t, &lat, stored.ClockInLatitude)
	assert.Equal(t, "kiosk-3", stored.Metadata["device"])
}

func TestTimeClockService_ClockIn_UnknownShiftRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	shiftID := "missing-shift"
	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
		ShiftID:    &shiftID,
	})
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func TestTimeClockService_ClockIn_ShiftBreakSeeded(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	shiftID := "shift-1"
	resp, err := svc.ClockIn(ctx, timeentry.ClockInRequest{
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
		ShiftID:    &shiftID,
	})

	require.NoError(t, err)
	assert.Equal(t, 45, repo.entries[resp.ID].BreakMinutes)
}

func TestTimeClockService_ClockIn_MissingEmployeeID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{CompanyID: testCompanyID})
	assert.Error(t, err)
}

// ========================================
// CLOCK OUT
// ========================================

func TestTimeClockService_ClockOut_Success(t *testing.T) {
	ctx := context.Background()
	pol := policy.Default(testCompanyID)
	svc, _ := newTestService(t, pol, mustTime(t, "2025-03-10T09:00:00Z"))

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})
	require.NoError(t, err)

	svc.now = func() time.Time { return mustTime(t, "2025-03-10T17:00:00Z") }
	resp, err := svc.ClockOut(ctx, timeentry.ClockOutRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})

	require.NoError(t, err)
	assert.Equal(t, 480, resp.TotalMinutes)
	assert.Equal(t, 480, resp.RegularMinutes)
	assert.Equal(t, 0, resp.OvertimeMinutes)
	// Approval is off in the default policy, so the entry auto-approves.
	assert.Equal(t, string(timeentry.StatusApproved), resp.Status)
}

func TestTimeClockService_ClockOut_AutoBreakDeducted(t *testing.T) {
	ctx := context.Background()
	pol := policy.Default(testCompanyID)
	pol.AutoDeductBreaks = true
	svc, _ := newTestService(t, pol, mustTime(t, "2025-03-10T09:00:00Z"))

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})
	require.NoError(t, err)

	svc.now = func() time.Time { return mustTime(t, "2025-03-10T17:00:00Z") }
	resp, err := svc.ClockOut(ctx, timeentry.ClockOutRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})

	require.NoError(t, err)
	assert.Equal(t, 450, resp.TotalMinutes)
	assert.Equal(t, 30, resp.BreakMinutes)
}

func TestTimeClockService_ClockOut_LongSessionNeedsApproval(t *testing.T) {
	ctx := context.Background()
	pol := policy.Default(testCompanyID)
	pol.RequireApproval = true
	pol.ApprovalThresholdHours = 12
	svc, _ := newTestService(t, pol, mustTime(t, "2025-03-10T06:00:00Z"))

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})
	require.NoError(t, err)

	// Thirteen hours on the clock: above the threshold, stays completed.
	svc.now = func() time.Time { return mustTime(t, "2025-03-10T19:00:00Z") }
	resp, err := svc.ClockOut(ctx, timeentry.ClockOutRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})

	require.NoError(t, err)
	assert.Equal(t, string(timeentry.StatusCompleted), resp.Status)
}

func TestTimeClockService_ClockOut_ShortSessionAutoApproves(t *testing.T) {
	ctx := context.Background()
	pol := policy.Default(testCompanyID)
	pol.RequireApproval = true
	pol.ApprovalThresholdHours = 12
	svc, repo := newTestService(t, pol, mustTime(t, "2025-03-10T09:00:00Z"))

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})
	require.NoError(t, err)

	svc.now = func() time.Time { return mustTime(t, "2025-03-10T17:00:00Z") }
	resp, err := svc.ClockOut(ctx, timeentry.ClockOutRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})

	require.NoError(t, err)
	assert.Equal(t, string(timeentry.StatusApproved), resp.Status)
	assert.NotNil(t, repo.entries[resp.ID].ApprovedAt)
}

func TestTimeClockService_ClockOut_NoActiveEntry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	_, err := svc.ClockOut(ctx, timeentry.ClockOutRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})
	assert.ErrorIs(t, err, timeentry.ErrAlreadyClockedOut)
}

// ========================================
// VALIDATION
// ========================================

func TestTimeClockService_ValidateClockIn_AllRulesPass(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	result, err := svc.ValidateClockIn(ctx, timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestTimeClockService_ValidateClockIn_ReportsEveryFailure(t *testing.T) {
	ctx := context.Background()
	pol := policy.Default(testCompanyID)
	pol.RequireGPS = true
	pol.AllowedIPs = []string{"10.0.0.0/8"}
	svc, _ := newTestService(t, pol, mustTime(t, "2025-03-10T09:00:00Z"))

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})
	require.NoError(t, err)

	ip := "203.0.113.7"
	result, err := svc.ValidateClockIn(ctx, timeentry.ClockInRequest{
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
		Context:    &timeentry.ClockContext{IP: &ip},
	})

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 3)
}

func TestTimeClockService_ValidateClockIn_AllowedCIDR(t *testing.T) {
	ctx := context.Background()
	pol := policy.Default(testCompanyID)
	pol.AllowedIPs = []string{"10.0.0.0/8"}
	svc, _ := newTestService(t, pol, mustTime(t, "2025-03-10T09:00:00Z"))

	ip := "10.42.1.9"
	result, err := svc.ValidateClockIn(ctx, timeentry.ClockInRequest{
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
		Context:    &timeentry.ClockContext{IP: &ip},
	})

	require.NoError(t, err)
	assert.True(t, result.Valid)
}

// ========================================
// AUTO CLOCK OUT
// ========================================

func TestTimeClockService_AutoClockOutStaleEntries(t *testing.T) {
	ctx := context.Background()
	pol := policy.Default(testCompanyID)
	pol.AutoClockOutHours = 16
	svc, repo := newTestService(t, pol, mustTime(t, "2025-03-10T08:00:00Z"))

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})
	require.NoError(t, err)

	// Twenty hours later the session is past the sixteen-hour window.
	svc.now = func() time.Time { return mustTime(t, "2025-03-11T04:00:00Z") }
	results, err := svc.AutoClockOutStaleEntries(ctx, testCompanyID)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	closed := repo.entries[results[0].EntryID]
	require.NotNil(t, closed.ClockOut)
	assert.Equal(t, 1200, closed.TotalMinutes)

	// A second run finds nothing left to close.
	results, err = svc.AutoClockOutStaleEntries(ctx, testCompanyID)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTimeClockService_AutoClockOutStaleEntries_FreshEntryUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T08:00:00Z"))

	_, err := svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})
	require.NoError(t, err)

	svc.now = func() time.Time { return mustTime(t, "2025-03-10T12:00:00Z") }
	results, err := svc.AutoClockOutStaleEntries(ctx, testCompanyID)

	require.NoError(t, err)
	assert.Empty(t, results)

	active, err := svc.GetActiveEntry(ctx, testEmployeeID, testCompanyID)
	require.NoError(t, err)
	assert.NotNil(t, active)
}

// ========================================
// STATUS AND UPDATES
// ========================================

func TestTimeClockService_ClockStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	status, err := svc.ClockStatus(ctx, testEmployeeID, testCompanyID)
	require.NoError(t, err)
	assert.False(t, status.HasActiveEntry)
	assert.True(t, status.CanClockIn)
	assert.False(t, status.CanClockOut)

	_, err = svc.ClockIn(ctx, timeentry.ClockInRequest{EmployeeID: testEmployeeID, CompanyID: testCompanyID})
	require.NoError(t, err)

	status, err = svc.ClockStatus(ctx, testEmployeeID, testCompanyID)
	require.NoError(t, err)
	assert.True(t, status.HasActiveEntry)
	assert.False(t, status.CanClockIn)
	assert.True(t, status.CanClockOut)
	require.NotNil(t, status.ActiveEntry)
}

func TestTimeClockService_UpdateEntry_RecalculatesMinutes(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	out := mustTime(t, "2025-03-10T17:00:00Z")
	created, err := repo.Create(ctx, timeentry.TimeEntry{
		EmployeeID:   testEmployeeID,
		CompanyID:    testCompanyID,
		EntryType:    timeentry.EntryTypeClock,
		Status:       timeentry.StatusCompleted,
		ClockIn:      mustTime(t, "2025-03-10T09:00:00Z"),
		ClockOut:     &out,
		TotalMinutes: 480,
	})
	require.NoError(t, err)

	newOut := "2025-03-10T18:00:00Z"
	breakMins := 60
	resp, err := svc.UpdateEntry(ctx, testCompanyID, timeentry.UpdateEntryRequest{
		ID:           created.ID,
		ClockOutTime: &newOut,
		BreakMinutes: &breakMins,
	})

	require.NoError(t, err)
	assert.Equal(t, 480, resp.TotalMinutes)
	assert.Equal(t, 60, resp.BreakMinutes)
}

func TestTimeClockService_UpdateEntry_ExportedIsImmutable(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	out := mustTime(t, "2025-03-10T17:00:00Z")
	created, err := repo.Create(ctx, timeentry.TimeEntry{
		EmployeeID:        testEmployeeID,
		CompanyID:         testCompanyID,
		Status:            timeentry.StatusPaid,
		ClockIn:           mustTime(t, "2025-03-10T09:00:00Z"),
		ClockOut:          &out,
		ExportedToPayroll: true,
	})
	require.NoError(t, err)

	notes := "late arrival"
	_, err = svc.UpdateEntry(ctx, testCompanyID, timeentry.UpdateEntryRequest{ID: created.ID, Notes: &notes})
	assert.ErrorIs(t, err, timeentry.ErrEntryExported)
}

func TestTimeClockService_ListEntries_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, policy.Default(testCompanyID), mustTime(t, "2025-03-10T09:00:00Z"))

	out := mustTime(t, "2025-03-10T17:00:00Z")
	_, err := repo.Create(ctx, timeentry.TimeEntry{
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
		Status:     timeentry.StatusApproved,
		ClockIn:    mustTime(t, "2025-03-10T09:00:00Z"),
		ClockOut:   &out,
	})
	require.NoError(t, err)

	resp, err := svc.ListEntries(ctx, timeentry.EntryFilter{}, testCompanyID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Len(t, resp.Entries, 1)
}
