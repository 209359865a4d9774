package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	domaincal "github.com/presensia/attendance-backend-go/internal/domain/calendar"
	"github.com/presensia/attendance-backend-go/internal/domain/holiday"
	"github.com/presensia/attendance-backend-go/internal/domain/leave"
	"github.com/presensia/attendance-backend-go/internal/domain/report"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	f.records = append(f.records, att)
	return att, true, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if filter.UserID != nil && rec.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && rec.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && rec.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenForDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeWorkingDaysRepo struct {
	configs map[[2]int]domaincal.WorkingDaysConfig
}

func (f *fakeWorkingDaysRepo) GetByMonth(ctx context.Context, year, month int) (*domaincal.WorkingDaysConfig, error) {
	if cfg, ok := f.configs[[2]int{year, month}]; ok {
		return &cfg, nil
	}
	return nil, nil
}

func (f *fakeWorkingDaysRepo) Upsert(ctx context.Context, cfg domaincal.WorkingDaysConfig) (domaincal.WorkingDaysConfig, error) {
	if f.configs == nil {
		f.configs = make(map[[2]int]domaincal.WorkingDaysConfig)
	}
	f.configs[[2]int{cfg.Year, cfg.Month}] = cfg
	return cfg, nil
}

func (f *fakeWorkingDaysRepo) Delete(ctx context.Context, year, month int) error {
	delete(f.configs, [2]int{year, month})
	return nil
}

type fakeUserWorkingDaysRepo struct {
	configs   map[string]domaincal.UserWorkingDaysConfig
	failUsers map[string]bool
}

func userKey(userID string, year, month int) string {
	return userID + "|" + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (f *fakeUserWorkingDaysRepo) GetByUserAndMonth(ctx context.Context, userID string, year, month int) (*domaincal.UserWorkingDaysConfig, error) {
	if f.failUsers[userID] {
		return nil, errors.New("storage unavailable")
	}
	if cfg, ok := f.configs[userKey(userID, year, month)]; ok {
		return &cfg, nil
	}
	return nil, nil
}

func (f *fakeUserWorkingDaysRepo) Upsert(ctx context.Context, cfg domaincal.UserWorkingDaysConfig) (domaincal.UserWorkingDaysConfig, error) {
	if f.configs == nil {
		f.configs = make(map[string]domaincal.UserWorkingDaysConfig)
	}
	f.configs[userKey(cfg.UserID, cfg.Year, cfg.Month)] = cfg
	return cfg, nil
}

func (f *fakeUserWorkingDaysRepo) Delete(ctx context.Context, userID string, year, month int) error {
	delete(f.configs, userKey(userID, year, month))
	return nil
}

func (f *fakeUserWorkingDaysRepo) ListByMonth(ctx context.Context, year, month int) ([]domaincal.UserWorkingDaysConfig, error) {
	var out []domaincal.UserWorkingDaysConfig
	for _, cfg := range f.configs {
		if cfg.Year == year && cfg.Month == month {
			out = append(out, cfg)
		}
	}
	return out, nil
}

type fakeLeaveOverlay struct {
	leaves []leave.Leave
}

func (f *fakeLeaveOverlay) ApprovedLeavesOverlapping(ctx context.Context, userID string, start, end time.Time) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeHolidayOverlay struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayOverlay) ActiveHolidaysOverlapping(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

type testEnv struct {
	attendanceRepo *fakeAttendanceRepo
	workingDays    *fakeWorkingDaysRepo
	userDays       *fakeUserWorkingDaysRepo
	leaves         *fakeLeaveOverlay
	holidays       *fakeHolidayOverlay
	svc            report.ReportService
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		attendanceRepo: &fakeAttendanceRepo{},
		workingDays:    &fakeWorkingDaysRepo{},
		userDays:       &fakeUserWorkingDaysRepo{},
		leaves:         &fakeLeaveOverlay{},
		holidays:       &fakeHolidayOverlay{},
	}
	env.svc = NewReportService(
		env.attendanceRepo,
		env.workingDays,
		env.userDays,
		env.leaves,
		env.holidays,
		clock.Fixed(now),
	)
	return env
}

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func checkedOut(userID string, date time.Time, hours float64) attendance.Attendance {
	return attendance.Attendance{
		UserID:      userID,
		Date:        date,
		Status:      attendance.StatusCheckedOut,
		HoursWorked: hours,
	}
}

func TestPeriodRange_WeeklyIsSaturdayThroughFriday(t *testing.T) {
	// 2026-03-10 is a Tuesday
	start, end := periodRange(time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local), report.PeriodWeekly)

	assert.Equal(t, localDate(2026, time.March, 7), start) // previous Saturday
	assert.Equal(t, time.Date(2026, time.March, 13, 23, 59, 59, 999000000, time.Local), end)

	// A Saturday starts its own week
	start, _ = periodRange(time.Date(2026, time.March, 7, 9, 0, 0, 0, time.Local), report.PeriodWeekly)
	assert.Equal(t, localDate(2026, time.March, 7), start)
}

func TestPeriodRange_DailyAndMonthly(t *testing.T) {
	now := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local)

	start, end := periodRange(now, report.PeriodDaily)
	assert.Equal(t, localDate(2026, time.March, 10), start)
	assert.Equal(t, time.Date(2026, time.March, 10, 23, 59, 59, 999000000, time.Local), end)

	start, end = periodRange(now, report.PeriodMonthly)
	assert.Equal(t, localDate(2026, time.March, 1), start)
	assert.Equal(t, 31, end.Day())
}

func TestReportForRange_Summary(t *testing.T) {
	env := newTestEnv(time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local))
	env.attendanceRepo.records = []attendance.Attendance{
		checkedOut("user-1", localDate(2026, time.March, 2), 8.0),
		checkedOut("user-1", localDate(2026, time.March, 3), 7.5),
		{
			UserID: "user-1",
			Date:   localDate(2026, time.March, 4),
			Status: attendance.StatusCheckedIn,
		},
	}

	resp, err := env.svc.ReportForRange(context.Background(), report.ReportFilter{Period: report.PeriodMonthly})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Summary.TotalRecords)
	assert.Equal(t, 15.5, resp.Summary.TotalHours)
	assert.Equal(t, 2, resp.Summary.CountByStatus[attendance.StatusCheckedOut])
	assert.Equal(t, 1, resp.Summary.CountByStatus[attendance.StatusCheckedIn])
	// Average over checked-out records only: 15.5 / 2
	assert.Equal(t, 7.8, resp.Summary.AverageHours)
	assert.Len(t, resp.Records, 3)
}

func TestReportForRange_RejectsInvertedRange(t *testing.T) {
	env := newTestEnv(time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local))
	start := "2026-03-20"
	end := "2026-03-01"

	_, err := env.svc.ReportForRange(context.Background(), report.ReportFilter{StartDate: &start, EndDate: &end})
	assert.Error(t, err)
}

func TestWorkingHoursTracking_MonthlyPercentage(t *testing.T) {
	env := newTestEnv(time.Date(2026, time.March, 25, 14, 0, 0, 0, time.Local))

	// Global config with exactly 20 working days in March
	days := make([]domaincal.DayOverride, 0, 31)
	for d := 1; d <= 31; d++ {
		days = append(days, domaincal.DayOverride{Day: d, IsWorkingDay: d <= 20})
	}
	env.workingDays.configs = map[[2]int]domaincal.WorkingDaysConfig{
		{2026, 3}: {Year: 2026, Month: 3, Days: days},
	}

	// Custom 6-hour days, 90 hours actually logged
	env.userDays.configs = map[string]domaincal.UserWorkingDaysConfig{
		userKey("user-1", 2026, 3): {
			UserID: "user-1", Year: 2026, Month: 3,
			DailyHours: 6, IsCustom: true,
		},
	}
	env.attendanceRepo.records = []attendance.Attendance{
		checkedOut("user-1", localDate(2026, time.March, 2), 45),
		checkedOut("user-1", localDate(2026, time.March, 3), 45),
	}

	rows, err := env.svc.WorkingHoursTracking(context.Background(), report.TrackingRequest{
		UserID: "user-1",
		Year:   2026,
		Month:  3,
		Period: report.PeriodMonthly,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 20, row.TotalWorkingDays)
	assert.Equal(t, 6.0, row.DailyHours)
	assert.Equal(t, 120.0, row.TotalRequiredHours)
	assert.Equal(t, 90.0, row.TotalHoursWorked)
	assert.Equal(t, 75, row.Percentage)
}

func TestWorkingHoursTracking_ZeroRequiredGuard(t *testing.T) {
	env := newTestEnv(time.Date(2026, time.March, 25, 14, 0, 0, 0, time.Local))

	// Every day of the month overridden to non-working
	days := make([]domaincal.DayOverride, 0, 31)
	for d := 1; d <= 31; d++ {
		days = append(days, domaincal.DayOverride{Day: d, IsWorkingDay: false})
	}
	env.workingDays.configs = map[[2]int]domaincal.WorkingDaysConfig{
		{2026, 3}: {Year: 2026, Month: 3, Days: days},
	}

	rows, err := env.svc.WorkingHoursTracking(context.Background(), report.TrackingRequest{
		UserID: "user-1",
		Year:   2026,
		Month:  3,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Percentage)
}

func TestMeanMonthlyDailyHours(t *testing.T) {
	assert.Equal(t, 0.0, meanMonthlyDailyHours(nil))
	assert.Equal(t, 8.0, meanMonthlyDailyHours([]float64{8, 8, 8}))
	assert.Equal(t, 7.0, meanMonthlyDailyHours([]float64{6, 8}))
}

func TestYearlyCalendarAll_AudienceAndPartialFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local))

	// user-1 and user-2 have attendance; user-3 only a stored config
	env.attendanceRepo.records = []attendance.Attendance{
		checkedOut("user-2", localDate(2026, time.January, 5), 8.0),
		checkedOut("user-1", localDate(2026, time.January, 6), 8.0),
	}
	env.userDays.configs = map[string]domaincal.UserWorkingDaysConfig{
		userKey("user-3", 2026, 2): {UserID: "user-3", Year: 2026, Month: 2},
	}
	env.userDays.failUsers = map[string]bool{"user-2": true}

	resp, err := env.svc.YearlyCalendarAll(ctx, 2026)
	require.NoError(t, err)

	assert.Equal(t, 2026, resp.Year)
	require.Len(t, resp.Calendars, 2)
	// Sorted audience minus the failed user
	assert.Equal(t, "user-1", resp.Calendars[0].UserID)
	assert.Equal(t, "user-3", resp.Calendars[1].UserID)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors, "user-2")

	for _, cal := range resp.Calendars {
		assert.Len(t, cal.Days, 365)
	}
}

func TestYearlyCalendarAll_RejectsBadYear(t *testing.T) {
	env := newTestEnv(time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local))

	_, err := env.svc.YearlyCalendarAll(context.Background(), 1999)
	assert.Error(t, err)
}

func TestYearlyCalendar_PrecedenceAndModes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.Local)
	env := newTestEnv(now)

	newYear := localDate(2026, time.January, 1)
	env.holidays.holidays = []holiday.Holiday{{
		Name:        "New Year",
		HolidayType: holiday.TypeSingleDay,
		Date:        &newYear,
		IsActive:    true,
	}}
	// Leave on the holiday itself plus the following working day
	leaveStart := localDate(2026, time.January, 1)
	leaveEnd := localDate(2026, time.January, 2)
	env.leaves.leaves = []leave.Leave{{
		UserID:    "user-1",
		Category:  leave.CategoryMultipleDay,
		StartDate: &leaveStart,
		EndDate:   &leaveEnd,
		Status:    leave.StatusApproved,
	}}
	env.attendanceRepo.records = []attendance.Attendance{
		checkedOut("user-1", localDate(2026, time.January, 5), 8.0),
	}

	adminResp, err := env.svc.YearlyCalendar(ctx, "user-1", 2026, report.ModeAdmin)
	require.NoError(t, err)
	selfResp, err := env.svc.YearlyCalendar(ctx, "user-1", 2026, report.ModeSelf)
	require.NoError(t, err)

	require.Len(t, adminResp.Days, 365)

	// Holiday beats the overlapping leave
	jan1 := adminResp.Days[0]
	assert.Equal(t, report.DayStatusHoliday, jan1.Status)
	assert.Equal(t, "New Year", jan1.HolidayName)

	// 2026-01-02 is a Friday, working under the synthesized Mon-Sat default
	assert.Equal(t, report.DayStatusLeave, adminResp.Days[1].Status)

	// 2026-01-04 is a Sunday
	assert.Equal(t, report.DayStatusNonWorking, adminResp.Days[3].Status)

	jan5 := adminResp.Days[4]
	assert.Equal(t, report.DayStatusCheckedOut, jan5.Status)
	assert.Equal(t, 8.0, jan5.HoursWorked)

	// 2026-01-03 is a past working Saturday with no data
	assert.Equal(t, report.DayStatusAbsent, adminResp.Days[2].Status)

	// Grid statuses are mode-independent
	for i := range adminResp.Days {
		assert.Equal(t, adminResp.Days[i].Status, selfResp.Days[i].Status)
	}

	// Admin counts future working days absent, the self view does not
	assert.Greater(t, adminResp.Summary.AbsentDays, selfResp.Summary.AbsentDays)
	assert.Equal(t, adminResp.Summary.PastWorkingDays, selfResp.Summary.PastWorkingDays)
	assert.Equal(t, 1, selfResp.Summary.PresentDays)
	assert.Equal(t, 1, selfResp.Summary.LeaveDays)

	// Self absences reconcile with the past-working-day ledger
	expectedSelfAbsent := selfResp.Summary.PastWorkingDays - selfResp.Summary.PresentDays - selfResp.Summary.LeaveDays
	assert.Equal(t, expectedSelfAbsent, selfResp.Summary.AbsentDays)

	assert.Greater(t, selfResp.Summary.AttendanceRate, 0)
}
