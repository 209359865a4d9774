package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	domaincal "github.com/presensia/attendance-backend-go/internal/domain/calendar"
	"github.com/presensia/attendance-backend-go/internal/domain/holiday"
	"github.com/presensia/attendance-backend-go/internal/domain/leave"
	"github.com/presensia/attendance-backend-go/internal/domain/report"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	servicecal "github.com/presensia/attendance-backend-go/internal/service/calendar"
)

type ReportServiceImpl struct {
	attendanceRepo      attendance.AttendanceRepository
	workingDaysRepo     domaincal.WorkingDaysRepository
	userWorkingDaysRepo domaincal.UserWorkingDaysRepository
	leaveOverlay        leave.LeaveOverlay
	holidayOverlay      holiday.HolidayOverlay
	clock               clock.Clock
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	workingDaysRepo domaincal.WorkingDaysRepository,
	userWorkingDaysRepo domaincal.UserWorkingDaysRepository,
	leaveOverlay leave.LeaveOverlay,
	holidayOverlay holiday.HolidayOverlay,
	clk clock.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo:      attendanceRepo,
		workingDaysRepo:     workingDaysRepo,
		userWorkingDaysRepo: userWorkingDaysRepo,
		leaveOverlay:        leaveOverlay,
		holidayOverlay:      holidayOverlay,
		clock:               clk,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// periodRange derives the report window when no explicit dates are given.
// The business week runs Saturday through Friday.
func periodRange(now time.Time, period string) (time.Time, time.Time) {
	today := dateOnly(now)

	switch period {
	case report.PeriodDaily:
		return today, endOfDay(today)
	case report.PeriodWeekly:
		// Most recent Saturday on or before today
		daysSinceSaturday := (int(today.Weekday()) - int(time.Saturday) + 7) % 7
		start := today.AddDate(0, 0, -daysSinceSaturday)
		return start, endOfDay(start.AddDate(0, 0, 6))
	case report.PeriodYearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, endOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location()))
	default: // monthly
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, endOfDay(start.AddDate(0, 1, -1))
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}

func mapRecord(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:          att.ID,
		UserID:      att.UserID,
		Date:        att.Date.Format("2006-01-02"),
		Status:      att.Status,
		CheckIn:     timePtrToString(att.CheckIn),
		CheckOut:    timePtrToString(att.CheckOut),
		HoursWorked: att.HoursWorked,
		Notes:       att.Notes,
		AdminNotes:  att.AdminNotes,
		EditedBy:    att.EditedBy,
	}
	if !att.CreatedAt.IsZero() {
		resp.CreatedAt = att.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if !att.UpdatedAt.IsZero() {
		resp.UpdatedAt = att.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

func summarize(records []attendance.Attendance) report.ReportSummary {
	summary := report.ReportSummary{
		TotalRecords:  len(records),
		CountByStatus: make(map[string]int),
	}

	var checkedOutHours float64
	var checkedOutCount int
	for _, rec := range records {
		summary.TotalHours += rec.HoursWorked
		summary.CountByStatus[rec.Status]++
		if rec.Status == attendance.StatusCheckedOut {
			checkedOutHours += rec.HoursWorked
			checkedOutCount++
		}
	}

	summary.TotalHours = attendance.RoundHours(summary.TotalHours)
	if checkedOutCount > 0 {
		summary.AverageHours = attendance.RoundHours(checkedOutHours / float64(checkedOutCount))
	}

	return summary
}

// ReportForRange implements report.ReportService.
func (s *ReportServiceImpl) ReportForRange(ctx context.Context, filter report.ReportFilter) (report.AttendanceReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.AttendanceReportResponse{}, err
	}

	start, end := periodRange(s.clock.Now(), filter.Period)
	if filter.StartDate != nil && *filter.StartDate != "" {
		start, _ = validator.IsValidDate(*filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		parsed, _ := validator.IsValidDate(*filter.EndDate)
		end = endOfDay(parsed)
	}
	if end.Before(start) {
		return report.AttendanceReportResponse{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}

	records, err := s.attendanceRepo.List(ctx, attendance.ListFilter{
		UserID:    filter.UserID,
		Status:    filter.Status,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return report.AttendanceReportResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecord(rec))
	}

	return report.AttendanceReportResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Records:   responses,
		Summary:   summarize(records),
	}, nil
}

// globalConfig returns the stored month config or a synthesized one.
func (s *ReportServiceImpl) globalConfig(ctx context.Context, year, month int) (domaincal.WorkingDaysConfig, error) {
	stored, err := s.workingDaysRepo.GetByMonth(ctx, year, month)
	if err != nil {
		return domaincal.WorkingDaysConfig{}, fmt.Errorf("failed to get working days config: %w", err)
	}
	if stored != nil {
		return *stored, nil
	}
	return servicecal.SynthesizeMonth(year, month), nil
}

// countWorkingDays walks a month through the resolver for one user.
func countWorkingDays(year, month int, user *domaincal.UserWorkingDaysConfig, global *domaincal.WorkingDaysConfig) int {
	count := 0
	for day := 1; day <= domaincal.DaysInMonth(year, month); day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		if servicecal.ResolveWorkingDay(date, user, global) {
			count++
		}
	}
	return count
}

// meanMonthlyDailyHours is the yearly-mode daily-hours figure: a simple
// arithmetic mean of the twelve monthly values, not weighted by each month's
// working-day count.
func meanMonthlyDailyHours(monthly []float64) float64 {
	if len(monthly) == 0 {
		return 0
	}
	var sum float64
	for _, h := range monthly {
		sum += h
	}
	return sum / float64(len(monthly))
}

func roundPercentage(worked, required float64) int {
	if required <= 0 {
		return 0
	}
	return int(math.Round(worked / required * 100))
}

// trackingMonths expands the request into the month range it covers.
func trackingMonths(req report.TrackingRequest) []int {
	if req.Period == report.PeriodYearly {
		months := make([]int, 12)
		for i := range months {
			months[i] = i + 1
		}
		return months
	}
	return []int{req.Month}
}

// WorkingHoursTracking implements report.ReportService.
func (s *ReportServiceImpl) WorkingHoursTracking(ctx context.Context, req report.TrackingRequest) ([]report.TrackingRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	months := trackingMonths(req)
	start := time.Date(req.Year, time.Month(months[0]), 1, 0, 0, 0, 0, time.Local)
	end := endOfDay(time.Date(req.Year, time.Month(months[len(months)-1]), 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1))

	listFilter := attendance.ListFilter{StartDate: &start, EndDate: &end}
	if req.UserID != "" {
		listFilter.UserID = &req.UserID
	}
	records, err := s.attendanceRepo.List(ctx, listFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	workedByUser := make(map[string]float64)
	for _, rec := range records {
		workedByUser[rec.UserID] += rec.HoursWorked
	}

	userIDs, err := s.trackingUsers(ctx, req, months, workedByUser)
	if err != nil {
		return nil, err
	}

	globals := make(map[int]domaincal.WorkingDaysConfig, len(months))
	for _, month := range months {
		cfg, err := s.globalConfig(ctx, req.Year, month)
		if err != nil {
			return nil, err
		}
		globals[month] = cfg
	}

	rows := make([]report.TrackingRow, 0, len(userIDs))
	for _, userID := range userIDs {
		totalWorkingDays := 0
		monthlyHours := make([]float64, 0, len(months))
		for _, month := range months {
			userCfg, err := s.userWorkingDaysRepo.GetByUserAndMonth(ctx, userID, req.Year, month)
			if err != nil {
				return nil, fmt.Errorf("failed to get user working days config: %w", err)
			}
			global := globals[month]
			totalWorkingDays += countWorkingDays(req.Year, month, userCfg, &global)
			monthlyHours = append(monthlyHours, servicecal.ResolveDailyHours(userCfg))
		}

		dailyHours := meanMonthlyDailyHours(monthlyHours)
		required := float64(totalWorkingDays) * dailyHours
		worked := attendance.RoundHours(workedByUser[userID])

		rows = append(rows, report.TrackingRow{
			UserID:             userID,
			TotalWorkingDays:   totalWorkingDays,
			DailyHours:         dailyHours,
			TotalRequiredHours: required,
			TotalHoursWorked:   worked,
			Percentage:         roundPercentage(worked, required),
		})
	}

	return rows, nil
}

// trackingUsers resolves the audience: the requested user, or everyone with
// attendance or a stored config in the range.
func (s *ReportServiceImpl) trackingUsers(ctx context.Context, req report.TrackingRequest, months []int, workedByUser map[string]float64) ([]string, error) {
	if req.UserID != "" {
		return []string{req.UserID}, nil
	}

	seen := make(map[string]struct{}, len(workedByUser))
	for userID := range workedByUser {
		seen[userID] = struct{}{}
	}
	for _, month := range months {
		configs, err := s.userWorkingDaysRepo.ListByMonth(ctx, req.Year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to list user working days configs: %w", err)
		}
		for _, cfg := range configs {
			seen[cfg.UserID] = struct{}{}
		}
	}

	userIDs := make([]string, 0, len(seen))
	for userID := range seen {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)
	return userIDs, nil
}

// YearlyCalendar implements report.ReportService. Day statuses are identical
// in both modes; the mode only changes which days feed the absent and
// past-working-day counters.
func (s *ReportServiceImpl) YearlyCalendar(ctx context.Context, userID string, year int, mode report.CalendarMode) (report.YearlyCalendarResponse, error) {
	if !validator.IsValidYear(year) {
		return report.YearlyCalendarResponse{}, validator.ValidationErrors{{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		}}
	}
	if validator.IsEmpty(userID) {
		return report.YearlyCalendarResponse{}, validator.ValidationErrors{{
			Field:   "user_id",
			Message: "user_id is required",
		}}
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := endOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local))

	records, err := s.attendanceRepo.List(ctx, attendance.ListFilter{
		UserID:    &userID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return report.YearlyCalendarResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}
	recordByDate := make(map[string]attendance.Attendance, len(records))
	for _, rec := range records {
		recordByDate[rec.Date.Format("2006-01-02")] = rec
	}

	leaves, err := s.leaveOverlay.ApprovedLeavesOverlapping(ctx, userID, start, end)
	if err != nil {
		return report.YearlyCalendarResponse{}, fmt.Errorf("failed to get leaves: %w", err)
	}
	holidays, err := s.holidayOverlay.ActiveHolidaysOverlapping(ctx, start, end)
	if err != nil {
		return report.YearlyCalendarResponse{}, fmt.Errorf("failed to get holidays: %w", err)
	}

	today := dateOnly(s.clock.Now())
	resp := report.YearlyCalendarResponse{UserID: userID, Year: year}

	for month := 1; month <= 12; month++ {
		global, err := s.globalConfig(ctx, year, month)
		if err != nil {
			return report.YearlyCalendarResponse{}, err
		}
		userCfg, err := s.userWorkingDaysRepo.GetByUserAndMonth(ctx, userID, year, month)
		if err != nil {
			return report.YearlyCalendarResponse{}, fmt.Errorf("failed to get user working days config: %w", err)
		}

		for dayNum := 1; dayNum <= domaincal.DaysInMonth(year, month); dayNum++ {
			date := time.Date(year, time.Month(month), dayNum, 0, 0, 0, 0, time.Local)
			day := s.classifyDay(date, userCfg, &global, recordByDate, leaves, holidays)
			resp.Days = append(resp.Days, day)

			isPast := !date.After(today)
			isWorking := servicecal.ResolveWorkingDay(date, userCfg, &global)

			switch day.Status {
			case report.DayStatusHoliday:
				// Excluded from every working-day counter
			case report.DayStatusLeave:
				resp.Summary.LeaveDays++
				if isWorking {
					resp.Summary.TotalWorkingDays++
					if isPast {
						resp.Summary.PastWorkingDays++
					}
				}
			case report.DayStatusCheckedIn, report.DayStatusCheckedOut:
				resp.Summary.PresentDays++
				if isWorking {
					resp.Summary.TotalWorkingDays++
					if isPast {
						resp.Summary.PastWorkingDays++
					}
				}
			case report.DayStatusAbsent:
				resp.Summary.TotalWorkingDays++
				if isPast {
					resp.Summary.PastWorkingDays++
				}
				if mode == report.ModeAdmin || isPast {
					resp.Summary.AbsentDays++
				}
			}
		}
	}

	if resp.Summary.PastWorkingDays > 0 {
		rate := float64(resp.Summary.PresentDays) / float64(resp.Summary.PastWorkingDays) * 100
		resp.Summary.AttendanceRate = int(math.Round(rate))
	}

	return resp, nil
}

// YearlyCalendarAll implements report.ReportService. The audience is resolved
// the same way as tracking: everyone with attendance or a stored user config
// in the year. A user whose calendar fails is reported, not fatal.
func (s *ReportServiceImpl) YearlyCalendarAll(ctx context.Context, year int) (report.YearlyCalendarBatchResponse, error) {
	if !validator.IsValidYear(year) {
		return report.YearlyCalendarBatchResponse{}, validator.ValidationErrors{{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		}}
	}

	userIDs, err := s.calendarUsers(ctx, year)
	if err != nil {
		return report.YearlyCalendarBatchResponse{}, err
	}

	resp := report.YearlyCalendarBatchResponse{
		Year:      year,
		Calendars: make([]report.YearlyCalendarResponse, 0, len(userIDs)),
		Errors:    make(map[string]string),
	}
	for _, userID := range userIDs {
		cal, err := s.YearlyCalendar(ctx, userID, year, report.ModeAdmin)
		if err != nil {
			resp.Errors[userID] = err.Error()
			continue
		}
		resp.Calendars = append(resp.Calendars, cal)
	}

	if len(resp.Errors) == 0 {
		resp.Errors = nil
	}
	return resp, nil
}

// calendarUsers resolves the all-users audience for a year.
func (s *ReportServiceImpl) calendarUsers(ctx context.Context, year int) ([]string, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := endOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local))

	records, err := s.attendanceRepo.List(ctx, attendance.ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		seen[rec.UserID] = struct{}{}
	}
	for month := 1; month <= 12; month++ {
		configs, err := s.userWorkingDaysRepo.ListByMonth(ctx, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to list user working days configs: %w", err)
		}
		for _, cfg := range configs {
			seen[cfg.UserID] = struct{}{}
		}
	}

	userIDs := make([]string, 0, len(seen))
	for userID := range seen {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)
	return userIDs, nil
}

// classifyDay applies the display precedence:
// holiday > leave > attendance > non-working > absent.
func (s *ReportServiceImpl) classifyDay(
	date time.Time,
	userCfg *domaincal.UserWorkingDaysConfig,
	global *domaincal.WorkingDaysConfig,
	recordByDate map[string]attendance.Attendance,
	leaves []leave.Leave,
	holidays []holiday.Holiday,
) report.CalendarDay {
	day := report.CalendarDay{Date: date.Format("2006-01-02")}

	for _, h := range holidays {
		if h.CoversDate(date) {
			day.Status = report.DayStatusHoliday
			day.HolidayName = h.Name
			return day
		}
	}

	for _, l := range leaves {
		if l.CoversDate(date) {
			day.Status = report.DayStatusLeave
			return day
		}
	}

	if rec, ok := recordByDate[day.Date]; ok {
		day.Status = rec.Status
		day.HoursWorked = rec.HoursWorked
		return day
	}

	if !servicecal.ResolveWorkingDay(date, userCfg, global) {
		day.Status = report.DayStatusNonWorking
		return day
	}

	day.Status = report.DayStatusAbsent
	return day
}
