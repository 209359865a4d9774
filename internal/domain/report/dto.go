package report

import (
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// Report periods
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// ReportFilter selects attendance records for a range report. When both
// dates are absent, Period drives the range; Period defaults to monthly.
type ReportFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	UserID    *string `json:"user_id,omitempty"`
	Status    *string `json:"status,omitempty"`
	Period    string  `json:"period,omitempty"`
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		attendance.StatusCheckedIn, attendance.StatusCheckedOut,
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: checked_in, checked_out",
		})
	}

	if f.Period == "" {
		f.Period = PeriodMonthly
	} else if !validator.IsInSlice(f.Period, []string{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be one of: daily, weekly, monthly, yearly",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReportSummary struct {
	TotalRecords  int            `json:"total_records"`
	TotalHours    float64        `json:"total_hours"`
	CountByStatus map[string]int `json:"count_by_status"`
	AverageHours  float64        `json:"average_hours"` // over checked-out records
}

type AttendanceReportResponse struct {
	StartDate string                          `json:"start_date"`
	EndDate   string                          `json:"end_date"`
	Records   []attendance.AttendanceResponse `json:"records"`
	Summary   ReportSummary                   `json:"summary"`
}

// TrackingRequest drives the working-hours tracking report. UserID empty
// means every user with attendance or a config in the range.
type TrackingRequest struct {
	UserID string `json:"user_id,omitempty"`
	Year   int    `json:"year"`
	Month  int    `json:"month,omitempty"` // ignored for yearly period
	Period string `json:"period"`          // monthly or yearly
}

func (r *TrackingRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if r.Period == "" {
		r.Period = PeriodMonthly
	}
	if !validator.IsInSlice(r.Period, []string{PeriodMonthly, PeriodYearly}) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be one of: monthly, yearly",
		})
	}

	if r.Period == PeriodMonthly && !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TrackingRow struct {
	UserID             string  `json:"user_id"`
	TotalWorkingDays   int     `json:"total_working_days"`
	DailyHours         float64 `json:"daily_hours"`
	TotalRequiredHours float64 `json:"total_required_hours"`
	TotalHoursWorked   float64 `json:"total_hours_worked"`
	Percentage         int     `json:"percentage"`
}

// Yearly calendar day statuses, in display precedence order.
const (
	DayStatusHoliday    = "holiday"
	DayStatusLeave      = "leave"
	DayStatusCheckedIn  = "checked_in"
	DayStatusCheckedOut = "checked_out"
	DayStatusNonWorking = "non_working"
	DayStatusAbsent     = "absent"
)

type CalendarDay struct {
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	HoursWorked float64 `json:"hours_worked,omitempty"`
	HolidayName string  `json:"holiday_name,omitempty"`
}

type CalendarSummary struct {
	TotalWorkingDays int `json:"total_working_days"` // excluding holidays
	PresentDays      int `json:"present_days"`
	LeaveDays        int `json:"leave_days"`
	AbsentDays       int `json:"absent_days"`        // past-only in the self view
	PastWorkingDays  int `json:"past_working_days"`  // past-only, excluding holidays
	AttendanceRate   int `json:"attendance_rate"`    // present/pastWorkingDays, percent
}

type YearlyCalendarResponse struct {
	UserID  string          `json:"user_id"`
	Year    int             `json:"year"`
	Days    []CalendarDay   `json:"days"`
	Summary CalendarSummary `json:"summary"`
}

// YearlyCalendarBatchResponse is the all-users audience: one calendar per
// user, with per-user failures collected instead of aborting the batch.
type YearlyCalendarBatchResponse struct {
	Year      int                      `json:"year"`
	Calendars []YearlyCalendarResponse `json:"calendars"`
	Errors    map[string]string        `json:"errors,omitempty"`
}
