package report

import "context"

// CalendarMode selects which audience rules the yearly calendar applies.
// The admin view marks any working day without data absent; the self view
// excludes future days from the absent and past-working-day counters.
type CalendarMode int

const (
	ModeAdmin CalendarMode = iota
	ModeSelf
)

// ReportService folds attendance, configs, and overlays into period reports.
type ReportService interface {
	// ReportForRange returns filtered records plus the derived summary.
	// When no explicit dates are given the filter's period picks the range.
	ReportForRange(ctx context.Context, filter ReportFilter) (AttendanceReportResponse, error)

	// WorkingHoursTracking computes required-vs-worked rows per user
	WorkingHoursTracking(ctx context.Context, req TrackingRequest) ([]TrackingRow, error)

	// YearlyCalendar builds the per-day grid for a user's year
	YearlyCalendar(ctx context.Context, userID string, year int, mode CalendarMode) (YearlyCalendarResponse, error)

	// YearlyCalendarAll builds admin-mode calendars for every user with
	// attendance or a stored config in the year. Per-user failures are
	// collected, not fatal.
	YearlyCalendarAll(ctx context.Context, year int) (YearlyCalendarBatchResponse, error)
}
