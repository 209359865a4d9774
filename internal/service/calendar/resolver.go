package calendar

import (
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/calendar"
)

// Two distinct weekday defaults exist on purpose, matching observed behavior
// in production data. synthesisWeekdays is used only when a month has no
// stored global config; resolverFallbackWeekdays is the resolver's last
// resort when a stored config carries no weekday set. Product owns the call
// on collapsing them; both live here so that is a one-line change.
var (
	// Monday through Saturday
	synthesisWeekdays = []int{1, 2, 3, 4, 5, 6}

	// Saturday through Thursday, Friday off: the organization's default
	// business week
	resolverFallbackWeekdays = []int{0, 1, 2, 3, 4, 6}
)

// ResolveWorkingDay classifies a date through the resolution hierarchy:
// user day override > user weekday defaults > global day override > global
// weekday defaults > hard fallback. Pure: the answer depends only on the
// supplied configs.
func ResolveWorkingDay(date time.Time, user *calendar.UserWorkingDaysConfig, global *calendar.WorkingDaysConfig) bool {
	day := date.Day()
	weekday := int(date.Weekday())

	if user != nil {
		if o := user.DayOverrideFor(day); o != nil {
			return o.IsWorkingDay
		}
		if user.DefaultWeekdays != nil {
			return containsWeekday(user.DefaultWeekdays, weekday)
		}
	}

	if global != nil {
		if o := global.DayOverrideFor(day); o != nil {
			return o.IsWorkingDay
		}
		if len(global.DefaultWeekdays) > 0 {
			return containsWeekday(global.DefaultWeekdays, weekday)
		}
	}

	return containsWeekday(resolverFallbackWeekdays, weekday)
}

// SynthesizeMonth builds the global config for a month that has never been
// edited. The result is served but not persisted.
func SynthesizeMonth(year, month int) calendar.WorkingDaysConfig {
	days := make([]calendar.DayOverride, 0, calendar.DaysInMonth(year, month))
	for day := 1; day <= calendar.DaysInMonth(year, month); day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		days = append(days, calendar.DayOverride{
			Day:          day,
			IsWorkingDay: containsWeekday(synthesisWeekdays, int(date.Weekday())),
		})
	}

	return calendar.WorkingDaysConfig{
		Year:            year,
		Month:           month,
		Days:            days,
		DefaultWeekdays: append([]int(nil), synthesisWeekdays...),
	}
}

// ResolveDailyHours returns the user's required hours per working day.
func ResolveDailyHours(user *calendar.UserWorkingDaysConfig) float64 {
	if user != nil && user.IsCustom && user.DailyHours > 0 {
		return user.DailyHours
	}
	return calendar.DefaultDailyHours
}

func containsWeekday(weekdays []int, weekday int) bool {
	for _, d := range weekdays {
		if d == weekday {
			return true
		}
	}
	return false
}
