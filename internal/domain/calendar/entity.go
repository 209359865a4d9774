package calendar

import "time"

// DayOverride flags one day of a month as working or not, overriding the
// weekday defaults.
type DayOverride struct {
	Day          int  `json:"day"`
	IsWorkingDay bool `json:"is_working_day"`
}

// WorkingDaysConfig is the organization-wide calendar for one month. A month
// with no stored config is synthesized from weekday defaults on read and only
// persisted once an admin edits it.
type WorkingDaysConfig struct {
	ID              string
	Year            int
	Month           int
	Days            []DayOverride
	DefaultWeekdays []int // weekday indices, 0=Sunday .. 6=Saturday
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DayOverrideFor returns the override for a day of month, if any.
func (c *WorkingDaysConfig) DayOverrideFor(day int) *DayOverride {
	for i := range c.Days {
		if c.Days[i].Day == day {
			return &c.Days[i]
		}
	}
	return nil
}

// UserWorkingDaysConfig is a per-user calendar for one month. When absent,
// resolution falls back to the global config.
type UserWorkingDaysConfig struct {
	ID              string
	UserID          string
	Year            int
	Month           int
	Days            []DayOverride
	DefaultWeekdays []int // nil means fall through to the global weekday defaults
	DailyHours      float64
	IsCustom        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c *UserWorkingDaysConfig) DayOverrideFor(day int) *DayOverride {
	for i := range c.Days {
		if c.Days[i].Day == day {
			return &c.Days[i]
		}
	}
	return nil
}

// DefaultDailyHours is the required hours per working day when a user has no
// custom config.
const DefaultDailyHours = 8.0

// DaysInMonth returns the number of calendar days in a month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}
