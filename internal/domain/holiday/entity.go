package holiday

import "time"

// Holiday types
const (
	TypeSingleDay   = "single_day"
	TypeMultipleDay = "multiple_day"
)

// Holiday is a read-only overlay record owned by an external subsystem.
type Holiday struct {
	ID          string
	Name        string
	HolidayType string
	Date        *time.Time // single_day
	StartDate   *time.Time // multiple_day
	EndDate     *time.Time // multiple_day
	IsActive    bool
}

// CoversDate reports whether the holiday applies to a calendar date, using
// the same midday-probe rule as leave spans.
func (h Holiday) CoversDate(d time.Time) bool {
	switch h.HolidayType {
	case TypeMultipleDay:
		if h.StartDate == nil || h.EndDate == nil {
			return false
		}
		probe := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, d.Location())
		start := time.Date(h.StartDate.Year(), h.StartDate.Month(), h.StartDate.Day(), 0, 0, 0, 0, d.Location())
		end := time.Date(h.EndDate.Year(), h.EndDate.Month(), h.EndDate.Day(), 23, 59, 59, 999000000, d.Location())
		return !probe.Before(start) && !probe.After(end)
	default:
		if h.Date == nil {
			return false
		}
		return h.Date.Year() == d.Year() && h.Date.Month() == d.Month() && h.Date.Day() == d.Day()
	}
}
