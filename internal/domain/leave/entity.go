package leave

import "time"

// Leave categories
const (
	CategorySingleDay   = "single_day"
	CategoryHourly      = "hourly"
	CategoryMultipleDay = "multiple_day"
)

// Leave statuses. Only approved leave affects attendance views.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Leave is a read-only overlay record. The leave workflow (requesting,
// approving) lives outside this engine; only approved-leave lookups matter
// here.
type Leave struct {
	ID        string
	UserID    string
	Category  string
	Date      *time.Time // single_day / hourly
	StartDate *time.Time // multiple_day
	EndDate   *time.Time // multiple_day
	Status    string
	Reason    *string
}

// CoversDate reports whether the leave applies to a calendar date.
// Single-day and hourly categories match by exact date; multiple-day spans
// are probed at midday so boundary rounding on the stored timestamps cannot
// exclude the first or last day.
func (l Leave) CoversDate(d time.Time) bool {
	switch l.Category {
	case CategoryMultipleDay:
		if l.StartDate == nil || l.EndDate == nil {
			return false
		}
		probe := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, d.Location())
		start := time.Date(l.StartDate.Year(), l.StartDate.Month(), l.StartDate.Day(), 0, 0, 0, 0, d.Location())
		end := time.Date(l.EndDate.Year(), l.EndDate.Month(), l.EndDate.Day(), 23, 59, 59, 999000000, d.Location())
		return !probe.Before(start) && !probe.After(end)
	default:
		if l.Date == nil {
			return false
		}
		return sameDay(*l.Date, d)
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
