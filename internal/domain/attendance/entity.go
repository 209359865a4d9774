package attendance

import (
	"math"
	"time"
)

// Attendance statuses. A missing row for (user, date) means the day has not
// been opened yet; a StatusNotCheckedIn row is a placeholder (get-or-create,
// or an admin reopening a day) that a later check-in takes over. Both read
// as absent in the day view.
const (
	StatusNotCheckedIn = "not_checked_in"
	StatusCheckedIn    = "checked_in"
	StatusCheckedOut   = "checked_out"
)

// Admin check-in/out actions.
const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

type Attendance struct {
	ID          string
	UserID      string
	Date        time.Time // day-granular, local midnight
	Status      string
	CheckIn     *time.Time
	CheckOut    *time.Time
	HoursWorked float64
	Notes       *string
	AdminNotes  *string
	EditedBy    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoundHours rounds a duration in hours to one decimal place, the precision
// stored on HoursWorked.
func RoundHours(h float64) float64 {
	return math.Round(h*10) / 10
}
