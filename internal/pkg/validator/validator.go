package validator

import (
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation. Parsed in organizational local time so the result lines
// up with the rest of the calendar math.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	return date, err == nil
}

// Timestamp validation, accepts "YYYY-MM-DD HH:MM:SS"
func IsValidDateTime(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local)
	return t, err == nil
}

// Month validation (1-12)
func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// Year sanity bound, keeps obviously broken input out of calendar math
func IsValidYear(year int) bool {
	return year >= 2000 && year <= 2100
}

// Weekday index validation (0=Sunday .. 6=Saturday)
func IsValidWeekday(d int) bool {
	return d >= 0 && d <= 6
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsValidMonthKey checks a "YYYY-MM" month key. The returned month start is
// anchored in local time so month-end expiries fall on the local boundary.
func IsValidMonthKey(key string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01", key, time.Local)
	return t, err == nil
}
