package calendar

import (
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type UpdateWorkingDaysRequest struct {
	Year            int           `json:"-"`
	Month           int           `json:"-"`
	Days            []DayOverride `json:"days"`
	DefaultWeekdays []int         `json:"default_weekdays"`
}

func (r *UpdateWorkingDaysRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateMonth(r.Year, r.Month)...)
	errs = append(errs, validateDays(r.Year, r.Month, r.Days)...)
	errs = append(errs, validateWeekdays(r.DefaultWeekdays, false)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateUserWorkingDaysRequest struct {
	UserID          string        `json:"-"`
	Year            int           `json:"-"`
	Month           int           `json:"-"`
	Days            []DayOverride `json:"days"`
	DefaultWeekdays []int         `json:"default_weekdays,omitempty"` // nil keeps the global fallback
	DailyHours      *float64      `json:"daily_hours,omitempty"`
}

func (r *UpdateUserWorkingDaysRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	errs = append(errs, validateMonth(r.Year, r.Month)...)
	errs = append(errs, validateDays(r.Year, r.Month, r.Days)...)
	errs = append(errs, validateWeekdays(r.DefaultWeekdays, true)...)

	if r.DailyHours != nil && (*r.DailyHours <= 0 || *r.DailyHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_hours",
			Message: "daily_hours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApplyToUsersRequest materializes the current global month config onto the
// given users. User identity lives outside this engine, so the caller names
// the targets explicitly.
type ApplyToUsersRequest struct {
	Year    int      `json:"-"`
	Month   int      `json:"-"`
	UserIDs []string `json:"user_ids"`
}

func (r *ApplyToUsersRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateMonth(r.Year, r.Month)...)

	if len(r.UserIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_ids",
			Message: "at least one user id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkingDaysResponse struct {
	Year            int           `json:"year"`
	Month           int           `json:"month"`
	Days            []DayOverride `json:"days"`
	DefaultWeekdays []int         `json:"default_weekdays"`
	Persisted       bool          `json:"persisted"`
}

type UserWorkingDaysResponse struct {
	UserID          string        `json:"user_id"`
	Year            int           `json:"year"`
	Month           int           `json:"month"`
	Days            []DayOverride `json:"days"`
	DefaultWeekdays []int         `json:"default_weekdays,omitempty"`
	DailyHours      float64       `json:"daily_hours"`
	IsCustom        bool          `json:"is_custom"`
}

// BatchResult reports partial application of a batch operation. Per-item
// failures do not abort the batch.
type BatchResult struct {
	Modified int               `json:"modified"`
	Failed   int               `json:"failed"`
	Errors   map[string]string `json:"errors,omitempty"`
}

func validateMonth(year, month int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	return errs
}

func validateDays(year, month int, days []DayOverride) validator.ValidationErrors {
	var errs validator.ValidationErrors

	max := DaysInMonth(year, month)
	for _, d := range days {
		if d.Day < 1 || d.Day > max {
			errs = append(errs, validator.ValidationError{
				Field:   "days",
				Message: "day overrides must fall inside the month",
			})
			break
		}
	}

	return errs
}

func validateWeekdays(weekdays []int, allowNil bool) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if weekdays == nil && allowNil {
		return nil
	}

	for _, d := range weekdays {
		if !validator.IsValidWeekday(d) {
			errs = append(errs, validator.ValidationError{
				Field:   "default_weekdays",
				Message: "weekday indices must be between 0 (Sunday) and 6 (Saturday)",
			})
			break
		}
	}

	return errs
}
