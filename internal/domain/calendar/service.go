package calendar

import (
	"context"
	"time"
)

// CalendarService resolves working-day status and manages the month configs
// behind it.
type CalendarService interface {
	// IsWorkingDay classifies a date for a user through the resolution
	// hierarchy: user day override > user weekday defaults > global day
	// override > global weekday defaults.
	IsWorkingDay(ctx context.Context, date time.Time, userID string) (bool, error)

	// DailyHours returns the required hours per working day for a user in a
	// month, falling back to the organization default.
	DailyHours(ctx context.Context, userID string, year, month int) (float64, error)

	// GetWorkingDaysForMonth returns the stored global config, or a
	// synthesized one (not persisted) when the month has never been edited.
	GetWorkingDaysForMonth(ctx context.Context, year, month int) (WorkingDaysResponse, error)

	// UpdateWorkingDays persists an admin edit of the global month config
	UpdateWorkingDays(ctx context.Context, req UpdateWorkingDaysRequest) (WorkingDaysResponse, error)

	// ResetToDefault drops the stored global config for the month
	ResetToDefault(ctx context.Context, year, month int) error

	// GetUserWorkingDays returns the user's config, or the global view with
	// is_custom=false when none is stored.
	GetUserWorkingDays(ctx context.Context, userID string, year, month int) (UserWorkingDaysResponse, error)

	// UpdateUserWorkingDays persists a per-user month config
	UpdateUserWorkingDays(ctx context.Context, req UpdateUserWorkingDaysRequest) (UserWorkingDaysResponse, error)

	// ApplyGlobalToUsers copies the global month config onto each named user.
	// Per-user failures are collected, not fatal.
	ApplyGlobalToUsers(ctx context.Context, req ApplyToUsersRequest) (BatchResult, error)

	// RevertToGlobal deletes the named users' configs for the month
	RevertToGlobal(ctx context.Context, req ApplyToUsersRequest) (BatchResult, error)
}
