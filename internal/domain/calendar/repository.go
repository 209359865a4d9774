package calendar

import "context"

// WorkingDaysRepository stores the global month configs. The table carries a
// unique constraint on (year, month).
type WorkingDaysRepository interface {
	// GetByMonth returns nil when no config is stored for the month
	GetByMonth(ctx context.Context, year, month int) (*WorkingDaysConfig, error)

	// Upsert inserts or replaces the config for (year, month)
	Upsert(ctx context.Context, cfg WorkingDaysConfig) (WorkingDaysConfig, error)

	// Delete removes the stored config so the month reverts to defaults
	Delete(ctx context.Context, year, month int) error
}

// UserWorkingDaysRepository stores per-user month configs, unique on
// (user_id, year, month).
type UserWorkingDaysRepository interface {
	// GetByUserAndMonth returns nil when the user has no config for the month
	GetByUserAndMonth(ctx context.Context, userID string, year, month int) (*UserWorkingDaysConfig, error)

	// Upsert inserts or replaces the config for (user_id, year, month)
	Upsert(ctx context.Context, cfg UserWorkingDaysConfig) (UserWorkingDaysConfig, error)

	// Delete removes the user's config so resolution falls back to global
	Delete(ctx context.Context, userID string, year, month int) error

	// ListByMonth returns all user configs stored for a month
	ListByMonth(ctx context.Context, year, month int) ([]UserWorkingDaysConfig, error)
}
