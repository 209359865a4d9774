package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/calendar"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type userWorkingDaysRepository struct {
	db *database.DB
}

func NewUserWorkingDaysRepository(db *database.DB) calendar.UserWorkingDaysRepository {
	return &userWorkingDaysRepository{db: db}
}

func scanUserWorkingDays(row pgx.Row) (calendar.UserWorkingDaysConfig, error) {
	var cfg calendar.UserWorkingDaysConfig
	var daysJSON, weekdaysJSON []byte
	err := row.Scan(
		&cfg.ID, &cfg.UserID, &cfg.Year, &cfg.Month, &daysJSON, &weekdaysJSON,
		&cfg.DailyHours, &cfg.IsCustom, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		return calendar.UserWorkingDaysConfig{}, err
	}

	if err := json.Unmarshal(daysJSON, &cfg.Days); err != nil {
		return calendar.UserWorkingDaysConfig{}, fmt.Errorf("failed to decode day overrides: %w", err)
	}
	if weekdaysJSON != nil {
		if err := json.Unmarshal(weekdaysJSON, &cfg.DefaultWeekdays); err != nil {
			return calendar.UserWorkingDaysConfig{}, fmt.Errorf("failed to decode default weekdays: %w", err)
		}
	}

	return cfg, nil
}

// GetByUserAndMonth implements calendar.UserWorkingDaysRepository.
func (r *userWorkingDaysRepository) GetByUserAndMonth(ctx context.Context, userID string, year, month int) (*calendar.UserWorkingDaysConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, year, month, days, default_weekdays,
			   daily_hours, is_custom, created_at, updated_at
		FROM user_working_days_configs
		WHERE user_id = $1 AND year = $2 AND month = $3
	`

	cfg, err := scanUserWorkingDays(q.QueryRow(ctx, query, userID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No user config, resolution falls back to global
		}
		return nil, fmt.Errorf("failed to get user working days config: %w", err)
	}

	return &cfg, nil
}

// Upsert implements calendar.UserWorkingDaysRepository.
func (r *userWorkingDaysRepository) Upsert(ctx context.Context, cfg calendar.UserWorkingDaysConfig) (calendar.UserWorkingDaysConfig, error) {
	q := GetQuerier(ctx, r.db)

	daysJSON, err := json.Marshal(cfg.Days)
	if err != nil {
		return calendar.UserWorkingDaysConfig{}, fmt.Errorf("failed to encode day overrides: %w", err)
	}
	var weekdaysJSON []byte
	if cfg.DefaultWeekdays != nil {
		weekdaysJSON, err = json.Marshal(cfg.DefaultWeekdays)
		if err != nil {
			return calendar.UserWorkingDaysConfig{}, fmt.Errorf("failed to encode default weekdays: %w", err)
		}
	}

	query := `
		INSERT INTO user_working_days_configs (
			user_id, year, month, days, default_weekdays, daily_hours, is_custom
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, year, month) DO UPDATE
		SET days = EXCLUDED.days,
			default_weekdays = EXCLUDED.default_weekdays,
			daily_hours = EXCLUDED.daily_hours,
			is_custom = EXCLUDED.is_custom,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		cfg.UserID, cfg.Year, cfg.Month, daysJSON, weekdaysJSON, cfg.DailyHours, cfg.IsCustom,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return calendar.UserWorkingDaysConfig{}, fmt.Errorf("failed to upsert user working days config: %w", err)
	}

	return cfg, nil
}

// Delete implements calendar.UserWorkingDaysRepository.
func (r *userWorkingDaysRepository) Delete(ctx context.Context, userID string, year, month int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM user_working_days_configs WHERE user_id = $1 AND year = $2 AND month = $3`,
		userID, year, month,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user working days config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrConfigNotFound
	}

	return nil
}

// ListByMonth implements calendar.UserWorkingDaysRepository.
func (r *userWorkingDaysRepository) ListByMonth(ctx context.Context, year, month int) ([]calendar.UserWorkingDaysConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, year, month, days, default_weekdays,
			   daily_hours, is_custom, created_at, updated_at
		FROM user_working_days_configs
		WHERE year = $1 AND month = $2
		ORDER BY user_id ASC
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list user working days configs: %w", err)
	}
	defer rows.Close()

	var configs []calendar.UserWorkingDaysConfig
	for rows.Next() {
		cfg, err := scanUserWorkingDays(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user working days config: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user working days configs: %w", err)
	}

	return configs, nil
}
