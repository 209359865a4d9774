package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/calendar"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type workingDaysRepository struct {
	db *database.DB
}

func NewWorkingDaysRepository(db *database.DB) calendar.WorkingDaysRepository {
	return &workingDaysRepository{db: db}
}

// GetByMonth implements calendar.WorkingDaysRepository.
func (r *workingDaysRepository) GetByMonth(ctx context.Context, year, month int) (*calendar.WorkingDaysConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, year, month, days, default_weekdays, created_at, updated_at
		FROM working_days_configs
		WHERE year = $1 AND month = $2
	`

	var cfg calendar.WorkingDaysConfig
	var daysJSON, weekdaysJSON []byte
	err := q.QueryRow(ctx, query, year, month).Scan(
		&cfg.ID, &cfg.Year, &cfg.Month, &daysJSON, &weekdaysJSON, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Month never edited, caller synthesizes
		}
		return nil, fmt.Errorf("failed to get working days config: %w", err)
	}

	if err := json.Unmarshal(daysJSON, &cfg.Days); err != nil {
		return nil, fmt.Errorf("failed to decode day overrides: %w", err)
	}
	if err := json.Unmarshal(weekdaysJSON, &cfg.DefaultWeekdays); err != nil {
		return nil, fmt.Errorf("failed to decode default weekdays: %w", err)
	}

	return &cfg, nil
}

// Upsert implements calendar.WorkingDaysRepository.
func (r *workingDaysRepository) Upsert(ctx context.Context, cfg calendar.WorkingDaysConfig) (calendar.WorkingDaysConfig, error) {
	q := GetQuerier(ctx, r.db)

	daysJSON, err := json.Marshal(cfg.Days)
	if err != nil {
		return calendar.WorkingDaysConfig{}, fmt.Errorf("failed to encode day overrides: %w", err)
	}
	weekdaysJSON, err := json.Marshal(cfg.DefaultWeekdays)
	if err != nil {
		return calendar.WorkingDaysConfig{}, fmt.Errorf("failed to encode default weekdays: %w", err)
	}

	query := `
		INSERT INTO working_days_configs (year, month, days, default_weekdays)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (year, month) DO UPDATE
		SET days = EXCLUDED.days,
			default_weekdays = EXCLUDED.default_weekdays,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query, cfg.Year, cfg.Month, daysJSON, weekdaysJSON).
		Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return calendar.WorkingDaysConfig{}, fmt.Errorf("failed to upsert working days config: %w", err)
	}

	return cfg, nil
}

// Delete implements calendar.WorkingDaysRepository.
func (r *workingDaysRepository) Delete(ctx context.Context, year, month int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM working_days_configs WHERE year = $1 AND month = $2`, year, month)
	if err != nil {
		return fmt.Errorf("failed to delete working days config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrConfigNotFound
	}

	return nil
}
