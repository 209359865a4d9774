package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/holiday"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type holidayOverlayRepository struct {
	db *database.DB
}

func NewHolidayOverlayRepository(db *database.DB) holiday.HolidayOverlay {
	return &holidayOverlayRepository{db: db}
}

// ActiveHolidaysOverlapping implements holiday.HolidayOverlay.
func (r *holidayOverlayRepository) ActiveHolidaysOverlapping(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, holiday_type, date, start_date, end_date, is_active
		FROM holidays
		WHERE is_active
		  AND (
			(date IS NOT NULL AND date >= $1 AND date <= $2)
			OR (start_date IS NOT NULL AND end_date IS NOT NULL
				AND start_date <= $2 AND end_date >= $1)
		  )
		ORDER BY COALESCE(date, start_date) ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		err := rows.Scan(&h.ID, &h.Name, &h.HolidayType, &h.Date, &h.StartDate, &h.EndDate, &h.IsActive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}
