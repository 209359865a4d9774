package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/leave"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type leaveOverlayRepository struct {
	db *database.DB
}

func NewLeaveOverlayRepository(db *database.DB) leave.LeaveOverlay {
	return &leaveOverlayRepository{db: db}
}

// ApprovedLeavesOverlapping implements leave.LeaveOverlay. The SQL range
// check is coarse; per-day coverage is decided by Leave.CoversDate.
func (r *leaveOverlayRepository) ApprovedLeavesOverlapping(ctx context.Context, userID string, start, end time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, leave_category, date, start_date, end_date, status, reason
		FROM leaves
		WHERE user_id = $1
		  AND status = $2
		  AND (
			(date IS NOT NULL AND date >= $3 AND date <= $4)
			OR (start_date IS NOT NULL AND end_date IS NOT NULL
				AND start_date <= $4 AND end_date >= $3)
		  )
		ORDER BY COALESCE(date, start_date) ASC
	`

	rows, err := q.Query(ctx, query, userID, leave.StatusApproved, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var l leave.Leave
		err := rows.Scan(&l.ID, &l.UserID, &l.Category, &l.Date, &l.StartDate, &l.EndDate, &l.Status, &l.Reason)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaves: %w", err)
	}

	return leaves, nil
}
