package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, user_id, date, status, check_in, check_out, hours_worked,
	notes, admin_notes, edited_by, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.Status, &att.CheckIn, &att.CheckOut, &att.HoursWorked,
		&att.Notes, &att.AdminNotes, &att.EditedBy, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// CreateIfAbsent implements attendance.AttendanceRepository. The unique
// constraint on (user_id, date) makes ON CONFLICT DO NOTHING return no row
// for the loser of a concurrent race; the existing record is fetched instead.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			user_id, date, status, check_in, check_out, hours_worked,
			notes, admin_notes, edited_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (user_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.UserID,
		att.Date,
		att.Status,
		att.CheckIn,
		att.CheckOut,
		att.HoursWorked,
		att.Notes,
		att.AdminNotes,
		att.EditedBy,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err == nil {
		return att, true, nil
	}
	if err != pgx.ErrNoRows {
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	existing, err := a.GetByUserAndDate(ctx, att.UserID, att.Date)
	if err != nil {
		return attendance.Attendance{}, false, err
	}
	if existing == nil {
		// Conflict row vanished between insert and read, let the caller retry
		return attendance.Attendance{}, false, attendance.ErrAttendanceNotFound
	}

	return *existing, false, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances
		WHERE id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1
		  AND date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record means not checked in
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $2,
			check_in = $3,
			check_out = $4,
			hours_worked = $5,
			notes = $6,
			admin_notes = $7,
			edited_by = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.Status,
		att.CheckIn,
		att.CheckOut,
		att.HoursWorked,
		att.Notes,
		att.AdminNotes,
		att.EditedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	query := `SELECT` + attendanceColumns + `
		FROM attendances
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY date ASC, user_id ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// ListOpenForDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenForDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances
		WHERE date = $1
		  AND status = $2
		  AND check_out IS NULL
		ORDER BY user_id ASC
	`

	rows, err := q.Query(ctx, query, date, attendance.StatusCheckedIn)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open attendances: %w", err)
	}

	return records, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}
