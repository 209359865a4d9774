package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The store
// carries a unique constraint on (user_id, date); CreateIfAbsent relies on it
// so concurrent check-in racers for the same day produce exactly one row.
type AttendanceRepository interface {
	// CreateIfAbsent inserts a record unless one already exists for
	// (userID, date). It returns the record now in the store and whether
	// this call created it.
	CreateIfAbsent(ctx context.Context, att Attendance) (Attendance, bool, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate retrieves attendance for a user on a calendar date.
	// Returns nil when no record exists (the implicit not-checked-in state).
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// Update overwrites the mutable fields of an existing record
	Update(ctx context.Context, att Attendance) error

	// List retrieves records matching the filter, ordered by date
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)

	// ListOpenForDate returns checked-in records with no checkout for a date,
	// the targets of the forgotten-checkout sweep
	ListOpenForDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// Delete removes a record by id
	Delete(ctx context.Context, id string) error
}

// ListFilter narrows List results. Zero-value fields are ignored.
type ListFilter struct {
	UserID    *string
	Status    *string
	StartDate *time.Time
	EndDate   *time.Time
}
