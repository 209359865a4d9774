package attendance

import (
	"context"
	"time"
)

// AttendanceService owns the attendance lifecycle for one (user, date) pair.
// The caller supplies the acting user id; this service never authenticates.
type AttendanceService interface {
	// CheckIn opens today's record after the time window and QR token checks pass
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's open record and computes hours worked
	CheckOut(ctx context.Context, userID string) (AttendanceResponse, error)

	// GetTodayAttendance returns the explicit Absent|Present view of today
	GetTodayAttendance(ctx context.Context, userID string) (TodayAttendanceResponse, error)

	// GetOrCreateTodayAttendance upserts today's record as a not-checked-in
	// placeholder when absent, then returns the same view. Concurrent callers
	// land on one row.
	GetOrCreateTodayAttendance(ctx context.Context, userID string) (TodayAttendanceResponse, error)

	// AdminCheckInOut performs a check-in/out on behalf of a user, on any
	// date, bypassing the time window
	AdminCheckInOut(ctx context.Context, req AdminActionRequest, actorID string) (AttendanceResponse, error)

	// CreateManualEntry creates a fully admin-specified record
	CreateManualEntry(ctx context.Context, req ManualEntryRequest, actorID string) (AttendanceResponse, error)

	// AdminEdit partially updates a record, stamping the editor
	AdminEdit(ctx context.Context, req AdminEditRequest, actorID string) (AttendanceResponse, error)

	// DeleteAttendance removes a record by id
	DeleteAttendance(ctx context.Context, id string) error

	// AutoCheckoutForgotten closes records still checked in for the given
	// date without fabricating a checkout timestamp. Idempotent.
	AutoCheckoutForgotten(ctx context.Context, asOf time.Time) (SweepResult, error)
}
