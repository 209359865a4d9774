package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrOutsideTimeWindow = errors.New("outside the allowed attendance time window")
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCompleted  = errors.New("you have already completed attendance for this day")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")

	// Admin errors
	ErrDuplicateAttendance = errors.New("an attendance record already exists for this user and date")
	ErrInvalidAction       = errors.New("unrecognized attendance action")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
