package response

import (
	"errors"
	"net/http"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/calendar"
	"github.com/presensia/attendance-backend-go/internal/domain/qrtoken"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Business-state failures
// stay in the 4xx range; only unknown errors fall through to 500.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideTimeWindow):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCompleted):
		Conflict(w, "Attendance already completed for today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Not checked in yet")
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrInvalidAction):
		BadRequest(w, "Invalid attendance action", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// QR token domain errors
	case errors.Is(err, qrtoken.ErrInvalidOrExpiredToken):
		BadRequest(w, "Invalid or expired attendance token", nil)
	case errors.Is(err, qrtoken.ErrTokenNotFound):
		NotFound(w, "No active attendance token for this month")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrConfigNotFound):
		NotFound(w, "Working days config not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
