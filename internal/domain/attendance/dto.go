package attendance

import (
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Token string `json:"token"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "attendance QR token is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AdminActionRequest lets an admin check a user in or out on a chosen date,
// bypassing the self-service time window.
type AdminActionRequest struct {
	UserID string  `json:"user_id"`
	Action string  `json:"action"` // check_in, check_out
	Date   *string `json:"date,omitempty"`
}

func (r *AdminActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if !validator.IsInSlice(r.Action, []string{ActionCheckIn, ActionCheckOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: check_in, check_out",
		})
	}

	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ManualEntryRequest creates a fully admin-specified record for a past date.
type ManualEntryRequest struct {
	UserID     string  `json:"user_id"`
	Date       string  `json:"date"`                 // YYYY-MM-DD
	CheckIn    *string `json:"check_in,omitempty"`   // YYYY-MM-DD HH:MM:SS
	CheckOut   *string `json:"check_out,omitempty"`  // YYYY-MM-DD HH:MM:SS
	Status     *string `json:"status,omitempty"`     // defaults to checked_out
	Notes      *string `json:"notes,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.CheckIn != nil && *r.CheckIn != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be in YYYY-MM-DD HH:MM:SS format",
			})
		}
	}

	if r.CheckOut != nil && *r.CheckOut != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckOut); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be in YYYY-MM-DD HH:MM:SS format",
			})
		}
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{StatusCheckedIn, StatusCheckedOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: checked_in, checked_out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AdminEditRequest partially updates a record. Fields left nil are untouched;
// empty-string timestamps clear the value (reopening a day is allowed).
type AdminEditRequest struct {
	ID         string  `json:"-"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Status     *string `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

func (r *AdminEditRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CheckIn != nil && *r.CheckIn != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be in YYYY-MM-DD HH:MM:SS format",
			})
		}
	}

	if r.CheckOut != nil && *r.CheckOut != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckOut); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be in YYYY-MM-DD HH:MM:SS format",
			})
		}
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{StatusNotCheckedIn, StatusCheckedIn, StatusCheckedOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: not_checked_in, checked_in, checked_out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	CheckIn     *string `json:"check_in,omitempty"`
	CheckOut    *string `json:"check_out,omitempty"`
	HoursWorked float64 `json:"hours_worked"`
	Notes       *string `json:"notes,omitempty"`
	AdminNotes  *string `json:"admin_notes,omitempty"`
	EditedBy    *string `json:"edited_by,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// TodayAttendanceResponse is the explicit Absent|Present view of a day, so
// callers never have to interpret a null record.
type TodayAttendanceResponse struct {
	Present     bool                `json:"present"`
	Attendance  *AttendanceResponse `json:"attendance,omitempty"`
	CanCheckIn  bool                `json:"can_check_in"`
	CanCheckOut bool                `json:"can_check_out"`
	Message     string              `json:"message"`
}

type SweepResult struct {
	Date    string `json:"date"`
	Swept   int    `json:"swept"`
	Skipped int    `json:"skipped"`
}
