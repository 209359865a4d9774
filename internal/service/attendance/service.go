package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/qrtoken"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	tokenService   qrtoken.TokenService
	guard          *TimeWindowGuard
	clock          clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	tokenService qrtoken.TokenService,
	guard *TimeWindowGuard,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		tokenService:   tokenService,
		guard:          guard,
		clock:          clk,
	}
}

// dateOnly truncates a timestamp to its calendar day at local midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// checkTimestampOrder rejects a check-out earlier than its check-in, which
// would otherwise persist a negative hoursWorked.
func checkTimestampOrder(checkIn, checkOut *time.Time) error {
	if checkOut.Before(*checkIn) {
		return validator.ValidationErrors{{
			Field:   "check_out",
			Message: "check_out must not be before check_in",
		}}
	}
	return nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:          att.ID,
		UserID:      att.UserID,
		Date:        att.Date.Format("2006-01-02"),
		Status:      att.Status,
		CheckIn:     timePtrToString(att.CheckIn),
		CheckOut:    timePtrToString(att.CheckOut),
		HoursWorked: att.HoursWorked,
		Notes:       att.Notes,
		AdminNotes:  att.AdminNotes,
		EditedBy:    att.EditedBy,
	}
	if !att.CreatedAt.IsZero() {
		resp.CreatedAt = att.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if !att.UpdatedAt.IsZero() {
		resp.UpdatedAt = att.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.guard.Check("check-in"); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.tokenService.Verify(ctx, req.Token); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()
	record := attendance.Attendance{
		UserID:  userID,
		Date:    dateOnly(now),
		Status:  attendance.StatusCheckedIn,
		CheckIn: &now,
	}

	stored, created, err := a.attendanceRepo.CreateIfAbsent(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	if !created {
		switch stored.Status {
		case attendance.StatusCheckedIn:
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		case attendance.StatusCheckedOut:
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCompleted
		}
		// Day was reopened by an admin; take it over
		stored.Status = attendance.StatusCheckedIn
		stored.CheckIn = &now
		if err := a.attendanceRepo.Update(ctx, stored); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
	}

	return mapAttendanceToResponse(stored), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.AttendanceResponse, error) {
	if err := a.guard.Check("check-out"); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()
	record, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, dateOnly(now))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if record == nil || record.Status != attendance.StatusCheckedIn {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	record.Status = attendance.StatusCheckedOut
	record.CheckOut = &now
	if record.CheckIn != nil {
		record.HoursWorked = attendance.RoundHours(now.Sub(*record.CheckIn).Hours())
	}

	if err := a.attendanceRepo.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapAttendanceToResponse(*record), nil
}

// todayView builds the explicit Absent|Present shape for today's record.
func (a *AttendanceServiceImpl) todayView(record *attendance.Attendance, now time.Time) attendance.TodayAttendanceResponse {
	withinWindow := a.guard.Allowed(now)

	if record == nil || record.Status == attendance.StatusNotCheckedIn {
		resp := attendance.TodayAttendanceResponse{
			Present:    false,
			CanCheckIn: withinWindow,
			Message:    "You have not checked in today",
		}
		if record != nil {
			mapped := mapAttendanceToResponse(*record)
			resp.Attendance = &mapped
		}
		return resp
	}

	mapped := mapAttendanceToResponse(*record)
	resp := attendance.TodayAttendanceResponse{
		Present:    true,
		Attendance: &mapped,
	}

	switch record.Status {
	case attendance.StatusCheckedIn:
		resp.CanCheckOut = withinWindow
		resp.Message = "You are checked in"
	case attendance.StatusCheckedOut:
		resp.Message = "You have completed attendance for today"
	}

	return resp
}

// GetTodayAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context, userID string) (attendance.TodayAttendanceResponse, error) {
	now := a.clock.Now()
	record, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, dateOnly(now))
	if err != nil {
		return attendance.TodayAttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return a.todayView(record, now), nil
}

// GetOrCreateTodayAttendance implements attendance.AttendanceService. The
// placeholder row is created not-checked-in, so a later self-service check-in
// takes the day over instead of conflicting.
func (a *AttendanceServiceImpl) GetOrCreateTodayAttendance(ctx context.Context, userID string) (attendance.TodayAttendanceResponse, error) {
	now := a.clock.Now()
	record := attendance.Attendance{
		UserID: userID,
		Date:   dateOnly(now),
		Status: attendance.StatusNotCheckedIn,
	}

	stored, _, err := a.attendanceRepo.CreateIfAbsent(ctx, record)
	if err != nil {
		return attendance.TodayAttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return a.todayView(&stored, now), nil
}

// AdminCheckInOut implements attendance.AttendanceService. The time window
// does not apply; the record is upserted on the admin-chosen date.
func (a *AttendanceServiceImpl) AdminCheckInOut(ctx context.Context, req attendance.AdminActionRequest, actorID string) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()
	date := dateOnly(now)
	if req.Date != nil && *req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *req.Date, now.Location())
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
		}
		date = parsed
	}

	// Anchor the action timestamp to the target date with the current
	// time of day, so backfilled days get sane clock values.
	stamp := time.Date(date.Year(), date.Month(), date.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, now.Location())

	switch req.Action {
	case attendance.ActionCheckIn:
		record := attendance.Attendance{
			UserID:   req.UserID,
			Date:     date,
			Status:   attendance.StatusCheckedIn,
			CheckIn:  &stamp,
			EditedBy: &actorID,
		}
		stored, created, err := a.attendanceRepo.CreateIfAbsent(ctx, record)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
		if !created {
			switch stored.Status {
			case attendance.StatusCheckedIn:
				return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
			case attendance.StatusCheckedOut:
				return attendance.AttendanceResponse{}, attendance.ErrAlreadyCompleted
			}
			stored.Status = attendance.StatusCheckedIn
			stored.CheckIn = &stamp
			stored.EditedBy = &actorID
			if err := a.attendanceRepo.Update(ctx, stored); err != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
			}
		}
		return mapAttendanceToResponse(stored), nil

	case attendance.ActionCheckOut:
		record, err := a.attendanceRepo.GetByUserAndDate(ctx, req.UserID, date)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
		}
		if record == nil || record.Status != attendance.StatusCheckedIn {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}

		record.Status = attendance.StatusCheckedOut
		record.CheckOut = &stamp
		record.EditedBy = &actorID
		if record.CheckIn != nil {
			record.HoursWorked = attendance.RoundHours(stamp.Sub(*record.CheckIn).Hours())
		}
		if err := a.attendanceRepo.Update(ctx, *record); err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
		return mapAttendanceToResponse(*record), nil

	default:
		return attendance.AttendanceResponse{}, attendance.ErrInvalidAction
	}
}

// CreateManualEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateManualEntry(ctx context.Context, req attendance.ManualEntryRequest, actorID string) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	loc := a.clock.Now().Location()
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	status := attendance.StatusCheckedOut
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	record := attendance.Attendance{
		UserID:     req.UserID,
		Date:       date,
		Status:     status,
		Notes:      req.Notes,
		AdminNotes: req.AdminNotes,
		EditedBy:   &actorID,
	}

	if req.CheckIn != nil && *req.CheckIn != "" {
		t, err := time.ParseInLocation("2006-01-02 15:04:05", *req.CheckIn, loc)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse check_in: %w", err)
		}
		record.CheckIn = &t
	}
	if req.CheckOut != nil && *req.CheckOut != "" {
		t, err := time.ParseInLocation("2006-01-02 15:04:05", *req.CheckOut, loc)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse check_out: %w", err)
		}
		record.CheckOut = &t
	}

	if record.CheckIn != nil && record.CheckOut != nil {
		if err := checkTimestampOrder(record.CheckIn, record.CheckOut); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		record.HoursWorked = attendance.RoundHours(record.CheckOut.Sub(*record.CheckIn).Hours())
	}

	stored, created, err := a.attendanceRepo.CreateIfAbsent(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	if !created {
		return attendance.AttendanceResponse{}, attendance.ErrDuplicateAttendance
	}

	return mapAttendanceToResponse(stored), nil
}

// AdminEdit implements attendance.AttendanceService. Nil fields are left
// untouched; empty-string timestamps clear the value. The time window is not
// re-validated.
func (a *AttendanceServiceImpl) AdminEdit(ctx context.Context, req attendance.AdminEditRequest, actorID string) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	loc := record.Date.Location()

	if req.CheckIn != nil {
		if *req.CheckIn == "" {
			record.CheckIn = nil
		} else {
			t, err := time.ParseInLocation("2006-01-02 15:04:05", *req.CheckIn, loc)
			if err != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse check_in: %w", err)
			}
			record.CheckIn = &t
		}
	}

	if req.CheckOut != nil {
		if *req.CheckOut == "" {
			record.CheckOut = nil
		} else {
			t, err := time.ParseInLocation("2006-01-02 15:04:05", *req.CheckOut, loc)
			if err != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse check_out: %w", err)
			}
			record.CheckOut = &t
		}
	}

	if req.Status != nil && *req.Status != "" {
		record.Status = *req.Status
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}
	if req.AdminNotes != nil {
		record.AdminNotes = req.AdminNotes
	}

	record.EditedBy = &actorID

	// hoursWorked stays consistent with the timestamps: recomputed when both
	// ends exist, zeroed otherwise
	if record.CheckIn != nil && record.CheckOut != nil {
		if err := checkTimestampOrder(record.CheckIn, record.CheckOut); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		record.HoursWorked = attendance.RoundHours(record.CheckOut.Sub(*record.CheckIn).Hours())
	} else {
		record.HoursWorked = 0
	}

	if err := a.attendanceRepo.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapAttendanceToResponse(record), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	return nil
}

// AutoCheckoutForgotten implements attendance.AttendanceService. Records are
// closed without a checkout timestamp so hoursWorked stays 0, signalling the
// day needs an admin fill-in. Re-running the sweep touches only records
// still checked in.
func (a *AttendanceServiceImpl) AutoCheckoutForgotten(ctx context.Context, asOf time.Time) (attendance.SweepResult, error) {
	date := dateOnly(asOf)

	open, err := a.attendanceRepo.ListOpenForDate(ctx, date)
	if err != nil {
		return attendance.SweepResult{}, fmt.Errorf("failed to list open attendance records: %w", err)
	}

	result := attendance.SweepResult{Date: date.Format("2006-01-02")}
	for _, record := range open {
		if record.Status != attendance.StatusCheckedIn || record.CheckIn == nil || record.CheckOut != nil {
			result.Skipped++
			continue
		}

		record.Status = attendance.StatusCheckedOut
		if err := a.attendanceRepo.Update(ctx, record); err != nil {
			result.Skipped++
			continue
		}
		result.Swept++
	}

	return result, nil
}
