package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetOrCreateToday(w http.ResponseWriter, r *http.Request)
	AdminAction(w http.ResponseWriter, r *http.Request)
	CreateManualEntry(w http.ResponseWriter, r *http.Request)
	AdminEdit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	userID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.attendanceService.GetTodayAttendance(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetOrCreateToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetOrCreateToday(w http.ResponseWriter, r *http.Request) {
	userID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.attendanceService.GetOrCreateTodayAttendance(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AdminAction implements AttendanceHandler.
func (h *attendanceHandlerImpl) AdminAction(w http.ResponseWriter, r *http.Request) {
	actorID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.AdminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.AdminCheckInOut(r.Context(), req, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Admin action applied", result)
}

// CreateManualEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) CreateManualEntry(w http.ResponseWriter, r *http.Request) {
	actorID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CreateManualEntry(r.Context(), req, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual entry created", result)
}

// AdminEdit implements AttendanceHandler.
func (h *attendanceHandlerImpl) AdminEdit(w http.ResponseWriter, r *http.Request) {
	actorID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.AdminEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.AdminEdit(r.Context(), req, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.DeleteAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}
