package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/calendar"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type CalendarHandler interface {
	CheckWorkingDay(w http.ResponseWriter, r *http.Request)
	GetWorkingDays(w http.ResponseWriter, r *http.Request)
	UpdateWorkingDays(w http.ResponseWriter, r *http.Request)
	ResetWorkingDays(w http.ResponseWriter, r *http.Request)
	GetUserWorkingDays(w http.ResponseWriter, r *http.Request)
	UpdateUserWorkingDays(w http.ResponseWriter, r *http.Request)
	ApplyToUsers(w http.ResponseWriter, r *http.Request)
	RevertToGlobal(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
	}
}

func yearMonthParams(r *http.Request) (int, int) {
	year, _ := strconv.Atoi(chi.URLParam(r, "year"))
	month, _ := strconv.Atoi(chi.URLParam(r, "month"))
	return year, month
}

type workingDayProbeResponse struct {
	Date         string  `json:"date"`
	UserID       string  `json:"user_id"`
	IsWorkingDay bool    `json:"is_working_day"`
	DailyHours   float64 `json:"daily_hours"`
}

// CheckWorkingDay implements CalendarHandler. Resolves a single date for the
// calling user; admins may probe another user via the user_id query param.
func (h *calendarHandlerImpl) CheckWorkingDay(w http.ResponseWriter, r *http.Request) {
	callerID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	userID := callerID
	if target := r.URL.Query().Get("user_id"); target != "" && target != callerID {
		if !jwt.IsAdminFromContext(r.Context()) {
			response.Forbidden(w, "Admin privilege required")
			return
		}
		userID = target
	}

	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.ValidationError(w, map[string]string{"date": "date must be in YYYY-MM-DD format"})
		return
	}

	working, err := h.calendarService.IsWorkingDay(r.Context(), date, userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	dailyHours, err := h.calendarService.DailyHours(r.Context(), userID, date.Year(), int(date.Month()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, workingDayProbeResponse{
		Date:         date.Format("2006-01-02"),
		UserID:       userID,
		IsWorkingDay: working,
		DailyHours:   dailyHours,
	})
}

// GetWorkingDays implements CalendarHandler.
func (h *calendarHandlerImpl) GetWorkingDays(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonthParams(r)

	result, err := h.calendarService.GetWorkingDaysForMonth(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateWorkingDays implements CalendarHandler.
func (h *calendarHandlerImpl) UpdateWorkingDays(w http.ResponseWriter, r *http.Request) {
	var req calendar.UpdateWorkingDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Year, req.Month = yearMonthParams(r)

	result, err := h.calendarService.UpdateWorkingDays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Working days updated", result)
}

// ResetWorkingDays implements CalendarHandler.
func (h *calendarHandlerImpl) ResetWorkingDays(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonthParams(r)

	if err := h.calendarService.ResetToDefault(r.Context(), year, month); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Working days reset to default", nil)
}

// GetUserWorkingDays implements CalendarHandler.
func (h *calendarHandlerImpl) GetUserWorkingDays(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonthParams(r)
	userID := chi.URLParam(r, "userId")

	result, err := h.calendarService.GetUserWorkingDays(r.Context(), userID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateUserWorkingDays implements CalendarHandler.
func (h *calendarHandlerImpl) UpdateUserWorkingDays(w http.ResponseWriter, r *http.Request) {
	var req calendar.UpdateUserWorkingDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Year, req.Month = yearMonthParams(r)
	req.UserID = chi.URLParam(r, "userId")

	result, err := h.calendarService.UpdateUserWorkingDays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User working days updated", result)
}

// ApplyToUsers implements CalendarHandler.
func (h *calendarHandlerImpl) ApplyToUsers(w http.ResponseWriter, r *http.Request) {
	var req calendar.ApplyToUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Year, req.Month = yearMonthParams(r)

	result, err := h.calendarService.ApplyGlobalToUsers(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Global config applied to users", result)
}

// RevertToGlobal implements CalendarHandler.
func (h *calendarHandlerImpl) RevertToGlobal(w http.ResponseWriter, r *http.Request) {
	var req calendar.ApplyToUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Year, req.Month = yearMonthParams(r)

	result, err := h.calendarService.RevertToGlobal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Users reverted to global config", result)
}
