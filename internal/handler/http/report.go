package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/report"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
)

type ReportHandler interface {
	GetReport(w http.ResponseWriter, r *http.Request)
	GetTracking(w http.ResponseWriter, r *http.Request)
	GetMyYearlyCalendar(w http.ResponseWriter, r *http.Request)
	GetUserYearlyCalendar(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func optionalQuery(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// GetReport implements ReportHandler.
func (h *reportHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	filter := report.ReportFilter{
		StartDate: optionalQuery(r, "start_date"),
		EndDate:   optionalQuery(r, "end_date"),
		UserID:    optionalQuery(r, "user_id"),
		Status:    optionalQuery(r, "status"),
		Period:    r.URL.Query().Get("period"),
	}

	result, err := h.reportService.ReportForRange(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTracking implements ReportHandler.
func (h *reportHandlerImpl) GetTracking(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	req := report.TrackingRequest{
		UserID: r.URL.Query().Get("user_id"),
		Year:   year,
		Month:  month,
		Period: r.URL.Query().Get("period"),
	}

	rows, err := h.reportService.WorkingHoursTracking(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// GetMyYearlyCalendar implements ReportHandler. The self view excludes
// future days from the absence counters.
func (h *reportHandlerImpl) GetMyYearlyCalendar(w http.ResponseWriter, r *http.Request) {
	userID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, _ := strconv.Atoi(chi.URLParam(r, "year"))

	result, err := h.reportService.YearlyCalendar(r.Context(), userID, year, report.ModeSelf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetUserYearlyCalendar implements ReportHandler. Admin view of one user's
// year via the user_id query parameter; omitting it (or passing "all")
// returns the full batch.
func (h *reportHandlerImpl) GetUserYearlyCalendar(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(chi.URLParam(r, "year"))
	userID := r.URL.Query().Get("user_id")

	if userID == "" || userID == "all" {
		result, err := h.reportService.YearlyCalendarAll(r.Context(), year)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	result, err := h.reportService.YearlyCalendar(r.Context(), userID, year, report.ModeAdmin)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
