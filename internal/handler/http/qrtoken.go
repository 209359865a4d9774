package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/qrtoken"
	"github.com/presensia/attendance-backend-go/internal/handler/http/response"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
)

type QRTokenHandler interface {
	GetCurrent(w http.ResponseWriter, r *http.Request)
	Issue(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
}

type qrTokenHandlerImpl struct {
	tokenService qrtoken.TokenService
	clock        clock.Clock
}

func NewQRTokenHandler(tokenService qrtoken.TokenService, clk clock.Clock) QRTokenHandler {
	return &qrTokenHandlerImpl{
		tokenService: tokenService,
		clock:        clk,
	}
}

type issueTokenRequest struct {
	MonthYear string `json:"month_year,omitempty"` // defaults to the current month
}

// monthYearOrCurrent falls back to the current month when the caller names
// no month.
func (h *qrTokenHandlerImpl) monthYearOrCurrent(monthYear string) string {
	if monthYear != "" {
		return monthYear
	}
	return h.clock.Now().Format("2006-01")
}

// GetCurrent implements QRTokenHandler.
func (h *qrTokenHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	monthYear := h.monthYearOrCurrent(r.URL.Query().Get("month_year"))

	result, err := h.tokenService.Current(r.Context(), monthYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Issue implements QRTokenHandler.
func (h *qrTokenHandlerImpl) Issue(w http.ResponseWriter, r *http.Request) {
	actorID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req issueTokenRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	monthYear := h.monthYearOrCurrent(req.MonthYear)

	result, err := h.tokenService.Issue(r.Context(), monthYear, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance token issued", result)
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

type verifyTokenResponse struct {
	Valid     bool   `json:"valid"`
	MonthYear string `json:"month_year"`
	ExpiresAt string `json:"expires_at"`
}

// Verify implements QRTokenHandler. Any authenticated caller may probe a
// scanned token before attempting a check-in.
func (h *qrTokenHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	token, err := h.tokenService.Verify(r.Context(), req.Token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, verifyTokenResponse{
		Valid:     true,
		MonthYear: token.MonthYear,
		ExpiresAt: token.ExpiresAt.Format(time.RFC3339),
	})
}
