package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/qrtoken"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
)

// fakeTokenService accepts one token value and rejects everything else.
type fakeTokenService struct {
	valid qrtoken.Token
}

func (f *fakeTokenService) Current(ctx context.Context, monthYear string) (qrtoken.TokenResponse, error) {
	return qrtoken.TokenResponse{}, qrtoken.ErrTokenNotFound
}

func (f *fakeTokenService) Issue(ctx context.Context, monthYear, actorID string) (qrtoken.TokenResponse, error) {
	return qrtoken.TokenResponse{}, nil
}

func (f *fakeTokenService) Verify(ctx context.Context, value string) (qrtoken.Token, error) {
	if value == f.valid.Token {
		return f.valid, nil
	}
	return qrtoken.Token{}, qrtoken.ErrInvalidOrExpiredToken
}

func newVerifyHandler() QRTokenHandler {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)
	return NewQRTokenHandler(&fakeTokenService{valid: qrtoken.Token{
		MonthYear: "2026-03",
		Token:     "2026-03-abc",
		IsActive:  true,
		ExpiresAt: time.Date(2026, time.March, 31, 23, 59, 59, 999000000, time.Local),
	}}, clock.Fixed(now))
}

func TestVerifyEndpoint_KnownToken(t *testing.T) {
	h := newVerifyHandler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/qr/verify", strings.NewReader(`{"token":"2026-03-abc"}`))
	h.Verify(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":true`)
	assert.Contains(t, rec.Body.String(), `"month_year":"2026-03"`)
}

func TestVerifyEndpoint_UnknownToken(t *testing.T) {
	h := newVerifyHandler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/qr/verify", strings.NewReader(`{"token":"stale"}`))
	h.Verify(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or expired attendance token")
}

func TestVerifyEndpoint_MalformedBody(t *testing.T) {
	h := newVerifyHandler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/qr/verify", strings.NewReader(`{`))
	h.Verify(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
