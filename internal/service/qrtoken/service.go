package qrtoken

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/presensia/attendance-backend-go/internal/domain/qrtoken"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
)

type TokenServiceImpl struct {
	tokenRepo qrtoken.TokenRepository
	clock     clock.Clock
}

func NewTokenService(tokenRepo qrtoken.TokenRepository, clk clock.Clock) qrtoken.TokenService {
	return &TokenServiceImpl{
		tokenRepo: tokenRepo,
		clock:     clk,
	}
}

func mapTokenToResponse(t qrtoken.Token) qrtoken.TokenResponse {
	return qrtoken.TokenResponse{
		MonthYear: t.MonthYear,
		Token:     t.Token,
		IsActive:  t.IsActive,
		ExpiresAt: t.ExpiresAt.Format(time.RFC3339),
		CreatedBy: t.CreatedBy,
	}
}

// monthEnd returns the last instant of the month beginning at monthStart.
func monthEnd(monthStart time.Time) time.Time {
	return monthStart.AddDate(0, 1, 0).Add(-time.Millisecond)
}

// Current implements qrtoken.TokenService.
func (s *TokenServiceImpl) Current(ctx context.Context, monthYear string) (qrtoken.TokenResponse, error) {
	if _, ok := validator.IsValidMonthKey(monthYear); !ok {
		return qrtoken.TokenResponse{}, validator.ValidationErrors{{
			Field:   "month_year",
			Message: "month_year must be in YYYY-MM format",
		}}
	}

	token, err := s.tokenRepo.GetActiveByMonth(ctx, monthYear)
	if err != nil {
		return qrtoken.TokenResponse{}, fmt.Errorf("failed to get active token: %w", err)
	}
	if token == nil || token.Expired(s.clock.Now()) {
		return qrtoken.TokenResponse{}, qrtoken.ErrTokenNotFound
	}

	return mapTokenToResponse(*token), nil
}

// Issue implements qrtoken.TokenService. Rotation is atomic at the store, so
// two concurrent issuers cannot leave two active tokens for the same month.
func (s *TokenServiceImpl) Issue(ctx context.Context, monthYear string, actorID string) (qrtoken.TokenResponse, error) {
	monthStart, ok := validator.IsValidMonthKey(monthYear)
	if !ok {
		return qrtoken.TokenResponse{}, validator.ValidationErrors{{
			Field:   "month_year",
			Message: "month_year must be in YYYY-MM format",
		}}
	}

	fresh := qrtoken.Token{
		MonthYear: monthYear,
		Token:     fmt.Sprintf("%s-%s", monthYear, uuid.NewString()),
		IsActive:  true,
		ExpiresAt: monthEnd(monthStart),
		CreatedBy: actorID,
	}

	created, err := s.tokenRepo.Rotate(ctx, fresh)
	if err != nil {
		return qrtoken.TokenResponse{}, fmt.Errorf("failed to rotate token: %w", err)
	}

	return mapTokenToResponse(created), nil
}

// Verify implements qrtoken.TokenService.
func (s *TokenServiceImpl) Verify(ctx context.Context, value string) (qrtoken.Token, error) {
	if validator.IsEmpty(value) {
		return qrtoken.Token{}, qrtoken.ErrInvalidOrExpiredToken
	}

	token, err := s.tokenRepo.GetByValue(ctx, value)
	if err != nil {
		return qrtoken.Token{}, fmt.Errorf("failed to look up token: %w", err)
	}
	if token == nil || !token.IsActive || token.Expired(s.clock.Now()) {
		return qrtoken.Token{}, qrtoken.ErrInvalidOrExpiredToken
	}

	return *token, nil
}
