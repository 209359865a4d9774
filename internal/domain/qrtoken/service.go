package qrtoken

import "context"

// TokenService owns the monthly token lifecycle.
type TokenService interface {
	// Current returns the active, unexpired token for the month
	Current(ctx context.Context, monthYear string) (TokenResponse, error)

	// Issue mints a fresh token for the month, deactivating any predecessor
	Issue(ctx context.Context, monthYear string, actorID string) (TokenResponse, error)

	// Verify resolves a presented token string to its record, failing when
	// the token is unknown, inactive, or expired
	Verify(ctx context.Context, value string) (Token, error)
}
