package qrtoken

import "context"

// TokenRepository stores monthly tokens. A partial unique index on
// (month_year) WHERE is_active backstops Rotate so two concurrently-active
// tokens for one month cannot exist.
type TokenRepository interface {
	// GetActiveByMonth returns nil when no active token exists for the month
	GetActiveByMonth(ctx context.Context, monthYear string) (*Token, error)

	// GetByValue looks a token up by its exact string value
	GetByValue(ctx context.Context, value string) (*Token, error)

	// Rotate atomically deactivates every token for the month and inserts
	// the replacement
	Rotate(ctx context.Context, token Token) (Token, error)
}
