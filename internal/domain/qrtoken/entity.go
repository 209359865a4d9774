package qrtoken

import "time"

// Token is the monthly rotating check-in token. At most one token is active
// per month_year; issuing a new one deactivates the previous. Rendering the
// token as a QR image is the caller's concern.
type Token struct {
	ID        string
	MonthYear string // YYYY-MM
	Token     string
	IsActive  bool
	ExpiresAt time.Time // last instant of the month
	CreatedBy string
	CreatedAt time.Time
}

// Expired reports whether the token has passed its month-end expiry.
func (t Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
