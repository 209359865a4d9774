package qrtoken

type TokenResponse struct {
	MonthYear string `json:"month_year"`
	Token     string `json:"token"`
	IsActive  bool   `json:"is_active"`
	ExpiresAt string `json:"expires_at"`
	CreatedBy string `json:"created_by,omitempty"`
}
