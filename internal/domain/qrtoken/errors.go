package qrtoken

import "errors"

var (
	ErrInvalidOrExpiredToken = errors.New("invalid or expired attendance token")
	ErrTokenNotFound         = errors.New("no active attendance token for this month")
)
