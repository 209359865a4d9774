package calendar

import "errors"

var (
	ErrConfigNotFound = errors.New("working days config not found")
)
