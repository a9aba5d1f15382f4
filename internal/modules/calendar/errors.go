package calendar

import "errors"

var (
	ErrNotConfigured = errors.New("google calendar not configured")
	ErrBadState      = errors.New("invalid oauth state")
)
