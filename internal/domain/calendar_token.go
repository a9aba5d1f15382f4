package domain

import "time"

// CalendarToken stores a host's Google Calendar OAuth2 credentials.
// Presence of a row means the host has an active sync connection.
type CalendarToken struct {
	ID           int64     `json:"-" gorm:"primaryKey"`
	HostID       int64     `json:"host_id" gorm:"uniqueIndex"`
	AccessToken  string    `json:"-" gorm:"type:text"`
	RefreshToken string    `json:"-" gorm:"type:text"`
	TokenType    string    `json:"-"`
	Expiry       time.Time `json:"expiry"`
	AccountEmail string    `json:"account_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (CalendarToken) TableName() string { return "calendar_tokens" }

// Expired reports whether the access token is stale and cannot be refreshed.
func (t *CalendarToken) Expired(now time.Time) bool {
	return !t.Expiry.IsZero() && t.Expiry.Before(now) && t.RefreshToken == ""
}
