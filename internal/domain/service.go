package domain

import "time"

// Service is an offered service a booking may reference.
type Service struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty" gorm:"type:text"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
