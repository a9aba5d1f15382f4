package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleHost   Role = "host"
	RoleClient Role = "client"
)

// User is a host or staff member. Authentication lives in an external
// service; this core only consumes the identity carried by the JWT.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
