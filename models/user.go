package models

import "time"

const (
	MaxUsernameLength = 50
	MaxEmailLength    = 100
)

type User struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never exposed in API responses
}
