package models

import "time"

// RoleAdmin is the role of administrator accounts
const RoleAdmin = "ADMIN"

// User represents an administrator account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Not serialized
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
