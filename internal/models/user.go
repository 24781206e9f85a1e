// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// Role identifies a user's privilege level. It is validated at every
// boundary (signup input, token gate) so an unknown role string can never
// slip past an authorization check.
type Role string

const (
	RoleUser      Role = "user"
	RoleDeveloper Role = "developer"
	RoleAdmin     Role = "admin"
)

// ParseRole normalizes a raw role string. Only "user" and "developer" may be
// chosen at signup; "admin" is assigned out of band.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleUser, "":
		return RoleUser, true
	case RoleDeveloper:
		return RoleDeveloper, true
	}
	return "", false
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleDeveloper || r == RoleAdmin
}

// User represents an account on the platform. Accounts are never hard
// deleted; admins flip IsActive instead.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Role      Role      `gorm:"not null;default:user" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
