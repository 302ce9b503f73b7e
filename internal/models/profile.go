// Package models contains the domain structures of the club site:
// member profiles, the three content kinds, join requests and audit
// records, plus the request shapes accepted from JSON bodies.
package models

import "time"

// Role values. Role is the sole authorization signal for the admin console.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Profile is a registered member of the club. There is exactly one
// profile per identity; profiles are never deleted, only updated.
type Profile struct {
	ID           string     `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Title        string     `json:"title,omitempty"`
	Location     string     `json:"location,omitempty"`
	Timezone     string     `json:"timezone,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// DummySettings is the self-service profile update payload.
type DummySettings struct {
	FullName string `json:"full_name" validate:"required"`
	Title    string `json:"title,omitempty" validate:"omitempty"`
	Location string `json:"location,omitempty" validate:"omitempty"`
	Timezone string `json:"timezone,omitempty" validate:"omitempty"`
}

// DummyRoleChange is the admin payload for promoting or demoting a member.
type DummyRoleChange struct {
	Role string `json:"role" validate:"required,oneof=member admin"`
}
