package models

import "time"

// Join request statuses. A request starts as "new" and is moved by an
// admin to "approved" or "declined".
const (
	JoinStatusNew      = "new"
	JoinStatusApproved = "approved"
	JoinStatusDeclined = "declined"
)

// JoinRequest is submitted by an unauthenticated visitor through the
// public join form.
type JoinRequest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Major     string    `json:"major,omitempty"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyJoinRequest is the public join form payload.
type DummyJoinRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Major   string `json:"major,omitempty" validate:"omitempty"`
	Message string `json:"message,omitempty" validate:"omitempty"`
}

// DummyJoinDecision is the admin payload for resolving a join request.
type DummyJoinDecision struct {
	Status string `json:"status" validate:"required,oneof=approved declined"`
}
