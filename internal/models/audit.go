package models

import "time"

// Audit action tags written by the console.
const (
	ActionRoleChange     = "role_change"
	ActionContentArchive = "content_archive"
	ActionContentRestore = "content_restore"
)

// AuditRecord documents one privileged mutation. Records are append-only:
// this service never updates or deletes them.
type AuditRecord struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   *string   `json:"target_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
