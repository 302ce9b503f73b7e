// Package profile serves the admin member directory, role changes and
// self-service settings.
package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/infom4th/club-console/internal/models"
)

// listLimit caps the member directory page.
const listLimit = 80

// Repository defines the profile storage methods used here.
type Repository interface {
	ListProfiles(ctx context.Context, limit int) ([]models.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	UpdateRole(ctx context.Context, id, role string) error
	UpdateSettings(ctx context.Context, id string, settings models.DummySettings) error
}

// AuditRecorder appends one best-effort audit record.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, action, targetType string, targetID *string, detail string)
}

// Service implements the member directory and profile updates.
type Service struct {
	repo  Repository
	audit AuditRecorder
	log   *slog.Logger
}

// New creates a profile Service.
func New(repo Repository, audit AuditRecorder, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// List returns the newest profiles for the member directory.
func (s *Service) List(ctx context.Context) ([]models.Profile, error) {
	return s.repo.ListProfiles(ctx, listLimit)
}

// Get returns one profile by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Profile, error) {
	return s.repo.GetProfileByID(ctx, id)
}

// ChangeRole sets the role of the target profile and records the
// change in the audit log.
func (s *Service) ChangeRole(ctx context.Context, actorID, targetID, role string) error {
	const op = "services.profile.ChangeRole"

	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Record(ctx, actorID, models.ActionRoleChange, "profiles", &targetID, "Role set to "+role)

	return nil
}

// UpdateSettings applies a member's own settings changes. Self-service
// edits are not privileged mutations, so no audit record is written.
func (s *Service) UpdateSettings(ctx context.Context, id string, settings models.DummySettings) error {
	const op = "services.profile.UpdateSettings"

	if err := s.repo.UpdateSettings(ctx, id, settings); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
