// Package audit appends records about privileged mutations and serves
// the recent-activity feed. Writes are best-effort: a failed audit
// write never fails the mutation it documents, it is logged and
// counted instead.
package audit

import (
	"context"
	"log/slog"

	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/models"
	"github.com/infom4th/club-console/internal/obs"
)

// listLimit caps the recent-activity feed.
const listLimit = 30

// Repository defines the audit log storage methods.
type Repository interface {
	// CreateAuditRecord appends one record to the audit log.
	CreateAuditRecord(ctx context.Context, record models.AuditRecord) error
	// ListAuditRecords returns the newest records, capped at limit.
	ListAuditRecords(ctx context.Context, limit int) ([]models.AuditRecord, error)
}

// Service writes and reads the append-only audit log.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates an audit Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Record appends one audit record. Failures are swallowed: the calling
// mutation has already succeeded and must not be rolled back over a
// missing log line. Every swallowed failure increments a counter so it
// stays visible on the metrics endpoint.
func (s *Service) Record(ctx context.Context, actorID, action, targetType string, targetID *string, detail string) {
	err := s.repo.CreateAuditRecord(ctx, models.AuditRecord{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
	})
	if err != nil {
		obs.AuditWriteFailures.Inc()
		s.log.Warn("failed to write audit record",
			slog.String("action", action),
			slog.String("target_type", targetType),
			sl.Err(err))
	}
}

// List returns the most recent audit records, newest first.
func (s *Service) List(ctx context.Context) ([]models.AuditRecord, error) {
	return s.repo.ListAuditRecords(ctx, listLimit)
}
