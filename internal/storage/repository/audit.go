package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/infom4th/club-console/internal/models"
)

// CreateAuditRecord appends one record to the audit log. The log is
// append-only: there are no update or delete methods.
func (s *Storage) CreateAuditRecord(ctx context.Context, record models.AuditRecord) error {
	const op = "storage.CreateAuditRecord"

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var targetID any
	if record.TargetID != nil {
		targetID = *record.TargetID
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO audit_logs (id, actor_id, action, target_type, target_id, detail, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New().String(), record.ActorID, record.Action, record.TargetType,
		targetID, record.Detail, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListAuditRecords returns the most recent audit records, newest first,
// capped at limit.
func (s *Storage) ListAuditRecords(ctx context.Context, limit int) ([]models.AuditRecord, error) {
	const op = "storage.ListAuditRecords"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, actor_id, action, target_type, target_id, detail, created_at
         FROM audit_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var records []models.AuditRecord
	for rows.Next() {
		var record models.AuditRecord
		var targetID sql.NullString
		err := rows.Scan(&record.ID, &record.ActorID, &record.Action, &record.TargetType,
			&targetID, &record.Detail, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if targetID.Valid {
			record.TargetID = &targetID.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}
