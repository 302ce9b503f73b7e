package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/infom4th/club-console/internal/models"
)

// ErrJoinRequestNotFound is returned when no join request matches the id.
var ErrJoinRequestNotFound = errors.New("join request not found")

// CreateJoinRequest inserts a join request with the new status and
// returns its generated id.
func (s *Storage) CreateJoinRequest(ctx context.Context, req models.DummyJoinRequest) (string, error) {
	const op = "storage.CreateJoinRequest"

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	id := uuid.New().String()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO join_requests (id, name, email, major, message, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, req.Name, req.Email, req.Major, req.Message, models.JoinStatusNew, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// ListJoinRequests returns join requests ordered by creation time
// descending.
func (s *Storage) ListJoinRequests(ctx context.Context) ([]models.JoinRequest, error) {
	const op = "storage.ListJoinRequests"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, email, major, message, status, created_at
         FROM join_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var requests []models.JoinRequest
	for rows.Next() {
		var req models.JoinRequest
		err := rows.Scan(&req.ID, &req.Name, &req.Email, &req.Major, &req.Message,
			&req.Status, &req.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return requests, nil
}

// UpdateJoinRequestStatus sets the status of a join request.
func (s *Storage) UpdateJoinRequestStatus(ctx context.Context, id, status string) error {
	const op = "storage.UpdateJoinRequestStatus"

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE join_requests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrJoinRequestNotFound
	}

	return nil
}
