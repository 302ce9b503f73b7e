package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/infom4th/club-console/internal/models"
)

// CountProfiles returns the total number of profiles.
func (s *Storage) CountProfiles(ctx context.Context) (int, error) {
	return s.countRows(ctx, "storage.CountProfiles",
		`SELECT COUNT(*) FROM profiles`)
}

// CountProfilesSince returns the number of profiles created after the
// cutoff.
func (s *Storage) CountProfilesSince(ctx context.Context, cutoff time.Time) (int, error) {
	const op = "storage.CountProfilesSince"

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM profiles WHERE created_at >= $1`, cutoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// CountEvents returns the number of non-archived events.
func (s *Storage) CountEvents(ctx context.Context) (int, error) {
	return s.countRows(ctx, "storage.CountEvents",
		`SELECT COUNT(*) FROM events WHERE archived_at IS NULL`)
}

// CountNews returns the number of non-archived news articles.
func (s *Storage) CountNews(ctx context.Context) (int, error) {
	return s.countRows(ctx, "storage.CountNews",
		`SELECT COUNT(*) FROM news WHERE archived_at IS NULL`)
}

// CountLibraryPaths returns the number of non-archived library paths.
func (s *Storage) CountLibraryPaths(ctx context.Context) (int, error) {
	return s.countRows(ctx, "storage.CountLibraryPaths",
		`SELECT COUNT(*) FROM library_paths WHERE archived_at IS NULL`)
}

// CountOpenJoinRequests returns the number of join requests still in
// the new status.
func (s *Storage) CountOpenJoinRequests(ctx context.Context) (int, error) {
	const op = "storage.CountOpenJoinRequests"

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM join_requests WHERE status = $1`, models.JoinStatusNew).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// RecentProfiles returns the newest profiles, capped at limit.
func (s *Storage) RecentProfiles(ctx context.Context, limit int) ([]models.Profile, error) {
	return s.ListProfiles(ctx, limit)
}

// RecentJoinRequests returns the newest join requests, capped at limit.
func (s *Storage) RecentJoinRequests(ctx context.Context, limit int) ([]models.JoinRequest, error) {
	const op = "storage.RecentJoinRequests"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, email, major, message, status, created_at
         FROM join_requests ORDER BY created_at DESC LIMIT $1`, limit)
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

// JoinRequestTimesSince returns the creation timestamps of join
// requests submitted after the cutoff. The histogram bucketing happens
// in the dashboard service.
func (s *Storage) JoinRequestTimesSince(ctx context.Context, cutoff time.Time) ([]time.Time, error) {
	const op = "storage.JoinRequestTimesSince"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT created_at FROM join_requests WHERE created_at >= $1 ORDER BY created_at`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return times, nil
}

func (s *Storage) countRows(ctx context.Context, op, query string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}
