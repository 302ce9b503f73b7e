package repository

import (
	"context"
	"fmt"

	"github.com/infom4th/club-console/internal/models"
)

// searchLimit caps each collection's contribution to a search response.
const searchLimit = 5

// SearchProfiles matches profiles by name or email, capped at five hits.
func (s *Storage) SearchProfiles(ctx context.Context, query string) ([]models.SearchHit, error) {
	const op = "storage.SearchProfiles"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, full_name, email FROM profiles
         WHERE full_name ILIKE $1 OR email ILIKE $1
         ORDER BY created_at DESC LIMIT $2`,
		"%"+query+"%", searchLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var hits []models.SearchHit
	for rows.Next() {
		var id, fullName, email string
		if err := rows.Scan(&id, &fullName, &email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		hits = append(hits, models.SearchHit{
			Category: models.CategoryProfiles,
			ID:       id,
			Title:    fullName,
			Subtitle: email,
			Target:   "/admin/users",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hits, nil
}

// SearchJoinRequests matches join requests by applicant name, email or
// declared major.
func (s *Storage) SearchJoinRequests(ctx context.Context, query string) ([]models.SearchHit, error) {
	const op = "storage.SearchJoinRequests"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, email FROM join_requests
         WHERE name ILIKE $1 OR email ILIKE $1 OR major ILIKE $1
         ORDER BY created_at DESC LIMIT $2`,
		"%"+query+"%", searchLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var hits []models.SearchHit
	for rows.Next() {
		var id, name, email string
		if err := rows.Scan(&id, &name, &email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		hits = append(hits, models.SearchHit{
			Category: models.CategoryJoinRequests,
			ID:       id,
			Title:    name,
			Subtitle: email,
			Target:   "/admin/requests",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hits, nil
}

// SearchEvents matches events by title.
func (s *Storage) SearchEvents(ctx context.Context, query string) ([]models.SearchHit, error) {
	const op = "storage.SearchEvents"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, COALESCE(location, '') FROM events
         WHERE title ILIKE $1
         ORDER BY created_at DESC LIMIT $2`,
		"%"+query+"%", searchLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var hits []models.SearchHit
	for rows.Next() {
		var id, title, location string
		if err := rows.Scan(&id, &title, &location); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		hits = append(hits, models.SearchHit{
			Category: models.CategoryEvents,
			ID:       id,
			Title:    title,
			Subtitle: location,
			Target:   "/admin/content",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hits, nil
}

// SearchNews matches news by title.
func (s *Storage) SearchNews(ctx context.Context, query string) ([]models.SearchHit, error) {
	const op = "storage.SearchNews"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, COALESCE(tag, '') FROM news
         WHERE title ILIKE $1
         ORDER BY created_at DESC LIMIT $2`,
		"%"+query+"%", searchLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var hits []models.SearchHit
	for rows.Next() {
		var id, title, tag string
		if err := rows.Scan(&id, &title, &tag); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		hits = append(hits, models.SearchHit{
			Category: models.CategoryNews,
			ID:       id,
			Title:    title,
			Subtitle: tag,
			Target:   "/admin/content",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hits, nil
}

// SearchLibrary matches library paths by title.
func (s *Storage) SearchLibrary(ctx context.Context, query string) ([]models.SearchHit, error) {
	const op = "storage.SearchLibrary"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, category FROM library_paths
         WHERE title ILIKE $1
         ORDER BY created_at DESC LIMIT $2`,
		"%"+query+"%", searchLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var hits []models.SearchHit
	for rows.Next() {
		var id, title, category string
		if err := rows.Scan(&id, &title, &category); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		hits = append(hits, models.SearchHit{
			Category: models.CategoryLibrary,
			ID:       id,
			Title:    title,
			Subtitle: category,
			Target:   "/admin/content",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return hits, nil
}
