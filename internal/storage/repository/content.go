package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/infom4th/club-console/internal/models"
)

// ErrContentNotFound is returned when no row matches the content id.
var ErrContentNotFound = errors.New("content not found")

// CreateNews inserts a news article and returns its generated id.
func (s *Storage) CreateNews(ctx context.Context, draft models.ContentDraft) (string, error) {
	const op = "storage.CreateNews"

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	id := uuid.New().String()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO news (id, slug, title, summary, category, tag, date, read_time, body, is_featured, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10)`,
		id, draft.Slug, draft.Title, draft.Summary, draft.Category, draft.Tag,
		draft.Date, draft.ReadTime, draft.Body, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdateNews overwrites the editable fields of a news article.
func (s *Storage) UpdateNews(ctx context.Context, id string, draft models.ContentDraft) error {
	const op = "storage.UpdateNews"

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE news SET slug = $1, title = $2, summary = $3, category = $4, tag = $5,
                date = $6, read_time = $7, body = $8
         WHERE id = $9`,
		draft.Slug, draft.Title, draft.Summary, draft.Category, draft.Tag,
		draft.Date, draft.ReadTime, draft.Body, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return checkAffected(op, result)
}

// CreateEvent inserts an event and returns its generated id.
func (s *Storage) CreateEvent(ctx context.Context, draft models.ContentDraft) (string, error) {
	const op = "storage.CreateEvent"

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	id := uuid.New().String()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO events (id, title, date, event_time, location, category, description, status, registration_url, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, draft.Title, draft.Date, draft.Time, draft.Location, draft.Category,
		draft.Description, draft.Status, draft.RegistrationURL, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdateEvent overwrites the editable fields of an event.
func (s *Storage) UpdateEvent(ctx context.Context, id string, draft models.ContentDraft) error {
	const op = "storage.UpdateEvent"

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE events SET title = $1, date = $2, event_time = $3, location = $4, category = $5,
                description = $6, status = $7, registration_url = $8
         WHERE id = $9`,
		draft.Title, draft.Date, draft.Time, draft.Location, draft.Category,
		draft.Description, draft.Status, draft.RegistrationURL, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return checkAffected(op, result)
}

// CreateLibraryPath inserts a library path and returns its generated id.
func (s *Storage) CreateLibraryPath(ctx context.Context, draft models.ContentDraft) (string, error) {
	const op = "storage.CreateLibraryPath"

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	id := uuid.New().String()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO library_paths (id, title, category, description, modules, difficulty, instructors, rating, students, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, draft.Title, draft.Category, draft.Description, draft.Modules,
		draft.Difficulty, draft.Instructors, draft.Rating, draft.Students, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdateLibraryPath overwrites the editable fields of a library path.
func (s *Storage) UpdateLibraryPath(ctx context.Context, id string, draft models.ContentDraft) error {
	const op = "storage.UpdateLibraryPath"

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE library_paths SET title = $1, category = $2, description = $3, modules = $4,
                difficulty = $5, instructors = $6, rating = $7, students = $8
         WHERE id = $9`,
		draft.Title, draft.Category, draft.Description, draft.Modules,
		draft.Difficulty, draft.Instructors, draft.Rating, draft.Students, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return checkAffected(op, result)
}

// SetArchived stamps or clears archived_at on a row of the given kind
// and returns its title for audit details. Archiving an already
// archived row (or restoring a live one) is a no-op that still
// succeeds.
func (s *Storage) SetArchived(ctx context.Context, kind, id string, archived bool) (string, error) {
	const op = "storage.SetArchived"

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	table, err := tableForKind(kind)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var stamp any
	if archived {
		stamp = time.Now().UTC()
	}

	var title string
	err = s.DB.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE %s SET archived_at = $1 WHERE id = $2 RETURNING title`, table),
		stamp, id).Scan(&title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrContentNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return title, nil
}

// SetFeatured marks the given news row featured and unmarks every other
// row in the same statement, so the at-most-one invariant cannot be
// broken between two writes.
func (s *Storage) SetFeatured(ctx context.Context, id string) error {
	const op = "storage.SetFeatured"

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	_, err := s.DB.ExecContext(ctx,
		`UPDATE news SET is_featured = (id = $1)`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListNews returns news ordered by date descending. Archived rows are
// included only when includeArchived is set.
func (s *Storage) ListNews(ctx context.Context, includeArchived bool) ([]models.News, error) {
	const op = "storage.ListNews"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	query := `SELECT id, slug, title, summary, category, tag, date, read_time, body, is_featured, archived_at, created_at
              FROM news`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY date DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.News
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetNewsBySlug returns a single non-archived news article by slug.
func (s *Storage) GetNewsBySlug(ctx context.Context, slug string) (*models.News, error) {
	const op = "storage.GetNewsBySlug"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT id, slug, title, summary, category, tag, date, read_time, body, is_featured, archived_at, created_at
         FROM news WHERE slug = $1 AND archived_at IS NULL`, slug)

	item, err := scanNews(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

// ListEvents returns events ordered by date descending.
func (s *Storage) ListEvents(ctx context.Context, includeArchived bool) ([]models.Event, error) {
	const op = "storage.ListEvents"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	query := `SELECT id, title, date, event_time, location, category, description, status, registration_url, archived_at, created_at
              FROM events`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY date DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Event
	for rows.Next() {
		var item models.Event
		var eventTime, location, category, description, status, registrationURL sql.NullString
		var archivedAt sql.NullTime
		err := rows.Scan(&item.ID, &item.Title, &item.Date, &eventTime, &location,
			&category, &description, &status, &registrationURL, &archivedAt, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Time = eventTime.String
		item.Location = location.String
		item.Category = category.String
		item.Description = description.String
		item.Status = status.String
		item.RegistrationURL = registrationURL.String
		if archivedAt.Valid {
			item.ArchivedAt = &archivedAt.Time
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// ListLibraryPaths returns library paths ordered by title.
func (s *Storage) ListLibraryPaths(ctx context.Context, includeArchived bool) ([]models.LibraryPath, error) {
	const op = "storage.ListLibraryPaths"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	query := `SELECT id, title, category, description, modules, difficulty, instructors, rating, students, archived_at, created_at
              FROM library_paths`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY title ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.LibraryPath
	for rows.Next() {
		var item models.LibraryPath
		var description, difficulty sql.NullString
		var archivedAt sql.NullTime
		err := rows.Scan(&item.ID, &item.Title, &item.Category, &description, &item.Modules,
			&difficulty, &item.Instructors, &item.Rating, &item.Students, &archivedAt, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Description = description.String
		item.Difficulty = difficulty.String
		if archivedAt.Valid {
			item.ArchivedAt = &archivedAt.Time
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func scanNews(row rowScanner) (*models.News, error) {
	var item models.News
	var summary, category, tag, date, readTime, body sql.NullString
	var archivedAt sql.NullTime

	err := row.Scan(&item.ID, &item.Slug, &item.Title, &summary, &category, &tag,
		&date, &readTime, &body, &item.IsFeatured, &archivedAt, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	item.Summary = summary.String
	item.Category = category.String
	item.Tag = tag.String
	item.Date = date.String
	item.ReadTime = readTime.String
	item.Body = body.String
	if archivedAt.Valid {
		item.ArchivedAt = &archivedAt.Time
	}

	return &item, nil
}

func tableForKind(kind string) (string, error) {
	switch kind {
	case models.KindNews:
		return "news", nil
	case models.KindEvent:
		return "events", nil
	case models.KindLibrary:
		return "library_paths", nil
	default:
		return "", fmt.Errorf("unknown content kind: %s", kind)
	}
}

func checkAffected(op string, result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrContentNotFound
	}
	return nil
}
