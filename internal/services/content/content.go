// Package content implements the lifecycle of the three content kinds:
// news, events and library paths. Create, update, archive and restore
// validate first, write second, audit third.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/models"
)

// Cache TTL for public listings. Mutations invalidate eagerly, the TTL
// only bounds staleness after an invalidation is missed.
const publicCacheTTL = 5 * time.Minute

// ValidationError carries the human-readable message shown to the
// editor when a draft is missing its mandatory fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Repository defines the content storage methods.
type Repository interface {
	CreateNews(ctx context.Context, draft models.ContentDraft) (string, error)
	UpdateNews(ctx context.Context, id string, draft models.ContentDraft) error
	CreateEvent(ctx context.Context, draft models.ContentDraft) (string, error)
	UpdateEvent(ctx context.Context, id string, draft models.ContentDraft) error
	CreateLibraryPath(ctx context.Context, draft models.ContentDraft) (string, error)
	UpdateLibraryPath(ctx context.Context, id string, draft models.ContentDraft) error
	SetArchived(ctx context.Context, kind, id string, archived bool) (string, error)
	SetFeatured(ctx context.Context, id string) error
	ListNews(ctx context.Context, includeArchived bool) ([]models.News, error)
	GetNewsBySlug(ctx context.Context, slug string) (*models.News, error)
	ListEvents(ctx context.Context, includeArchived bool) ([]models.Event, error)
	ListLibraryPaths(ctx context.Context, includeArchived bool) ([]models.LibraryPath, error)
}

// Cache describes the caching methods for public listings.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// AuditRecorder appends one best-effort audit record.
type AuditRecorder interface {
	Record(ctx context.Context, actorID, action, targetType string, targetID *string, detail string)
}

// Service implements the content lifecycle.
type Service struct {
	repo  Repository
	cache Cache
	audit AuditRecorder
	log   *slog.Logger
}

// New creates a content Service.
func New(repo Repository, cache Cache, audit AuditRecorder, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		audit: audit,
		log:   log,
	}
}

// Create validates the draft and inserts a row of the given kind.
// Exactly one audit record follows a successful insert.
func (s *Service) Create(ctx context.Context, actorID, kind string, draft models.ContentDraft) (string, error) {
	const op = "services.content.Create"

	if err := validateDraft(kind, draft); err != nil {
		return "", err
	}

	var id string
	var err error
	switch kind {
	case models.KindNews:
		id, err = s.repo.CreateNews(ctx, draft)
	case models.KindEvent:
		id, err = s.repo.CreateEvent(ctx, draft)
	case models.KindLibrary:
		id, err = s.repo.CreateLibraryPath(ctx, draft)
	default:
		return "", &ValidationError{Message: fmt.Sprintf("Unknown content kind %q.", kind)}
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if kind == models.KindNews && draft.IsFeatured {
		if err := s.repo.SetFeatured(ctx, id); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	s.invalidatePublic(kind)
	s.audit.Record(ctx, actorID, auditTag(kind)+"_create", kind, &id, "Created "+draft.Title)

	return id, nil
}

// Update validates the draft and overwrites the row of the given kind.
func (s *Service) Update(ctx context.Context, actorID, kind, id string, draft models.ContentDraft) error {
	const op = "services.content.Update"

	if err := validateDraft(kind, draft); err != nil {
		return err
	}

	var err error
	switch kind {
	case models.KindNews:
		err = s.repo.UpdateNews(ctx, id, draft)
	case models.KindEvent:
		err = s.repo.UpdateEvent(ctx, id, draft)
	case models.KindLibrary:
		err = s.repo.UpdateLibraryPath(ctx, id, draft)
	default:
		return &ValidationError{Message: fmt.Sprintf("Unknown content kind %q.", kind)}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if kind == models.KindNews && draft.IsFeatured {
		if err := s.repo.SetFeatured(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	s.invalidatePublic(kind)
	s.audit.Record(ctx, actorID, auditTag(kind)+"_update", kind, &id, "Updated "+draft.Title)

	return nil
}

// Archive soft-deletes a row by stamping archived_at. The row stays in
// the store and in admin listings; only public listings drop it.
// Archiving an already archived row succeeds without change.
func (s *Service) Archive(ctx context.Context, actorID, kind, id string) error {
	const op = "services.content.Archive"

	title, err := s.repo.SetArchived(ctx, kind, id, true)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidatePublic(kind)
	s.audit.Record(ctx, actorID, models.ActionContentArchive, kind, &id, "Archived "+title)

	return nil
}

// Restore clears archived_at, returning the row to public listings.
func (s *Service) Restore(ctx context.Context, actorID, kind, id string) error {
	const op = "services.content.Restore"

	title, err := s.repo.SetArchived(ctx, kind, id, false)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidatePublic(kind)
	s.audit.Record(ctx, actorID, models.ActionContentRestore, kind, &id, "Restored "+title)

	return nil
}

// ListAll returns every row of every kind, archived included. This is
// the admin content page payload.
func (s *Service) ListAll(ctx context.Context) (*models.ContentCollection, error) {
	const op = "services.content.ListAll"

	news, err := s.repo.ListNews(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	events, err := s.repo.ListEvents(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	library, err := s.repo.ListLibraryPaths(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.ContentCollection{
		News:    news,
		Events:  events,
		Library: library,
	}, nil
}

// ListPublic returns the non-archived rows of one kind, served from
// cache when warm.
func (s *Service) ListPublic(ctx context.Context, kind string) (any, error) {
	const op = "services.content.ListPublic"

	key := publicCacheKey(kind)

	switch kind {
	case models.KindNews:
		var cached []models.News
		if found, err := s.cache.Get(key, &cached); err == nil && found {
			return cached, nil
		}
		items, err := s.repo.ListNews(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.warmCache(key, items)
		return items, nil
	case models.KindEvent:
		var cached []models.Event
		if found, err := s.cache.Get(key, &cached); err == nil && found {
			return cached, nil
		}
		items, err := s.repo.ListEvents(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.warmCache(key, items)
		return items, nil
	case models.KindLibrary:
		var cached []models.LibraryPath
		if found, err := s.cache.Get(key, &cached); err == nil && found {
			return cached, nil
		}
		items, err := s.repo.ListLibraryPaths(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.warmCache(key, items)
		return items, nil
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("Unknown content kind %q.", kind)}
	}
}

// GetNewsBySlug returns one published article for the public site.
func (s *Service) GetNewsBySlug(ctx context.Context, slug string) (*models.News, error) {
	return s.repo.GetNewsBySlug(ctx, slug)
}

func (s *Service) warmCache(key string, value any) {
	if err := s.cache.Set(key, value, publicCacheTTL); err != nil {
		s.log.Warn("failed to warm listing cache", slog.String("key", key), sl.Err(err))
	}
}

func (s *Service) invalidatePublic(kind string) {
	if err := s.cache.Invalidate(publicCacheKey(kind)); err != nil {
		s.log.Warn("failed to invalidate listing cache", slog.String("kind", kind), sl.Err(err))
	}
}

func publicCacheKey(kind string) string {
	return "public:" + kind
}

// auditTag maps a kind to the singular prefix of its audit action tags
// (news_create, event_update, library_create and so on).
func auditTag(kind string) string {
	switch kind {
	case models.KindEvent:
		return "event"
	case models.KindLibrary:
		return "library"
	default:
		return kind
	}
}

// validateDraft enforces the per-kind mandatory fields before any
// store call. The messages are shown verbatim to the editor.
func validateDraft(kind string, draft models.ContentDraft) error {
	switch kind {
	case models.KindNews:
		if draft.Slug == "" || draft.Title == "" {
			return &ValidationError{Message: "News requires a slug and title."}
		}
	case models.KindEvent:
		if draft.Title == "" || draft.Date == "" {
			return &ValidationError{Message: "Event requires a title and date."}
		}
	case models.KindLibrary:
		if draft.Title == "" || draft.Category == "" {
			return &ValidationError{Message: "Library entry requires title and category."}
		}
	}
	return nil
}
