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

// ErrProfileNotFound is returned when no profile matches the lookup.
var ErrProfileNotFound = errors.New("profile not found")

// CreateProfile inserts a new profile with the member role and returns
// its generated id.
func (s *Storage) CreateProfile(ctx context.Context, fullName, email, passwordHash string) (string, error) {
	const op = "storage.CreateProfile"

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	id := uuid.New().String()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO profiles (id, full_name, email, password_hash, role, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		id, fullName, email, passwordHash, models.RoleMember, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetProfileByEmail returns the profile with the given email.
func (s *Storage) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	const op = "storage.GetProfileByEmail"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT id, full_name, email, password_hash, role, title, location, timezone, avatar_url, created_at, updated_at
         FROM profiles WHERE email = $1`, email)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return profile, nil
}

// GetProfileByID returns the profile with the given id.
func (s *Storage) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	const op = "storage.GetProfileByID"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT id, full_name, email, password_hash, role, title, location, timezone, avatar_url, created_at, updated_at
         FROM profiles WHERE id = $1`, id)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return profile, nil
}

// GetRole returns the current role of the profile. Role checks always
// read the store, never the token.
func (s *Storage) GetRole(ctx context.Context, id string) (string, error) {
	const op = "storage.GetRole"

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var role string
	err := s.DB.QueryRowContext(ctx,
		`SELECT role FROM profiles WHERE id = $1`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrProfileNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return role, nil
}

// ListProfiles returns profiles ordered by creation time descending,
// capped at limit.
func (s *Storage) ListProfiles(ctx context.Context, limit int) ([]models.Profile, error) {
	const op = "storage.ListProfiles"

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, full_name, email, password_hash, role, title, location, timezone, avatar_url, created_at, updated_at
         FROM profiles ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return profiles, nil
}

// UpdateRole sets the role of the profile with the given id.
func (s *Storage) UpdateRole(ctx context.Context, id, role string) error {
	const op = "storage.UpdateRole"

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE profiles SET role = $1, updated_at = $2 WHERE id = $3`,
		role, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// UpdateSettings updates the profile's own settings fields.
func (s *Storage) UpdateSettings(ctx context.Context, id string, settings models.DummySettings) error {
	const op = "storage.UpdateSettings"

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE profiles SET full_name = $1, title = $2, location = $3, timezone = $4, updated_at = $5
         WHERE id = $6`,
		settings.FullName, settings.Title, settings.Location, settings.Timezone, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var profile models.Profile
	var title, location, timezone, avatarURL sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(&profile.ID, &profile.FullName, &profile.Email, &profile.PasswordHash,
		&profile.Role, &title, &location, &timezone, &avatarURL,
		&profile.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	profile.Title = title.String
	profile.Location = location.String
	profile.Timezone = timezone.String
	profile.AvatarURL = avatarURL.String
	if updatedAt.Valid {
		profile.UpdatedAt = &updatedAt.Time
	}

	return &profile, nil
}
