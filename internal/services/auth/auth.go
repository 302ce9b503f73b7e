// Package auth handles registration, login and token validation.
// Tokens carry identity only; authorization always re-reads the role
// from the store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/infom4th/club-console/internal/lib/jwt"
	"github.com/infom4th/club-console/internal/lib/password"
	"github.com/infom4th/club-console/internal/models"
	"github.com/infom4th/club-console/internal/storage/repository"
)

// ErrInvalidCredentials is returned for unknown emails and wrong
// passwords alike, so a caller cannot probe which emails exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering an already used email.
var ErrEmailTaken = errors.New("email already registered")

// Repository defines the profile storage methods used by auth.
type Repository interface {
	CreateProfile(ctx context.Context, fullName, email, passwordHash string) (string, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// Service implements registration and login.
type Service struct {
	repo     Repository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New creates an auth Service.
func New(repo Repository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register creates a new member profile and returns its id. Every new
// profile starts with the member role; roles are only raised later by
// an existing admin.
func (s *Service) Register(ctx context.Context, fullName, email, plainPassword string) (string, error) {
	const op = "services.auth.Register"

	if _, err := s.repo.GetProfileByEmail(ctx, email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(plainPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateProfile(ctx, fullName, email, hash)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Login verifies the credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, error) {
	const op = "services.auth.Login"

	profile, err := s.repo.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(profile.PasswordHash, plainPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// ValidateToken parses and verifies a bearer token.
func (s *Service) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(tokenStr)
}
