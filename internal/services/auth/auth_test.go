package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/infom4th/club-console/internal/lib/jwt"
	"github.com/infom4th/club-console/internal/lib/password"
	"github.com/infom4th/club-console/internal/models"
	"github.com/infom4th/club-console/internal/storage/repository"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateProfile(ctx context.Context, fullName, email, passwordHash string) (string, error) {
	args := m.Called(ctx, fullName, email, passwordHash)
	return args.String(0), args.Error(1)
}

func (m *mockRepository) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func newTestService(repo Repository) *Service {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	return New(repo, maker, slog.New(slog.DiscardHandler))
}

func TestRegister(t *testing.T) {
	t.Run("new email", func(t *testing.T) {
		repo := new(mockRepository)
		service := newTestService(repo)

		repo.On("GetProfileByEmail", mock.Anything, "dana@example.com").
			Return(nil, repository.ErrProfileNotFound).Once()
		repo.On("CreateProfile", mock.Anything, "Dana Ellis", "dana@example.com", mock.Anything).
			Return("profile-1", nil).Once()

		id, err := service.Register(context.Background(), "Dana Ellis", "dana@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "profile-1", id)
		repo.AssertExpectations(t)
	})

	t.Run("taken email", func(t *testing.T) {
		repo := new(mockRepository)
		service := newTestService(repo)

		repo.On("GetProfileByEmail", mock.Anything, "dana@example.com").
			Return(&models.Profile{ID: "profile-1"}, nil).Once()

		_, err := service.Register(context.Background(), "Dana Ellis", "dana@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailTaken)
		repo.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	tests := []struct {
		name         string
		storedHash   string
		sentPassword string
		repoErr      error
		wantErr      error
	}{
		{name: "valid credentials", storedHash: hash, sentPassword: "secret123"},
		{name: "wrong password", storedHash: hash, sentPassword: "not-it", wantErr: ErrInvalidCredentials},
		{name: "unknown email", repoErr: repository.ErrProfileNotFound, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			service := newTestService(repo)

			if tt.repoErr != nil {
				repo.On("GetProfileByEmail", mock.Anything, "dana@example.com").
					Return(nil, tt.repoErr).Once()
			} else {
				repo.On("GetProfileByEmail", mock.Anything, "dana@example.com").
					Return(&models.Profile{
						ID:           "profile-1",
						Email:        "dana@example.com",
						PasswordHash: tt.storedHash,
						Role:         models.RoleMember,
					}, nil).Once()
			}

			token, err := service.Login(context.Background(), "dana@example.com", tt.sentPassword)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, "profile-1", claims.SubjectID)
			assert.Equal(t, models.RoleMember, claims.Role)
		})
	}
}
