package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/infom4th/club-console/internal/lib/jwt"
	"github.com/infom4th/club-console/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// validatorFunc adapts a token-parsing function to the TokenValidator
// interface so the test can use the jwt maker directly.
type validatorFunc func(tokenStr string) (*jwt.CustomClaims, error)

func (f validatorFunc) ValidateToken(tokenStr string) (*jwt.CustomClaims, error) {
	return f(tokenStr)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("profile-1", "dana@example.com", models.RoleMember)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = r.Context().Value(SubjectID).(string)
				w.WriteHeader(http.StatusOK)
			})

			handler := JWTMiddleware(validatorFunc(maker.ParseToken), discardLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "profile-1", gotSubject)
			}
		})
	}
}

type fakeRoleReader struct {
	role string
	err  error
}

func (f *fakeRoleReader) GetRole(_ context.Context, _ string) (string, error) {
	return f.role, f.err
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		subjectID  any
		roles      *fakeRoleReader
		wantStatus int
	}{
		{
			name:       "admin passes",
			subjectID:  "admin-1",
			roles:      &fakeRoleReader{role: models.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "member denied",
			subjectID:  "member-1",
			roles:      &fakeRoleReader{role: models.RoleMember},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "lookup failure fails closed",
			subjectID:  "admin-1",
			roles:      &fakeRoleReader{err: errors.New("connection refused")},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing identity",
			subjectID:  nil,
			roles:      &fakeRoleReader{role: models.RoleAdmin},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := AdminOnly(tt.roles, discardLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.subjectID != nil {
				req = req.WithContext(context.WithValue(req.Context(), SubjectID, tt.subjectID))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0), 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(limiter, discardLogger())(next)

	// First request spends the only token, second is rejected.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/join", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/join", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
