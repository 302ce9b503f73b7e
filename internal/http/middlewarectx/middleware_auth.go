// Package middlewarectx contains the HTTP middleware of the console:
// bearer token validation, the admin gate and rate limiting.
//
// JWTMiddleware only establishes identity. The admin gate re-reads the
// role from the store on every request, so a stale token never grants
// access after a demotion.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/infom4th/club-console/internal/http/response"
	"github.com/infom4th/club-console/internal/lib/jwt"
	"github.com/infom4th/club-console/internal/lib/sl"
)

// Key is the type for request context keys set by this package.
type Key string

const (
	// SubjectID is the context key for the authenticated profile id.
	SubjectID Key = "subject_id"
	// Email is the context key for the authenticated email.
	Email Key = "email"
)

// TokenValidator parses and verifies a bearer token.
type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.CustomClaims, error)
}

// JWTMiddleware validates the Authorization header and puts the
// subject id and email into the request context. The token's role
// claim is deliberately not propagated; authorization reads the store.
func JWTMiddleware(validator TokenValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := validator.ValidateToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), SubjectID, claims.SubjectID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
