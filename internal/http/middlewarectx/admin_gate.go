package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/infom4th/club-console/internal/http/response"
	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/models"
)

// RoleReader returns the current role of a profile from the store.
type RoleReader interface {
	GetRole(ctx context.Context, id string) (string, error)
}

// AdminOnly gates a route group on the admin role. The role is read
// fresh from the store on every request and the gate fails closed: a
// missing identity, a lookup error and a non-admin role all deny.
func AdminOnly(roles RoleReader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminOnly"

			subjectID, ok := r.Context().Value(SubjectID).(string)
			if !ok || subjectID == "" {
				log.Error("user identification missing", slog.String("op", op))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			role, err := roles.GetRole(r.Context(), subjectID)
			if err != nil {
				log.Error("failed to read role", slog.String("op", op), sl.Err(err))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			if role != models.RoleAdmin {
				log.Warn("non-admin denied",
					slog.String("op", op), slog.String("subject_id", subjectID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
