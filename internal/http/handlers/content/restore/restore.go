// Package restore implements the HTTP handler that returns an archived
// content row to public listings.
package restore

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/infom4th/club-console/internal/http/middlewarectx"
	"github.com/infom4th/club-console/internal/http/response"
	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/storage/repository"
)

// Handler handles restore requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the restore business logic.
type Service interface {
	Restore(ctx context.Context, actorID, kind, id string) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Restore a content row
// @Description Clears archived_at on the row.
// @Tags Content
// @Produce  json
// @Param kind path string true "Content kind: news, events or library"
// @Param id path string true "Row id"
// @Success 200 {object} response.Response "Restored"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 404 {object} response.ErrorResponse "Row not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Security BearerAuth
// @Router /admin/content/{kind}/{id}/restore [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.restore"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actorID, ok := r.Context().Value(middlewarectx.SubjectID).(string)
	if !ok || actorID == "" {
		log.Error("subject id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	if err := h.service.Restore(r.Context(), actorID, kind, id); err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			log.Warn("content not found", slog.String("kind", kind), slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("content not found"))
			return
		}
		log.Error("failed to restore content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not restore content"))
		return
	}

	log.Info("content restored", slog.String("kind", kind), slog.String("id", id))
	render.JSON(w, r, response.OK())
}
