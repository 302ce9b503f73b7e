// Package archive implements the HTTP handler that soft-deletes a
// content row. The row stays in admin listings and can be restored.
package archive

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

// Handler handles archive requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the archive business logic.
type Service interface {
	Archive(ctx context.Context, actorID, kind, id string) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Archive a content row
// @Description Stamps archived_at on the row. Public listings drop it; admin listings keep it.
// @Tags Content
// @Produce  json
// @Param kind path string true "Content kind: news, events or library"
// @Param id path string true "Row id"
// @Success 200 {object} response.Response "Archived"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 404 {object} response.ErrorResponse "Row not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Security BearerAuth
// @Router /admin/content/{kind}/{id}/archive [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.archive"
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

	if err := h.service.Archive(r.Context(), actorID, kind, id); err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			log.Warn("content not found", slog.String("kind", kind), slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("content not found"))
			return
		}
		log.Error("failed to archive content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not archive content"))
		return
	}

	log.Info("content archived", slog.String("kind", kind), slog.String("id", id))
	render.JSON(w, r, response.OK())
}
