// Package update implements the HTTP handler for editing content.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/infom4th/club-console/internal/http/middlewarectx"
	"github.com/infom4th/club-console/internal/http/response"
	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/models"
	"github.com/infom4th/club-console/internal/services/content"
	"github.com/infom4th/club-console/internal/storage/repository"
)

// Handler handles content update requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the content update business logic.
type Service interface {
	Update(ctx context.Context, actorID, kind, id string, draft models.ContentDraft) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Update a content row
// @Description Overwrites the editable fields of the row named by kind and id.
// @Tags Content
// @Accept  json
// @Produce  json
// @Param kind path string true "Content kind: news, events or library"
// @Param id path string true "Row id"
// @Param request body models.ContentDraft true "Content draft"
// @Success 200 {object} response.Response "Updated"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 404 {object} response.ErrorResponse "Row not found"
// @Failure 422 {object} response.ErrorResponse "Missing mandatory fields"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Security BearerAuth
// @Router /admin/content/{kind}/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var draft models.ContentDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	actorID, ok := r.Context().Value(middlewarectx.SubjectID).(string)
	if !ok || actorID == "" {
		log.Error("subject id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	err := h.service.Update(r.Context(), actorID, kind, id, draft)
	if err != nil {
		var verr *content.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Warn("draft rejected", slog.String("kind", kind), slog.String("reason", verr.Message))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(verr.Message))
		case errors.Is(err, repository.ErrContentNotFound):
			log.Warn("content not found", slog.String("kind", kind), slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("content not found"))
		default:
			log.Error("failed to update content", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update content"))
		}
		return
	}

	log.Info("content updated", slog.String("kind", kind), slog.String("id", id))
	render.JSON(w, r, response.OK())
}
