// Package create implements the HTTP handler for creating content.
//
// Handler accepts a JSON draft for the kind named in the URL, passes
// it to the content service and returns the id of the new row. The
// per-kind mandatory fields are checked by the service before any
// store write; a missing field comes back as 422 with the exact
// message shown to the editor.
package create

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
)

// Handler handles content creation requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the content creation business logic.
type Service interface {
	Create(ctx context.Context, actorID, kind string, draft models.ContentDraft) (string, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Create a content row
// @Description Creates a news article, event or library path depending on the kind in the URL.
// @Tags Content
// @Accept  json
// @Produce  json
// @Param kind path string true "Content kind: news, events or library"
// @Param request body models.ContentDraft true "Content draft"
// @Success 200 {object} map[string]any "Created row id"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 422 {object} response.ErrorResponse "Missing mandatory fields"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Security BearerAuth
// @Router /admin/content/{kind} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.create"
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
	id, err := h.service.Create(r.Context(), actorID, kind, draft)
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			log.Warn("draft rejected", slog.String("kind", kind), slog.String("reason", verr.Message))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(verr.Message))
			return
		}
		log.Error("failed to create content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create content"))
		return
	}

	log.Info("content created", slog.String("kind", kind), slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
