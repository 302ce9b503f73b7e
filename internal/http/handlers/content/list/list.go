// Package list implements the HTTP handler for the admin content page:
// every row of every kind, archived included.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/infom4th/club-console/internal/http/response"
	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/models"
)

// Handler handles admin content listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the content listing business logic.
type Service interface {
	ListAll(ctx context.Context) (*models.ContentCollection, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List all content
// @Description Returns news, events and library paths, archived rows included.
// @Tags Content
// @Produce  json
// @Success 200 {object} models.ContentCollection "All content"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Security BearerAuth
// @Router /admin/content [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	collection, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list content"))
		return
	}

	render.JSON(w, r, response.OKWithData(collection))
}
