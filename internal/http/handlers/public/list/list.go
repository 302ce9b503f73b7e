// Package list implements the public listing handler: the non-archived
// rows of one content kind, served from cache when warm.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/infom4th/club-console/internal/http/response"
	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/services/content"
)

// Handler handles public listing requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the public listing business logic.
type Service interface {
	ListPublic(ctx context.Context, kind string) (any, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Public content listing
// @Description Returns the non-archived rows of the kind in the URL for the public site.
// @Tags Public
// @Produce  json
// @Param kind path string true "Content kind: news, events or library"
// @Success 200 {object} response.Response "Content rows"
// @Failure 404 {object} response.ErrorResponse "Unknown kind"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /content/{kind} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	kind := chi.URLParam(r, "kind")
	items, err := h.service.ListPublic(r.Context(), kind)
	if err != nil {
		var verr *content.ValidationError
		if errors.As(err, &verr) {
			log.Warn("unknown kind requested", slog.String("kind", kind))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("unknown content kind"))
			return
		}
		log.Error("failed to list public content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list content"))
		return
	}

	render.JSON(w, r, response.OKWithData(items))
}
