// Package list implements the HTTP handler for the admin join request
// queue.
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

// Handler handles join request listing.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the join request listing business logic.
type Service interface {
	List(ctx context.Context) ([]models.JoinRequest, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List join requests
// @Description Returns all join requests, newest first.
// @Tags Requests
// @Produce  json
// @Success 200 {array} models.JoinRequest "Join requests"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Security BearerAuth
// @Router /admin/requests [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.requests.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	requests, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list join requests", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list join requests"))
		return
	}

	render.JSON(w, r, response.OKWithData(requests))
}
