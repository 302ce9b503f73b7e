// Package dashboard implements the HTTP handler for the console
// statistics block. Clients poll it; the snapshot is kept warm by a
// background refresher.
package dashboard

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

// Handler handles dashboard requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the dashboard business logic.
type Service interface {
	Snapshot(ctx context.Context) (*models.DashboardSnapshot, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Dashboard statistics
// @Description Returns the console-wide counts, recent members and requests, and the 7-day join histogram.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} models.DashboardSnapshot "Statistics snapshot"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		log.Error("failed to build dashboard snapshot", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build dashboard snapshot"))
		return
	}

	render.JSON(w, r, response.OKWithData(snapshot))
}
