// Package list implements the HTTP handler for the recent-activity
// feed backed by the audit log.
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

// Handler handles audit feed requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the audit feed business logic.
type Service interface {
	List(ctx context.Context) ([]models.AuditRecord, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Recent audit records
// @Description Returns the thirty most recent audit records, newest first.
// @Tags Audit
// @Produce  json
// @Success 200 {array} models.AuditRecord "Audit records"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Security BearerAuth
// @Router /admin/audit [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.audit.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	records, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list audit records", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list audit records"))
		return
	}

	render.JSON(w, r, response.OKWithData(records))
}
