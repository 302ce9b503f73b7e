// Package news implements the public single-article handler, looked up
// by slug. Archived articles are not served.
package news

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
	"github.com/infom4th/club-console/internal/models"
	"github.com/infom4th/club-console/internal/storage/repository"
)

// Handler handles public article requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the article lookup business logic.
type Service interface {
	GetNewsBySlug(ctx context.Context, slug string) (*models.News, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Public news article
// @Description Returns one non-archived article by slug.
// @Tags Public
// @Produce  json
// @Param slug path string true "Article slug"
// @Success 200 {object} models.News "Article"
// @Failure 404 {object} response.ErrorResponse "Article not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /news/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.public.news"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	article, err := h.service.GetNewsBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			log.Warn("article not found", slog.String("slug", slug))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
			return
		}
		log.Error("failed to read article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read article"))
		return
	}

	render.JSON(w, r, response.OKWithData(article))
}
