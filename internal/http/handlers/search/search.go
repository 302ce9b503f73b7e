// Package search implements the HTTP handler for the console-wide
// search box. Each admin's queries are debounced: a request that is
// superseded by a newer query from the same admin before the delay
// elapses returns an empty result and never reaches the store.
package search

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/infom4th/club-console/internal/http/middlewarectx"
	"github.com/infom4th/club-console/internal/http/response"
	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/models"
	searchservice "github.com/infom4th/club-console/internal/services/search"
)

// Handler handles search requests.
type Handler struct {
	log     *slog.Logger
	service searchservice.Searcher
	delay   time.Duration

	mu         sync.Mutex
	debouncers map[string]*searchservice.Debouncer
}

// New creates a Handler with the given logger, searcher and debounce
// delay.
func New(log *slog.Logger, service searchservice.Searcher, delay time.Duration) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		delay:      delay,
		debouncers: make(map[string]*searchservice.Debouncer),
	}
}

func (h *Handler) debouncerFor(subjectID string) *searchservice.Debouncer {
	h.mu.Lock()
	defer h.mu.Unlock()
	d, ok := h.debouncers[subjectID]
	if !ok {
		d = searchservice.NewDebouncer(h.service, h.delay, h.log)
		h.debouncers[subjectID] = d
	}
	return d
}

// ServeHTTP godoc
// @Summary Console-wide search
// @Description Searches profiles, join requests, events, news and library paths. Hits come back grouped by category in a fixed order, five per category. Queries superseded by newer input return an empty list.
// @Tags Search
// @Produce  json
// @Param q query string true "Search query, two characters minimum"
// @Success 200 {array} models.SearchHit "Categorized hits"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Security BearerAuth
// @Router /admin/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subjectID, ok := r.Context().Value(middlewarectx.SubjectID).(string)
	if !ok || subjectID == "" {
		log.Error("subject id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	query := r.URL.Query().Get("q")
	result, open := <-h.debouncerFor(subjectID).Submit(r.Context(), query)
	if !open {
		// Superseded by a newer query from the same admin.
		render.JSON(w, r, response.OKWithData([]models.SearchHit{}))
		return
	}
	if result.Err != nil {
		log.Error("search failed", slog.String("query", query), sl.Err(result.Err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("search failed"))
		return
	}

	render.JSON(w, r, response.OKWithData(result.Hits))
}
