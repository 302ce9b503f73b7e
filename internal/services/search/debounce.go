package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/infom4th/club-console/internal/lib/sl"
	"github.com/infom4th/club-console/internal/models"
)

// DefaultDebounce is the pause after the last query before a search
// fires.
const DefaultDebounce = 300 * time.Millisecond

// Searcher runs one search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.SearchHit, error)
}

// Result is one delivered search outcome.
type Result struct {
	Hits []models.SearchHit
	Err  error
}

// Debouncer coalesces a burst of queries into one search: each Submit
// supersedes the pending one, and only the query that survives the
// delay unchallenged reaches the Searcher. A superseded submission's
// channel is closed without a value.
type Debouncer struct {
	searcher Searcher
	delay    time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewDebouncer creates a Debouncer. A non-positive delay falls back to
// DefaultDebounce.
func NewDebouncer(searcher Searcher, delay time.Duration, log *slog.Logger) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{
		searcher: searcher,
		delay:    delay,
		log:      log,
	}
}

// Submit schedules a search for the query, cancelling any search still
// pending or in flight. The returned channel either delivers exactly
// one Result or is closed bare when a newer query supersedes this one.
func (d *Debouncer) Submit(ctx context.Context, query string) <-chan Result {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()

	out := make(chan Result, 1)
	go func() {
		defer close(out)

		timer := time.NewTimer(d.delay)
		defer timer.Stop()

		select {
		case <-runCtx.Done():
			return
		case <-timer.C:
		}

		hits, err := d.searcher.Search(runCtx, query)
		if runCtx.Err() != nil {
			// Superseded while in flight; drop the stale result.
			return
		}
		if err != nil {
			d.log.Warn("search failed", slog.String("query", query), sl.Err(err))
		}
		out <- Result{Hits: hits, Err: err}
	}()

	return out
}

// Stop cancels any pending or in-flight search.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
