package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/infom4th/club-console/internal/lib/sl"
)

// DefaultRefreshInterval matches the console dashboard poll cadence.
const DefaultRefreshInterval = 45 * time.Second

// Refresher recomputes the dashboard snapshot on a fixed interval so
// reads are served from cache between ticks.
type Refresher struct {
	service  *Service
	interval time.Duration
	log      *slog.Logger
}

// NewRefresher creates a Refresher. A non-positive interval falls back
// to DefaultRefreshInterval.
func NewRefresher(service *Service, interval time.Duration, log *slog.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		service:  service,
		interval: interval,
		log:      log,
	}
}

// Run recomputes the snapshot immediately and then on every tick until
// the context is cancelled. A failed recompute is logged and the loop
// keeps going; the previous cached snapshot stays in place.
func (r *Refresher) Run(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("dashboard refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	if _, err := r.service.Compute(ctx); err != nil {
		if ctx.Err() == nil {
			r.log.Warn("failed to refresh dashboard snapshot", sl.Err(err))
		}
	}
}
