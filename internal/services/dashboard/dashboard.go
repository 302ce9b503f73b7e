// Package dashboard aggregates the console-wide statistics block: the
// entity counts, the recent members and requests, and the 7-day
// join-request histogram. Everything here is read-only aggregation.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/infom4th/club-console/internal/models"
)

const (
	// recentLimit caps the recent members and recent requests lists.
	recentLimit = 4
	// histogramDays is the span of the join-request histogram,
	// today included.
	histogramDays = 7
	// snapshotCacheKey holds the last computed snapshot.
	snapshotCacheKey = "dashboard:snapshot"
)

// Repository defines the aggregation queries.
type Repository interface {
	CountProfiles(ctx context.Context) (int, error)
	CountProfilesSince(ctx context.Context, cutoff time.Time) (int, error)
	CountEvents(ctx context.Context) (int, error)
	CountNews(ctx context.Context) (int, error)
	CountLibraryPaths(ctx context.Context) (int, error)
	CountOpenJoinRequests(ctx context.Context) (int, error)
	RecentProfiles(ctx context.Context, limit int) ([]models.Profile, error)
	RecentJoinRequests(ctx context.Context, limit int) ([]models.JoinRequest, error)
	JoinRequestTimesSince(ctx context.Context, cutoff time.Time) ([]time.Time, error)
}

// Cache describes the snapshot cache methods.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service computes dashboard snapshots.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// New creates a dashboard Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// Snapshot returns the current dashboard statistics, preferring the
// cached copy kept warm by the Refresher.
func (s *Service) Snapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	var cached models.DashboardSnapshot
	if found, err := s.cache.Get(snapshotCacheKey, &cached); err == nil && found {
		return &cached, nil
	}
	return s.Compute(ctx)
}

// Compute builds a fresh snapshot from the store and caches it. The
// counts run concurrently; they are independent reads.
func (s *Service) Compute(ctx context.Context) (*models.DashboardSnapshot, error) {
	const op = "services.dashboard.Compute"

	now := s.now().UTC()
	snapshot := &models.DashboardSnapshot{RefreshedAt: now}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		snapshot.TotalMembers, err = s.repo.CountProfiles(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		snapshot.NewMembers24h, err = s.repo.CountProfilesSince(groupCtx, now.Add(-24*time.Hour))
		return err
	})
	group.Go(func() (err error) {
		snapshot.Events, err = s.repo.CountEvents(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		snapshot.News, err = s.repo.CountNews(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		snapshot.LibraryPaths, err = s.repo.CountLibraryPaths(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		snapshot.OpenJoinRequests, err = s.repo.CountOpenJoinRequests(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		snapshot.RecentMembers, err = s.repo.RecentProfiles(groupCtx, recentLimit)
		return err
	})
	group.Go(func() (err error) {
		snapshot.RecentRequests, err = s.repo.RecentJoinRequests(groupCtx, recentLimit)
		return err
	})
	group.Go(func() error {
		cutoff := startOfDay(now).AddDate(0, 0, -(histogramDays - 1))
		times, err := s.repo.JoinRequestTimesSince(groupCtx, cutoff)
		if err != nil {
			return err
		}
		snapshot.JoinsByDay = bucketByDay(times, now)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(snapshotCacheKey, snapshot, 2*time.Minute); err != nil {
		s.log.Warn("failed to cache dashboard snapshot", slog.String("error", err.Error()))
	}

	return snapshot, nil
}

// bucketByDay zero-fills one bucket per day for the histogram span,
// oldest day first, today last, and counts each timestamp into its day.
func bucketByDay(times []time.Time, now time.Time) []models.DailyPoint {
	points := make([]models.DailyPoint, histogramDays)
	dayIndex := make(map[string]int, histogramDays)
	for i := 0; i < histogramDays; i++ {
		day := startOfDay(now).AddDate(0, 0, i-(histogramDays-1))
		key := day.Format("2006-01-02")
		dayIndex[key] = i
		points[i] = models.DailyPoint{Day: day.Format("Jan 2")}
	}
	for _, t := range times {
		if i, ok := dayIndex[t.UTC().Format("2006-01-02")]; ok {
			points[i].Count++
		}
	}
	return points
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
