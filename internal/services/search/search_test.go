package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/infom4th/club-console/internal/models"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) SearchProfiles(ctx context.Context, query string) ([]models.SearchHit, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchHit), args.Error(1)
}

func (m *mockRepository) SearchJoinRequests(ctx context.Context, query string) ([]models.SearchHit, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchHit), args.Error(1)
}

func (m *mockRepository) SearchEvents(ctx context.Context, query string) ([]models.SearchHit, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchHit), args.Error(1)
}

func (m *mockRepository) SearchNews(ctx context.Context, query string) ([]models.SearchHit, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchHit), args.Error(1)
}

func (m *mockRepository) SearchLibrary(ctx context.Context, query string) ([]models.SearchHit, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchHit), args.Error(1)
}

func hit(category, id string) models.SearchHit {
	return models.SearchHit{Category: category, ID: id}
}

func TestSearchShortCircuitsShortQueries(t *testing.T) {
	repo := new(mockRepository)
	service := New(repo, slog.New(slog.DiscardHandler))

	for _, query := range []string{"", "a", " a "} {
		hits, err := service.Search(context.Background(), query)
		require.NoError(t, err)
		assert.Empty(t, hits)
	}
	repo.AssertNotCalled(t, "SearchProfiles", mock.Anything, mock.Anything)
}

func TestSearchFixedCategoryOrder(t *testing.T) {
	repo := new(mockRepository)
	service := New(repo, slog.New(slog.DiscardHandler))

	repo.On("SearchProfiles", mock.Anything, "mixer").
		Return([]models.SearchHit{hit(models.CategoryProfiles, "p1")}, nil).Once()
	repo.On("SearchJoinRequests", mock.Anything, "mixer").
		Return([]models.SearchHit{hit(models.CategoryJoinRequests, "r1")}, nil).Once()
	repo.On("SearchEvents", mock.Anything, "mixer").
		Return([]models.SearchHit{hit(models.CategoryEvents, "e1"), hit(models.CategoryEvents, "e2")}, nil).Once()
	repo.On("SearchNews", mock.Anything, "mixer").
		Return([]models.SearchHit{}, nil).Once()
	repo.On("SearchLibrary", mock.Anything, "mixer").
		Return([]models.SearchHit{hit(models.CategoryLibrary, "l1")}, nil).Once()

	hits, err := service.Search(context.Background(), "mixer")
	require.NoError(t, err)

	categories := make([]string, 0, len(hits))
	for _, h := range hits {
		categories = append(categories, h.Category)
	}
	assert.Equal(t, []string{
		models.CategoryProfiles,
		models.CategoryJoinRequests,
		models.CategoryEvents,
		models.CategoryEvents,
		models.CategoryLibrary,
	}, categories)
	repo.AssertExpectations(t)
}

func TestSearchPropagatesCollectionError(t *testing.T) {
	repo := new(mockRepository)
	service := New(repo, slog.New(slog.DiscardHandler))

	repo.On("SearchProfiles", mock.Anything, "mixer").Return([]models.SearchHit{}, nil).Maybe()
	repo.On("SearchJoinRequests", mock.Anything, "mixer").Return([]models.SearchHit{}, nil).Maybe()
	repo.On("SearchEvents", mock.Anything, "mixer").Return(nil, errors.New("timeout")).Once()
	repo.On("SearchNews", mock.Anything, "mixer").Return([]models.SearchHit{}, nil).Maybe()
	repo.On("SearchLibrary", mock.Anything, "mixer").Return([]models.SearchHit{}, nil).Maybe()

	_, err := service.Search(context.Background(), "mixer")
	assert.Error(t, err)
}

// fakeSearcher records every query that actually fires.
type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]models.SearchHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return []models.SearchHit{hit(models.CategoryNews, "n1")}, nil
}

func (f *fakeSearcher) fired() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func TestDebouncerFiresOnceForBurst(t *testing.T) {
	searcher := &fakeSearcher{}
	debouncer := NewDebouncer(searcher, 30*time.Millisecond, slog.New(slog.DiscardHandler))

	// Typing "abc" one rune at a time, faster than the delay. The
	// first two submissions are superseded; only the last fires.
	chA := debouncer.Submit(context.Background(), "a")
	time.Sleep(5 * time.Millisecond)
	chAB := debouncer.Submit(context.Background(), "ab")
	time.Sleep(5 * time.Millisecond)
	chABC := debouncer.Submit(context.Background(), "abc")

	result, ok := <-chABC
	require.True(t, ok, "final submission must deliver")
	require.NoError(t, result.Err)
	assert.Len(t, result.Hits, 1)

	_, ok = <-chA
	assert.False(t, ok, "superseded submission must close bare")
	_, ok = <-chAB
	assert.False(t, ok, "superseded submission must close bare")

	assert.Equal(t, []string{"abc"}, searcher.fired())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	searcher := &fakeSearcher{}
	debouncer := NewDebouncer(searcher, 20*time.Millisecond, slog.New(slog.DiscardHandler))

	ch := debouncer.Submit(context.Background(), "mixer")
	debouncer.Stop()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Empty(t, searcher.fired())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	debouncer := NewDebouncer(&fakeSearcher{}, 0, slog.New(slog.DiscardHandler))
	assert.Equal(t, DefaultDebounce, debouncer.delay)
}
