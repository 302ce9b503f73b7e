package search

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/infom4th/club-console/internal/http/middlewarectx"
	"github.com/infom4th/club-console/internal/models"
)

type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]models.SearchHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return []models.SearchHit{{Category: models.CategoryNews, ID: "n1", Title: "Hello World"}}, nil
}

func (f *fakeSearcher) fired() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func performRequest(handler *Handler, subjectID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/search?q="+query, nil)
	if subjectID != "" {
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.SubjectID, subjectID))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTP(t *testing.T) {
	searcher := &fakeSearcher{}
	handler := New(slog.New(slog.DiscardHandler), searcher, 10*time.Millisecond)

	rec := performRequest(handler, "admin-1", "mixer")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello World")
	assert.Equal(t, []string{"mixer"}, searcher.fired())
}

func TestServeHTTPUnauthenticated(t *testing.T) {
	handler := New(slog.New(slog.DiscardHandler), &fakeSearcher{}, 10*time.Millisecond)

	rec := performRequest(handler, "", "mixer")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServeHTTPSupersededReturnsEmpty(t *testing.T) {
	searcher := &fakeSearcher{}
	handler := New(slog.New(slog.DiscardHandler), searcher, 50*time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(1)
	var first *httptest.ResponseRecorder
	go func() {
		defer wg.Done()
		first = performRequest(handler, "admin-1", "a")
	}()
	time.Sleep(10 * time.Millisecond)

	second := performRequest(handler, "admin-1", "ab")
	wg.Wait()

	// The superseded request answers 200 with no hits; only the final
	// query reached the store.
	assert.Equal(t, http.StatusOK, first.Code)
	assert.NotContains(t, first.Body.String(), "Hello World")
	assert.Contains(t, second.Body.String(), "Hello World")
	assert.Equal(t, []string{"ab"}, searcher.fired())
}

func TestDebouncersArePerAdmin(t *testing.T) {
	searcher := &fakeSearcher{}
	handler := New(slog.New(slog.DiscardHandler), searcher, 10*time.Millisecond)

	var wg sync.WaitGroup
	for _, subject := range []string{"admin-1", "admin-2"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := performRequest(handler, subject, "mixer")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "Hello World")
		}()
	}
	wg.Wait()

	// Concurrent queries from different admins never supersede each
	// other.
	assert.Len(t, searcher.fired(), 2)
}
