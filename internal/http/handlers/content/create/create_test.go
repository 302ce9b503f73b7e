package create

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/infom4th/club-console/internal/http/middlewarectx"
	"github.com/infom4th/club-console/internal/models"
	"github.com/infom4th/club-console/internal/services/content"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, actorID, kind string, draft models.ContentDraft) (string, error) {
	args := m.Called(ctx, actorID, kind, draft)
	return args.String(0), args.Error(1)
}

func performRequest(t *testing.T, service Service, kind, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := New(slog.New(slog.DiscardHandler), service)
	router := chi.NewRouter()
	router.Post("/admin/content/{kind}", handler.ServeHTTP)

	req := httptest.NewRequest(http.MethodPost, "/admin/content/"+kind, bytes.NewBufferString(body))
	if authenticated {
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.SubjectID, "admin-1"))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTP(t *testing.T) {
	tests := []struct {
		name          string
		kind          string
		body          string
		authenticated bool
		setup         func(*mockService)
		wantStatus    int
		wantBody      string
	}{
		{
			name:          "created",
			kind:          "news",
			body:          `{"slug":"hello-world","title":"Hello World"}`,
			authenticated: true,
			setup: func(m *mockService) {
				m.On("Create", mock.Anything, "admin-1", "news",
					models.ContentDraft{Slug: "hello-world", Title: "Hello World"}).
					Return("news-1", nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   "news-1",
		},
		{
			name:          "missing mandatory fields",
			kind:          "news",
			body:          `{"title":"Hello World"}`,
			authenticated: true,
			setup: func(m *mockService) {
				m.On("Create", mock.Anything, "admin-1", "news",
					models.ContentDraft{Title: "Hello World"}).
					Return("", &content.ValidationError{Message: "News requires a slug and title."}).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "News requires a slug and title.",
		},
		{
			name:          "invalid json",
			kind:          "news",
			body:          `{not json`,
			authenticated: true,
			setup:         func(*mockService) {},
			wantStatus:    http.StatusBadRequest,
		},
		{
			name:          "unauthenticated",
			kind:          "events",
			body:          `{"title":"Winter Mixer","date":"2026-02-12"}`,
			authenticated: false,
			setup:         func(*mockService) {},
			wantStatus:    http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			tt.setup(service)

			rec := performRequest(t, service, tt.kind, tt.body, tt.authenticated)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			service.AssertExpectations(t)
		})
	}
}
