package changerole

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
	"github.com/infom4th/club-console/internal/storage/repository"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ChangeRole(ctx context.Context, actorID, targetID, role string) error {
	return m.Called(ctx, actorID, targetID, role).Error(0)
}

func performRequest(t *testing.T, service Service, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := New(slog.New(slog.DiscardHandler), service)
	router := chi.NewRouter()
	router.Put("/admin/users/{id}/role", handler.ServeHTTP)

	req := httptest.NewRequest(http.MethodPut, "/admin/users/member-1/role", bytes.NewBufferString(body))
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.SubjectID, "admin-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*mockService)
		wantStatus int
	}{
		{
			name: "promoted to admin",
			body: `{"role":"admin"}`,
			setup: func(m *mockService) {
				m.On("ChangeRole", mock.Anything, "admin-1", "member-1", "admin").
					Return(nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown role rejected",
			body:       `{"role":"owner"}`,
			setup:      func(*mockService) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "profile not found",
			body: `{"role":"member"}`,
			setup: func(m *mockService) {
				m.On("ChangeRole", mock.Anything, "admin-1", "member-1", "member").
					Return(repository.ErrProfileNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mockService)
			tt.setup(service)

			rec := performRequest(t, service, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}
