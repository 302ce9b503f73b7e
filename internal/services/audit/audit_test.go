package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/infom4th/club-console/internal/models"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateAuditRecord(ctx context.Context, record models.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockRepository) ListAuditRecords(ctx context.Context, limit int) ([]models.AuditRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditRecord), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRecordWritesOneRecord(t *testing.T) {
	repo := new(mockRepository)
	service := New(repo, discardLogger())

	targetID := "news-1"
	repo.On("CreateAuditRecord", mock.Anything, models.AuditRecord{
		ActorID:    "admin-1",
		Action:     "news_create",
		TargetType: models.KindNews,
		TargetID:   &targetID,
		Detail:     "Created Hello World",
	}).Return(nil).Once()

	service.Record(context.Background(), "admin-1", "news_create", models.KindNews, &targetID, "Created Hello World")

	repo.AssertExpectations(t)
}

func TestRecordSwallowsFailure(t *testing.T) {
	repo := new(mockRepository)
	service := New(repo, discardLogger())

	repo.On("CreateAuditRecord", mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).Once()

	// Must not panic or propagate.
	service.Record(context.Background(), "admin-1", "role_change", "profiles", nil, "Role set to admin")

	repo.AssertExpectations(t)
}

func TestListCapsAtThirty(t *testing.T) {
	repo := new(mockRepository)
	service := New(repo, discardLogger())

	repo.On("ListAuditRecords", mock.Anything, 30).
		Return([]models.AuditRecord{{ID: "a1"}}, nil).Once()

	records, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	repo.AssertExpectations(t)
}
