package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infom4th/club-console/internal/models"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Storage{DB: db}, mock
}

func TestCreateProfile(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO profiles`)).
		WithArgs(sqlmock.AnyArg(), "Dana Ellis", "dana@example.com", "hash", models.RoleMember, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := storage.CreateProfile(context.Background(), "Dana Ellis", "dana@example.com", "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRole(t *testing.T) {
	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		expected string
		wantErr  error
	}{
		{
			name:     "admin role",
			rows:     sqlmock.NewRows([]string{"role"}).AddRow(models.RoleAdmin),
			expected: models.RoleAdmin,
		},
		{
			name:    "missing profile",
			rows:    sqlmock.NewRows([]string{"role"}),
			wantErr: ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, mock := newMockStorage(t)
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT role FROM profiles WHERE id = $1`)).
				WithArgs("some-id").
				WillReturnRows(tt.rows)

			role, err := storage.GetRole(context.Background(), "some-id")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, role)
		})
	}
}

func TestSetFeatured(t *testing.T) {
	storage, mock := newMockStorage(t)

	// A single conditional statement flips the chosen row on and every
	// other row off.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE news SET is_featured = (id = $1)`)).
		WithArgs("news-1").
		WillReturnResult(sqlmock.NewResult(0, 12))

	err := storage.SetFeatured(context.Background(), "news-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetArchived(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		archived bool
		table    string
	}{
		{name: "archive news", kind: models.KindNews, archived: true, table: "news"},
		{name: "restore event", kind: models.KindEvent, archived: false, table: "events"},
		{name: "archive library path", kind: models.KindLibrary, archived: true, table: "library_paths"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, mock := newMockStorage(t)
			mock.ExpectQuery(regexp.QuoteMeta(`UPDATE `+tt.table+` SET archived_at = $1 WHERE id = $2 RETURNING title`)).
				WithArgs(sqlmock.AnyArg(), "row-id").
				WillReturnRows(sqlmock.NewRows([]string{"title"}).AddRow("Winter Mixer"))

			title, err := storage.SetArchived(context.Background(), tt.kind, "row-id", tt.archived)
			require.NoError(t, err)
			assert.Equal(t, "Winter Mixer", title)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		storage, _ := newMockStorage(t)
		_, err := storage.SetArchived(context.Background(), "pages", "row-id", true)
		assert.Error(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		storage, mock := newMockStorage(t)
		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE news SET archived_at = $1 WHERE id = $2 RETURNING title`)).
			WithArgs(sqlmock.AnyArg(), "gone").
			WillReturnRows(sqlmock.NewRows([]string{"title"}))

		_, err := storage.SetArchived(context.Background(), models.KindNews, "gone", true)
		assert.ErrorIs(t, err, ErrContentNotFound)
	})
}

func TestListNewsFiltersArchived(t *testing.T) {
	storage, mock := newMockStorage(t)

	columns := []string{"id", "slug", "title", "summary", "category", "tag", "date",
		"read_time", "body", "is_featured", "archived_at", "created_at"}
	mock.ExpectQuery(`SELECT .+ FROM news WHERE archived_at IS NULL ORDER BY date DESC`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("n1", "hello-world", "Hello World", "sum", "updates", "intro", "2026-01-10",
				"4 min", "body", true, nil, time.Now()))

	items, err := storage.ListNews(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "hello-world", items[0].Slug)
	assert.True(t, items[0].IsFeatured)
	assert.Nil(t, items[0].ArchivedAt)
}

func TestUpdateJoinRequestStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "approved", affected: 1},
		{name: "missing request", affected: 0, wantErr: ErrJoinRequestNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, mock := newMockStorage(t)
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE join_requests SET status = $1 WHERE id = $2`)).
				WithArgs(models.JoinStatusApproved, "req-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := storage.UpdateJoinRequestStatus(context.Background(), "req-1", models.JoinStatusApproved)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateAuditRecord(t *testing.T) {
	storage, mock := newMockStorage(t)

	targetID := "news-1"
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO audit_logs`)).
		WithArgs(sqlmock.AnyArg(), "admin-1", "news_create", models.KindNews, targetID,
			"Created Hello World", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.CreateAuditRecord(context.Background(), models.AuditRecord{
		ActorID:    "admin-1",
		Action:     "news_create",
		TargetType: models.KindNews,
		TargetID:   &targetID,
		Detail:     "Created Hello World",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContextCancelled(t *testing.T) {
	storage, _ := newMockStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.GetRole(ctx, "some-id")
	assert.ErrorIs(t, err, context.Canceled)
}
