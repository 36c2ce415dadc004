package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yourusername/exam-session-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-session-api/internal/pkg/errors"
	"github.com/yourusername/exam-session-api/pkg/database"
)

// openTestDB подключается к TEST_DATABASE_DSN, применяет миграции и очищает таблицы
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN не задан, пропускаем интеграционные тесты PostgreSQL")
	}

	db, err := database.NewPostgresDB(dsn)
	require.NoError(t, err)
	require.NoError(t, database.MigrateDB(db, "file://../../../migrations"))

	truncate := func() {
		db.Exec("TRUNCATE TABLE users, test_results")
	}
	truncate()
	t.Cleanup(func() {
		truncate()
		database.ClosePostgresDB(db)
	})
	return db
}

func TestUserRepo_Postgres(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	user := &entity.User{ID: entity.NewRecordID(now), Name: "Bob", Password: "pw", CanRetake: true, CreatedAt: now}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByName(ctx, " BOB ")
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
	assert.True(t, got.CanRetake)

	dup := &entity.User{ID: entity.NewRecordID(now), Name: "bob", Password: "other", CreatedAt: now}
	assert.ErrorIs(t, repo.Create(ctx, dup), apperrors.ErrConflict)

	require.NoError(t, repo.SetCanRetake(ctx, "bob", false))
	got, err = repo.GetByName(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, got.CanRetake)

	assert.ErrorIs(t, repo.SetCanRetake(ctx, "ghost", true), apperrors.ErrNotFound)
	_, err = repo.GetByName(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestTestResultRepo_Postgres(t *testing.T) {
	db := openTestDB(t)
	repo := NewTestResultRepo(db)
	ctx := context.Background()

	now := time.Now().UTC()
	first := &entity.TestResult{
		ID:          entity.NewRecordID(now),
		StudentName: "alice",
		Score:       datatypes.JSON(`5`),
		Answers:     datatypes.JSON(`{"q1":"a"}`),
		SubmittedAt: now,
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &entity.TestResult{
		ID:            entity.NewRecordID(now),
		StudentName:   "Alice",
		Score:         datatypes.JSON(`9`),
		PDFDownloaded: true,
		SubmittedAt:   now,
	}
	require.NoError(t, repo.Upsert(ctx, second))

	results, err := repo.ListByStudentName(ctx, "ALICE")
	require.NoError(t, err)
	require.Len(t, results, 1, "Повторная отправка заменяет прежний результат")
	assert.JSONEq(t, `9`, string(results[0].Score))
	assert.True(t, results[0].PDFDownloaded)
	assert.Equal(t, second.ID, results[0].ID)

	removed, err := repo.DeleteByStudentName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepos_Postgres_LongNames(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepo(db)
	results := NewTestResultRepo(db)
	ctx := context.Background()

	name := strings.Repeat("Ä", 300)
	now := time.Now().UTC()
	require.NoError(t, users.Create(ctx, &entity.User{
		ID: entity.NewRecordID(now), Name: name, Password: strings.Repeat("p", 500), CanRetake: true, CreatedAt: now,
	}))
	require.NoError(t, results.Upsert(ctx, &entity.TestResult{
		ID: entity.NewRecordID(now), StudentName: name, SubmittedAt: now,
	}))

	got, err := users.GetByName(ctx, strings.ToLower(name))
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)

	list, err := results.ListByStudentName(ctx, name)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
