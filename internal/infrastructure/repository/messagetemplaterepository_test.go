package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/locationgenius/dashboard/internal/domain/messagetemplate"
	"github.com/locationgenius/dashboard/internal/infrastructure/migration"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

var baseTime = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	manager, err := migration.NewManager("sqlite", logger.NewDiscardLogger())
	require.NoError(t, err)
	require.NoError(t, manager.Migrate(context.Background(), db))
	return db
}

func createTemplate(t *testing.T, repo *MessageTemplateRepositoryImpl, id string, tt messagetemplate.TemplateType, active bool, createdAt time.Time) *messagetemplate.MessageTemplate {
	t.Helper()
	content := fmt.Sprintf("Template %s for {location_name}", id)
	tpl, err := messagetemplate.ReconstructMessageTemplate(
		id, "Template "+id, tt, content, messagetemplate.ExtractVariables(content), active, "admin", createdAt, createdAt,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tpl))
	return tpl
}

func ids(templates []*messagetemplate.MessageTemplate) []string {
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		out = append(out, t.ID())
	}
	return out
}

func TestMessageTemplateRepository_ListActive(t *testing.T) {
	repo := NewMessageTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	// inserted out of order on purpose
	createTemplate(t, repo, "t2", messagetemplate.TypeWelcome, true, baseTime.Add(2*time.Hour))
	createTemplate(t, repo, "t0", messagetemplate.TypeLocationResult, true, baseTime)
	createTemplate(t, repo, "t3", messagetemplate.TypeWelcome, false, baseTime.Add(3*time.Hour))
	createTemplate(t, repo, "t1", messagetemplate.TypeWelcome, true, baseTime.Add(time.Hour))

	got, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t1", "t0"}, ids(got))

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt().After(got[i-1].CreatedAt()))
	}
}

func TestMessageTemplateRepository_ListActive_Empty(t *testing.T) {
	repo := NewMessageTemplateRepository(setupTestDB(t))

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMessageTemplateRepository_GetActiveByType(t *testing.T) {
	repo := NewMessageTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	createTemplate(t, repo, "old", messagetemplate.TypeWelcome, true, baseTime)
	createTemplate(t, repo, "new", messagetemplate.TypeWelcome, true, baseTime.Add(time.Hour))
	createTemplate(t, repo, "newest-off", messagetemplate.TypeWelcome, false, baseTime.Add(2*time.Hour))
	createTemplate(t, repo, "only-off", messagetemplate.TypeLocationResult, false, baseTime)

	t.Run("newest active of the type", func(t *testing.T) {
		got, err := repo.GetActiveByType(ctx, messagetemplate.TypeWelcome)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "new", got.ID())
		assert.Equal(t, []string{"location_name"}, got.Variables())
		assert.Equal(t, "admin", got.CreatedBy())
	})

	t.Run("inactive only is absent", func(t *testing.T) {
		got, err := repo.GetActiveByType(ctx, messagetemplate.TypeLocationResult)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown type is absent", func(t *testing.T) {
		got, err := repo.GetActiveByType(ctx, "limit_reached")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestMessageTemplateRepository_GetActiveByType_TieBreaksOnUpdate(t *testing.T) {
	repo := NewMessageTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	a := createTemplate(t, repo, "a", messagetemplate.TypeWelcome, true, baseTime)
	createTemplate(t, repo, "b", messagetemplate.TypeWelcome, true, baseTime)

	require.NoError(t, a.UpdateContent("Edited welcome for {location_name}"))
	require.NoError(t, repo.Update(ctx, a))

	got, err := repo.GetActiveByType(ctx, messagetemplate.TypeWelcome)
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID())
}

func TestMessageTemplateRepository_GetByIDAndUpdate(t *testing.T) {
	repo := NewMessageTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	tpl := createTemplate(t, repo, "x", messagetemplate.TypeWelcome, true, baseTime)

	require.NoError(t, tpl.Update("Welcome Message", "Welcome! You have {remaining_requests} requests left", nil))
	tpl.Deactivate()
	require.NoError(t, repo.Update(ctx, tpl))

	got, err := repo.GetByID(ctx, "x")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Welcome Message", got.Name())
	assert.Equal(t, []string{"remaining_requests"}, got.Variables())
	assert.False(t, got.IsActive())
	assert.True(t, got.CreatedAt().Equal(baseTime))

	active, err := repo.GetActiveByType(ctx, messagetemplate.TypeWelcome)
	require.NoError(t, err)
	assert.Nil(t, active)

	missing, err := repo.GetByID(ctx, "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageTemplateRepository_ListAll(t *testing.T) {
	repo := NewMessageTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createTemplate(t, repo, fmt.Sprintf("t%d", i), messagetemplate.TypeWelcome, i%2 == 0, baseTime.Add(time.Duration(i)*time.Minute))
	}

	page, total, err := repo.ListAll(ctx, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, []string{"t2", "t1"}, ids(page))
}

func TestMessageTemplateRepository_FetchError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageTemplateRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.ListActive(context.Background())
	var fetchErr *messagetemplate.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "list active", fetchErr.Op)

	_, err = repo.GetActiveByType(context.Background(), messagetemplate.TypeWelcome)
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "get active by type", fetchErr.Op)
}
