package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type row struct {
	ID        string `gorm:"primaryKey"`
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&row{}))
	return db
}

func TestScopes(t *testing.T) {
	db := setupDB(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&[]row{
		{ID: "a", IsActive: true, CreatedAt: base, UpdatedAt: base},
		{ID: "b", IsActive: false, CreatedAt: base.Add(time.Hour), UpdatedAt: base},
		{ID: "c", IsActive: true, CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base},
	}).Error)

	var rows []row
	require.NoError(t, db.Scopes(ActiveOnly(), NewestFirst()).Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[0].ID)
	assert.Equal(t, "a", rows[1].ID)

	rows = nil
	require.NoError(t, db.Scopes(NewestFirst(), Paginate(1, 1)).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].ID)
}

func TestRunInTransaction_RollsBack(t *testing.T) {
	db := setupDB(t)
	tm := NewTransactionManager(db)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		if err := GetTxFromContext(ctx, db).Create(&row{ID: "x"}).Error; err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&row{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return GetTxFromContext(ctx, db).Create(&row{ID: "y"}).Error
	}))
	require.NoError(t, db.Model(&row{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
