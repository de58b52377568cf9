package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prismqdev/foodler-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.FoodItem{}))
	return conn
}

func itemCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.FoodItem{}).Count(&count).Error)
	return count
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.FoodItem{Name: "rice", Quantity: 500, Unit: "g"}).Error
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, itemCount(t, db))

	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.FoodItem{Name: "beans", Quantity: 250, Unit: "g"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)
	require.EqualValues(t, 1, itemCount(t, db), "rollback should discard the second insert")
}

func TestPing(t *testing.T) {
	client := &Client{conn: newTestDB(t)}
	require.NoError(t, client.Ping(context.Background()))
}
