package fridge

import (
	"io"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prismqdev/foodler-backend/pkg/db/models"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.FoodItem{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard})
}

func mustCreateItem(t *testing.T, tx *gorm.DB, name string, mealsWithout int, lastUsed *time.Time) *models.FoodItem {
	t.Helper()
	item := &models.FoodItem{
		Name:         name,
		Quantity:     100,
		Unit:         "g",
		MealsWithout: mealsWithout,
		LastUsedDate: lastUsed,
		AddedDate:    time.Now().UTC(),
	}
	if err := tx.Create(item).Error; err != nil {
		t.Fatalf("create item %q: %v", name, err)
	}
	return item
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func floatPtr(f float64) *float64 {
	return &f
}
