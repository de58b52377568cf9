package fridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prismqdev/foodler-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together food item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateItem inserts the item and returns it with its assigned ID.
func (r *Repository) CreateItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads a single item.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns every item in storage order.
func (r *Repository) ListItems(ctx context.Context) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByName matches items whose name contains the substring,
// case-insensitively. Multiple rows may share a name.
func (r *Repository) FindByName(ctx context.Context, name string) ([]models.FoodItem, error) {
	pattern := "%" + strings.ToLower(name) + "%"
	var items []models.FoodItem
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets the quantity for one item. Returns the number of rows
// matched so callers can distinguish a missing id.
func (r *Repository) UpdateQuantity(ctx context.Context, id uint, quantity float64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

// DeleteItem removes the item. Returns true when a row was deleted.
func (r *Repository) DeleteItem(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.FoodItem{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// ListItemsToUse orders the inventory by rotation priority: most meals
// skipped first, never-used items before dated ones, oldest use next, and
// id as the final tie-break. The CASE keeps NULL ordering identical on
// sqlite and postgres.
func (r *Repository) ListItemsToUse(ctx context.Context, limit int) ([]models.FoodItem, error) {
	var items []models.FoodItem
	q := r.db.WithContext(ctx).
		Order("meals_without DESC").
		Order("CASE WHEN last_used_date IS NULL THEN 0 ELSE 1 END ASC").
		Order("last_used_date ASC").
		Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MarkAsUsed stamps the item as cooked with: last use now, skip counter
// reset. Returns rows matched.
func (r *Repository) MarkAsUsed(ctx context.Context, id uint, usedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.FoodItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_used_date": usedAt,
			"meals_without":  0,
		})
	return res.RowsAffected, res.Error
}

// IncrementMealsWithout bumps the skip counter for every item not excluded,
// in a single statement.
func (r *Repository) IncrementMealsWithout(ctx context.Context, excludeIDs []uint) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.FoodItem{})
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	} else {
		q = q.Where("1 = 1")
	}
	res := q.Update("meals_without", gorm.Expr("meals_without + 1"))
	return res.RowsAffected, res.Error
}

// ListExpiringSoon returns items whose expiry date falls inside
// [now, now+days].
func (r *Repository) ListExpiringSoon(ctx context.Context, now time.Time, days int) ([]models.FoodItem, error) {
	if days < 0 {
		return nil, fmt.Errorf("days must be non-negative")
	}
	cutoff := now.AddDate(0, 0, days)
	var items []models.FoodItem
	if err := r.db.WithContext(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?", now, cutoff).
		Order("expiry_date ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
