package models

import "time"

// FoodItem is a fridge inventory row. Nutrition values follow the per-100g
// convention assumed by callers; the store does not enforce it.
type FoodItem struct {
	ID       uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"column:name;not null" json:"name"`
	Quantity float64 `gorm:"column:quantity;not null" json:"quantity"`
	Unit     string  `gorm:"column:unit;not null" json:"unit"`

	ExpiryDate *time.Time `gorm:"column:expiry_date" json:"expiry_date,omitempty"`

	Calories *float64 `gorm:"column:calories" json:"calories,omitempty"`
	Protein  *float64 `gorm:"column:protein" json:"protein,omitempty"`
	Carbs    *float64 `gorm:"column:carbs" json:"carbs,omitempty"`
	Fats     *float64 `gorm:"column:fats" json:"fats,omitempty"`

	// LastUsedDate is nil for items never marked as used. MealsWithout counts
	// meal preparations since the item last went into a meal; only
	// MarkAsUsed resets it and only AdvanceRotation increments it.
	LastUsedDate *time.Time `gorm:"column:last_used_date" json:"last_used_date,omitempty"`
	MealsWithout int        `gorm:"column:meals_without;not null;default:0" json:"meals_without"`

	AddedDate time.Time `gorm:"column:added_date;autoCreateTime" json:"added_date"`
}

// TableName pins the table used by the fridge repository.
func (FoodItem) TableName() string {
	return "food_items"
}
