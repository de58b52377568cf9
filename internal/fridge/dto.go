package fridge

import (
	"time"

	"github.com/prismqdev/foodler-backend/pkg/db/models"
)

// ItemDTO is the API-facing shape of a fridge item.
type ItemDTO struct {
	ID           uint       `json:"id"`
	Name         string     `json:"name"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Calories     *float64   `json:"calories,omitempty"`
	Protein      *float64   `json:"protein,omitempty"`
	Carbs        *float64   `json:"carbs,omitempty"`
	Fats         *float64   `json:"fats,omitempty"`
	LastUsedDate *time.Time `json:"last_used_date,omitempty"`
	MealsWithout int        `json:"meals_without"`
	AddedDate    time.Time  `json:"added_date"`
}

// AddItemInput holds the validated payload to add an item.
type AddItemInput struct {
	Name       string
	Quantity   float64
	Unit       string
	ExpiryDate *time.Time
	Calories   *float64
	Protein    *float64
	Carbs      *float64
	Fats       *float64
}

func toItemDTO(item *models.FoodItem) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:           item.ID,
		Name:         item.Name,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		ExpiryDate:   item.ExpiryDate,
		Calories:     item.Calories,
		Protein:      item.Protein,
		Carbs:        item.Carbs,
		Fats:         item.Fats,
		LastUsedDate: item.LastUsedDate,
		MealsWithout: item.MealsWithout,
		AddedDate:    item.AddedDate,
	}
}

func toItemDTOs(items []models.FoodItem) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toItemDTO(&items[i]))
	}
	return dtos
}
