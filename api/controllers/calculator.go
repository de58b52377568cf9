package controllers

import (
	"net/http"

	"github.com/prismqdev/foodler-backend/api/responses"
	"github.com/prismqdev/foodler-backend/api/validators"
	"github.com/prismqdev/foodler-backend/internal/fridge"
	"github.com/prismqdev/foodler-backend/internal/nutrition"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

type customNeedsRequest struct {
	Age           int     `json:"age" validate:"required,min=1,max=120"`
	WeightKg      float64 `json:"weight_kg" validate:"required,gt=0"`
	HeightCm      float64 `json:"height_cm" validate:"required,gt=0"`
	Gender        string  `json:"gender" validate:"required,oneof=male female"`
	ActivityLevel string  `json:"activity_level" validate:"required"`
}

type mealBalanceRequest struct {
	Needs *nutrition.DailyNeeds   `json:"needs,omitempty"`
	Foods []nutrition.FoodPortion `json:"foods" validate:"required,min=1"`
}

type intakePayload struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
}

type suggestionsRequest struct {
	Needs         *nutrition.DailyNeeds   `json:"needs,omitempty"`
	CurrentIntake intakePayload           `json:"current_intake"`
	Available     []nutrition.FoodPortion `json:"available" validate:"required,min=1"`
}

type shoppingListRequest struct {
	MealPlan  []nutrition.PlannedMeal   `json:"meal_plan" validate:"required,min=1"`
	Inventory []nutrition.InventoryItem `json:"inventory,omitempty"`
}

func calculatorFor(needs *nutrition.DailyNeeds) *nutrition.Calculator {
	calc := nutrition.NewCalculator()
	if needs != nil {
		calc.SetNeeds(*needs)
	}
	return calc
}

// CalculatorNeeds derives a personal daily intake profile.
func CalculatorNeeds(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload customNeedsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		calc := nutrition.NewCalculator()
		needs := calc.SetCustomNeeds(payload.Age, payload.WeightKg, payload.HeightCm, payload.Gender, payload.ActivityLevel)
		responses.WriteSuccess(w, needs)
	}
}

// CalculatorMealBalance evaluates a meal against a daily profile.
func CalculatorMealBalance(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload mealBalanceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := calculatorFor(payload.Needs).MealBalance(payload.Foods)
		responses.WriteSuccess(w, result)
	}
}

// CalculatorSuggestions proposes foods to close the largest nutrient
// deficit.
func CalculatorSuggestions(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload suggestionsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		intake := nutrition.NutrientTotals{
			Calories: payload.CurrentIntake.Calories,
			Protein:  payload.CurrentIntake.Protein,
			Carbs:    payload.CurrentIntake.Carbs,
			Fats:     payload.CurrentIntake.Fats,
		}
		suggestions := calculatorFor(payload.Needs).SuggestFoods(intake, payload.CurrentIntake.Fiber, payload.Available)
		responses.WriteSuccess(w, suggestions)
	}
}

// CalculatorShoppingList computes shortfalls for a meal plan. The fridge
// contents serve as inventory unless the request carries its own.
func CalculatorShoppingList(fridgeSvc fridge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload shoppingListRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inventory := payload.Inventory
		if inventory == nil && fridgeSvc != nil {
			items, err := fridgeSvc.ListItems(r.Context(), "")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			for _, item := range items {
				inventory = append(inventory, nutrition.InventoryItem{
					Name:     item.Name,
					Quantity: item.Quantity,
					Unit:     item.Unit,
				})
			}
		}

		list := nutrition.NewCalculator().ShoppingList(payload.MealPlan, inventory)
		responses.WriteSuccess(w, list)
	}
}
