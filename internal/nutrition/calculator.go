package nutrition

import (
	"math"
	"sort"
	"strings"
)

// DailyNeeds is a daily intake target. Calories in kcal, the rest in grams.
type DailyNeeds struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
}

// DefaultDailyNeeds is the profile used until a custom one is calculated.
func DefaultDailyNeeds() DailyNeeds {
	return DailyNeeds{
		Calories: 2000,
		Protein:  50,
		Carbs:    275,
		Fats:     70,
		Fiber:    25,
	}
}

// FoodPortion is a named amount of food with per-100g nutrition values.
type FoodPortion struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
}

// NutrientTotals holds summed nutrition for a meal.
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// MealBalanceResult reports a meal against the daily profile.
type MealBalanceResult struct {
	Totals      NutrientTotals `json:"totals"`
	Percentages NutrientTotals `json:"percentages"`
	DailyNeeds  DailyNeeds     `json:"daily_needs"`
	IsBalanced  bool           `json:"is_balanced"`
}

// Suggestion is one food proposed to close a nutrient deficit.
type Suggestion struct {
	Name              string  `json:"name"`
	SuggestedQuantity float64 `json:"suggested_quantity"`
	Reason            string  `json:"reason"`
	Nutrient          string  `json:"nutrient"`
	ProvidesPer100g   float64 `json:"provides_per_100g"`
}

// Ingredient is a planned amount of a named food.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// PlannedMeal is one meal of a plan.
type PlannedMeal struct {
	Name        string       `json:"name"`
	Ingredients []Ingredient `json:"ingredients"`
}

// InventoryItem is the on-hand amount of a named food.
type InventoryItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ShoppingItem is a shortfall to buy.
type ShoppingItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// A meal is balanced when each nutrient lands near one third of the day,
// within this tolerance.
const (
	mealTarget    = 33.33
	mealTolerance = 15.0
)

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// Calculator derives intake targets and evaluates meals against them. It is
// pure computation; no storage or remote calls.
type Calculator struct {
	needs DailyNeeds
}

// NewCalculator starts from the default daily profile.
func NewCalculator() *Calculator {
	return &Calculator{needs: DefaultDailyNeeds()}
}

// Needs returns the active daily profile.
func (c *Calculator) Needs() DailyNeeds {
	return c.needs
}

// SetNeeds replaces the daily profile with an explicit one.
func (c *Calculator) SetNeeds(needs DailyNeeds) {
	c.needs = needs
}

// SetCustomNeeds derives a personal profile with the Harris-Benedict
// equation and replaces the stored one. Unknown activity levels fall back
// to sedentary.
func (c *Calculator) SetCustomNeeds(age int, weightKg, heightCm float64, gender, activityLevel string) DailyNeeds {
	var bmr float64
	if strings.EqualFold(gender, "male") {
		bmr = 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
	} else {
		bmr = 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
	}

	multiplier, ok := activityMultipliers[strings.ToLower(activityLevel)]
	if !ok {
		multiplier = activityMultipliers["sedentary"]
	}
	calories := bmr * multiplier

	fiber := 38.0
	if strings.EqualFold(gender, "female") {
		fiber = 25.0
	}

	c.needs = DailyNeeds{
		Calories: round2(calories),
		Protein:  round2(calories * 0.175 / 4),
		Carbs:    round2(calories * 0.55 / 4),
		Fats:     round2(calories * 0.275 / 9),
		Fiber:    fiber,
	}
	return c.needs
}

// MealBalance sums the per-100g values scaled by quantity and reports each
// nutrient as a percentage of the daily profile.
func (c *Calculator) MealBalance(foods []FoodPortion) MealBalanceResult {
	var totals NutrientTotals
	for _, f := range foods {
		factor := f.Quantity / 100
		totals.Calories += f.Calories * factor
		totals.Protein += f.Protein * factor
		totals.Carbs += f.Carbs * factor
		totals.Fats += f.Fats * factor
	}

	percentages := NutrientTotals{
		Calories: percentOf(totals.Calories, c.needs.Calories),
		Protein:  percentOf(totals.Protein, c.needs.Protein),
		Carbs:    percentOf(totals.Carbs, c.needs.Carbs),
		Fats:     percentOf(totals.Fats, c.needs.Fats),
	}

	return MealBalanceResult{
		Totals:      totals,
		Percentages: percentages,
		DailyNeeds:  c.needs,
		IsBalanced:  isBalanced(percentages),
	}
}

// SuggestFoods proposes up to three foods to cover the largest remaining
// nutrient deficit. An intake already at or above every target yields no
// suggestions.
func (c *Calculator) SuggestFoods(currentIntake NutrientTotals, currentFiber float64, available []FoodPortion) []Suggestion {
	deficits := map[string]float64{
		"calories": math.Max(0, c.needs.Calories-currentIntake.Calories),
		"protein":  math.Max(0, c.needs.Protein-currentIntake.Protein),
		"carbs":    math.Max(0, c.needs.Carbs-currentIntake.Carbs),
		"fats":     math.Max(0, c.needs.Fats-currentIntake.Fats),
		"fiber":    math.Max(0, c.needs.Fiber-currentFiber),
	}

	primary, needed := largestDeficit(deficits)
	if needed == 0 {
		return nil
	}

	content := func(f FoodPortion) float64 {
		switch primary {
		case "calories":
			return f.Calories
		case "protein":
			return f.Protein
		case "carbs":
			return f.Carbs
		case "fats":
			return f.Fats
		case "fiber":
			return f.Fiber
		}
		return 0
	}

	ranked := make([]FoodPortion, len(available))
	copy(ranked, available)
	sort.SliceStable(ranked, func(i, j int) bool {
		return content(ranked[i]) > content(ranked[j])
	})

	var suggestions []Suggestion
	for _, f := range ranked {
		if len(suggestions) == 3 {
			break
		}
		per100g := content(f)
		if per100g <= 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Name:              f.Name,
			SuggestedQuantity: round2(needed / per100g * 100),
			Reason:            "High in " + primary,
			Nutrient:          primary,
			ProvidesPer100g:   per100g,
		})
	}
	return suggestions
}

// ShoppingList aggregates planned ingredient amounts per name and unit,
// subtracts the inventory, and returns the shortfalls.
func (c *Calculator) ShoppingList(mealPlan []PlannedMeal, inventory []InventoryItem) []ShoppingItem {
	type key struct {
		name string
		unit string
	}

	needed := map[key]float64{}
	var order []key
	for _, meal := range mealPlan {
		for _, ing := range meal.Ingredients {
			unit := ing.Unit
			if unit == "" {
				unit = "g"
			}
			k := key{name: ing.Name, unit: unit}
			if _, seen := needed[k]; !seen {
				order = append(order, k)
			}
			needed[k] += ing.Quantity
		}
	}

	onHand := map[key]float64{}
	for _, item := range inventory {
		onHand[key{name: item.Name, unit: item.Unit}] += item.Quantity
	}

	var list []ShoppingItem
	for _, k := range order {
		shortfall := needed[k] - onHand[k]
		if shortfall > 0 {
			list = append(list, ShoppingItem{
				Name:     k.name,
				Quantity: shortfall,
				Unit:     k.unit,
			})
		}
	}
	return list
}

func isBalanced(p NutrientTotals) bool {
	for _, percent := range []float64{p.Calories, p.Protein, p.Carbs, p.Fats} {
		if percent < mealTarget-mealTolerance || percent > mealTarget+mealTolerance {
			return false
		}
	}
	return true
}

func largestDeficit(deficits map[string]float64) (string, float64) {
	// Fixed iteration order keeps ties deterministic.
	var best string
	var bestValue float64
	for _, nutrient := range []string{"calories", "protein", "carbs", "fats", "fiber"} {
		if deficits[nutrient] > bestValue {
			best = nutrient
			bestValue = deficits[nutrient]
		}
	}
	return best, bestValue
}

func percentOf(value, need float64) float64 {
	if need == 0 {
		need = 1
	}
	return round2(value / need * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
