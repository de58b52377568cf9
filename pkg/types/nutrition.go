package types

// NutritionRecord holds per-100g values for a single food as reported by a
// remote nutrition source. Zero values mean the source did not report the
// nutrient.
type NutritionRecord struct {
	Name          string  `json:"name"`
	Brand         string  `json:"brand,omitempty"`
	Quantity      string  `json:"quantity,omitempty"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbs         float64 `json:"carbs"`
	Fats          float64 `json:"fats"`
	Fiber         float64 `json:"fiber"`
	Sugars        float64 `json:"sugars"`
	Salt          float64 `json:"salt"`
	SaturatedFats float64 `json:"saturated_fats"`
	ImageURL      string  `json:"image_url,omitempty"`
	Source        string  `json:"source"`
}

// DetailedNutritionRecord extends NutritionRecord with the fat breakdown,
// vitamins and minerals a source may expose.
type DetailedNutritionRecord struct {
	NutritionRecord

	Sodium              float64 `json:"sodium"`
	MonounsaturatedFats float64 `json:"monounsaturated_fats"`
	PolyunsaturatedFats float64 `json:"polyunsaturated_fats"`
	TransFats           float64 `json:"trans_fats"`
	Cholesterol         float64 `json:"cholesterol"`

	VitaminA float64 `json:"vitamin_a"`
	VitaminC float64 `json:"vitamin_c"`
	VitaminD float64 `json:"vitamin_d"`
	VitaminE float64 `json:"vitamin_e"`

	Calcium   float64 `json:"calcium"`
	Iron      float64 `json:"iron"`
	Magnesium float64 `json:"magnesium"`
	Potassium float64 `json:"potassium"`
	Zinc      float64 `json:"zinc"`

	NutriScoreGrade string `json:"nutriscore_grade,omitempty"`
	Categories      string `json:"categories,omitempty"`
	IngredientsText string `json:"ingredients_text,omitempty"`
	ServingSize     string `json:"serving_size,omitempty"`
}

// BasicFoodRecord is a lightweight search hit.
type BasicFoodRecord struct {
	Name   string `json:"name"`
	Brand  string `json:"brand,omitempty"`
	Source string `json:"source"`
}
