package openfoodfacts

// searchResponse is the shape of GET /cgi/search.pl with json=1.
type searchResponse struct {
	Products []product `json:"products"`
}

// productResponse is the shape of GET /api/v2/product/{barcode}.
type productResponse struct {
	Status  int      `json:"status"`
	Product *product `json:"product"`
}

type product struct {
	ProductName     string     `json:"product_name"`
	Brands          string     `json:"brands"`
	Quantity        string     `json:"quantity"`
	Categories      string     `json:"categories"`
	IngredientsText string     `json:"ingredients_text"`
	ImageURL        string     `json:"image_url"`
	ServingSize     string     `json:"serving_size"`
	NutriScoreGrade string     `json:"nutriscore_grade"`
	Nutriments      nutriments `json:"nutriments"`
}

type nutriments struct {
	EnergyKcal100g         float64 `json:"energy-kcal_100g"`
	Proteins100g           float64 `json:"proteins_100g"`
	Carbohydrates100g      float64 `json:"carbohydrates_100g"`
	Fat100g                float64 `json:"fat_100g"`
	Fiber100g              float64 `json:"fiber_100g"`
	Sugars100g             float64 `json:"sugars_100g"`
	Salt100g               float64 `json:"salt_100g"`
	Sodium100g             float64 `json:"sodium_100g"`
	SaturatedFat100g       float64 `json:"saturated-fat_100g"`
	MonounsaturatedFat100g float64 `json:"monounsaturated-fat_100g"`
	PolyunsaturatedFat100g float64 `json:"polyunsaturated-fat_100g"`
	TransFat100g           float64 `json:"trans-fat_100g"`
	Cholesterol100g        float64 `json:"cholesterol_100g"`
	VitaminA100g           float64 `json:"vitamin-a_100g"`
	VitaminC100g           float64 `json:"vitamin-c_100g"`
	VitaminD100g           float64 `json:"vitamin-d_100g"`
	VitaminE100g           float64 `json:"vitamin-e_100g"`
	Calcium100g            float64 `json:"calcium_100g"`
	Iron100g               float64 `json:"iron_100g"`
	Magnesium100g          float64 `json:"magnesium_100g"`
	Potassium100g          float64 `json:"potassium_100g"`
	Zinc100g               float64 `json:"zinc_100g"`
}
