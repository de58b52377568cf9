package usda

// searchResponse is the shape of GET /foods/search.
type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	FdcID       int64            `json:"fdcId"`
	Description string           `json:"description"`
	BrandOwner  string           `json:"brandOwner"`
	DataType    string           `json:"dataType"`
	Nutrients   []searchNutrient `json:"foodNutrients"`
}

// searchNutrient is the flattened nutrient shape used by search results.
type searchNutrient struct {
	Name  string  `json:"nutrientName"`
	Value float64 `json:"value"`
	Unit  string  `json:"unitName"`
}

// foodDetail is the shape of GET /food/{fdcId}; nutrients are nested here.
type foodDetail struct {
	FdcID       int64            `json:"fdcId"`
	Description string           `json:"description"`
	BrandOwner  string           `json:"brandOwner"`
	DataType    string           `json:"dataType"`
	Ingredients string           `json:"ingredients"`
	Nutrients   []detailNutrient `json:"foodNutrients"`
}

type detailNutrient struct {
	Nutrient struct {
		Name string `json:"name"`
		Unit string `json:"unitName"`
	} `json:"nutrient"`
	Amount float64 `json:"amount"`
}
