package dto

type Time struct {
	Hours   int32 `json:"hours"`
	Minutes int32 `json:"minutes"`
}

type Quantity struct {
	Kind    string   `json:"kind"`
	Grams   *int32   `json:"grams,omitempty"`
	Portion *float64 `json:"portion,omitempty"`
	Amount  *uint8   `json:"amount,omitempty"`
	Display string   `json:"display"`
}

type Ingredient struct {
	ID       int32    `json:"id"`
	Name     string   `json:"name"`
	Quantity Quantity `json:"quantity"`
}

type Recipe struct {
	ID          int32        `json:"id"`
	Name        string       `json:"name"`
	PrepTime    Time         `json:"prep_time"`
	CookTime    Time         `json:"cook_time"`
	Ingredients []Ingredient `json:"ingredients"`
	Method      string       `json:"method"`
}

type Recipes struct {
	Recipes []Recipe `json:"recipes"`
	Count   int      `json:"count"`
}
