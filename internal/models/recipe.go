package models

// IngredientRequirement represents a required ingredient for a recipe,
// in the amount and unit the recipe source (user or LLM) stated it in.
type IngredientRequirement struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
}

// RecipeSuggestion represents a recipe proposed for the current pantry
type RecipeSuggestion struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Servings    int                     `json:"servings,omitempty"`
	Ingredients []IngredientRequirement `json:"ingredients"`
	Steps       []string                `json:"steps,omitempty"`
}
