package recipes

// CreateTagRequest creates a tag owned by the caller.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required" example:"Vegan"`
}

// CreateIngredientRequest creates an ingredient owned by the caller.
type CreateIngredientRequest struct {
	Name string `json:"name" validate:"required" example:"Salt"`
}

// CreateRecipeRequest is the payload for creating a recipe and for full
// replacement (PUT). Omitted association lists mean empty sets.
type CreateRecipeRequest struct {
	Title       string `json:"title" validate:"required" example:"Jollof rice"`
	TimeMinutes int    `json:"time_minutes" validate:"required,gt=0" example:"45"`
	Price       string `json:"price" validate:"required" example:"500.00"`
	Currency    string `json:"currency" validate:"required,max=10" example:"NGN"`
	Link        string `json:"link,omitempty"`
	Tags        []int  `json:"tags,omitempty"`
	Ingredients []int  `json:"ingredients,omitempty"`
}

// UpdateRecipeRequest is the partial-update payload (PATCH). Nil fields are
// left unchanged; a supplied empty association list clears the set.
type UpdateRecipeRequest struct {
	Title       *string `json:"title,omitempty"`
	TimeMinutes *int    `json:"time_minutes,omitempty" validate:"omitempty,gt=0"`
	Price       *string `json:"price,omitempty"`
	Currency    *string `json:"currency,omitempty" validate:"omitempty,max=10"`
	Link        *string `json:"link,omitempty"`
	Tags        *[]int  `json:"tags,omitempty"`
	Ingredients *[]int  `json:"ingredients,omitempty"`
}
