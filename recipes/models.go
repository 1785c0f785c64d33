// Package recipes implements the user-scoped catalog: tags, ingredients, and
// recipes with their association sets. Every query filters by the owning user
// before anything else; that filter is the system's isolation mechanism.
package recipes

// Tag is a label a user attaches to recipes.
type Tag struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	UserID int    `json:"-"`
}

// Ingredient is an ingredient a user attaches to recipes.
type Ingredient struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	UserID int    `json:"-"`
}

// Recipe is a recipe row plus its association id sets. Price is carried as a
// 2-fraction-digit decimal string and stored as NUMERIC(6,2).
type Recipe struct {
	ID            int    `json:"id"`
	UserID        int    `json:"-"`
	Title         string `json:"title"`
	TimeMinutes   int    `json:"time_minutes"`
	Price         string `json:"price"`
	Currency      string `json:"currency"`
	Link          string `json:"link"`
	TagIDs        []int  `json:"tags"`
	IngredientIDs []int  `json:"ingredients"`
}

// RecipeDetail is a recipe with its associations expanded to full objects.
type RecipeDetail struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	TimeMinutes int          `json:"time_minutes"`
	Price       string       `json:"price"`
	Currency    string       `json:"currency"`
	Link        string       `json:"link"`
	Tags        []Tag        `json:"tags"`
	Ingredients []Ingredient `json:"ingredients"`
}
