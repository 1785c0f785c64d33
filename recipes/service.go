package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/recipebox-go/apperror"
	"github.com/user/recipebox-go/i18n"
	"github.com/user/recipebox-go/logging"
)

// Service is the catalog service. Every method takes the owner's user id and
// scopes all reads and writes to it.
type Service interface {
	ListTags(ctx context.Context, ownerID int) ([]Tag, error)
	CreateTag(ctx context.Context, ownerID int, name string) (*Tag, error)
	DeleteTag(ctx context.Context, ownerID, tagID int) error

	ListIngredients(ctx context.Context, ownerID int) ([]Ingredient, error)
	CreateIngredient(ctx context.Context, ownerID int, name string) (*Ingredient, error)
	DeleteIngredient(ctx context.Context, ownerID, ingredientID int) error

	ListRecipes(ctx context.Context, ownerID int) ([]Recipe, error)
	GetRecipe(ctx context.Context, ownerID, recipeID int) (*RecipeDetail, error)
	CreateRecipe(ctx context.Context, ownerID int, req *CreateRecipeRequest) (*Recipe, error)
	UpdateRecipe(ctx context.Context, ownerID, recipeID int, req *UpdateRecipeRequest) (*Recipe, error)
	ReplaceRecipe(ctx context.Context, ownerID, recipeID int, req *CreateRecipeRequest) (*Recipe, error)
	DeleteRecipe(ctx context.Context, ownerID, recipeID int) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so helpers can run
// inside or outside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type catalogService struct {
	db      *pgxpool.Pool
	catalog *i18n.Catalog
	log     logging.Logger
}

// NewService creates the catalog service.
func NewService(db *pgxpool.Pool, catalog *i18n.Catalog, log logging.Logger) Service {
	return &catalogService{db: db, catalog: catalog, log: log.With("component", "recipes")}
}

// ValidPrice reports whether s is a non-negative decimal with at most 4
// integer digits and 2 fraction digits, the shape NUMERIC(6,2) accepts.
func ValidPrice(s string) bool {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" || len(intPart) > 4 {
		return false
	}
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return false
		}
	}
	if hasFrac {
		if fracPart == "" || len(fracPart) > 2 {
			return false
		}
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// uniqueInts deduplicates ids preserving first-seen order.
func uniqueInts(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// --- tags ---

func (s *catalogService) ListTags(ctx context.Context, ownerID int) ([]Tag, error) {
	query := `SELECT id, name, user_id FROM tags WHERE user_id = $1 ORDER BY name DESC`
	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list tags", err)
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.UserID); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan tag", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list tags", err)
	}
	return tags, nil
}

func (s *catalogService) CreateTag(ctx context.Context, ownerID int, name string) (*Tag, error) {
	tag := &Tag{Name: name, UserID: ownerID}
	err := s.db.QueryRow(ctx,
		`INSERT INTO tags (name, user_id) VALUES ($1, $2) RETURNING id`,
		name, ownerID,
	).Scan(&tag.ID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create tag", err)
	}
	s.log.Info(ctx, "tag created", "tag_id", tag.ID, "user_id", ownerID)
	return tag, nil
}

// DeleteTag removes a tag and its recipe associations. The association rows
// go first; there is no cascade in the schema.
func (s *catalogService) DeleteTag(ctx context.Context, ownerID, tagID int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := s.checkOwned(ctx, tx, "tags", tagID, ownerID, "tag_not_found"); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE tag_id = $1`, tagID); err != nil {
		return apperror.NewDatabaseError("failed to remove tag associations", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tags WHERE id = $1`, tagID); err != nil {
		return apperror.NewDatabaseError("failed to delete tag", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewDatabaseError("failed to commit transaction", err)
	}
	s.log.Info(ctx, "tag deleted", "tag_id", tagID, "user_id", ownerID)
	return nil
}

// --- ingredients ---

func (s *catalogService) ListIngredients(ctx context.Context, ownerID int) ([]Ingredient, error) {
	query := `SELECT id, name, user_id FROM ingredients WHERE user_id = $1 ORDER BY name DESC`
	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list ingredients", err)
	}
	defer rows.Close()

	ingredients := []Ingredient{}
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.UserID); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan ingredient", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list ingredients", err)
	}
	return ingredients, nil
}

func (s *catalogService) CreateIngredient(ctx context.Context, ownerID int, name string) (*Ingredient, error) {
	ing := &Ingredient{Name: name, UserID: ownerID}
	err := s.db.QueryRow(ctx,
		`INSERT INTO ingredients (name, user_id) VALUES ($1, $2) RETURNING id`,
		name, ownerID,
	).Scan(&ing.ID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create ingredient", err)
	}
	s.log.Info(ctx, "ingredient created", "ingredient_id", ing.ID, "user_id", ownerID)
	return ing, nil
}

func (s *catalogService) DeleteIngredient(ctx context.Context, ownerID, ingredientID int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := s.checkOwned(ctx, tx, "ingredients", ingredientID, ownerID, "ingredient_not_found"); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE ingredient_id = $1`, ingredientID); err != nil {
		return apperror.NewDatabaseError("failed to remove ingredient associations", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, ingredientID); err != nil {
		return apperror.NewDatabaseError("failed to delete ingredient", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewDatabaseError("failed to commit transaction", err)
	}
	s.log.Info(ctx, "ingredient deleted", "ingredient_id", ingredientID, "user_id", ownerID)
	return nil
}

// --- recipes ---

func (s *catalogService) ListRecipes(ctx context.Context, ownerID int) ([]Recipe, error) {
	query := `
		SELECT id, user_id, title, time_minutes, price::text, currency, link
		FROM recipes
		WHERE user_id = $1
		ORDER BY id DESC
	`
	rows, err := s.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list recipes", err)
	}
	defer rows.Close()

	recipes := []Recipe{}
	index := map[int]int{}
	ids := []int{}
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TimeMinutes, &rec.Price, &rec.Currency, &rec.Link); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan recipe", err)
		}
		rec.TagIDs = []int{}
		rec.IngredientIDs = []int{}
		index[rec.ID] = len(recipes)
		ids = append(ids, rec.ID)
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list recipes", err)
	}
	if len(recipes) == 0 {
		return recipes, nil
	}

	tagRows, err := s.db.Query(ctx,
		`SELECT recipe_id, tag_id FROM recipe_tags WHERE recipe_id = ANY($1) ORDER BY tag_id`, ids)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe tags", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var recipeID, tagID int
		if err := tagRows.Scan(&recipeID, &tagID); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan recipe tag", err)
		}
		i := index[recipeID]
		recipes[i].TagIDs = append(recipes[i].TagIDs, tagID)
	}
	if err := tagRows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe tags", err)
	}

	ingRows, err := s.db.Query(ctx,
		`SELECT recipe_id, ingredient_id FROM recipe_ingredients WHERE recipe_id = ANY($1) ORDER BY ingredient_id`, ids)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe ingredients", err)
	}
	defer ingRows.Close()
	for ingRows.Next() {
		var recipeID, ingredientID int
		if err := ingRows.Scan(&recipeID, &ingredientID); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan recipe ingredient", err)
		}
		i := index[recipeID]
		recipes[i].IngredientIDs = append(recipes[i].IngredientIDs, ingredientID)
	}
	if err := ingRows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe ingredients", err)
	}

	return recipes, nil
}

func (s *catalogService) GetRecipe(ctx context.Context, ownerID, recipeID int) (*RecipeDetail, error) {
	query := `
		SELECT id, title, time_minutes, price::text, currency, link
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`
	var detail RecipeDetail
	err := s.db.QueryRow(ctx, query, recipeID, ownerID).Scan(
		&detail.ID, &detail.Title, &detail.TimeMinutes, &detail.Price, &detail.Currency, &detail.Link,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(s.catalog.Text("recipe_not_found"), nil)
		}
		return nil, apperror.NewDatabaseError("failed to load recipe", err)
	}

	detail.Tags = []Tag{}
	tagRows, err := s.db.Query(ctx, `
		SELECT t.id, t.name, t.user_id
		FROM tags t
		JOIN recipe_tags rt ON rt.tag_id = t.id
		WHERE rt.recipe_id = $1
		ORDER BY t.id
	`, recipeID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe tags", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var t Tag
		if err := tagRows.Scan(&t.ID, &t.Name, &t.UserID); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan tag", err)
		}
		detail.Tags = append(detail.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe tags", err)
	}

	detail.Ingredients = []Ingredient{}
	ingRows, err := s.db.Query(ctx, `
		SELECT i.id, i.name, i.user_id
		FROM ingredients i
		JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = $1
		ORDER BY i.id
	`, recipeID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe ingredients", err)
	}
	defer ingRows.Close()
	for ingRows.Next() {
		var ing Ingredient
		if err := ingRows.Scan(&ing.ID, &ing.Name, &ing.UserID); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan ingredient", err)
		}
		detail.Ingredients = append(detail.Ingredients, ing)
	}
	if err := ingRows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe ingredients", err)
	}

	return &detail, nil
}

func (s *catalogService) CreateRecipe(ctx context.Context, ownerID int, req *CreateRecipeRequest) (*Recipe, error) {
	if !ValidPrice(req.Price) {
		return nil, apperror.NewValidationError(s.catalog.Text("recipe_invalid_price"), nil)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	rec := &Recipe{
		UserID:      ownerID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Currency:    req.Currency,
		Link:        req.Link,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (user_id, title, time_minutes, price, currency, link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, price::text
	`, ownerID, req.Title, req.TimeMinutes, req.Price, req.Currency, req.Link).Scan(&rec.ID, &rec.Price)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create recipe", err)
	}

	if rec.TagIDs, err = s.replaceRecipeTags(ctx, tx, rec.ID, ownerID, req.Tags); err != nil {
		return nil, err
	}
	if rec.IngredientIDs, err = s.replaceRecipeIngredients(ctx, tx, rec.ID, ownerID, req.Ingredients); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("failed to commit transaction", err)
	}
	s.log.Info(ctx, "recipe created", "recipe_id", rec.ID, "user_id", ownerID)
	return rec, nil
}

// UpdateRecipe applies a partial update: only supplied scalar fields change,
// and an association set is replaced only when its list is present in the
// request.
func (s *catalogService) UpdateRecipe(ctx context.Context, ownerID, recipeID int, req *UpdateRecipeRequest) (*Recipe, error) {
	if req.Price != nil && !ValidPrice(*req.Price) {
		return nil, apperror.NewValidationError(s.catalog.Text("recipe_invalid_price"), nil)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := s.checkOwned(ctx, tx, "recipes", recipeID, ownerID, "recipe_not_found"); err != nil {
		return nil, err
	}

	setClauses, args := buildRecipeUpdate(req)
	if len(setClauses) > 0 {
		args = append(args, recipeID)
		query := fmt.Sprintf("UPDATE recipes SET %s WHERE id = $%d", strings.Join(setClauses, ", "), len(args))
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return nil, apperror.NewDatabaseError("failed to update recipe", err)
		}
	}

	if req.Tags != nil {
		if _, err := s.replaceRecipeTags(ctx, tx, recipeID, ownerID, *req.Tags); err != nil {
			return nil, err
		}
	}
	if req.Ingredients != nil {
		if _, err := s.replaceRecipeIngredients(ctx, tx, recipeID, ownerID, *req.Ingredients); err != nil {
			return nil, err
		}
	}

	rec, err := s.fetchRecipe(ctx, tx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("failed to commit transaction", err)
	}
	s.log.Info(ctx, "recipe updated", "recipe_id", recipeID, "user_id", ownerID)
	return rec, nil
}

// ReplaceRecipe is the full update: every scalar field is overwritten and
// both association sets are replaced wholesale, so omitted lists empty them.
func (s *catalogService) ReplaceRecipe(ctx context.Context, ownerID, recipeID int, req *CreateRecipeRequest) (*Recipe, error) {
	if !ValidPrice(req.Price) {
		return nil, apperror.NewValidationError(s.catalog.Text("recipe_invalid_price"), nil)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := s.checkOwned(ctx, tx, "recipes", recipeID, ownerID, "recipe_not_found"); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE recipes
		SET title = $1, time_minutes = $2, price = $3, currency = $4, link = $5
		WHERE id = $6
	`, req.Title, req.TimeMinutes, req.Price, req.Currency, req.Link, recipeID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to replace recipe", err)
	}

	if _, err := s.replaceRecipeTags(ctx, tx, recipeID, ownerID, req.Tags); err != nil {
		return nil, err
	}
	if _, err := s.replaceRecipeIngredients(ctx, tx, recipeID, ownerID, req.Ingredients); err != nil {
		return nil, err
	}

	rec, err := s.fetchRecipe(ctx, tx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("failed to commit transaction", err)
	}
	s.log.Info(ctx, "recipe replaced", "recipe_id", recipeID, "user_id", ownerID)
	return rec, nil
}

func (s *catalogService) DeleteRecipe(ctx context.Context, ownerID, recipeID int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := s.checkOwned(ctx, tx, "recipes", recipeID, ownerID, "recipe_not_found"); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipeID); err != nil {
		return apperror.NewDatabaseError("failed to clear recipe tags", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return apperror.NewDatabaseError("failed to clear recipe ingredients", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, recipeID); err != nil {
		return apperror.NewDatabaseError("failed to delete recipe", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewDatabaseError("failed to commit transaction", err)
	}
	s.log.Info(ctx, "recipe deleted", "recipe_id", recipeID, "user_id", ownerID)
	return nil
}

// --- helpers ---

// checkOwned verifies the row exists and belongs to ownerID. Foreign-owned
// rows are indistinguishable from missing ones.
func (s *catalogService) checkOwned(ctx context.Context, q querier, table string, id, ownerID int, msgKey string) error {
	var found int
	err := q.QueryRow(ctx, `SELECT id FROM `+table+` WHERE id = $1 AND user_id = $2`, id, ownerID).Scan(&found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError(s.catalog.Text(msgKey), nil)
		}
		return apperror.NewDatabaseError("failed to check ownership", err)
	}
	return nil
}

// replaceRecipeTags rewrites the recipe's tag set. Every supplied id must be
// a tag owned by ownerID; attaching another user's tags is rejected.
func (s *catalogService) replaceRecipeTags(ctx context.Context, q querier, recipeID, ownerID int, tagIDs []int) ([]int, error) {
	ids := uniqueInts(tagIDs)
	if err := s.verifyOwnedIDs(ctx, q, "tags", ids, ownerID, "recipe_invalid_tags"); err != nil {
		return nil, err
	}
	if _, err := q.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipeID); err != nil {
		return nil, apperror.NewDatabaseError("failed to clear recipe tags", err)
	}
	for _, tagID := range ids {
		if _, err := q.Exec(ctx, `INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2)`, recipeID, tagID); err != nil {
			return nil, apperror.NewDatabaseError("failed to attach tag", err)
		}
	}
	return ids, nil
}

// replaceRecipeIngredients rewrites the recipe's ingredient set with the same
// ownership rule as replaceRecipeTags.
func (s *catalogService) replaceRecipeIngredients(ctx context.Context, q querier, recipeID, ownerID int, ingredientIDs []int) ([]int, error) {
	ids := uniqueInts(ingredientIDs)
	if err := s.verifyOwnedIDs(ctx, q, "ingredients", ids, ownerID, "recipe_invalid_ingredients"); err != nil {
		return nil, err
	}
	if _, err := q.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return nil, apperror.NewDatabaseError("failed to clear recipe ingredients", err)
	}
	for _, ingredientID := range ids {
		if _, err := q.Exec(ctx, `INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES ($1, $2)`, recipeID, ingredientID); err != nil {
			return nil, apperror.NewDatabaseError("failed to attach ingredient", err)
		}
	}
	return ids, nil
}

// verifyOwnedIDs confirms every id in ids is a row of table owned by ownerID.
// The rejection names the offending ids so the caller can correct the payload.
func (s *catalogService) verifyOwnedIDs(ctx context.Context, q querier, table string, ids []int, ownerID int, msgKey string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `SELECT id FROM ` + table + ` WHERE id = ANY($1) AND user_id = $2`
	rows, err := q.Query(ctx, query, ids, ownerID)
	if err != nil {
		return apperror.NewDatabaseError("failed to verify association ids", err)
	}
	defer rows.Close()

	owned := make(map[int]struct{}, len(ids))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return apperror.NewDatabaseError("failed to scan association id", err)
		}
		owned[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return apperror.NewDatabaseError("failed to verify association ids", err)
	}

	var missing []int
	for _, id := range ids {
		if _, ok := owned[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return apperror.NewValidationError(fmt.Sprintf("%s: %v", s.catalog.Text(msgKey), missing), nil)
	}
	return nil
}

// fetchRecipe loads a recipe row plus its association id sets.
func (s *catalogService) fetchRecipe(ctx context.Context, q querier, ownerID, recipeID int) (*Recipe, error) {
	var rec Recipe
	err := q.QueryRow(ctx, `
		SELECT id, user_id, title, time_minutes, price::text, currency, link
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`, recipeID, ownerID).Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TimeMinutes, &rec.Price, &rec.Currency, &rec.Link)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(s.catalog.Text("recipe_not_found"), nil)
		}
		return nil, apperror.NewDatabaseError("failed to load recipe", err)
	}

	rec.TagIDs = []int{}
	tagRows, err := q.Query(ctx, `SELECT tag_id FROM recipe_tags WHERE recipe_id = $1 ORDER BY tag_id`, recipeID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe tags", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var tagID int
		if err := tagRows.Scan(&tagID); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan recipe tag", err)
		}
		rec.TagIDs = append(rec.TagIDs, tagID)
	}
	if err := tagRows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe tags", err)
	}

	rec.IngredientIDs = []int{}
	ingRows, err := q.Query(ctx, `SELECT ingredient_id FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY ingredient_id`, recipeID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe ingredients", err)
	}
	defer ingRows.Close()
	for ingRows.Next() {
		var ingredientID int
		if err := ingRows.Scan(&ingredientID); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan recipe ingredient", err)
		}
		rec.IngredientIDs = append(rec.IngredientIDs, ingredientID)
	}
	if err := ingRows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to load recipe ingredients", err)
	}

	return &rec, nil
}

// buildRecipeUpdate collects SET clauses for the scalar fields present in a
// partial update.
func buildRecipeUpdate(req *UpdateRecipeRequest) ([]string, []any) {
	var setClauses []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.TimeMinutes != nil {
		add("time_minutes", *req.TimeMinutes)
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	if req.Currency != nil {
		add("currency", *req.Currency)
	}
	if req.Link != nil {
		add("link", *req.Link)
	}
	return setClauses, args
}
