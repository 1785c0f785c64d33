package recipes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/recipebox-go/apperror"
	"github.com/user/recipebox-go/httpx"
	"github.com/user/recipebox-go/i18n"
	"github.com/user/recipebox-go/users"
)

// Handlers exposes the catalog HTTP endpoints. All routes registered here
// assume the token middleware already placed the caller in the context.
type Handlers struct {
	service  Service
	catalog  *i18n.Catalog
	validate *validator.Validate
}

// NewHandlers creates the catalog handlers.
func NewHandlers(service Service, catalog *i18n.Catalog) *Handlers {
	return &Handlers{
		service:  service,
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the catalog routes on a protected sub-router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/tags", h.handleListTags)
	r.Post("/tags", h.handleCreateTag)
	r.Delete("/tags/{id}", h.handleDeleteTag)

	r.Get("/ingredients", h.handleListIngredients)
	r.Post("/ingredients", h.handleCreateIngredient)
	r.Delete("/ingredients/{id}", h.handleDeleteIngredient)

	r.Get("/recipes", h.handleListRecipes)
	r.Post("/recipes", h.handleCreateRecipe)
	r.Get("/recipes/{id}", h.handleGetRecipe)
	r.Patch("/recipes/{id}", h.handleUpdateRecipe)
	r.Put("/recipes/{id}", h.handleReplaceRecipe)
	r.Delete("/recipes/{id}", h.handleDeleteRecipe)
}

// caller extracts the authenticated user, failing closed when the middleware
// did not run.
func (h *Handlers) caller(w http.ResponseWriter, r *http.Request) (*users.User, bool) {
	user, ok := users.FromContext(r.Context())
	if !ok {
		httpx.WriteError(w, apperror.NewAuthError(h.catalog.Text("auth_invalid_token"), nil))
		return nil, false
	}
	return user, true
}

// urlID parses the {id} route parameter. Unparseable ids are reported as 404
// like any other nonexistent resource.
func (h *Handlers) urlID(w http.ResponseWriter, r *http.Request, msgKey string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		httpx.WriteError(w, apperror.NewNotFoundError(h.catalog.Text(msgKey), nil))
		return 0, false
	}
	return id, true
}

// validationError maps validator failures to catalog messages for the
// name-bearing resources.
func (h *Handlers) validationError(err error, requiredKey string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.NewValidationError(h.catalog.Text(requiredKey), nil)
	}
	return apperror.NewValidationError(err.Error(), nil)
}

// --- tags ---

// handleListTags godoc
// @Summary List the caller's tags
// @Tags recipe
// @Produce json
// @Security TokenAuth
// @Success 200 {array} recipes.Tag
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/recipe/tags [get]
func (h *Handlers) handleListTags(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	tags, err := h.service.ListTags(r.Context(), user.ID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tags)
}

// handleCreateTag godoc
// @Summary Create a tag
// @Tags recipe
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body recipes.CreateTagRequest true "Tag"
// @Success 201 {object} recipes.Tag
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/recipe/tags [post]
func (h *Handlers) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		httpx.WriteError(w, h.validationError(err, "tag_name_required"))
		return
	}

	tag, err := h.service.CreateTag(r.Context(), user.ID, req.Name)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, tag)
}

// handleDeleteTag godoc
// @Summary Delete a tag and its recipe associations
// @Tags recipe
// @Security TokenAuth
// @Param id path int true "Tag id"
// @Success 204 "No Content"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/recipe/tags/{id} [delete]
func (h *Handlers) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.urlID(w, r, "tag_not_found")
	if !ok {
		return
	}

	if err := h.service.DeleteTag(r.Context(), user.ID, id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- ingredients ---

// handleListIngredients godoc
// @Summary List the caller's ingredients
// @Tags recipe
// @Produce json
// @Security TokenAuth
// @Success 200 {array} recipes.Ingredient
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/recipe/ingredients [get]
func (h *Handlers) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	ingredients, err := h.service.ListIngredients(r.Context(), user.ID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ingredients)
}

// handleCreateIngredient godoc
// @Summary Create an ingredient
// @Tags recipe
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body recipes.CreateIngredientRequest true "Ingredient"
// @Success 201 {object} recipes.Ingredient
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/recipe/ingredients [post]
func (h *Handlers) handleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req CreateIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		httpx.WriteError(w, h.validationError(err, "ingredient_name_required"))
		return
	}

	ing, err := h.service.CreateIngredient(r.Context(), user.ID, req.Name)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, ing)
}

// handleDeleteIngredient godoc
// @Summary Delete an ingredient and its recipe associations
// @Tags recipe
// @Security TokenAuth
// @Param id path int true "Ingredient id"
// @Success 204 "No Content"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/recipe/ingredients/{id} [delete]
func (h *Handlers) handleDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.urlID(w, r, "ingredient_not_found")
	if !ok {
		return
	}

	if err := h.service.DeleteIngredient(r.Context(), user.ID, id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- recipes ---

// handleListRecipes godoc
// @Summary List the caller's recipes
// @Description Associations are rendered as id arrays; use the detail
// @Description endpoint for nested objects.
// @Tags recipe
// @Produce json
// @Security TokenAuth
// @Success 200 {array} recipes.Recipe
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/recipe/recipes [get]
func (h *Handlers) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListRecipes(r.Context(), user.ID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// handleCreateRecipe godoc
// @Summary Create a recipe
// @Tags recipe
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body recipes.CreateRecipeRequest true "Recipe"
// @Success 201 {object} recipes.Recipe
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/recipe/recipes [post]
func (h *Handlers) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		httpx.WriteError(w, apperror.NewValidationError(err.Error(), nil))
		return
	}

	rec, err := h.service.CreateRecipe(r.Context(), user.ID, &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, rec)
}

// handleGetRecipe godoc
// @Summary Retrieve one recipe with nested associations
// @Tags recipe
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe id"
// @Success 200 {object} recipes.RecipeDetail
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/recipe/recipes/{id} [get]
func (h *Handlers) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.urlID(w, r, "recipe_not_found")
	if !ok {
		return
	}

	detail, err := h.service.GetRecipe(r.Context(), user.ID, id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

// handleUpdateRecipe godoc
// @Summary Partially update a recipe
// @Description Only supplied fields change; an omitted association list is
// @Description left alone, an empty supplied list clears the set.
// @Tags recipe
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe id"
// @Param body body recipes.UpdateRecipeRequest true "Fields to update"
// @Success 200 {object} recipes.Recipe
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/recipe/recipes/{id} [patch]
func (h *Handlers) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.urlID(w, r, "recipe_not_found")
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		httpx.WriteError(w, apperror.NewValidationError(err.Error(), nil))
		return
	}

	rec, err := h.service.UpdateRecipe(r.Context(), user.ID, id, &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// handleReplaceRecipe godoc
// @Summary Fully replace a recipe
// @Description All scalar fields are overwritten and both association sets
// @Description are replaced wholesale; omitted lists become empty sets.
// @Tags recipe
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Recipe id"
// @Param body body recipes.CreateRecipeRequest true "Full recipe"
// @Success 200 {object} recipes.Recipe
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/recipe/recipes/{id} [put]
func (h *Handlers) handleReplaceRecipe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.urlID(w, r, "recipe_not_found")
	if !ok {
		return
	}

	var req CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		httpx.WriteError(w, apperror.NewValidationError(err.Error(), nil))
		return
	}

	rec, err := h.service.ReplaceRecipe(r.Context(), user.ID, id, &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// handleDeleteRecipe godoc
// @Summary Delete a recipe
// @Tags recipe
// @Security TokenAuth
// @Param id path int true "Recipe id"
// @Success 204 "No Content"
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/recipe/recipes/{id} [delete]
func (h *Handlers) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.urlID(w, r, "recipe_not_found")
	if !ok {
		return
	}

	if err := h.service.DeleteRecipe(r.Context(), user.ID, id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
