package recipes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/recipebox-go/apperror"
	"github.com/user/recipebox-go/i18n"
	"github.com/user/recipebox-go/users"
)

// stubCatalogService scripts the catalog behavior per test. Unset methods
// panic so an unexpected call fails loudly.
type stubCatalogService struct {
	listTagsFn     func(ctx context.Context, ownerID int) ([]Tag, error)
	createTagFn    func(ctx context.Context, ownerID int, name string) (*Tag, error)
	deleteTagFn    func(ctx context.Context, ownerID, tagID int) error
	getRecipeFn    func(ctx context.Context, ownerID, recipeID int) (*RecipeDetail, error)
	createRecipeFn func(ctx context.Context, ownerID int, req *CreateRecipeRequest) (*Recipe, error)
	updateRecipeFn func(ctx context.Context, ownerID, recipeID int, req *UpdateRecipeRequest) (*Recipe, error)
	replaceFn      func(ctx context.Context, ownerID, recipeID int, req *CreateRecipeRequest) (*Recipe, error)
	deleteRecipeFn func(ctx context.Context, ownerID, recipeID int) error
}

func (s *stubCatalogService) ListTags(ctx context.Context, ownerID int) ([]Tag, error) {
	return s.listTagsFn(ctx, ownerID)
}

func (s *stubCatalogService) CreateTag(ctx context.Context, ownerID int, name string) (*Tag, error) {
	return s.createTagFn(ctx, ownerID, name)
}

func (s *stubCatalogService) DeleteTag(ctx context.Context, ownerID, tagID int) error {
	return s.deleteTagFn(ctx, ownerID, tagID)
}

func (s *stubCatalogService) ListIngredients(context.Context, int) ([]Ingredient, error) {
	panic("not scripted")
}

func (s *stubCatalogService) CreateIngredient(context.Context, int, string) (*Ingredient, error) {
	panic("not scripted")
}

func (s *stubCatalogService) DeleteIngredient(context.Context, int, int) error {
	panic("not scripted")
}

func (s *stubCatalogService) ListRecipes(context.Context, int) ([]Recipe, error) {
	panic("not scripted")
}

func (s *stubCatalogService) GetRecipe(ctx context.Context, ownerID, recipeID int) (*RecipeDetail, error) {
	return s.getRecipeFn(ctx, ownerID, recipeID)
}

func (s *stubCatalogService) CreateRecipe(ctx context.Context, ownerID int, req *CreateRecipeRequest) (*Recipe, error) {
	return s.createRecipeFn(ctx, ownerID, req)
}

func (s *stubCatalogService) UpdateRecipe(ctx context.Context, ownerID, recipeID int, req *UpdateRecipeRequest) (*Recipe, error) {
	return s.updateRecipeFn(ctx, ownerID, recipeID, req)
}

func (s *stubCatalogService) ReplaceRecipe(ctx context.Context, ownerID, recipeID int, req *CreateRecipeRequest) (*Recipe, error) {
	return s.replaceFn(ctx, ownerID, recipeID, req)
}

func (s *stubCatalogService) DeleteRecipe(ctx context.Context, ownerID, recipeID int) error {
	return s.deleteRecipeFn(ctx, ownerID, recipeID)
}

// newTestRouter mounts the handlers behind a middleware that injects owner,
// standing in for the token middleware.
func newTestRouter(service Service, owner *users.User) http.Handler {
	h := NewHandlers(service, i18n.NewStaticCatalog("en-gb", nil))
	r := chi.NewRouter()
	if owner != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(users.NewContextWithUser(req.Context(), owner)))
			})
		})
	}
	h.RegisterRoutes(r)
	return r
}

var owner = &users.User{ID: 42, Email: "owner@example.com", IsActive: true}

func TestListTagsScopedToCaller(t *testing.T) {
	t.Parallel()

	service := &stubCatalogService{
		listTagsFn: func(_ context.Context, ownerID int) ([]Tag, error) {
			require.Equal(t, owner.ID, ownerID)
			return []Tag{{ID: 2, Name: "Vegan"}, {ID: 1, Name: "Dessert"}}, nil
		},
	}
	router := newTestRouter(service, owner)

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var tags []Tag
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
}

func TestListTagsWithoutUserIs401(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTag(t *testing.T) {
	t.Parallel()

	t.Run("valid name returns 201", func(t *testing.T) {
		t.Parallel()

		service := &stubCatalogService{
			createTagFn: func(_ context.Context, ownerID int, name string) (*Tag, error) {
				return &Tag{ID: 9, Name: name, UserID: ownerID}, nil
			},
		}
		router := newTestRouter(service, owner)

		req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{"name":"Vegan"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var tag Tag
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&tag))
		assert.Equal(t, 9, tag.ID)
		assert.Equal(t, "Vegan", tag.Name)
	})

	t.Run("missing name is a 400", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&stubCatalogService{}, owner)

		req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body apperror.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "tag_name_required", body.Error)
	})
}

func TestDeleteTag(t *testing.T) {
	t.Parallel()

	t.Run("existing tag returns 204", func(t *testing.T) {
		t.Parallel()

		var deleted int
		service := &stubCatalogService{
			deleteTagFn: func(_ context.Context, ownerID, tagID int) error {
				deleted = tagID
				return nil
			},
		}
		router := newTestRouter(service, owner)

		req := httptest.NewRequest(http.MethodDelete, "/tags/7", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 7, deleted)
	})

	t.Run("non-numeric id is a 404 without touching the service", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&stubCatalogService{}, owner)

		req := httptest.NewRequest(http.MethodDelete, "/tags/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("foreign tag surfaces the service's 404", func(t *testing.T) {
		t.Parallel()

		service := &stubCatalogService{
			deleteTagFn: func(_ context.Context, ownerID, tagID int) error {
				return apperror.NewNotFoundError("tag_not_found", nil)
			},
		}
		router := newTestRouter(service, owner)

		req := httptest.NewRequest(http.MethodDelete, "/tags/7", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetRecipeDetailNestsAssociations(t *testing.T) {
	t.Parallel()

	service := &stubCatalogService{
		getRecipeFn: func(_ context.Context, ownerID, recipeID int) (*RecipeDetail, error) {
			require.Equal(t, owner.ID, ownerID)
			require.Equal(t, 3, recipeID)
			return &RecipeDetail{
				ID:          3,
				Title:       "Jollof rice",
				TimeMinutes: 45,
				Price:       "500.00",
				Currency:    "NGN",
				Tags:        []Tag{{ID: 1, Name: "Dinner"}},
				Ingredients: []Ingredient{{ID: 2, Name: "Rice"}},
			}, nil
		},
	}
	router := newTestRouter(service, owner)

	req := httptest.NewRequest(http.MethodGet, "/recipes/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	tags, ok := body["tags"].([]any)
	require.True(t, ok)
	require.Len(t, tags, 1)
	tag := tags[0].(map[string]any)
	assert.Equal(t, "Dinner", tag["name"])

	ingredients, ok := body["ingredients"].([]any)
	require.True(t, ok)
	require.Len(t, ingredients, 1)
}

func TestCreateRecipeValidation(t *testing.T) {
	t.Parallel()

	t.Run("zero time_minutes is a 400", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&stubCatalogService{}, owner)

		body := `{"title":"Stew","time_minutes":0,"price":"5.00","currency":"EUR"}`
		req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("valid payload returns 201 with id arrays", func(t *testing.T) {
		t.Parallel()

		service := &stubCatalogService{
			createRecipeFn: func(_ context.Context, ownerID int, req *CreateRecipeRequest) (*Recipe, error) {
				return &Recipe{
					ID: 11, UserID: ownerID, Title: req.Title, TimeMinutes: req.TimeMinutes,
					Price: req.Price, Currency: req.Currency,
					TagIDs: req.Tags, IngredientIDs: []int{},
				}, nil
			},
		}
		router := newTestRouter(service, owner)

		body := `{"title":"Stew","time_minutes":30,"price":"5.00","currency":"EUR","tags":[1,2]}`
		req := httptest.NewRequest(http.MethodPost, "/recipes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var recipe Recipe
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&recipe))
		assert.Equal(t, 11, recipe.ID)
		assert.Equal(t, []int{1, 2}, recipe.TagIDs)
	})
}

func TestPatchRecipeFieldPresence(t *testing.T) {
	t.Parallel()

	t.Run("omitted association list stays untouched", func(t *testing.T) {
		t.Parallel()

		var got *UpdateRecipeRequest
		service := &stubCatalogService{
			updateRecipeFn: func(_ context.Context, ownerID, recipeID int, req *UpdateRecipeRequest) (*Recipe, error) {
				got = req
				return &Recipe{ID: recipeID, Title: *req.Title, TagIDs: []int{5}, IngredientIDs: []int{}}, nil
			},
		}
		router := newTestRouter(service, owner)

		req := httptest.NewRequest(http.MethodPatch, "/recipes/3", strings.NewReader(`{"title":"Renamed"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.Title)
		assert.Nil(t, got.Tags)
		assert.Nil(t, got.Ingredients)
		assert.Nil(t, got.Price)
	})

	t.Run("explicit empty list is passed through to clear the set", func(t *testing.T) {
		t.Parallel()

		var got *UpdateRecipeRequest
		service := &stubCatalogService{
			updateRecipeFn: func(_ context.Context, ownerID, recipeID int, req *UpdateRecipeRequest) (*Recipe, error) {
				got = req
				return &Recipe{ID: recipeID, TagIDs: []int{}, IngredientIDs: []int{}}, nil
			},
		}
		router := newTestRouter(service, owner)

		req := httptest.NewRequest(http.MethodPatch, "/recipes/3", strings.NewReader(`{"tags":[]}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.Tags)
		assert.Empty(t, *got.Tags)
		assert.Nil(t, got.Ingredients)
	})
}

func TestPutRecipeReplacesWholesale(t *testing.T) {
	t.Parallel()

	var got *CreateRecipeRequest
	service := &stubCatalogService{
		replaceFn: func(_ context.Context, ownerID, recipeID int, req *CreateRecipeRequest) (*Recipe, error) {
			got = req
			return &Recipe{
				ID: recipeID, Title: req.Title, TimeMinutes: req.TimeMinutes,
				Price: req.Price, Currency: req.Currency,
				TagIDs: []int{}, IngredientIDs: []int{},
			}, nil
		},
	}
	router := newTestRouter(service, owner)

	// No tags or ingredients in the body: the replacement clears both sets.
	body := `{"title":"Stew","time_minutes":30,"price":"5.00","currency":"EUR"}`
	req := httptest.NewRequest(http.MethodPut, "/recipes/3", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got.Tags)
	assert.Nil(t, got.Ingredients)

	var recipe Recipe
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&recipe))
	assert.Empty(t, recipe.TagIDs)
	assert.Empty(t, recipe.IngredientIDs)
}

func TestDeleteRecipe(t *testing.T) {
	t.Parallel()

	var deleted int
	service := &stubCatalogService{
		deleteRecipeFn: func(_ context.Context, ownerID, recipeID int) error {
			deleted = recipeID
			return nil
		},
	}
	router := newTestRouter(service, owner)

	req := httptest.NewRequest(http.MethodDelete, "/recipes/12", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 12, deleted)
}
