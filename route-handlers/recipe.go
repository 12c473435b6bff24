package routehandlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coreybb/recipebox/auth"
	"github.com/coreybb/recipebox/models"
	"github.com/coreybb/recipebox/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RecipeHandler serves the recipe CRUD endpoints. Reads are public; update
// and delete go through the ownership gate.
type RecipeHandler struct {
	Repo RecipeStore
}

func NewRecipeHandler(repo RecipeStore) *RecipeHandler {
	return &RecipeHandler{Repo: repo}
}

type createRecipeRequest struct {
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	PrepTime     *int   `json:"prep_time"`
	CookTime     *int   `json:"cook_time"`
	Servings     *int   `json:"servings"`
}

// updateRecipeRequest carries a partial update; absent fields keep their
// stored value.
type updateRecipeRequest struct {
	Title        *string `json:"title"`
	Ingredients  *string `json:"ingredients"`
	Instructions *string `json:"instructions"`
	PrepTime     *int    `json:"prep_time"`
	CookTime     *int    `json:"cook_time"`
	Servings     *int    `json:"servings"`
}

func (req updateRecipeRequest) apply(recipe *models.Recipe) {
	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Ingredients != nil {
		recipe.Ingredients = *req.Ingredients
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.PrepTime != nil {
		recipe.PrepTime = req.PrepTime
	}
	if req.CookTime != nil {
		recipe.CookTime = req.CookTime
	}
	if req.Servings != nil {
		recipe.Servings = req.Servings
	}
}

// recipeError translates store, validation and gate errors into HTTP errors.
func recipeError(err error, recipeID string) error {
	var verr *models.ValidationError
	var httpErr *webutil.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.As(err, &verr):
		return webutil.ErrBadRequestWrap(verr.Error(), err)
	case errors.Is(err, sql.ErrNoRows):
		return webutil.ErrNotFound("Recipe not found")
	case errors.Is(err, auth.ErrForbidden):
		return webutil.ErrForbidden("You do not own this recipe")
	default:
		return fmt.Errorf("recipe %s: %w", recipeID, err)
	}
}

func recipeIDParam(r *http.Request) (string, error) {
	recipeID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(recipeID); err != nil {
		return "", webutil.ErrBadRequest("Invalid recipe ID format")
	}
	return recipeID, nil
}

func (h *RecipeHandler) HandleGetRecipes(w http.ResponseWriter, r *http.Request) error {
	recipes, err := h.Repo.GetRecipes(r.Context())
	if err != nil {
		return fmt.Errorf("failed to retrieve recipes: %w", err)
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, recipes)
	return nil
}

func (h *RecipeHandler) HandleGetRecipe(w http.ResponseWriter, r *http.Request) error {
	recipeID, err := recipeIDParam(r)
	if err != nil {
		return err
	}

	recipe, err := h.Repo.GetRecipeByID(r.Context(), recipeID)
	if err != nil {
		return recipeError(err, recipeID)
	}

	webutil.RespondWithJSON(w, http.StatusOK, recipe)
	return nil
}

// HandleGetUserRecipes lists the recipes owned by the user in the path.
func (h *RecipeHandler) HandleGetUserRecipes(w http.ResponseWriter, r *http.Request) error {
	userID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(userID); err != nil {
		return webutil.ErrBadRequest("Invalid user ID format")
	}
	return h.respondWithUserRecipes(w, r, userID)
}

// HandleGetOwnRecipes lists the recipes owned by the authenticated caller.
func (h *RecipeHandler) HandleGetOwnRecipes(w http.ResponseWriter, r *http.Request) error {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}
	return h.respondWithUserRecipes(w, r, id.UserID)
}

func (h *RecipeHandler) respondWithUserRecipes(w http.ResponseWriter, r *http.Request, userID string) error {
	recipes, err := h.Repo.GetRecipesByUserID(r.Context(), userID)
	if err != nil {
		return fmt.Errorf("failed to retrieve recipes for user %s: %w", userID, err)
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, recipes)
	return nil
}

// HandleCreateRecipe stores a new recipe. It is owned by the caller when a
// valid bearer token was presented and anonymous otherwise.
func (h *RecipeHandler) HandleCreateRecipe(w http.ResponseWriter, r *http.Request) error {
	var req createRecipeRequest
	if err := webutil.DecodeJSON(r, &req); err != nil {
		return err
	}

	recipe := models.Recipe{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
	}
	if id, ok := auth.IdentityFromContext(r.Context()); ok {
		owner := id.UserID
		recipe.UserID = &owner
	}

	if err := recipe.Validate(); err != nil {
		return recipeError(err, recipe.ID)
	}

	if err := h.Repo.CreateRecipe(r.Context(), &recipe); err != nil {
		return webutil.ErrInternalServerWrap("failed to create recipe", err)
	}

	webutil.RespondWithJSON(w, http.StatusCreated, recipe)
	return nil
}

func (h *RecipeHandler) HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) error {
	actor, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}
	recipeID, err := recipeIDParam(r)
	if err != nil {
		return err
	}

	// A bad body is only reported once the caller is known to own the
	// recipe; everyone else gets 404 or 403 as for a well-formed update.
	var req updateRecipeRequest
	decodeErr := webutil.DecodeJSON(r, &req)

	updated, err := h.Repo.UpdateRecipe(r.Context(), recipeID, func(recipe *models.Recipe) error {
		if err := auth.Authorize(actor, recipe.UserID); err != nil {
			return err
		}
		if decodeErr != nil {
			return decodeErr
		}
		req.apply(recipe)
		return nil
	})
	if err != nil {
		return recipeError(err, recipeID)
	}

	webutil.RespondWithJSON(w, http.StatusOK, updated)
	return nil
}

func (h *RecipeHandler) HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) error {
	actor, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}
	recipeID, err := recipeIDParam(r)
	if err != nil {
		return err
	}

	err = h.Repo.DeleteRecipe(r.Context(), recipeID, func(recipe *models.Recipe) error {
		return auth.Authorize(actor, recipe.UserID)
	})
	if err != nil {
		return recipeError(err, recipeID)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
