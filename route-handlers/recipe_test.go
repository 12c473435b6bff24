package routehandlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/recipebox/auth"
	"github.com/coreybb/recipebox/models"
	"github.com/coreybb/recipebox/webutil"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestUpdateRecipeRequest_Apply(t *testing.T) {
	owner := "owner-id"
	recipe := models.Recipe{
		ID:           "recipe-id",
		UserID:       &owner,
		Title:        "Bread",
		Ingredients:  "flour",
		Instructions: "bake",
		Servings:     intPtr(2),
	}

	updateRecipeRequest{
		Title:    strPtr("Sourdough"),
		CookTime: intPtr(40),
	}.apply(&recipe)

	assert.Equal(t, "Sourdough", recipe.Title)
	assert.Equal(t, "flour", recipe.Ingredients)
	assert.Equal(t, "bake", recipe.Instructions)
	assert.Nil(t, recipe.PrepTime)
	assert.Equal(t, 40, *recipe.CookTime)
	assert.Equal(t, 2, *recipe.Servings)
	assert.Equal(t, &owner, recipe.UserID)
}

func TestRecipeError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: &models.ValidationError{Field: "title", Reason: "is required"}, status: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("recipe not found: %w", sql.ErrNoRows), status: http.StatusNotFound},
		{name: "forbidden", err: auth.ErrForbidden, status: http.StatusForbidden},
		{name: "payload error", err: fmt.Errorf("update: %w", webutil.ErrBadRequest("Invalid request payload")), status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *webutil.HTTPError
			require.True(t, errors.As(recipeError(tt.err, "r1"), &httpErr))
			assert.Equal(t, tt.status, httpErr.Code)
		})
	}

	t.Run("unexpected", func(t *testing.T) {
		boom := errors.New("connection reset")
		err := recipeError(boom, "r1")
		var httpErr *webutil.HTTPError
		assert.False(t, errors.As(err, &httpErr))
		assert.ErrorIs(t, err, boom)
	})
}
