package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestRecipeValidate(t *testing.T) {
	valid := func() Recipe {
		return Recipe{Title: "Pancakes", Ingredients: "flour, milk, eggs", Instructions: "Mix and fry."}
	}

	tests := []struct {
		name      string
		mutate    func(*Recipe)
		wantField string
	}{
		{name: "valid minimal", mutate: func(*Recipe) {}},
		{name: "valid with optionals", mutate: func(r *Recipe) {
			r.PrepTime, r.CookTime, r.Servings = intPtr(0), intPtr(15), intPtr(4)
		}},
		{name: "blank title", mutate: func(r *Recipe) { r.Title = "   " }, wantField: "title"},
		{name: "missing ingredients", mutate: func(r *Recipe) { r.Ingredients = "" }, wantField: "ingredients"},
		{name: "missing instructions", mutate: func(r *Recipe) { r.Instructions = "" }, wantField: "instructions"},
		{name: "negative prep", mutate: func(r *Recipe) { r.PrepTime = intPtr(-1) }, wantField: "prep_time"},
		{name: "negative cook", mutate: func(r *Recipe) { r.CookTime = intPtr(-5) }, wantField: "cook_time"},
		{name: "zero servings", mutate: func(r *Recipe) { r.Servings = intPtr(0) }, wantField: "servings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}
