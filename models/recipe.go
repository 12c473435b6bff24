package models

import (
	"strings"
	"time"
)

// Recipe is a user-submitted recipe. UserID is nil for anonymous recipes.
type Recipe struct {
	ID           string    `json:"id"`
	UserID       *string   `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	Title        string    `json:"title"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	PrepTime     *int      `json:"prep_time,omitempty"` // minutes
	CookTime     *int      `json:"cook_time,omitempty"` // minutes
	Servings     *int      `json:"servings,omitempty"`
}

// ValidationError names the field that violates a data model rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// Validate checks the rules every stored recipe must satisfy.
func (r *Recipe) Validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return &ValidationError{Field: "title", Reason: "is required"}
	case strings.TrimSpace(r.Ingredients) == "":
		return &ValidationError{Field: "ingredients", Reason: "is required"}
	case strings.TrimSpace(r.Instructions) == "":
		return &ValidationError{Field: "instructions", Reason: "is required"}
	case r.PrepTime != nil && *r.PrepTime < 0:
		return &ValidationError{Field: "prep_time", Reason: "must not be negative"}
	case r.CookTime != nil && *r.CookTime < 0:
		return &ValidationError{Field: "cook_time", Reason: "must not be negative"}
	case r.Servings != nil && *r.Servings < 1:
		return &ValidationError{Field: "servings", Reason: "must be positive"}
	}
	return nil
}
