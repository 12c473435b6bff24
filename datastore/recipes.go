package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coreybb/recipebox/models"
	"github.com/google/uuid"
)

const recipeColumns = `id, user_id, created_at, title, ingredients, instructions, prep_time, cook_time, servings`

// RecipeRepository handles database operations for recipes.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var recipe models.Recipe
	err := row.Scan(
		&recipe.ID, &recipe.UserID, &recipe.CreatedAt, &recipe.Title, &recipe.Ingredients,
		&recipe.Instructions, &recipe.PrepTime, &recipe.CookTime, &recipe.Servings,
	)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe inserts a new recipe. The caller provides the ID and CreatedAt.
func (r *RecipeRepository) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if _, err := uuid.Parse(recipe.ID); err != nil {
		return fmt.Errorf("invalid recipe ID format: %w", err)
	}
	if err := recipe.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO recipes (` + recipeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		recipe.ID, recipe.UserID, recipe.CreatedAt, recipe.Title, recipe.Ingredients,
		recipe.Instructions, recipe.PrepTime, recipe.CookTime, recipe.Servings,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

// GetRecipeByID retrieves a recipe by its ID.
func (r *RecipeRepository) GetRecipeByID(ctx context.Context, recipeID string) (*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`
	return getRecipe(ctx, r.db, query, recipeID)
}

func getRecipe(ctx context.Context, q queryer, query, recipeID string) (*models.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, fmt.Errorf("recipe not found: %w", sql.ErrNoRows)
	}
	recipe, err := scanRecipe(q.QueryRowContext(ctx, query, recipeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("recipe not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}
	return recipe, nil
}

// GetRecipes retrieves all recipes, newest first.
func (r *RecipeRepository) GetRecipes(ctx context.Context) ([]models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes ORDER BY created_at DESC`
	return r.listRecipes(ctx, query)
}

// GetRecipesByUserID retrieves the recipes owned by a user, newest first.
func (r *RecipeRepository) GetRecipesByUserID(ctx context.Context, userID string) ([]models.Recipe, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE user_id = $1 ORDER BY created_at DESC`
	return r.listRecipes(ctx, query, userID)
}

func (r *RecipeRepository) listRecipes(ctx context.Context, query string, args ...any) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipe rows: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe locks the recipe row, passes it to mutate and writes the
// result back in the same transaction. An error from mutate aborts the
// update and is returned unchanged.
func (r *RecipeRepository) UpdateRecipe(ctx context.Context, recipeID string, mutate func(*models.Recipe) error) (*models.Recipe, error) {
	var updated *models.Recipe
	err := withTx(ctx, r.db, func(tx queryer) error {
		recipe, err := getRecipe(ctx, tx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1 FOR UPDATE`, recipeID)
		if err != nil {
			return err
		}
		if err := mutate(recipe); err != nil {
			return err
		}
		if err := recipe.Validate(); err != nil {
			return err
		}

		query := `
			UPDATE recipes
			SET title = $2, ingredients = $3, instructions = $4,
			    prep_time = $5, cook_time = $6, servings = $7
			WHERE id = $1
		`
		if _, err := tx.ExecContext(ctx, query,
			recipe.ID, recipe.Title, recipe.Ingredients, recipe.Instructions,
			recipe.PrepTime, recipe.CookTime, recipe.Servings,
		); err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		updated = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRecipe locks the recipe row, lets check veto the deletion and then
// removes it in the same transaction.
func (r *RecipeRepository) DeleteRecipe(ctx context.Context, recipeID string, check func(*models.Recipe) error) error {
	return withTx(ctx, r.db, func(tx queryer) error {
		recipe, err := getRecipe(ctx, tx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1 FOR UPDATE`, recipeID)
		if err != nil {
			return err
		}
		if err := check(recipe); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}
