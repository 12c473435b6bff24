package routehandlers

import (
	"context"

	"github.com/coreybb/recipebox/models"
)

// UserStore is the credential store used by AuthHandler.
// *datastore.UserRepository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// RecipeStore is the recipe persistence used by RecipeHandler.
// *datastore.RecipeRepository satisfies it.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipeByID(ctx context.Context, recipeID string) (*models.Recipe, error)
	GetRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipesByUserID(ctx context.Context, userID string) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, recipeID string, mutate func(*models.Recipe) error) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID string, check func(*models.Recipe) error) error
}
