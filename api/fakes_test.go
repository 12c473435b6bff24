package api

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/coreybb/recipebox/datastore"
	"github.com/coreybb/recipebox/models"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]models.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user %q: %w", user.Username, datastore.ErrDuplicate)
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", sql.ErrNoRows)
	}
	u.PasswordHash = ""
	return &u, nil
}

func (m *memUsers) find(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", sql.ErrNoRows)
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Username == username })
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

type memRecipes struct {
	mu      sync.Mutex
	recipes map[string]models.Recipe
}

func newMemRecipes() *memRecipes {
	return &memRecipes{recipes: map[string]models.Recipe{}}
}

func (m *memRecipes) CreateRecipe(_ context.Context, recipe *models.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes[recipe.ID] = *recipe
	return nil
}

func (m *memRecipes) GetRecipeByID(_ context.Context, recipeID string) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[recipeID]
	if !ok {
		return nil, fmt.Errorf("recipe not found: %w", sql.ErrNoRows)
	}
	return &r, nil
}

func (m *memRecipes) list(keep func(models.Recipe) bool) []models.Recipe {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Recipe{}
	for _, r := range m.recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memRecipes) GetRecipes(context.Context) ([]models.Recipe, error) {
	return m.list(func(models.Recipe) bool { return true }), nil
}

func (m *memRecipes) GetRecipesByUserID(_ context.Context, userID string) ([]models.Recipe, error) {
	return m.list(func(r models.Recipe) bool { return r.UserID != nil && *r.UserID == userID }), nil
}

func (m *memRecipes) UpdateRecipe(_ context.Context, recipeID string, mutate func(*models.Recipe) error) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[recipeID]
	if !ok {
		return nil, fmt.Errorf("recipe not found: %w", sql.ErrNoRows)
	}
	if err := mutate(&r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	m.recipes[recipeID] = r
	return &r, nil
}

func (m *memRecipes) DeleteRecipe(_ context.Context, recipeID string, check func(*models.Recipe) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[recipeID]
	if !ok {
		return fmt.Errorf("recipe not found: %w", sql.ErrNoRows)
	}
	if err := check(&r); err != nil {
		return err
	}
	delete(m.recipes, recipeID)
	return nil
}
