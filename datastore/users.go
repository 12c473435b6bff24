package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coreybb/recipebox/models"
	"github.com/google/uuid"
)

// UserRepository is the credential store: it persists user identity records
// and their password hashes.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts user. A username or email that is already taken yields
// ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := uuid.Parse(user.ID); err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}
	if user.PasswordHash == "" {
		return errors.New("refusing to store user without password hash")
	}

	query := `
		INSERT INTO users (id, created_at, username, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.CreatedAt, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %q: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID. The password hash is not loaded.
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("user not found: %w", sql.ErrNoRows)
	}

	query := `
		SELECT id, created_at, username, email
		FROM users
		WHERE id = $1
	`
	var user models.User
	row := r.db.QueryRowContext(ctx, query, userID)
	err := row.Scan(&user.ID, &user.CreatedAt, &user.Username, &user.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user, including the password hash, by exact
// username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUserWithHash(ctx, `
		SELECT id, created_at, username, email, password_hash
		FROM users
		WHERE username = $1
	`, username)
}

// GetUserByEmail retrieves a user, including the password hash, by email.
// Emails are stored lower-cased, so email must already be normalised.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUserWithHash(ctx, `
		SELECT id, created_at, username, email, password_hash
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) getUserWithHash(ctx context.Context, query, value string) (*models.User, error) {
	var user models.User
	row := r.db.QueryRowContext(ctx, query, value)
	err := row.Scan(&user.ID, &user.CreatedAt, &user.Username, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
