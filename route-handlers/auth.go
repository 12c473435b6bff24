package routehandlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/coreybb/recipebox/auth"
	"github.com/coreybb/recipebox/datastore"
	"github.com/coreybb/recipebox/models"
	"github.com/coreybb/recipebox/webutil"
	"github.com/google/uuid"
)

const (
	// msgInvalidCredentials is the only failure message login ever returns, so
	// an unknown login and a wrong password cannot be told apart.
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidToken       = "Invalid or expired token"
)

// AuthHandler serves registration, login and the current-user endpoint.
type AuthHandler struct {
	Users    UserStore
	Sessions *auth.SessionAuthority
}

func NewAuthHandler(users UserStore, sessions *auth.SessionAuthority) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions}
}

type registerRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// displayUsername returns the explicit username, or the first and last name
// joined by a space when no username was sent.
func (req registerRequest) displayUsername() string {
	if u := strings.TrimSpace(req.Username); u != "" {
		return u
	}
	return strings.TrimSpace(strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName))
}

func (req registerRequest) validate() error {
	username := req.displayUsername()
	email := strings.TrimSpace(req.Email)

	switch {
	case username == "":
		return webutil.ErrBadRequest("Username (or firstName and lastName) is required")
	case utf8.RuneCountInString(username) > models.MaxUsernameLength:
		return webutil.ErrBadRequest(fmt.Sprintf("Username must be at most %d characters", models.MaxUsernameLength))
	case email == "":
		return webutil.ErrBadRequest("Email is required")
	case utf8.RuneCountInString(email) > models.MaxEmailLength:
		return webutil.ErrBadRequest(fmt.Sprintf("Email must be at most %d characters", models.MaxEmailLength))
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return webutil.ErrBadRequestWrap(passwordMessage(err), err)
	}
	return nil
}

func passwordMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrEmptyPassword):
		return "Password is required"
	case errors.Is(err, auth.ErrPasswordTooShort):
		return fmt.Sprintf("Password must be at least %d characters", auth.MinPasswordLength)
	default:
		return "Password is too long"
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserResponse wraps the user returned by the current-user endpoint.
type UserResponse struct {
	User *models.User `json:"user"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := webutil.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return webutil.ErrInternalServerWrap("failed to hash password", err)
	}

	newUser := models.User{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Username:     req.displayUsername(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
	}

	if err := h.Users.CreateUser(r.Context(), &newUser); err != nil {
		if errors.Is(err, datastore.ErrDuplicate) {
			return webutil.ErrBadRequestWrap("Username or email already exists", err)
		}
		return webutil.ErrInternalServerWrap("failed to create user", err)
	}

	token, err := h.Sessions.Issue(newUser.ID, newUser.Username)
	if err != nil {
		return webutil.ErrInternalServerWrap("failed to issue token", err)
	}

	slog.Info("User registered", "user_id", newUser.ID)
	webutil.RespondWithJSON(w, http.StatusCreated, AuthResponse{User: &newUser, Token: token})
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// normalizeEmail trims and lower-cases an email so that case variants map to
// the same account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// lookup finds the account by the field the client sent. A username is
// matched only against usernames and an email only against emails.
func (req loginRequest) lookup(ctx context.Context, users UserStore) (*models.User, error) {
	if username := strings.TrimSpace(req.Username); username != "" {
		return users.GetUserByUsername(ctx, username)
	}
	return users.GetUserByEmail(ctx, normalizeEmail(req.Email))
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := webutil.DecodeJSON(r, &req); err != nil {
		return err
	}

	if (strings.TrimSpace(req.Username) == "" && strings.TrimSpace(req.Email) == "") || req.Password == "" {
		return webutil.ErrBadRequest("Username or email and password are required")
	}

	user, err := req.lookup(r.Context(), h.Users)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			auth.CompareMissing(req.Password)
			return webutil.ErrUnauthorized(msgInvalidCredentials)
		}
		return webutil.ErrInternalServerWrap("failed to look up user", err)
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return webutil.ErrUnauthorized(msgInvalidCredentials)
	}

	token, err := h.Sessions.Issue(user.ID, user.Username)
	if err != nil {
		return webutil.ErrInternalServerWrap("failed to issue token", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
	return nil
}

// HandleCurrentUser returns the user behind the bearer token. It must be
// mounted behind the authentication middleware.
func (h *AuthHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) error {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	user, err := h.Users.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webutil.ErrUnauthorizedWrap(msgInvalidToken, err)
		}
		return webutil.ErrInternalServerWrap("failed to load current user", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, UserResponse{User: user})
	return nil
}
