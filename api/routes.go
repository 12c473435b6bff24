package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coreybb/recipebox/auth"
	rh "github.com/coreybb/recipebox/route-handlers"
	"github.com/coreybb/recipebox/webutil"
)

const (
	authBasePath    = "/auth"
	apiBasePath     = "/api"
	recipesBasePath = "/recipes"
	usersBasePath   = "/users"
	currentUserPath = "/user"
)

const (
	registerSubPath = "/register"
	loginSubPath    = "/login"
	recipesSubPath  = "/recipes"
)

const (
	paramID = "id" // General parameter name for resource IDs
)

// Options tunes the router.
type Options struct {
	RequestTimeout time.Duration
}

func SetupRoutes(
	authHandler *rh.AuthHandler,
	recipeHandler *rh.RecipeHandler,
	sessions *auth.SessionAuthority,
	opts Options,
) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)
	r.Use(middleware.Timeout(opts.RequestTimeout))

	requireAuth := RequireAuth(sessions)
	optionalAuth := OptionalAuth(sessions)

	r.Group(func(r chi.Router) {
		r.Use(SetHeader(webutil.HeaderContentTypeOptions, "nosniff"))

		configureAuthRoutes(r, authHandler)
		r.Route(apiBasePath, func(r chi.Router) {
			configureCurrentUserRoutes(r, authHandler, recipeHandler, requireAuth)
			configureRecipeRoutes(r, recipeHandler, requireAuth, optionalAuth)
			configureUserRecipeRoutes(r, recipeHandler)
		})
	})

	r.Get("/healthz", handleHealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Helper for constructing paths with a parameter
func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

// --- Auth Routes ---
func configureAuthRoutes(r chi.Router, handler *rh.AuthHandler) {
	r.Route(authBasePath, func(r chi.Router) {
		r.Post(registerSubPath, webutil.MakeHandler(handler.HandleRegister)) // POST /auth/register
		r.Post(loginSubPath, webutil.MakeHandler(handler.HandleLogin))       // POST /auth/login
	})
}

// --- Current User Routes ---
func configureCurrentUserRoutes(r chi.Router, authHandler *rh.AuthHandler, recipeHandler *rh.RecipeHandler, requireAuth func(http.Handler) http.Handler) {
	r.Route(currentUserPath, func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", webutil.MakeHandler(authHandler.HandleCurrentUser))                // GET /api/user
		r.Get(recipesSubPath, webutil.MakeHandler(recipeHandler.HandleGetOwnRecipes)) // GET /api/user/recipes
	})
}

// --- Recipe Routes ---
func configureRecipeRoutes(r chi.Router, handler *rh.RecipeHandler, requireAuth, optionalAuth func(http.Handler) http.Handler) {
	specificRecipePath := pathWithParam("", paramID) // e.g., "/{id}"

	r.Route(recipesBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(handler.HandleGetRecipes))
		r.With(optionalAuth).Post("/", webutil.MakeHandler(handler.HandleCreateRecipe))
		r.Route(specificRecipePath, func(r chi.Router) {
			r.Get("/", webutil.MakeHandler(handler.HandleGetRecipe))
			r.With(requireAuth).Put("/", webutil.MakeHandler(handler.HandleUpdateRecipe))
			r.With(requireAuth).Delete("/", webutil.MakeHandler(handler.HandleDeleteRecipe))
		})
	})
}

// --- User Recipe Routes ---
func configureUserRecipeRoutes(r chi.Router, handler *rh.RecipeHandler) {
	// GET /api/users/{id}/recipes
	r.Get(usersBasePath+pathWithParam("", paramID)+recipesSubPath, webutil.MakeHandler(handler.HandleGetUserRecipes))
}

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
