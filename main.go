package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/coreybb/recipebox/api"
	"github.com/coreybb/recipebox/auth"
	"github.com/coreybb/recipebox/config"
	"github.com/coreybb/recipebox/datastore"
	rh "github.com/coreybb/recipebox/route-handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration invalid", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	db, err := setupDatabase(cfg)
	if err != nil {
		slog.Error("Database setup failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sessions, err := auth.NewSessionAuthority([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		slog.Error("Session authority setup failed", "error", err)
		os.Exit(1)
	}

	userRepo := datastore.NewUserRepository(db)
	recipeRepo := datastore.NewRecipeRepository(db)

	authHandler := rh.NewAuthHandler(userRepo, sessions)
	recipeHandler := rh.NewRecipeHandler(recipeRepo)

	router := api.SetupRoutes(authHandler, recipeHandler, sessions, api.Options{
		RequestTimeout: cfg.RequestTimeout,
	})

	startServer(cfg, router)
}

func setupDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBPingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close() // Close unusable connection pool
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = datastore.ApplySchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("Database connection successful")
	return db, nil
}

func startServer(cfg *config.Config, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-shutdownSignal // Block until signal received
	slog.Info("Shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	slog.Info("Server gracefully stopped")
}
