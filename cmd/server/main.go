package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"equipment-tracker/internal/api"
	"equipment-tracker/internal/config"
	"equipment-tracker/internal/db"
	"equipment-tracker/internal/db/queries"
	applog "equipment-tracker/internal/logger"
	"equipment-tracker/internal/models"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := applog.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	database, err := db.NewDatabase(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	ctx := context.Background()

	if err := db.Migrate(ctx, database, logger); err != nil {
		logger.Fatal("failed to initialize schema", zap.Error(err))
	}

	seed := models.User{
		Username: cfg.Seed.Username,
		Password: cfg.Seed.Password,
		FullName: cfg.Seed.FullName,
		Email:    cfg.Seed.Email,
	}
	if err := queries.NewUserQueries(database).SeedDefaultTechnician(ctx, seed); err != nil {
		logger.Fatal("failed to seed default technician", zap.Error(err))
	}

	if cfg.Admin.PasswordHash == "" {
		logger.Warn("superuser login is disabled: admin.password_hash is empty")
	}

	router, err := api.SetupRouter(cfg, database, logger)
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server is starting", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited properly")
}
