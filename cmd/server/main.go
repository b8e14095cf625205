package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rpattn/agenthub/internal/config"
	"github.com/rpattn/agenthub/internal/db"
	"github.com/rpattn/agenthub/internal/httpapi"
	"github.com/rpattn/agenthub/internal/hydrate"
	"github.com/rpattn/agenthub/internal/repository"
	"github.com/rpattn/agenthub/internal/service"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Setup database connection
	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.Database, cfg.Server.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Create repositories
	store := repository.NewStore(conn.Pool)
	requestRepo := repository.NewAgentRequestRepository(store)
	deliveredRepo := repository.NewDeliveredAgentRepository(store)
	agentRepo := repository.NewAgentRepository(store)
	userRepo := repository.NewUserRepository(store)
	companyRepo := repository.NewCompanyRepository(store)
	integrationRepo := repository.NewIntegrationRepository(store)
	notificationRepo := repository.NewNotificationRepository(store)
	queryRepo := repository.NewCustomerQueryRepository(store)

	hydrator := hydrate.New(agentRepo, userRepo, companyRepo, integrationRepo, requestRepo, deliveredRepo)

	services := httpapi.Services{
		Requests:  service.NewRequestService(requestRepo, deliveredRepo, agentRepo, companyRepo, hydrator, logger),
		Delivered: service.NewDeliveredService(deliveredRepo, hydrator, logger),
		Directory: service.NewDirectoryService(agentRepo, companyRepo, integrationRepo, notificationRepo, queryRepo, hydrator),
	}

	handler := httpapi.NewRouter(services, cfg.Server.AllowedOrigins, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.Server.Addr))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
