// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PageForgeHQ/pageforge-go/internal/application/container"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/caching/cleanup"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/caching/manager"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/logging"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/observability/performance"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/persistence/database"
	"github.com/PageForgeHQ/pageforge-go/internal/infrastructure/security"
	"github.com/PageForgeHQ/pageforge-go/internal/presentation/http/server"
	"github.com/PageForgeHQ/pageforge-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `

  ▄▄▄▄▄  ▄▄▄  ▄▄▄▄  ▄▄▄▄▄ ▄▄▄▄▄ ▄▄▄▄  ▄▄▄▄   ▄▄▄▄ ▄▄▄▄▄
  ██  ██ ██ █ ██ ▄▄ ██▄▄  ██▄▄  ██ ██ ██ ▄▄ ██    ██▄▄
  ██▀▀▀  ██▀█ ██ ██ ██    ██    ██ ██ ██ ██ ██ ▄▄ ██
  ██     ▀▄▄▀ ▀▄▄▄▀ ▀▄▄▄▄ ██    ▀▄▄▄▀ ▀▄▄▄▀ ▀▄▄▄▀ ▀▄▄▄▄
` + "\033[0m")

	// Step 1: Initialize channeled logging
	log.Println("Initializing logging...")
	logger, err := logging.NewChanneledLogger(nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()

	logger.LogStartupPhase("logging", time.Since(start), true)

	// Ensure a session signing secret. An ephemeral key means sessions do
	// not survive restarts, so warn when falling back.
	if config.JWTSecret == "" {
		secret, err := security.GenerateSecureKey(64)
		if err != nil {
			return fmt.Errorf("failed to generate session signing key: %w", err)
		}
		config.JWTSecret = secret
		logger.Startup().Warn("JWT_SECRET not set, generated an ephemeral signing key")
	}

	// Step 2: Connect to the database
	stepStart := time.Now()
	logger.Startup().Info("Connecting to database...")
	driver, dsn := database.ConnectionString()
	db, err := database.NewConnectionWithLogger(driver, dsn, logger)
	if err != nil {
		logger.LogStartupPhase("database", time.Since(stepStart), false)
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	logger.LogStartupPhase("database", time.Since(stepStart), true)

	// Step 3: Ensure schema and seed content
	stepStart = time.Now()
	logger.Startup().Info("Ensuring database schema...")
	tableCreator := database.NewTableCreator()
	if err := tableCreator.CreateSchema(db.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := tableCreator.SeedInitialContent(db.DB); err != nil {
		return fmt.Errorf("failed to seed initial content: %w", err)
	}
	logger.LogStartupPhase("schema", time.Since(stepStart), true)

	// Step 4: Initialize cache system
	logger.Startup().Info("Initializing content cache...", "ttl", config.ContentCacheTTL.String())
	cacheManager := manager.NewManager(logger)

	// Step 5: Initialize performance tracking
	perfTracker := performance.NewTracker(nil)

	// Step 6: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(db, cacheManager, logger, perfTracker)

	// Step 7: Start the editor broadcaster
	go appContainer.Broadcaster.Run()
	logger.Startup().Info("Editor save broadcaster started")

	// Step 8: Start background cleanup worker
	cleanupConfig := cleanup.NewConfig()
	cleanupWorker := cleanup.NewWorker(cacheManager, cleanupConfig)
	go cleanupWorker.Start(ctx)
	logger.Startup().Info("Background cleanup worker started",
		"interval", cleanupConfig.CleanupInterval.String())

	// Step 9: Start HTTP server
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Cancel background tasks
	cancelBackgroundTasks()

	// Stop server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
