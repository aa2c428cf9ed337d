/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env + environment)
  2. Initialize SQLite ledger store and replay the transaction log
  3. Load the pay policy document (compiled-in defaults on failure)
  4. Assemble payroll service, leave manager, worker directory
  5. Configure HTTP router
  6. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

ENVIRONMENT:
  APP_PORT, APP_ENV, LOG_LEVEL, DB_PATH, POLICY_PATH, CORS_ALLOWED_ORIGINS.
  Use DB_PATH=":memory:" for an in-memory database.

SEE ALSO:
  - config/config.go: Environment configuration
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Ledger persistence
*/
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/leave"
	"github.com/warp/payroll-engine/ledger"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/policy"
	"github.com/warp/payroll-engine/store/sqlite"
	"github.com/warp/payroll-engine/workforce"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("env", cfg.Env),
	)
	slog.SetDefault(logger)

	// Ledger persistence + replay
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	led := ledger.New(store)
	if err := led.Load(context.Background()); err != nil {
		logger.Error("failed to load transaction ledger", "error", err)
		os.Exit(1)
	}

	// Policies: a failed load is a persistence warning, the in-memory set
	// falls back to the compiled-in defaults either way.
	policies := policy.NewStore(cfg.PolicyPath)
	if err := policies.Load(); err != nil {
		logger.Warn("failed to write default policy document", "error", err)
	}

	// Domain assembly
	workers := workforce.NewRepository()
	payrollSvc := payroll.NewService(payroll.NewRegistry(policies), led)
	leaveMgr := leave.NewManager(policies, led)

	handler := api.NewHandler(workers, policies, payrollSvc, leaveMgr, led)
	router := api.NewRouter(handler, api.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
