// Package cli provides common CLI initialization utilities.
// This package consolidates the start-up steps shared by every program
// under cmd/.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finance/internal/backend"
	"finance/internal/config"
	applog "finance/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging from cfg.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(cfg *config.Config, component string) *applog.Logger {
	lc := applog.DefaultConfig()
	if level, err := applog.ParseLevel(cfg.LogLevel); err == nil {
		lc.Level = level
	}
	lc.Component = component
	logger := applog.New(lc)
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(stderr io.Writer) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		os.Exit(1)
	}
	return cfg
}

// InitLedger opens the finance store selected by cfg.
// Returns the store or exits the process on failure.
func InitLedger(ctx context.Context, logger *applog.Logger, cfg *config.Config) *backend.LedgerResult {
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateLedger(ctx, bc)
	if err != nil {
		logger.Error("Failed to initialize finance store", applog.FieldError, err, applog.FieldPath, cfg.FinanceDBPath)
		fmt.Fprintln(os.Stderr, "Error: the finance database could not be opened.")
		os.Exit(1)
	}
	return res
}

// InitUsers opens the credential store selected by cfg.
// Returns the store or exits the process on failure.
func InitUsers(ctx context.Context, logger *applog.Logger, cfg *config.Config) *backend.UsersResult {
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateUsers(ctx, bc)
	if err != nil {
		logger.Error("Failed to initialize user store", applog.FieldError, err, applog.FieldPath, cfg.UsersDBPath)
		fmt.Fprintln(os.Stderr, "Error: the users database could not be opened.")
		os.Exit(1)
	}
	return res
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
// Once the first signal arrives the handler is released, so a second
// Ctrl-C terminates the process the default way.
func SignalContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}
