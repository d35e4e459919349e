package main

import (
	"os"

	"finance/internal/app"
	"finance/internal/cli"
	"finance/internal/console"
	applog "finance/internal/log"
	"finance/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(os.Stderr)
	logger := cli.SetupLogger(cfg, applog.ComponentAuth)

	ctx, stop := cli.SignalContext()
	defer stop()

	store := cli.InitUsers(ctx, logger, cfg)
	defer store.Close()

	p := console.NewPrompter(os.Stdin, os.Stdout)
	auth := services.NewAuthService(store.Users, services.BcryptHasher{Cost: cfg.BcryptCost}, logger)

	if err := app.NewAuthHelper(p, auth).Menu(logger).Run(ctx); err != nil {
		logger.Error("Authentication helper stopped", applog.FieldError, err)
	}
}
