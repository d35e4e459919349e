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
	logger := cli.SetupLogger(cfg, applog.ComponentLedger)

	ctx, stop := cli.SignalContext()
	defer stop()

	store := cli.InitLedger(ctx, logger, cfg)
	defer store.Close()

	p := console.NewPrompter(os.Stdin, os.Stdout)
	manager := app.NewTransactionManager(p, services.NewLedgerService(store.Ledger, logger))

	if err := manager.Menu(logger).Run(ctx); err != nil {
		logger.Error("Transaction manager stopped", applog.FieldError, err)
	}
}
