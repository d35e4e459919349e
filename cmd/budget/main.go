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
	logger := cli.SetupLogger(cfg, applog.ComponentBudget)

	ctx, stop := cli.SignalContext()
	defer stop()

	store := cli.InitLedger(ctx, logger, cfg)
	defer store.Close()

	p := console.NewPrompter(os.Stdin, os.Stdout)
	tool := app.NewBudgetTool(p,
		services.NewBudgetService(store.Ledger, logger),
		services.NewAccounting(store.Ledger, store.Ledger),
		nil)

	if err := tool.Menu(logger).Run(ctx); err != nil {
		logger.Error("Budgeting tool stopped", applog.FieldError, err)
	}
}
