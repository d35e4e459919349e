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
	logger := cli.SetupLogger(cfg, applog.ComponentReport)

	ctx, stop := cli.SignalContext()
	defer stop()

	store := cli.InitLedger(ctx, logger, cfg)
	defer store.Close()

	p := console.NewPrompter(os.Stdin, os.Stdout)
	gen := app.NewReportGenerator(p,
		services.NewAccounting(store.Ledger, store.Ledger),
		services.NewLedgerService(store.Ledger, logger),
		nil, logger)
	gen.TextPath = cfg.ReportTextPath
	gen.PDFPath = cfg.ReportPDFPath

	if err := gen.Menu(logger).Run(ctx); err != nil {
		logger.Error("Report generator stopped", applog.FieldError, err)
	}
}
