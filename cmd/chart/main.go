package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"finance/internal/app"
	"finance/internal/cli"
	"finance/internal/console"
	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/services"
)

func main() {
	writePDF := flag.Bool("pdf", false, "also save the chart as a PDF (CHART_PDF_PATH)")
	width := flag.Int("width", app.DefaultChartWidth, "longest bar in characters")
	flag.Parse()

	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(os.Stderr)
	logger := cli.SetupLogger(cfg, applog.ComponentChart)

	ctx, stop := cli.SignalContext()
	defer stop()

	store := cli.InitLedger(ctx, logger, cfg)
	defer store.Close()

	viewer := app.NewChartViewer(services.NewAccounting(store.Ledger, store.Ledger), logger)
	viewer.Currency = cfg.Currency
	viewer.Width = *width

	if err := viewer.Render(ctx, os.Stdout); err != nil {
		report(err)
		return
	}
	if *writePDF {
		if err := viewer.SavePDF(ctx, cfg.ChartPDFPath); err != nil {
			report(err)
			return
		}
		fmt.Printf("\nChart saved as %s\n", cfg.ChartPDFPath)
	}
}

func report(err error) {
	if errors.Is(err, core.ErrNoData) {
		fmt.Println("No data available to display a chart.")
		return
	}
	fmt.Println(console.Describe(err))
}
