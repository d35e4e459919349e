package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"finance/internal/console"
	applog "finance/internal/log"
	"finance/internal/report"
	"finance/internal/services"
)

// ReportGenerator shows the monthly report and exports it to disk.
type ReportGenerator struct {
	p          *console.Prompter
	accounting *services.Accounting
	ledger     *services.LedgerService
	now        func() time.Time
	log        *applog.Logger

	TextPath string
	PDFPath  string
}

func NewReportGenerator(p *console.Prompter, accounting *services.Accounting, ledger *services.LedgerService, now func() time.Time, logger *applog.Logger) *ReportGenerator {
	if now == nil {
		now = time.Now
	}
	return &ReportGenerator{
		p:          p,
		accounting: accounting,
		ledger:     ledger,
		now:        now,
		log:        applog.For(logger, applog.ComponentReport),
		TextPath:   "BudgetReport.txt",
		PDFPath:    "BudgetReport.pdf",
	}
}

func (g *ReportGenerator) Menu(logger *applog.Logger) *console.Menu {
	m := console.NewMenu(g.p, logger, "Report Generator",
		console.Option{Label: "View Report", Run: g.View},
		console.Option{Label: "Export Report as Text File", Run: g.ExportText},
		console.Option{Label: "Export Report as PDF", Run: g.ExportPDF},
		console.Option{Label: "Export Both", Run: g.ExportBoth},
	)
	m.Invalid = "Invalid choice. Exiting."
	return m
}

func (g *ReportGenerator) View(ctx context.Context) error {
	text, err := g.text(ctx)
	if err != nil {
		return err
	}
	g.p.Println("\n" + text)
	return nil
}

func (g *ReportGenerator) ExportText(ctx context.Context) error {
	if err := g.saveText(ctx); err != nil {
		return err
	}
	g.p.Printf("Report saved as %s\n", g.TextPath)
	return nil
}

func (g *ReportGenerator) ExportPDF(ctx context.Context) error {
	if err := g.savePDF(ctx); err != nil {
		return err
	}
	g.p.Printf("Report saved as %s\n", g.PDFPath)
	return nil
}

// ExportBoth writes the text and PDF reports concurrently. Every file that
// was written is announced, even when the other export failed.
func (g *ReportGenerator) ExportBoth(ctx context.Context) error {
	var textSaved, pdfSaved bool
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := g.saveText(ctx)
		textSaved = err == nil
		return err
	})
	eg.Go(func() error {
		err := g.savePDF(ctx)
		pdfSaved = err == nil
		return err
	})
	err := eg.Wait()

	if textSaved {
		g.p.Printf("Report saved as %s\n", g.TextPath)
	}
	if pdfSaved {
		g.p.Printf("Report saved as %s\n", g.PDFPath)
	}
	return err
}

func (g *ReportGenerator) text(ctx context.Context) (string, error) {
	b, err := g.accounting.MonthlyBreakdown(ctx)
	if err != nil {
		return "", err
	}
	return report.AsText(b, g.now())
}

func (g *ReportGenerator) saveText(ctx context.Context) error {
	text, err := g.text(ctx)
	if err != nil {
		return err
	}
	if err := report.SaveText(g.TextPath, text); err != nil {
		return fmt.Errorf("export text report: %w", err)
	}
	g.log.Operation(ctx, applog.OpExport, nil, applog.FieldPath, g.TextPath)
	return nil
}

func (g *ReportGenerator) savePDF(ctx context.Context) error {
	txs, err := g.ledger.List(ctx)
	if err != nil {
		return err
	}
	if err := report.SavePDF(g.PDFPath, txs, g.now()); err != nil {
		return fmt.Errorf("export pdf report: %w", err)
	}
	g.log.Operation(ctx, applog.OpExport, nil, applog.FieldPath, g.PDFPath, applog.FieldRows, len(txs))
	return nil
}
