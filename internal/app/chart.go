package app

import (
	"context"
	"fmt"
	"io"

	applog "finance/internal/log"
	"finance/internal/report"
	"finance/internal/services"
)

// DefaultChartWidth is the longest bar drawn in the terminal.
const DefaultChartWidth = 50

// ChartViewer draws monthly income and expenses as a grouped bar chart.
type ChartViewer struct {
	accounting *services.Accounting
	log        *applog.Logger

	Currency string
	Width    int
}

func NewChartViewer(accounting *services.Accounting, logger *applog.Logger) *ChartViewer {
	return &ChartViewer{
		accounting: accounting,
		log:        applog.For(logger, applog.ComponentChart),
		Width:      DefaultChartWidth,
	}
}

// Chart loads the breakdown and shapes it into series.
func (v *ChartViewer) Chart(ctx context.Context) (report.Chart, error) {
	b, err := v.accounting.MonthlyBreakdown(ctx)
	if err != nil {
		return report.Chart{}, err
	}
	c, err := report.AsChartSeries(b)
	if err != nil {
		return report.Chart{}, err
	}
	return c.WithCurrency(v.Currency), nil
}

// Render writes the text chart to w.
func (v *ChartViewer) Render(ctx context.Context, w io.Writer) error {
	c, err := v.Chart(ctx)
	if err != nil {
		return err
	}
	if err := report.RenderBars(w, c, v.Width); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	v.log.Operation(ctx, applog.OpRender, nil, applog.FieldRows, len(c.Categories))
	return nil
}

// SavePDF writes the chart as a PDF page to path.
func (v *ChartViewer) SavePDF(ctx context.Context, path string) error {
	c, err := v.Chart(ctx)
	if err != nil {
		return err
	}
	if err := report.SaveChartPDF(path, c); err != nil {
		return fmt.Errorf("export chart: %w", err)
	}
	v.log.Operation(ctx, applog.OpExport, nil, applog.FieldPath, path)
	return nil
}
