package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"finance/internal/core"
)

var (
	march = core.NewMonth(2025, time.March)
	april = core.NewMonth(2025, time.April)
	today = time.Date(2025, time.April, 5, 16, 0, 0, 0, time.UTC)
)

func sampleBreakdown() core.Breakdown {
	return core.Breakdown{
		{Month: april, Kind: core.Expense}: core.MustParseMoney("10"),
		{Month: march, Kind: core.Expense}: core.MustParseMoney("300"),
		{Month: march, Kind: core.Income}:  core.MustParseMoney("1000"),
	}
}

func TestAsTableOrdering(t *testing.T) {
	rows := AsTable(sampleBreakdown())
	want := []Row{
		{Month: march, Kind: core.Income, Total: core.MustParseMoney("1000")},
		{Month: march, Kind: core.Expense, Total: core.MustParseMoney("300")},
		{Month: april, Kind: core.Expense, Total: core.MustParseMoney("10")},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
	if len(AsTable(nil)) != 0 {
		t.Errorf("empty breakdown should give no rows")
	}
}

func TestAsText(t *testing.T) {
	got, err := AsText(sampleBreakdown(), today)
	if err != nil {
		t.Fatalf("AsText: %v", err)
	}
	want := "Budget Report\n" +
		"Generated on: 2025-04-05\n" +
		"\n" +
		"Month      Type       Amount    \n" +
		"-------------------------------\n" +
		"2025-03    Income     1000.00   \n" +
		"2025-03    Expense    300.00    \n" +
		"2025-04    Expense    10.00     \n"
	if got != want {
		t.Errorf("AsText mismatch\n got:\n%q\nwant:\n%q", got, want)
	}
}

func TestAsTextEmpty(t *testing.T) {
	for _, b := range []core.Breakdown{nil, {}} {
		got, err := AsText(b, today)
		if !errors.Is(err, core.ErrNoData) || got != "" {
			t.Fatalf("expected ErrNoData and no text, got %q, %v", got, err)
		}
	}
}

func TestSaveText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "BudgetReport.txt")

	if err := SaveText(path, ""); !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no file should be written for empty content")
	}

	content, _ := AsText(sampleBreakdown(), today)
	if err := SaveText(path, content); err != nil {
		t.Fatalf("SaveText: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != content {
		t.Fatalf("file content mismatch: %v", err)
	}
}

func TestBuildPDF(t *testing.T) {
	notes := "groceries"
	txs := []core.Transaction{
		{ID: 2, Kind: core.Expense, Amount: core.MustParseMoney("42.10"), Notes: &notes, Timestamp: today},
		{ID: 1, Kind: core.Income, Amount: core.MustParseMoney("1000"), Timestamp: today.AddDate(0, -1, 0)},
	}
	data, err := BuildPDF(txs, today)
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
	if txs[0].ID != 2 {
		t.Fatalf("BuildPDF must not reorder the caller's slice")
	}

	if _, err := BuildPDF(nil, today); !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestSavePDFSkipsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "BudgetReport.pdf")
	if err := SavePDF(path, nil, today); !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no PDF should be written without transactions")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate kept = %q", got)
	}
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestAsChartSeries(t *testing.T) {
	c, err := AsChartSeries(sampleBreakdown())
	if err != nil {
		t.Fatalf("AsChartSeries: %v", err)
	}
	if len(c.Categories) != 2 || c.Categories[0] != march || c.Categories[1] != april {
		t.Fatalf("categories = %v", c.Categories)
	}
	if len(c.Series) != 2 || c.Series[0].Kind != core.Income || c.Series[1].Kind != core.Expense {
		t.Fatalf("series = %+v", c.Series)
	}
	income := c.Series[0].Values
	if income[0].String() != "1000.00" || !income[1].IsZero() {
		t.Errorf("income values = %v", income)
	}
	expense := c.Series[1].Values
	if expense[0].String() != "300.00" || expense[1].String() != "10.00" {
		t.Errorf("expense values = %v", expense)
	}
	if c.WithCurrency("USD").YLabel != "Amount (USD)" {
		t.Errorf("unexpected y label %q", c.WithCurrency("USD").YLabel)
	}
	if c.Max().String() != "1000.00" {
		t.Errorf("max = %s", c.Max())
	}
}

func TestAsChartSeriesOnlyPresentKinds(t *testing.T) {
	c, err := AsChartSeries(core.Breakdown{{Month: march, Kind: core.Expense}: {Cents: 5}})
	if err != nil {
		t.Fatalf("AsChartSeries: %v", err)
	}
	if len(c.Series) != 1 || c.Series[0].Kind != core.Expense {
		t.Fatalf("series = %+v", c.Series)
	}
}

func TestAsChartSeriesEmpty(t *testing.T) {
	if _, err := AsChartSeries(core.Breakdown{}); !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	var buf bytes.Buffer
	if err := RenderBars(&buf, Chart{}, 20); !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData from RenderBars, got %v", err)
	}
	if _, err := BuildChartPDF(Chart{}); !errors.Is(err, core.ErrNoData) {
		t.Fatalf("expected ErrNoData from BuildChartPDF, got %v", err)
	}
}

func TestRenderBars(t *testing.T) {
	c, _ := AsChartSeries(sampleBreakdown())
	var buf bytes.Buffer
	if err := RenderBars(&buf, c.WithCurrency("USD"), 10); err != nil {
		t.Fatalf("RenderBars: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		ChartTitle + "\n",
		"Month / Amount (USD)\n",
		"\n2025-03\n",
		"  Income  |########## 1000.00\n",
		"  Expense |===        300.00\n",
		"\n2025-04\n",
		"  Income  |           0.00\n",
		"  Expense |           10.00\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderBarsAllZero(t *testing.T) {
	c, _ := AsChartSeries(core.Breakdown{{Month: march, Kind: core.Income}: {}})
	var buf bytes.Buffer
	if err := RenderBars(&buf, c, 5); err != nil {
		t.Fatalf("RenderBars: %v", err)
	}
	if strings.Contains(buf.String(), "#") {
		t.Fatalf("zero values should draw no bars:\n%s", buf.String())
	}
}

func TestBuildChartPDF(t *testing.T) {
	c, _ := AsChartSeries(sampleBreakdown())
	data, err := BuildChartPDF(c.WithCurrency("EUR"))
	if err != nil {
		t.Fatalf("BuildChartPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}

	path := filepath.Join(t.TempDir(), "chart.pdf")
	if err := SaveChartPDF(path, c); err != nil {
		t.Fatalf("SaveChartPDF: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("chart file missing or empty: %v", err)
	}
}
