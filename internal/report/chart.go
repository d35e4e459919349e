package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"finance/internal/core"
)

const ChartTitle = "Income and Expenses by Month"

// Series holds one kind's totals, aligned with Chart.Categories.
type Series struct {
	Kind   core.Kind
	Values []core.Money
}

// Chart is a grouped bar chart: one group per month, one bar per kind.
type Chart struct {
	Title      string
	XLabel     string
	YLabel     string
	Categories []core.Month
	Series     []Series
}

// AsChartSeries groups b by kind over ascending months. Months where a kind
// has no transactions get a zero bar. An empty breakdown yields core.ErrNoData.
func AsChartSeries(b core.Breakdown) (Chart, error) {
	if len(b) == 0 {
		return Chart{}, core.ErrNoData
	}
	c := Chart{
		Title:      ChartTitle,
		XLabel:     "Month",
		YLabel:     "Amount",
		Categories: b.Months(),
	}
	for _, kind := range core.Kinds() {
		s := Series{Kind: kind, Values: make([]core.Money, len(c.Categories))}
		present := false
		for i, m := range c.Categories {
			if v, ok := b[core.MonthKind{Month: m, Kind: kind}]; ok {
				s.Values[i] = v
				present = true
			}
		}
		if present {
			c.Series = append(c.Series, s)
		}
	}
	return c, nil
}

// WithCurrency labels the value axis with currency, e.g. "Amount (USD)".
func (c Chart) WithCurrency(currency string) Chart {
	if currency != "" {
		c.YLabel = fmt.Sprintf("Amount (%s)", currency)
	}
	return c
}

// Max returns the largest value in the chart.
func (c Chart) Max() core.Money {
	var peak core.Money
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v.Cents > peak.Cents {
				peak = v
			}
		}
	}
	return peak
}

// scale maps v onto [0, length] relative to peak.
func scale(v, peak core.Money, length int) decimal.Decimal {
	if peak.IsZero() {
		return decimal.Zero
	}
	return v.Decimal().Mul(decimal.NewFromInt(int64(length))).Div(peak.Decimal())
}

var barRunes = map[core.Kind]string{
	core.Income:  "#",
	core.Expense: "=",
}

// RenderBars draws c as horizontal text bars at most width characters long.
func RenderBars(w io.Writer, c Chart, width int) error {
	if len(c.Series) == 0 {
		return core.ErrNoData
	}
	if width < 1 {
		width = 1
	}
	labelWidth := 0
	for _, s := range c.Series {
		labelWidth = max(labelWidth, len(s.Kind.String()))
	}
	peak := c.Max()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", c.Title)
	fmt.Fprintf(&sb, "%s / %s\n", c.XLabel, c.YLabel)
	for i, month := range c.Categories {
		fmt.Fprintf(&sb, "\n%s\n", month)
		for _, s := range c.Series {
			n := int(scale(s.Values[i], peak, width).Round(0).IntPart())
			bar := strings.Repeat(barRunes[s.Kind], n)
			fmt.Fprintf(&sb, "  %-*s |%-*s %s\n", labelWidth, s.Kind, width, bar, s.Values[i])
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// series fill colours, Income green and Expense red.
var barColors = map[core.Kind][3]int{
	core.Income:  {76, 153, 0},
	core.Expense: {204, 51, 51},
}

// BuildChartPDF draws c as a grouped vertical bar chart on a landscape page.
func BuildChartPDF(c Chart) ([]byte, error) {
	if len(c.Series) == 0 {
		return nil, core.ErrNoData
	}

	const (
		left           = 30.0
		top            = 30.0
		plotW          = 240.0
		plotH          = 140.0
		ticks          = 5
		groupFill      = 0.8
		labelFontSize  = 9.0
		legendBoxWidth = 5.0
	)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(c.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, c.Title, "", 1, "C", false, 0, "")

	peak := c.Max()
	bottom := top + plotH

	// axes and value ticks
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(left, top, left, bottom)
	pdf.Line(left, bottom, left+plotW, bottom)
	pdf.SetFont("Helvetica", "", labelFontSize)
	for i := 0; i <= ticks; i++ {
		y := bottom - plotH*float64(i)/ticks
		value := peak.Decimal().Mul(decimal.NewFromInt(int64(i))).Div(decimal.NewFromInt(ticks))
		label := value.StringFixed(2)
		pdf.Line(left-1.5, y, left, y)
		pdf.Text(left-2.5-pdf.GetStringWidth(label), y+1, label)
	}

	groupW := plotW / float64(len(c.Categories))
	barW := groupW * groupFill / float64(len(c.Series))
	for i, month := range c.Categories {
		x := left + groupW*float64(i) + groupW*(1-groupFill)/2
		for j, s := range c.Series {
			h, _ := scale(s.Values[i], peak, int(plotH*100)).Div(decimal.NewFromInt(100)).Float64()
			rgb := barColors[s.Kind]
			pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
			pdf.Rect(x+barW*float64(j), bottom-h, barW, h, "F")
		}
		label := month.String()
		pdf.Text(left+groupW*float64(i)+(groupW-pdf.GetStringWidth(label))/2, bottom+5, label)
	}

	// axis labels
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(left+(plotW-pdf.GetStringWidth(c.XLabel))/2, bottom+12, c.XLabel)
	pdf.TransformBegin()
	pdf.TransformRotate(90, 12, top+plotH/2)
	pdf.Text(12-pdf.GetStringWidth(c.YLabel)/2, top+plotH/2, c.YLabel)
	pdf.TransformEnd()

	// legend
	pdf.SetFont("Helvetica", "", labelFontSize)
	lx := left + plotW + 4
	for j, s := range c.Series {
		ly := top + float64(j)*7
		rgb := barColors[s.Kind]
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
		pdf.Rect(lx, ly, legendBoxWidth, 4, "F")
		pdf.Text(lx+legendBoxWidth+2, ly+3.5, s.Kind.String())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render chart pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveChartPDF writes the chart to path.
func SaveChartPDF(path string, c Chart) error {
	data, err := BuildChartPDF(c)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}
