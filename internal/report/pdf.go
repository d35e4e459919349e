package report

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/phpdave11/gofpdf"

	"finance/internal/core"
)

const maxNoteRunes = 48

var (
	pdfHeaders = []string{"Month", "Type", "Amount", "Notes"}
	pdfWidths  = []float64{28, 28, 34, 92}
)

// BuildPDF renders one table row per transaction, oldest first.
func BuildPDF(txs []core.Transaction, generatedOn time.Time) ([]byte, error) {
	if len(txs) == 0 {
		return nil, core.ErrNoData
	}
	rows := append([]core.Transaction(nil), txs...)
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Timestamp.Equal(rows[j].Timestamp) {
			return rows[i].Timestamp.Before(rows[j].Timestamp)
		}
		return rows[i].ID < rows[j].ID
	})

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, Title)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, "Generated on: "+generatedOn.Format(dateLayout))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range pdfHeaders {
		pdf.CellFormat(pdfWidths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range rows {
		pdf.CellFormat(pdfWidths[0], 7, t.Month().String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfWidths[1], 7, t.Kind.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfWidths[2], 7, t.Amount.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(pdfWidths[3], 7, tr(truncate(t.NotesOr("N/A"), maxNoteRunes)), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// SavePDF writes the transaction table to path. Nothing is written when
// there are no transactions.
func SavePDF(path string, txs []core.Transaction, generatedOn time.Time) error {
	data, err := BuildPDF(txs, generatedOn)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
