// Package report turns monthly aggregates and transactions into console
// text, text files, PDF tables and bar charts.
package report

import (
	"sort"

	"finance/internal/core"
)

// Title heads every report.
const Title = "Budget Report"

// Row is one line of the monthly report.
type Row struct {
	Month core.Month
	Kind  core.Kind
	Total core.Money
}

// AsTable flattens b into rows ordered by month, then Income before Expense.
func AsTable(b core.Breakdown) []Row {
	rows := make([]Row, 0, len(b))
	for key, total := range b {
		rows = append(rows, Row{Month: key.Month, Kind: key.Kind, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Kind < rows[j].Kind
	})
	return rows
}
