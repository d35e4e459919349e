package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"finance/internal/core"
)

const dateLayout = "2006-01-02"

// AsText renders b as a fixed-width report. It returns core.ErrNoData for an
// empty breakdown instead of a report with only a header.
func AsText(b core.Breakdown, generatedOn time.Time) (string, error) {
	if len(b) == 0 {
		return "", core.ErrNoData
	}

	var sb strings.Builder
	sb.WriteString(Title + "\n")
	fmt.Fprintf(&sb, "Generated on: %s\n\n", generatedOn.Format(dateLayout))
	fmt.Fprintf(&sb, "%-10s %-10s %-10s\n", "Month", "Type", "Amount")
	sb.WriteString(strings.Repeat("-", 31) + "\n")
	for _, r := range AsTable(b) {
		fmt.Fprintf(&sb, "%-10s %-10s %-10s\n", r.Month, r.Kind, r.Total)
	}
	return sb.String(), nil
}

// SaveText writes a rendered report to path. Empty content is refused so
// that a missing report never turns into an empty file.
func SaveText(path, content string) error {
	if strings.TrimSpace(content) == "" {
		return core.ErrNoData
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
