package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"finance-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// CSV serialization: header row, UTF-8, LF line endings, values containing
// commas double-quoted (encoding/csv handles the quoting rules).
// -----------------------------------------------------------------------------

// WriteCSV serializes a table to w.
func WriteCSV(w io.Writer, t MTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// -----------------------------------------------------------------------------

// ArtifactFiles maps export file names to table builders over a dashboard
// payload; it is the download set of the original dashboard plus the
// correlation matrix and summary snapshot.
func ArtifactFiles(data *models.MDashboardData, e *Exporter) map[string]MTable {
	files := map[string]MTable{
		"prices.csv":             e.FrameTable(data.Aligned),
		"daily_returns.csv":      e.FrameTable(data.Returns),
		"cumulative_returns.csv": e.FrameTable(data.Cumulative),
		"correlation.csv":        e.CorrelationTable(data.Correlation),
		"summary.csv":            e.SummaryTable(data.Summaries),
	}
	if data.Benchmark != nil {
		files["benchmark.csv"] = e.FrameTable(*data.Benchmark)
	}
	return files
}

// -----------------------------------------------------------------------------

// WriteFiles exports every artifact CSV into dir, creating it if needed.
func WriteFiles(dir string, data *models.MDashboardData, e *Exporter) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export dir '%s': %w", dir, err)
	}

	for name, table := range ArtifactFiles(data, e) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to create '%s': %w", name, err)
		}
		if err := WriteCSV(f, table); err != nil {
			f.Close()
			return fmt.Errorf("failed to export '%s': %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close '%s': %w", name, err)
		}
	}
	return nil
}
