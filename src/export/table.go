package export

import (
	"strconv"

	"finance-dashboard/src/models"
)

// DefaultPrecision is the decimal precision used when none is configured.
const DefaultPrecision = 6

// absentMarker renders an absent cell. The empty string keeps "no data"
// distinguishable from a literal zero in downstream CSV consumers.
const absentMarker = ""

// -----------------------------------------------------------------------------
// MTable: canonical tabular form of any derived artifact.
// -----------------------------------------------------------------------------

// MTable is an ordered header plus formatted rows, ready for CSV or JSON.
// Column order is fixed by the exporter: the index column first, then
// ticker columns alphabetically.
type MTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// RowMap returns row i as a column-name -> value mapping.
func (t MTable) RowMap(i int) map[string]string {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	m := make(map[string]string, len(t.Columns))
	for j, col := range t.Columns {
		m[col] = t.Rows[i][j]
	}
	return m
}

// -----------------------------------------------------------------------------
// Exporter
// -----------------------------------------------------------------------------

// Exporter renders frames and matrices with a fixed decimal precision, so
// repeated exports of the same data are byte-identical.
type Exporter struct {
	Precision int
}

// NewExporter clamps non-positive precision to the default.
func NewExporter(precision int) *Exporter {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return &Exporter{Precision: precision}
}

func (e *Exporter) formatCell(c models.MCell) string {
	v, ok := c.Value()
	if !ok {
		return absentMarker
	}
	return strconv.FormatFloat(v, 'f', e.Precision, 64)
}

// -----------------------------------------------------------------------------

// FrameTable renders a date-indexed frame: "date" column first (ISO-8601),
// ticker columns sorted alphabetically, absent cells empty.
func (e *Exporter) FrameTable(f models.MFrame) MTable {
	columns := append([]string{"date"}, f.Tickers...)

	rows := make([][]string, f.NumRows())
	for i, d := range f.Dates {
		row := make([]string, 0, len(columns))
		row = append(row, d.Format(models.DateFormat))
		for _, ticker := range f.Tickers {
			row = append(row, e.formatCell(f.At(ticker, i)))
		}
		rows[i] = row
	}

	return MTable{Columns: columns, Rows: rows}
}

// -----------------------------------------------------------------------------

// CorrelationTable renders the matrix with a leading "ticker" label column.
func (e *Exporter) CorrelationTable(m models.MCorrelationMatrix) MTable {
	columns := append([]string{"ticker"}, m.Tickers...)

	rows := make([][]string, len(m.Tickers))
	for i, ticker := range m.Tickers {
		row := make([]string, 0, len(columns))
		row = append(row, ticker)
		for j := range m.Tickers {
			row = append(row, e.formatCell(m.Cells[i][j]))
		}
		rows[i] = row
	}

	return MTable{Columns: columns, Rows: rows}
}

// -----------------------------------------------------------------------------

// SummaryTable renders the per-ticker metrics snapshot.
func (e *Exporter) SummaryTable(summaries []models.MTickerSummary) MTable {
	columns := []string{"ticker", "latest_price", "ytd_return", "annualized_vol_30d"}

	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{
			s.Ticker,
			e.formatCell(s.LatestPrice),
			e.formatCell(s.YTDReturn),
			e.formatCell(s.AnnualVol30),
		}
	}

	return MTable{Columns: columns, Rows: rows}
}
