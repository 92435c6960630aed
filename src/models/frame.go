package models

import (
	"sort"
	"time"
)

// -----------------------------------------------------------------------------
// MFrame: date-indexed table, one column per ticker.
// -----------------------------------------------------------------------------

// MFrame backs the aligned-price, daily-return and cumulative-return tables.
// Invariants: Dates strictly increasing and unique, Tickers sorted
// alphabetically, every column has exactly len(Dates) cells.
type MFrame struct {
	Dates   []time.Time        `json:"dates"`
	Tickers []string           `json:"tickers"`
	Cells   map[string][]MCell `json:"cells"`
}

// NewFrame allocates a frame with all-absent columns for the given index.
func NewFrame(dates []time.Time, tickers []string) MFrame {
	sorted := make([]string, len(tickers))
	copy(sorted, tickers)
	sort.Strings(sorted)

	cells := make(map[string][]MCell, len(sorted))
	for _, t := range sorted {
		cells[t] = make([]MCell, len(dates))
	}
	return MFrame{Dates: dates, Tickers: sorted, Cells: cells}
}

// -----------------------------------------------------------------------------

// NumRows returns the number of dates in the index.
func (f MFrame) NumRows() int { return len(f.Dates) }

// At returns the cell for a ticker at row i.
func (f MFrame) At(ticker string, i int) MCell {
	col, ok := f.Cells[ticker]
	if !ok || i < 0 || i >= len(col) {
		return Absent()
	}
	return col[i]
}

// Column returns the cell column for a ticker, or nil if unknown.
func (f MFrame) Column(ticker string) []MCell { return f.Cells[ticker] }

// ValidCount returns the number of present cells in a ticker's column.
func (f MFrame) ValidCount(ticker string) int {
	n := 0
	for _, c := range f.Cells[ticker] {
		if c.Valid() {
			n++
		}
	}
	return n
}

// -----------------------------------------------------------------------------
// MCorrelationMatrix
// -----------------------------------------------------------------------------

// MCorrelationMatrix is the square, symmetric ticker-by-ticker matrix of
// pairwise daily-return correlations. Cells[i][j] corresponds to
// (Tickers[i], Tickers[j]); the diagonal is always Present(1).
type MCorrelationMatrix struct {
	Tickers []string  `json:"tickers"`
	Cells   [][]MCell `json:"cells"`
}

// NewCorrelationMatrix allocates an all-absent matrix for sorted tickers.
func NewCorrelationMatrix(tickers []string) MCorrelationMatrix {
	sorted := make([]string, len(tickers))
	copy(sorted, tickers)
	sort.Strings(sorted)

	cells := make([][]MCell, len(sorted))
	for i := range cells {
		cells[i] = make([]MCell, len(sorted))
	}
	return MCorrelationMatrix{Tickers: sorted, Cells: cells}
}

// At returns the correlation cell for a ticker pair by name.
func (m MCorrelationMatrix) At(a, b string) MCell {
	ia, ib := -1, -1
	for i, t := range m.Tickers {
		if t == a {
			ia = i
		}
		if t == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return Absent()
	}
	return m.Cells[ia][ib]
}
