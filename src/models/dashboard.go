package models

import "time"

// -----------------------------------------------------------------------------
// MDateRange
// -----------------------------------------------------------------------------

// MDateRange is an inclusive day range. Both bounds are required.
type MDateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange day-normalizes both bounds.
func NewDateRange(start, end time.Time) MDateRange {
	return MDateRange{Start: Day(start), End: Day(end)}
}

// Contains reports whether d falls inside the range, boundaries included.
func (r MDateRange) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// -----------------------------------------------------------------------------
// MTickerSummary
// -----------------------------------------------------------------------------

// MTickerSummary is the per-ticker metrics row shown at the top of the
// dashboard: latest close, year-to-date return, and 30-day annualized
// volatility. Each is absent when the range holds too little data.
type MTickerSummary struct {
	Ticker      string `json:"ticker"`
	LatestPrice MCell  `json:"latest_price"`
	YTDReturn   MCell  `json:"ytd_return"`
	AnnualVol30 MCell  `json:"annualized_vol_30d"`
}

// -----------------------------------------------------------------------------
// MDashboardData
// -----------------------------------------------------------------------------

// MDashboardData is the full output of one pipeline invocation. It is the
// payload the server caches and the exporter serializes; it is recomputed
// from scratch on every run and never mutated afterwards.
type MDashboardData struct {
	Aligned     MFrame             `json:"aligned"`
	Returns     MFrame             `json:"returns"`
	Cumulative  MFrame             `json:"cumulative"`
	Correlation MCorrelationMatrix `json:"correlation"`
	Summaries   []MTickerSummary   `json:"summaries"`

	// Benchmark holds the normalized comparison frame (tickers plus the
	// configured benchmark, inner-joined on common dates) when a benchmark
	// is configured and its data was available.
	Benchmark *MFrame `json:"benchmark,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}
