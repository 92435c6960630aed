package analysis

import (
	"math"

	"finance-dashboard/src/analysis/core"
	"finance-dashboard/src/models"
)

// volWindowRows is the trailing window (in trading rows) for the
// volatility summary metric.
const volWindowRows = 30

// tradingDaysPerYear is the annualization factor for daily volatility.
const tradingDaysPerYear = 252

// -----------------------------------------------------------------------------
// Summary metrics: the dashboard's per-ticker snapshot row.
// -----------------------------------------------------------------------------

// Summaries computes latest price, year-to-date return and annualized
// 30-day volatility for every ticker in the aligned frame. Each metric is
// absent when the range holds too little data for it; nothing defaults
// to zero.
func Summaries(aligned, returns models.MFrame) []models.MTickerSummary {
	out := make([]models.MTickerSummary, 0, len(aligned.Tickers))
	for _, ticker := range aligned.Tickers {
		out = append(out, models.MTickerSummary{
			Ticker:      ticker,
			LatestPrice: latestPrice(aligned, ticker),
			YTDReturn:   ytdReturn(aligned, ticker),
			AnnualVol30: annualizedVol(returns, ticker),
		})
	}
	return out
}

// -----------------------------------------------------------------------------

// latestPrice returns the last present close in the frame.
func latestPrice(aligned models.MFrame, ticker string) models.MCell {
	col := aligned.Cells[ticker]
	for i := len(col) - 1; i >= 0; i-- {
		if col[i].Valid() {
			return col[i]
		}
	}
	return models.Absent()
}

// -----------------------------------------------------------------------------

// ytdReturn computes last/first - 1 over the present closes that fall in
// the calendar year of the frame's final date. Absent with fewer than two
// such closes.
func ytdReturn(aligned models.MFrame, ticker string) models.MCell {
	if aligned.NumRows() == 0 {
		return models.Absent()
	}
	year := aligned.Dates[aligned.NumRows()-1].Year()

	col := aligned.Cells[ticker]
	firstIdx, lastIdx := -1, -1
	for i, d := range aligned.Dates {
		if d.Year() != year || !col[i].Valid() {
			continue
		}
		if firstIdx < 0 {
			firstIdx = i
		}
		lastIdx = i
	}

	if firstIdx < 0 || firstIdx == lastIdx {
		return models.Absent()
	}
	return models.Present(col[lastIdx].Float()/col[firstIdx].Float() - 1)
}

// -----------------------------------------------------------------------------

// annualizedVol computes the sample standard deviation of the valid daily
// returns inside the trailing 30-row window, annualized by sqrt(252).
// Absent with fewer than two valid returns in the window.
func annualizedVol(returns models.MFrame, ticker string) models.MCell {
	col := returns.Cells[ticker]
	start := len(col) - volWindowRows
	if start < 0 {
		start = 0
	}

	var window []float64
	for _, c := range col[start:] {
		if v, ok := c.Value(); ok {
			window = append(window, v)
		}
	}
	if len(window) < 2 {
		return models.Absent()
	}
	return models.Present(core.SampleStd(window) * math.Sqrt(tradingDaysPerYear))
}
