package models

import (
	"fmt"
	"sort"
	"time"
)

// DateFormat is the ISO-8601 day format used everywhere a date crosses a
// boundary (config, storage, CSV export).
const DateFormat = "2006-01-02"

// Day normalizes a timestamp to its trading date: midnight UTC.
// All internal date indexes are built from Day-normalized times.
func Day(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------
// MPricePoint / MPriceSeries
// -----------------------------------------------------------------------------

// MPricePoint is one (date, close) observation. Close is either a positive
// price or explicitly absent (the provider reported a null for that session).
type MPricePoint struct {
	Date  time.Time `json:"date"`
	Close MCell     `json:"close"`
}

// MPriceSeries is the immutable per-ticker history handed to the pipeline.
// Dates are strictly increasing and unique after construction.
type MPriceSeries struct {
	Ticker string        `json:"ticker"`
	Points []MPricePoint `json:"points"`
}

// -----------------------------------------------------------------------------

// NewPriceSeries builds a normalized series from raw provider output:
// dates are day-normalized, sorted ascending, and deduplicated (last wins,
// matching how repeated fetches overwrite earlier observations).
func NewPriceSeries(ticker string, points []MPricePoint) (MPriceSeries, error) {
	if ticker == "" {
		return MPriceSeries{}, fmt.Errorf("price series requires a non-empty ticker")
	}

	byDay := make(map[time.Time]MCell, len(points))
	for _, p := range points {
		byDay[Day(p.Date)] = p.Close
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	normalized := make([]MPricePoint, len(days))
	for i, d := range days {
		normalized[i] = MPricePoint{Date: d, Close: byDay[d]}
	}

	return MPriceSeries{Ticker: ticker, Points: normalized}, nil
}

// -----------------------------------------------------------------------------

// FilterRange returns a copy of the series restricted to [from, to]
// inclusive. Rows outside the range are dropped entirely, not absented.
func (s MPriceSeries) FilterRange(from, to time.Time) MPriceSeries {
	from, to = Day(from), Day(to)
	out := MPriceSeries{Ticker: s.Ticker}
	for _, p := range s.Points {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		out.Points = append(out.Points, p)
	}
	return out
}

// Len returns the number of observations.
func (s MPriceSeries) Len() int { return len(s.Points) }
