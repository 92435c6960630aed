package analysis

import (
	"sort"
	"time"

	"finance-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// Aligner: merges per-ticker series onto one common trading-date index.
// -----------------------------------------------------------------------------

// AlignPolicy selects how heterogeneous trading calendars are reconciled.
type AlignPolicy string

const (
	// AlignOuter indexes the union of all dates. A ticker with no
	// observation on a union date gets an absent cell; nothing is
	// forward-filled or interpolated, so no price is ever fabricated.
	AlignOuter AlignPolicy = "outer"

	// AlignIntersect indexes only dates present in every series.
	AlignIntersect AlignPolicy = "intersect"
)

// -----------------------------------------------------------------------------

// Align merges the input series onto a common, strictly increasing date
// index. The map key is the column name and must match each series' ticker
// use. Pure function: inputs are never mutated.
func Align(series map[string]models.MPriceSeries, policy AlignPolicy) (models.MFrame, error) {
	if len(series) == 0 {
		return models.MFrame{}, &EmptyInputError{}
	}

	// Validate present prices once, at the entry to the pipeline's first
	// stage, so later stages can divide without re-checking.
	for ticker, s := range series {
		for _, p := range s.Points {
			if v, ok := p.Close.Value(); ok && v <= 0 {
				return models.MFrame{}, &InvalidPriceError{Ticker: ticker, Date: p.Date, Price: v}
			}
		}
	}

	dates := indexDates(series, policy)
	if policy == AlignIntersect && len(dates) == 0 {
		return models.MFrame{}, &NoOverlapError{}
	}

	tickers := make([]string, 0, len(series))
	for t := range series {
		tickers = append(tickers, t)
	}

	frame := models.NewFrame(dates, tickers)
	for ticker, s := range series {
		col := frame.Cells[ticker]
		byDay := make(map[time.Time]models.MCell, len(s.Points))
		for _, p := range s.Points {
			byDay[models.Day(p.Date)] = p.Close
		}
		for i, d := range dates {
			if c, ok := byDay[d]; ok {
				col[i] = c
			}
		}
	}

	return frame, nil
}

// -----------------------------------------------------------------------------

// indexDates builds the sorted union or intersection of all series dates.
func indexDates(series map[string]models.MPriceSeries, policy AlignPolicy) []time.Time {
	counts := make(map[time.Time]int)
	for _, s := range series {
		for _, p := range s.Points {
			counts[models.Day(p.Date)]++
		}
	}

	var dates []time.Time
	for d, n := range counts {
		if policy == AlignIntersect && n < len(series) {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
