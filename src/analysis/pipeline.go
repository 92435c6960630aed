package analysis

import (
	"time"

	"finance-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// Pipeline: align -> returns -> cumulative -> correlation -> summaries.
// -----------------------------------------------------------------------------

// Pipeline orchestrates one full analytics pass over raw per-ticker price
// series. It holds only configuration; Run is pure and reentrant, so a
// single Pipeline value is safe to use from concurrent callers as long as
// each call gets its own input map.
type Pipeline struct {
	Policy AlignPolicy
	Range  models.MDateRange

	// Benchmark names an extra column in the raw input (e.g. "^GSPC") to
	// build the inner-joined normalized comparison frame against. Empty
	// disables the comparison.
	Benchmark string
}

// NewPipeline builds a pipeline with the default outer-join policy.
func NewPipeline(dateRange models.MDateRange) *Pipeline {
	return &Pipeline{Policy: AlignOuter, Range: dateRange}
}

// -----------------------------------------------------------------------------

// Run executes the full pipeline. Errors fail fast: the first stage error
// propagates unchanged and no partial artifacts are returned, so a broken
// alignment can never feed a misleading returns calculation. No retries:
// the core performs no I/O and is fully deterministic.
func (p *Pipeline) Run(raw map[string]models.MPriceSeries) (*models.MDashboardData, error) {
	if p.Range.Start.IsZero() || p.Range.End.IsZero() || p.Range.Start.After(p.Range.End) {
		return nil, &InvalidRangeError{Start: p.Range.Start, End: p.Range.End}
	}

	// The benchmark participates only in the comparison frame, never in
	// the main artifacts.
	main := make(map[string]models.MPriceSeries, len(raw))
	for ticker, s := range raw {
		if ticker == p.Benchmark {
			continue
		}
		main[ticker] = s.FilterRange(p.Range.Start, p.Range.End)
	}

	aligned, err := Align(main, p.policy())
	if err != nil {
		return nil, err
	}

	returns, err := DailyReturns(aligned)
	if err != nil {
		return nil, err
	}

	data := &models.MDashboardData{
		Aligned:     aligned,
		Returns:     returns,
		Cumulative:  CumulativeReturns(returns),
		Correlation: CorrelationMatrix(returns),
		Summaries:   Summaries(aligned, returns),
		ComputedAt:  time.Now().UTC(),
	}

	if bench, ok := raw[p.Benchmark]; ok && p.Benchmark != "" {
		frame, err := p.benchmarkFrame(main, bench)
		if err != nil {
			return nil, err
		}
		data.Benchmark = &frame
	}

	return data, nil
}

// -----------------------------------------------------------------------------

// benchmarkFrame inner-joins all tickers with the benchmark and rebases
// every column to the first common date, mirroring a growth-of-unit
// comparison chart. Intersection is deliberate here: the comparison is only
// meaningful on dates every column traded.
func (p *Pipeline) benchmarkFrame(main map[string]models.MPriceSeries, bench models.MPriceSeries) (models.MFrame, error) {
	all := make(map[string]models.MPriceSeries, len(main)+1)
	for ticker, s := range main {
		all[ticker] = s
	}
	all[p.Benchmark] = bench.FilterRange(p.Range.Start, p.Range.End)

	joined, err := Align(all, AlignIntersect)
	if err != nil {
		return models.MFrame{}, err
	}
	return NormalizeFromFirst(joined), nil
}

// -----------------------------------------------------------------------------

func (p *Pipeline) policy() AlignPolicy {
	if p.Policy == "" {
		return AlignOuter
	}
	return p.Policy
}
