package datasource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"finance-dashboard/src/helpers"
	"finance-dashboard/src/interfaces"
	"finance-dashboard/src/logger"
	"finance-dashboard/src/models"
	"finance-dashboard/src/utils"
)

// -----------------------------------------------------------------------------

// FetchManager coordinates the batch retrieval of all configured tickers:
// cache-aside lookups against the price cache, bounded-concurrency fan-out
// to the provider for the misses, and save-back of fresh results.
type FetchManager struct {
	Source interfaces.IPriceSource
	Cache  interfaces.IPriceCache
	Config *models.MConfig
	Logger *logger.Logger
	mu     sync.Mutex
}

// -----------------------------------------------------------------------------

func NewFetchManager(source interfaces.IPriceSource, cache interfaces.IPriceCache, cfg *models.MConfig) *FetchManager {
	return &FetchManager{
		Source: source,
		Cache:  cache,
		Config: cfg,
		Logger: logger.NewLogger(cfg.LogLevel, "FetchManager-"+source.Name()),
	}
}

// -----------------------------------------------------------------------------

// FetchAll retrieves the daily series for every ticker over [from, to].
// A ticker that fails is logged and omitted from the result; only a fully
// failed batch is an error. Transient-failure handling lives here (and in
// the network layer), never in the analytics pipeline.
func (m *FetchManager) FetchAll(ctx context.Context, tickers []string, from, to time.Time) (map[string]models.MPriceSeries, error) {
	if len(tickers) == 0 {
		return map[string]models.MPriceSeries{}, nil
	}

	results := make(map[string]models.MPriceSeries, len(tickers))
	var wg sync.WaitGroup
	var failed int
	var failedMu sync.Mutex

	concurrency := m.Config.Network.ConcurrentRequests
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	for _, ticker := range tickers {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			series, err := m.fetchOne(ctx, sym, from, to)
			if err != nil {
				m.Logger.Error("Fetch failed for %s: %v", sym, err)
				failedMu.Lock()
				failed++
				failedMu.Unlock()
				return
			}

			m.mu.Lock()
			results[sym] = series
			m.mu.Unlock()
		}(ticker)
	}

	wg.Wait()

	m.Logger.Info("Fetched %d/%d tickers successfully", len(results), len(tickers))

	if len(results) == 0 {
		return nil, fmt.Errorf("all %d fetches failed", len(tickers))
	}
	return results, nil
}

// -----------------------------------------------------------------------------

// fetchOne serves a single ticker: exact-key cache hit, otherwise provider
// fetch followed by a cache save-back.
func (m *FetchManager) fetchOne(ctx context.Context, ticker string, from, to time.Time) (models.MPriceSeries, error) {
	if m.Cache != nil {
		series, ok, err := m.Cache.GetSeries(ticker, from, to)
		if err != nil {
			m.Logger.Warning("Cache lookup failed for %s: %v", ticker, err)
		} else if ok {
			m.Logger.Debug("Cache hit for %s %s..%s", ticker, from.Format(models.DateFormat), to.Format(models.DateFormat))
			return series, nil
		}
	}

	series, err := m.Source.FetchDailyHistory(ctx, ticker, from, to)
	if err != nil {
		return models.MPriceSeries{}, &helpers.DataSourceError{DashboardError: helpers.DashboardError{
			Message: fmt.Sprintf("%s fetch for %s failed", m.Source.Name(), ticker), Cause: err,
		}}
	}

	m.logCoverage(series, from, to)

	if m.Cache != nil {
		if err := m.Cache.SaveSeries(series, from, to); err != nil {
			m.Logger.Warning("Cache save failed for %s: %v", ticker, err)
		}
	}
	return series, nil
}

// -----------------------------------------------------------------------------

// logCoverage compares rows received against the exchange's expected
// session count for the range.
func (m *FetchManager) logCoverage(series models.MPriceSeries, from, to time.Time) {
	cal := utils.GetCalendar(series.Ticker, m.Logger)
	expected := cal.CountSessions(models.Day(from), models.Day(to))
	if expected > 0 && series.Len() < expected {
		m.Logger.Warning("%s: received %d rows for %d expected sessions", series.Ticker, series.Len(), expected)
	}
}
