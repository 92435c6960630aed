package interfaces

import (
	"time"

	"finance-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IPriceCache: storage contract for fetched raw price series.
//
// The cache holds raw provider output only, keyed by (ticker, range); the
// derived analytics artifacts are recomputed on every pipeline run and are
// never persisted. Entries expire by fetch age (TTL).
// -----------------------------------------------------------------------------

type IPriceCache interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the schema.
	Initialize() error

	// -----------------------------------------------------------------------------

	// GetSeries returns the cached series for an exact (ticker, from, to)
	// key. ok is false on a miss or an expired entry.
	GetSeries(ticker string, from, to time.Time) (series models.MPriceSeries, ok bool, err error)

	// -----------------------------------------------------------------------------

	// SaveSeries stores a freshly fetched series under its range key,
	// replacing any previous entry for the same key.
	SaveSeries(series models.MPriceSeries, from, to time.Time) error

	// -----------------------------------------------------------------------------

	// CleanupExpired removes entries older than the configured TTL.
	CleanupExpired() error

	// -----------------------------------------------------------------------------

	// Close the database connection.
	Close() error
}
