package interfaces

import (
	"context"
	"time"

	"finance-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IPriceSource: external provider of historical daily price series.
// -----------------------------------------------------------------------------

type IPriceSource interface {

	// Name returns the unique identifier of the source.
	Name() string

	// -----------------------------------------------------------------------------

	// FetchDailyHistory retrieves the daily close series for one ticker over
	// the inclusive [from, to] range. Provider nulls become absent cells;
	// dates are timezone-normalized to a single trading calendar before the
	// series is returned.
	FetchDailyHistory(ctx context.Context, ticker string, from, to time.Time) (models.MPriceSeries, error)
}
