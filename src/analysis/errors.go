package analysis

import (
	"fmt"
	"time"

	"finance-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// Error taxonomy for the analytics core.
//
// Every error here is terminal for the invocation that raised it: the core
// performs no I/O, so an error always means the caller or the upstream data
// violated a contract. The core signals and never logs.
// -----------------------------------------------------------------------------

// EmptyInputError is returned when alignment receives no series at all.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "no price series supplied"
}

// -----------------------------------------------------------------------------

// InvalidRangeError is returned for a date range whose start is after its end
// or whose bounds are missing.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	if e.Start.IsZero() || e.End.IsZero() {
		return "date range requires both start and end"
	}
	return fmt.Sprintf("invalid date range: start %s is after end %s",
		e.Start.Format(models.DateFormat), e.End.Format(models.DateFormat))
}

// -----------------------------------------------------------------------------

// InvalidPriceError is returned when a present price is not strictly
// positive. Dividing by such a price would silently produce Inf/NaN, so the
// computation fails instead.
type InvalidPriceError struct {
	Ticker string
	Date   time.Time
	Price  float64
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price %g for %s on %s: prices must be positive or absent",
		e.Price, e.Ticker, e.Date.Format(models.DateFormat))
}

// -----------------------------------------------------------------------------

// NoOverlapError is returned under the intersection alignment policy when
// the input series share no common trading date.
type NoOverlapError struct{}

func (e *NoOverlapError) Error() string {
	return "no common trading dates across input series"
}
