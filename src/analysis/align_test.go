package analysis

import (
	"errors"
	"testing"
	"time"

	"finance-dashboard/src/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustSeries(t *testing.T, ticker string, points ...models.MPricePoint) models.MPriceSeries {
	t.Helper()
	s, err := models.NewPriceSeries(ticker, points)
	if err != nil {
		t.Fatalf("NewPriceSeries(%s): %v", ticker, err)
	}
	return s
}

func pt(d time.Time, close float64) models.MPricePoint {
	return models.MPricePoint{Date: d, Close: models.Present(close)}
}

func absentPt(d time.Time) models.MPricePoint {
	return models.MPricePoint{Date: d, Close: models.Absent()}
}

// -----------------------------------------------------------------------------

func TestAlign_OuterJoinUsesUnionOfDates(t *testing.T) {
	d1, d2, d3, d4 := day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4), day(2024, 1, 5)

	series := map[string]models.MPriceSeries{
		"AAPL": mustSeries(t, "AAPL", pt(d1, 100), pt(d2, 102), pt(d4, 103)),
		"MSFT": mustSeries(t, "MSFT", pt(d2, 200), pt(d3, 198)),
	}

	frame, err := Align(series, AlignOuter)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}

	want := []time.Time{d1, d2, d3, d4}
	if frame.NumRows() != len(want) {
		t.Fatalf("want %d rows, got %d", len(want), frame.NumRows())
	}
	for i, d := range want {
		if !frame.Dates[i].Equal(d) {
			t.Errorf("row %d: want %s, got %s", i, d, frame.Dates[i])
		}
	}

	// Every column keeps exactly as many present cells as its input series.
	if got := frame.ValidCount("AAPL"); got != 3 {
		t.Errorf("AAPL valid count: want 3, got %d", got)
	}
	if got := frame.ValidCount("MSFT"); got != 2 {
		t.Errorf("MSFT valid count: want 2, got %d", got)
	}

	// Missing observations are absent, never zero.
	if frame.At("MSFT", 0).Valid() {
		t.Error("MSFT on a date it never traded should be absent")
	}
	if frame.At("AAPL", 2).Valid() {
		t.Error("AAPL gap date should be absent")
	}
}

// -----------------------------------------------------------------------------

func TestAlign_TickersSortedAlphabetically(t *testing.T) {
	d := day(2024, 1, 2)
	series := map[string]models.MPriceSeries{
		"MSFT": mustSeries(t, "MSFT", pt(d, 200)),
		"AAPL": mustSeries(t, "AAPL", pt(d, 100)),
		"GOOG": mustSeries(t, "GOOG", pt(d, 150)),
	}

	frame, err := Align(series, AlignOuter)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	want := []string{"AAPL", "GOOG", "MSFT"}
	for i, ticker := range want {
		if frame.Tickers[i] != ticker {
			t.Fatalf("ticker order: want %v, got %v", want, frame.Tickers)
		}
	}
}

// -----------------------------------------------------------------------------

func TestAlign_EmptyInputFails(t *testing.T) {
	_, err := Align(map[string]models.MPriceSeries{}, AlignOuter)
	var emptyErr *EmptyInputError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("want EmptyInputError, got %v", err)
	}
}

// -----------------------------------------------------------------------------

func TestAlign_IntersectPolicy(t *testing.T) {
	d1, d2, d3 := day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4)

	series := map[string]models.MPriceSeries{
		"AAPL": mustSeries(t, "AAPL", pt(d1, 100), pt(d2, 102)),
		"MSFT": mustSeries(t, "MSFT", pt(d2, 200), pt(d3, 198)),
	}

	frame, err := Align(series, AlignIntersect)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if frame.NumRows() != 1 || !frame.Dates[0].Equal(d2) {
		t.Fatalf("want single common row %s, got %v", d2, frame.Dates)
	}
}

func TestAlign_IntersectWithNoCommonDatesFails(t *testing.T) {
	series := map[string]models.MPriceSeries{
		"AAPL": mustSeries(t, "AAPL", pt(day(2024, 1, 2), 100)),
		"MSFT": mustSeries(t, "MSFT", pt(day(2024, 1, 3), 200)),
	}

	_, err := Align(series, AlignIntersect)
	var overlapErr *NoOverlapError
	if !errors.As(err, &overlapErr) {
		t.Fatalf("want NoOverlapError, got %v", err)
	}

	// The same input is fine under the default outer policy.
	if _, err := Align(series, AlignOuter); err != nil {
		t.Fatalf("outer join should not fail on disjoint calendars: %v", err)
	}
}

// -----------------------------------------------------------------------------

func TestAlign_RejectsNonPositivePresentPrice(t *testing.T) {
	series := map[string]models.MPriceSeries{
		"AAPL": mustSeries(t, "AAPL", pt(day(2024, 1, 2), 100), pt(day(2024, 1, 3), -5)),
	}

	_, err := Align(series, AlignOuter)
	var priceErr *InvalidPriceError
	if !errors.As(err, &priceErr) {
		t.Fatalf("want InvalidPriceError, got %v", err)
	}
	if priceErr.Ticker != "AAPL" || priceErr.Price != -5 {
		t.Errorf("unexpected error detail: %+v", priceErr)
	}
}
