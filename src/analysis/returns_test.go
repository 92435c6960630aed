package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"finance-dashboard/src/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func alignOne(t *testing.T, series ...models.MPriceSeries) models.MFrame {
	t.Helper()
	in := make(map[string]models.MPriceSeries, len(series))
	for _, s := range series {
		in[s.Ticker] = s
	}
	frame, err := Align(in, AlignOuter)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	return frame
}

// -----------------------------------------------------------------------------

func TestDailyReturns_FirstRowIsAbsent(t *testing.T) {
	frame := alignOne(t, mustSeries(t, "AAPL",
		pt(day(2024, 1, 2), 100),
		pt(day(2024, 1, 3), 102),
	))

	ret, err := DailyReturns(frame)
	if err != nil {
		t.Fatalf("DailyReturns: %v", err)
	}
	if ret.At("AAPL", 0).Valid() {
		t.Error("first row has no prior price and must be absent, not zero")
	}
	if v, ok := ret.At("AAPL", 1).Value(); !ok || !almostEqual(v, 0.02) {
		t.Errorf("want 0.02, got %v (valid=%v)", v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestDailyReturns_GapSuppressesAdjacentReturns(t *testing.T) {
	// Missing middle observation: the gap row and its successor both lack a
	// usable prior price pair.
	frame := alignOne(t, mustSeries(t, "AAPL",
		pt(day(2024, 1, 2), 100),
		absentPt(day(2024, 1, 3)),
		pt(day(2024, 1, 4), 110),
		pt(day(2024, 1, 5), 121),
	))

	ret, err := DailyReturns(frame)
	if err != nil {
		t.Fatalf("DailyReturns: %v", err)
	}

	if ret.At("AAPL", 1).Valid() {
		t.Error("return on the missing day must be absent")
	}
	if ret.At("AAPL", 2).Valid() {
		t.Error("return after the gap depends on the missing price and must be absent")
	}
	if v, ok := ret.At("AAPL", 3).Value(); !ok || !almostEqual(v, 0.1) {
		t.Errorf("return resumes after two consecutive prices: want 0.1, got %v (valid=%v)", v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestDailyReturns_ZeroPriceFails(t *testing.T) {
	// Built by hand: Align rejects non-positive prices up front, but the
	// returns engine must defend against division by zero on its own.
	frame := models.NewFrame([]time.Time{day(2024, 1, 2), day(2024, 1, 3)}, []string{"AAPL"})
	frame.Cells["AAPL"][0] = models.Present(0)
	frame.Cells["AAPL"][1] = models.Present(10)

	_, err := DailyReturns(frame)
	var priceErr *InvalidPriceError
	if !errors.As(err, &priceErr) {
		t.Fatalf("want InvalidPriceError, got %v", err)
	}
}

// -----------------------------------------------------------------------------

func TestCumulativeReturns_FirstValidRowIsZero(t *testing.T) {
	frame := alignOne(t, mustSeries(t, "AAPL",
		pt(day(2024, 1, 2), 100),
		pt(day(2024, 1, 3), 110),
		pt(day(2024, 1, 4), 121),
	))
	ret, err := DailyReturns(frame)
	if err != nil {
		t.Fatalf("DailyReturns: %v", err)
	}

	cum := CumulativeReturns(ret)

	if v, ok := cum.At("AAPL", 0).Value(); !ok || v != 0 {
		t.Errorf("base row must be exactly 0, got %v (valid=%v)", v, ok)
	}
	if v, ok := cum.At("AAPL", 1).Value(); !ok || !almostEqual(v, 0.1) {
		t.Errorf("row 1: want 0.1, got %v (valid=%v)", v, ok)
	}
	if v, ok := cum.At("AAPL", 2).Value(); !ok || !almostEqual(v, 0.21) {
		t.Errorf("row 2: want 0.21, got %v (valid=%v)", v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestCumulativeReturns_GapStaysAbsentAndDoesNotCompound(t *testing.T) {
	frame := alignOne(t, mustSeries(t, "AAPL",
		pt(day(2024, 1, 2), 100),
		pt(day(2024, 1, 3), 110),
		absentPt(day(2024, 1, 4)),
		pt(day(2024, 1, 5), 120),
		pt(day(2024, 1, 6), 132),
	))
	ret, err := DailyReturns(frame)
	if err != nil {
		t.Fatalf("DailyReturns: %v", err)
	}

	cum := CumulativeReturns(ret)

	if cum.At("AAPL", 2).Valid() {
		t.Error("gap row must stay absent in the cumulative column")
	}
	if cum.At("AAPL", 3).Valid() {
		t.Error("row after the gap has no valid return and must stay absent")
	}
	// Growth across the gap is not fabricated: only the observed 10% moves
	// (row 1 and row 4) are compounded.
	if v, ok := cum.At("AAPL", 4).Value(); !ok || !almostEqual(v, 1.1*1.1-1) {
		t.Errorf("row 4: want %.4f, got %v (valid=%v)", 1.1*1.1-1, v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestCumulativeReturns_NoValidReturnsYieldsAllAbsent(t *testing.T) {
	// A single observation produces zero valid returns: the cumulative
	// column must be all-absent, signaling insufficient data downstream.
	frame := alignOne(t,
		mustSeries(t, "AAPL", pt(day(2024, 1, 2), 100)),
		mustSeries(t, "MSFT", pt(day(2024, 1, 2), 200), pt(day(2024, 1, 3), 210)),
	)
	ret, err := DailyReturns(frame)
	if err != nil {
		t.Fatalf("DailyReturns: %v", err)
	}

	cum := CumulativeReturns(ret)

	if got := cum.ValidCount("AAPL"); got != 0 {
		t.Errorf("AAPL cumulative column must be all-absent, got %d valid cells", got)
	}
	if got := cum.ValidCount("MSFT"); got != 2 {
		t.Errorf("MSFT cumulative column: want 2 valid cells, got %d", got)
	}
}

// -----------------------------------------------------------------------------

func TestNormalizeFromFirst_RebasesToFirstPresentClose(t *testing.T) {
	frame := alignOne(t, mustSeries(t, "AAPL",
		absentPt(day(2024, 1, 2)),
		pt(day(2024, 1, 3), 200),
		pt(day(2024, 1, 4), 220),
	))

	norm := NormalizeFromFirst(frame)

	if norm.At("AAPL", 0).Valid() {
		t.Error("leading absent close must stay absent")
	}
	if v, ok := norm.At("AAPL", 1).Value(); !ok || v != 0 {
		t.Errorf("first present close rebases to 0, got %v (valid=%v)", v, ok)
	}
	if v, ok := norm.At("AAPL", 2).Value(); !ok || !almostEqual(v, 0.1) {
		t.Errorf("want 0.1, got %v (valid=%v)", v, ok)
	}
}
