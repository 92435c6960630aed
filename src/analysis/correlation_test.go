package analysis

import (
	"testing"

	"finance-dashboard/src/models"
)

func returnsFrom(t *testing.T, series ...models.MPriceSeries) models.MFrame {
	t.Helper()
	ret, err := DailyReturns(alignOne(t, series...))
	if err != nil {
		t.Fatalf("DailyReturns: %v", err)
	}
	return ret
}

// -----------------------------------------------------------------------------

func TestCorrelationMatrix_SymmetryBoundsAndDiagonal(t *testing.T) {
	ret := returnsFrom(t,
		mustSeries(t, "AAPL",
			pt(day(2024, 1, 2), 100), pt(day(2024, 1, 3), 103),
			pt(day(2024, 1, 4), 101), pt(day(2024, 1, 5), 105), pt(day(2024, 1, 8), 104)),
		mustSeries(t, "MSFT",
			pt(day(2024, 1, 2), 200), pt(day(2024, 1, 3), 204),
			pt(day(2024, 1, 4), 199), pt(day(2024, 1, 5), 210), pt(day(2024, 1, 8), 205)),
		mustSeries(t, "GOOG",
			pt(day(2024, 1, 2), 150), pt(day(2024, 1, 3), 148),
			pt(day(2024, 1, 4), 151), pt(day(2024, 1, 5), 149), pt(day(2024, 1, 8), 152)),
	)

	m := CorrelationMatrix(ret)

	for i := range m.Tickers {
		if v, ok := m.Cells[i][i].Value(); !ok || v != 1.0 {
			t.Errorf("diagonal [%d][%d]: want exactly 1.0, got %v (valid=%v)", i, i, v, ok)
		}
		for j := range m.Tickers {
			if m.Cells[i][j] != m.Cells[j][i] {
				t.Errorf("matrix not symmetric at (%d,%d)", i, j)
			}
			if v, ok := m.Cells[i][j].Value(); ok && (v < -1 || v > 1) {
				t.Errorf("entry (%d,%d)=%v outside [-1,1]", i, j, v)
			}
		}
	}
}

// -----------------------------------------------------------------------------

func TestCorrelationMatrix_PerfectlyCorrelatedPair(t *testing.T) {
	// MSFT moves are exactly twice AAPL's in price space but identical in
	// return space: correlation must be 1.
	ret := returnsFrom(t,
		mustSeries(t, "AAPL",
			pt(day(2024, 1, 2), 100), pt(day(2024, 1, 3), 110),
			pt(day(2024, 1, 4), 99), pt(day(2024, 1, 5), 104)),
		mustSeries(t, "MSFT",
			pt(day(2024, 1, 2), 200), pt(day(2024, 1, 3), 220),
			pt(day(2024, 1, 4), 198), pt(day(2024, 1, 5), 208)),
	)

	m := CorrelationMatrix(ret)
	if v, ok := m.At("AAPL", "MSFT").Value(); !ok || !almostEqual(v, 1.0) {
		t.Errorf("want correlation 1.0, got %v (valid=%v)", v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestCorrelationMatrix_InsufficientOverlapIsAbsent(t *testing.T) {
	// Both tickers have valid returns, but only one row where both do.
	ret := returnsFrom(t,
		mustSeries(t, "AAPL",
			pt(day(2024, 1, 2), 100), pt(day(2024, 1, 3), 102), absentPt(day(2024, 1, 4)), absentPt(day(2024, 1, 5))),
		mustSeries(t, "MSFT",
			pt(day(2024, 1, 2), 200), pt(day(2024, 1, 3), 198), pt(day(2024, 1, 4), 199), pt(day(2024, 1, 5), 201)),
	)

	m := CorrelationMatrix(ret)
	if m.At("AAPL", "MSFT").Valid() {
		t.Error("single overlapping return pair must yield an absent cell, not a spurious correlation")
	}
	// Diagonal is forced to 1 regardless of overlap counts.
	if v, ok := m.At("AAPL", "AAPL").Value(); !ok || v != 1.0 {
		t.Errorf("diagonal must stay 1.0, got %v (valid=%v)", v, ok)
	}
}

// -----------------------------------------------------------------------------

func TestCorrelationMatrix_ZeroVarianceIsAbsent(t *testing.T) {
	// AAPL returns are constant over the overlap: Pearson is undefined.
	ret := returnsFrom(t,
		mustSeries(t, "AAPL",
			pt(day(2024, 1, 2), 100), pt(day(2024, 1, 3), 110), pt(day(2024, 1, 4), 121)),
		mustSeries(t, "MSFT",
			pt(day(2024, 1, 2), 200), pt(day(2024, 1, 3), 198), pt(day(2024, 1, 4), 205)),
	)

	m := CorrelationMatrix(ret)
	if m.At("AAPL", "MSFT").Valid() {
		t.Error("zero-variance overlap must yield an absent cell")
	}
}
