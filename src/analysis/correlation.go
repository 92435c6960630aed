package analysis

import (
	"finance-dashboard/src/analysis/core"
	"finance-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// CorrelationEngine: pairwise Pearson correlation of daily returns.
// -----------------------------------------------------------------------------

// CorrelationMatrix computes the ticker-by-ticker correlation matrix over
// the daily-return frame.
//
// Overlap is pairwise: for each pair only rows where both columns hold a
// valid return are used, independently of the other tickers. Pairs with
// fewer than two overlapping points, or with zero variance over the
// overlap, get an absent cell instead of a numeric artifact. The upper
// triangle is computed and mirrored; the diagonal is forced to 1.
func CorrelationMatrix(returns models.MFrame) models.MCorrelationMatrix {
	matrix := models.NewCorrelationMatrix(returns.Tickers)

	for i := range matrix.Tickers {
		matrix.Cells[i][i] = models.Present(1)
		for j := i + 1; j < len(matrix.Tickers); j++ {
			x, y := pairwiseOverlap(returns.Cells[matrix.Tickers[i]], returns.Cells[matrix.Tickers[j]])
			if r, ok := core.Pearson(x, y); ok {
				matrix.Cells[i][j] = models.Present(r)
				matrix.Cells[j][i] = models.Present(r)
			}
		}
	}

	return matrix
}

// -----------------------------------------------------------------------------

// pairwiseOverlap extracts the rows where both columns hold a valid value.
func pairwiseOverlap(a, b []models.MCell) (x, y []float64) {
	for i := range a {
		av, aok := a[i].Value()
		bv, bok := b[i].Value()
		if aok && bok {
			x = append(x, av)
			y = append(y, bv)
		}
	}
	return x, y
}
