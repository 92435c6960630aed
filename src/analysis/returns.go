package analysis

import (
	"finance-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// ReturnsEngine: daily simple returns and cumulative growth.
// -----------------------------------------------------------------------------

// DailyReturns derives r_t = p_t/p_{t-1} - 1 for every ticker column.
//
// A return cell is present only when both the current and the immediately
// preceding price are present; the first row and every row adjacent to a gap
// stay absent, so a return is never manufactured across missing data.
func DailyReturns(frame models.MFrame) (models.MFrame, error) {
	ret := models.NewFrame(frame.Dates, frame.Tickers)

	for _, ticker := range frame.Tickers {
		prices := frame.Cells[ticker]
		col := ret.Cells[ticker]

		for i := 1; i < len(prices); i++ {
			cur, curOK := prices[i].Value()
			prev, prevOK := prices[i-1].Value()
			if !curOK || !prevOK {
				continue
			}
			if prev == 0 {
				// A present zero price is a data-integrity violation:
				// fail instead of emitting Inf.
				return models.MFrame{}, &InvalidPriceError{Ticker: ticker, Date: frame.Dates[i-1], Price: prev}
			}
			col[i] = models.Present(cur/prev - 1)
		}
	}

	return ret, nil
}

// -----------------------------------------------------------------------------

// CumulativeReturns compounds daily returns into the growth of a unit
// investment. Per ticker the base row is the one preceding the first valid
// return; its value is exactly 0. Each later row with a valid return
// advances the compounded value; rows with an absent return stay absent and
// do not advance it, so growth across a gap is never counted. A ticker with
// zero valid returns yields an all-absent column.
func CumulativeReturns(returns models.MFrame) models.MFrame {
	cum := models.NewFrame(returns.Dates, returns.Tickers)

	for _, ticker := range returns.Tickers {
		rets := returns.Cells[ticker]
		col := cum.Cells[ticker]

		started := false
		growth := 1.0
		for i, c := range rets {
			r, ok := c.Value()
			if !ok {
				continue
			}
			if !started {
				// First valid return: the previous row is the unit base.
				if i > 0 {
					col[i-1] = models.Present(0)
				}
				started = true
			}
			growth *= 1 + r
			col[i] = models.Present(growth - 1)
		}
	}

	return cum
}

// -----------------------------------------------------------------------------

// NormalizeFromFirst rebases every price column to its first present value:
// p_t / p_first - 1. Used for the benchmark comparison frame, where all
// columns share a common start after an intersection alignment.
func NormalizeFromFirst(frame models.MFrame) models.MFrame {
	norm := models.NewFrame(frame.Dates, frame.Tickers)

	for _, ticker := range frame.Tickers {
		prices := frame.Cells[ticker]
		col := norm.Cells[ticker]

		base := 0.0
		haveBase := false
		for i, c := range prices {
			v, ok := c.Value()
			if !ok {
				continue
			}
			if !haveBase {
				base = v
				haveBase = true
			}
			col[i] = models.Present(v/base - 1)
		}
	}

	return norm
}
