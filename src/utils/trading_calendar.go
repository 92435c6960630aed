package utils

import (
	"strings"
	"time"

	"github.com/scmhub/calendar"

	"finance-dashboard/src/logger"
)

// -----------------------------------------------------------------------------

// TradingCalendar answers day-granularity questions about an exchange
// calendar. The dashboard works on daily closes, so only trading-day
// membership and session counting are exposed.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// micForSymbol maps a ticker suffix to an ISO 10383 MIC code.
// Suffix-less symbols (and index symbols like ^GSPC) default to NYSE.
var micForSymbol = []struct {
	suffix string
	mic    string
}{
	{".L", "xlon"},
	{".PA", "xpar"},
	{".DE", "xfra"},
	{".AS", "xams"},
	{".MI", "xmil"},
	{".MC", "xmad"},
	{".SW", "xswx"},
	{".TO", "xtse"},
	{".T", "xtks"},
	{".HK", "xhkg"},
	{".AX", "xasx"},
	{".SS", "xshg"},
	{".SZ", "xshe"},
}

// GetCalendar resolves the trading calendar for a symbol.
func GetCalendar(symbol string, log *logger.Logger) *TradingCalendar {
	mic := "xnys"
	for _, m := range micForSymbol {
		if strings.HasSuffix(symbol, m.suffix) {
			mic = m.mic
			break
		}
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		if log != nil {
			log.Warning("Failed to load calendar for MIC '%s'. Using Mon-Fri fallback.", mic)
		}
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

// IsTradingDay reports whether the exchange holds a session on that date.
// The argument names a calendar date (day-normalized UTC midnight), so the
// Y/M/D is rebuilt at noon in the exchange timezone; converting the
// midnight instant itself would slide it onto the previous exchange day.
func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	loc := tc.Timezone
	if loc == nil {
		loc = time.UTC
	}
	local := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)

	if tc.Fallback {
		weekday := local.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(local)
}

// -----------------------------------------------------------------------------

// CountSessions returns the number of trading days in [from, to] inclusive.
// Used to report fetch coverage (rows received vs sessions expected).
func (tc *TradingCalendar) CountSessions(from, to time.Time) int {
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if tc.IsTradingDay(d) {
			n++
		}
	}
	return n
}
