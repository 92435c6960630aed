package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finance-dashboard/src/interfaces"
	"finance-dashboard/src/logger"
	"finance-dashboard/src/models"
	"finance-dashboard/src/utils"
)

const chartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s"

// -----------------------------------------------------------------------------

// Source fetches daily adjusted-close history from the Yahoo Finance chart
// API and normalizes it into models.MPriceSeries. Null close slots from the
// API become explicit absent cells; they are never dropped or zero-filled,
// so the alignment stage downstream sees the provider's gaps as gaps.
type Source struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *Source {
	return &Source{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "YahooSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *Source) Name() string {
	return "yahoo"
}

// -----------------------------------------------------------------------------

// FetchDailyHistory retrieves the daily close series for the inclusive
// [from, to] range.
func (s *Source) FetchDailyHistory(ctx context.Context, ticker string, from, to time.Time) (models.MPriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return models.MPriceSeries{}, err
	}

	params := map[string]string{
		"interval": "1d",
		"events":   "history",
		// period2 is exclusive upstream: extend by one day to keep the
		// configured range inclusive on both ends.
		"period1":        fmt.Sprintf("%d", models.Day(from).Unix()),
		"period2":        fmt.Sprintf("%d", models.Day(to).AddDate(0, 0, 1).Unix()),
		"includePrePost": "false",
	}

	respBytes, err := s.Network.Get(fmt.Sprintf(chartURL, ticker), params)
	if err != nil {
		return models.MPriceSeries{}, fmt.Errorf("network error for %s: %w", ticker, err)
	}

	return s.parseChartResponse(ticker, respBytes)
}

// -----------------------------------------------------------------------------

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string `json:"currency"`
				Symbol               string `json:"symbol"`
				ExchangeName         string `json:"exchangeName"`
				Timezone             string `json:"timezone"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				DataGranularity      string `json:"dataGranularity"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"` // Use pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

func (s *Source) parseChartResponse(ticker string, data []byte) (models.MPriceSeries, error) {
	var resp chartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return models.MPriceSeries{}, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return models.MPriceSeries{}, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return models.MPriceSeries{}, fmt.Errorf("no result in response for %s", ticker)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return models.MPriceSeries{}, fmt.Errorf("no quote data in response for %s", ticker)
	}

	quote := result.Indicators.Quote[0]
	if len(result.Timestamp) != len(quote.Close) {
		return models.MPriceSeries{}, fmt.Errorf("data alignment error for %s: mismatched array lengths", ticker)
	}

	cal := utils.GetCalendar(ticker, s.Logger)

	points := make([]models.MPricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		date := models.Day(time.Unix(ts, 0))

		// The API occasionally reports rows on non-trading days
		// (half-session artifacts); drop them at the boundary.
		if !cal.IsTradingDay(date) {
			s.Logger.Debug("Skipping non-trading day %s for %s", date.Format(models.DateFormat), ticker)
			continue
		}

		cell := models.Absent()
		if quote.Close[i] != nil {
			v := *quote.Close[i]
			if v <= 0 {
				// Provider junk: a non-positive close would poison the
				// pipeline, treat it as a missing observation.
				s.Logger.Warning("Dropping non-positive close %f for %s on %s", v, ticker, date.Format(models.DateFormat))
			} else {
				cell = models.Present(v)
			}
		}

		points = append(points, models.MPricePoint{Date: date, Close: cell})
	}

	if len(points) == 0 {
		return models.MPriceSeries{}, fmt.Errorf("no data points for %s", ticker)
	}

	return models.NewPriceSeries(ticker, points)
}
