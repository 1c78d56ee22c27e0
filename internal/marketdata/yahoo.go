package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Krzemon/Instruments-Graph/internal/logger"
)

const (
	yahooChartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooQuoteBaseURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	yahooBatchMax     = 50
	yahooUA           = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResponse is the v8 chart API response for a single symbol.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooQuoteResponse is the v7 batch quote API response.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
		} `json:"result"`
		Error *json.RawMessage `json:"error"`
	} `json:"quoteResponse"`
}

// YahooFeed fetches daily price history and quotes from Yahoo Finance.
type YahooFeed struct {
	httpClient   *http.Client
	chartBaseURL string // overridable for tests
	quoteBaseURL string // overridable for tests
}

// NewYahooFeed creates a Yahoo Finance feed. Empty base URLs fall back to the
// public Yahoo endpoints.
func NewYahooFeed(httpClient *http.Client, chartBaseURL, quoteBaseURL string) *YahooFeed {
	if chartBaseURL == "" {
		chartBaseURL = yahooChartBaseURL
	}
	if quoteBaseURL == "" {
		quoteBaseURL = yahooQuoteBaseURL
	}
	return &YahooFeed{httpClient: httpClient, chartBaseURL: chartBaseURL, quoteBaseURL: quoteBaseURL}
}

// History fetches a daily close series per ticker for [start, end).
// Tickers with no data in the range are left out of the result; a transport
// failure aborts the whole call with an error.
func (f *YahooFeed) History(ctx context.Context, tickers []string, start, end time.Time) (map[string]Series, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("history range: start %s is not before end %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	out := make(map[string]Series, len(tickers))
	for _, ticker := range tickers {
		series, err := f.fetchChart(ctx, ticker, start, end)
		if err != nil {
			return nil, err
		}
		if len(series) == 0 {
			logger.Get().Infow("no history for ticker, skipping", "ticker", ticker)
			continue
		}
		out[ticker] = series
	}
	return out, nil
}

// LatestClose returns the most recent close within the 5-day lookback window.
func (f *YahooFeed) LatestClose(ctx context.Context, ticker string) (float64, bool, error) {
	end := time.Now().UTC()
	start := end.Add(-latestCloseLookback)

	series, err := f.fetchChart(ctx, ticker, start, end)
	if err != nil {
		return 0, false, err
	}
	if len(series) == 0 {
		return 0, false, nil
	}
	return series[len(series)-1].Close, true, nil
}

// BatchLatest fetches current quotes for many tickers via the v7 quote API,
// batched to bound request size. Unknown tickers and zero quotes are dropped.
func (f *YahooFeed) BatchLatest(ctx context.Context, tickers []string) (map[string]float64, error) {
	out := make(map[string]float64, len(tickers))
	for i := 0; i < len(tickers); i += yahooBatchMax {
		end := min(i+yahooBatchMax, len(tickers))
		if err := f.fetchQuoteBatch(ctx, tickers[i:end], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// fetchChart fetches and decodes a v8 chart response for one ticker.
// A chart-level error or empty result is treated as "no data" (nil series).
func (f *YahooFeed) fetchChart(ctx context.Context, ticker string, start, end time.Time) (Series, error) {
	reqURL := fmt.Sprintf("%s/%s?period1=%d&period2=%d&interval=1d",
		f.chartBaseURL, url.PathEscape(ticker), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building chart request for %s: %w", ticker, err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart request for %s: %w", ticker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return nil, fmt.Errorf("decoding chart response for %s: %w", ticker, err)
	}

	if chartResp.Chart.Error != nil || len(chartResp.Chart.Result) == 0 {
		return nil, nil
	}

	result := chartResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := result.Indicators.Quote[0].Close

	series := make(Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			// Nulls appear for holidays and partial sessions.
			continue
		}
		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		series = append(series, Point{Date: day, Close: *closes[i]})
	}
	return series, nil
}

// fetchQuoteBatch fetches one v7 quote batch and merges results into out.
func (f *YahooFeed) fetchQuoteBatch(ctx context.Context, tickers []string, out map[string]float64) error {
	reqURL := f.quoteBaseURL + "?symbols=" + url.QueryEscape(strings.Join(tickers, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building quote request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("quote request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote request: unexpected status %d", resp.StatusCode)
	}

	var quoteResp yahooQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
		return fmt.Errorf("decoding quote response: %w", err)
	}

	for _, r := range quoteResp.QuoteResponse.Result {
		if r.RegularMarketPrice == 0 {
			continue
		}
		out[r.Symbol] = r.RegularMarketPrice
	}
	return nil
}
