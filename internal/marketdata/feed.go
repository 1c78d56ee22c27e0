// Package marketdata provides access to the external price feed: historical
// daily closes, latest quotes, and forex rates. The feed is treated as
// unreliable: individual tickers may be missing from a response, which
// callers must handle by skipping the asset rather than failing the batch.
package marketdata

import (
	"context"
	"time"
)

// Point is a single daily observation in a price series.
type Point struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Series is an ordered (ascending by date) sequence of daily closes.
type Series []Point

// Closes returns the close values of the series in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// latestCloseLookback is the calendar window used when resolving the most
// recent close for a single ticker.
const latestCloseLookback = 5 * 24 * time.Hour

// Feed fetches market data for ticker symbols.
//
// History returns a per-ticker daily close series for the given date range.
// Tickers with no retrievable data are absent from the result map; an error is
// returned only on a total feed failure (e.g. network unreachable), in which
// case no partial data is returned.
//
// LatestClose returns the most recent close within the last 5 calendar days,
// with ok=false when the ticker had no trading data in that window.
//
// BatchLatest returns current quotes for many tickers in bulk requests;
// tickers the feed does not know are absent from the result map.
type Feed interface {
	History(ctx context.Context, tickers []string, start, end time.Time) (map[string]Series, error)
	LatestClose(ctx context.Context, ticker string) (float64, bool, error)
	BatchLatest(ctx context.Context, tickers []string) (map[string]float64, error)
}
