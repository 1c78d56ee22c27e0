package marketdata

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// RateSource resolves current forex rates. Satisfied by *YahooFeed via the
// 5-day lookback close of a currency-pair ticker.
type RateSource interface {
	LatestClose(ctx context.Context, ticker string) (float64, bool, error)
}

// ForexConverter converts asset values from their native currency into a
// target currency (e.g. PLN) for portfolio valuation. Rates are cached
// in-memory for the lifetime of the converter instance.
type ForexConverter struct {
	source         RateSource
	targetCurrency string
	mu             sync.RWMutex
	rates          map[string]float64 // e.g. "USD" -> 4.05 (1 USD = 4.05 PLN)
}

// NewForexConverter creates a ForexConverter targeting the given currency.
func NewForexConverter(source RateSource, targetCurrency string) *ForexConverter {
	return &ForexConverter{
		source:         source,
		targetCurrency: strings.ToUpper(targetCurrency),
		rates:          make(map[string]float64),
	}
}

// TargetCurrency returns the target currency code (e.g. "PLN").
func (f *ForexConverter) TargetCurrency() string {
	return f.targetCurrency
}

// Rate fetches (or returns cached) the exchange rate from fromCurrency to the
// target currency. Yahoo Finance quotes forex pairs as tickers like "USDPLN=X".
func (f *ForexConverter) Rate(ctx context.Context, fromCurrency string) (float64, error) {
	from := strings.ToUpper(fromCurrency)
	if from == f.targetCurrency {
		return 1.0, nil
	}

	f.mu.RLock()
	rate, ok := f.rates[from]
	f.mu.RUnlock()
	if ok {
		return rate, nil
	}

	pair := from + f.targetCurrency + "=X"
	rate, found, err := f.source.LatestClose(ctx, pair)
	if err != nil {
		return 0, fmt.Errorf("forex rate %s: %w", pair, err)
	}
	if !found || rate == 0 {
		return 0, fmt.Errorf("forex rate %s: no quote available", pair)
	}

	f.mu.Lock()
	f.rates[from] = rate
	f.mu.Unlock()

	return rate, nil
}

// Convert converts a value from the given currency to the target currency.
func (f *ForexConverter) Convert(ctx context.Context, value float64, fromCurrency string) (float64, error) {
	rate, err := f.Rate(ctx, fromCurrency)
	if err != nil {
		return 0, err
	}
	return value * rate, nil
}
