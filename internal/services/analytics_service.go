package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Krzemon/Instruments-Graph/internal/analytics"
	apperrors "github.com/Krzemon/Instruments-Graph/internal/errors"
	"github.com/Krzemon/Instruments-Graph/internal/graph"
	"github.com/Krzemon/Instruments-Graph/internal/logger"
	"github.com/Krzemon/Instruments-Graph/internal/marketdata"
	"github.com/Krzemon/Instruments-Graph/internal/models"
)

const (
	// correlationWindowDays is the trailing fetch window for the correlation
	// matrix, ending yesterday.
	correlationWindowDays = 365
	// riskFetchWindowDays is the trailing fetch window for risk scoring.
	riskFetchWindowDays = 60
	// riskReturnWindow is how many trailing returns feed the volatility.
	riskReturnWindow = 30
)

// analyticsService orchestrates the batch jobs: fetch history from the feed,
// run the engines, and persist results through the graph adapter.
type analyticsService struct {
	db    *gorm.DB
	feed  marketdata.Feed
	store *graph.Store
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, feed marketdata.Feed, store *graph.Store) AnalyticsServicer {
	return &analyticsService{db: db, feed: feed, store: store}
}

// RecalculateCorrelations recomputes the full pairwise correlation matrix
// over a 365-day window ending yesterday and upserts every edge. Each edge is
// written in its own transaction, so a mid-batch failure leaves the edges
// already written in place.
func (s *analyticsService) RecalculateCorrelations(ctx context.Context) (*CorrelationResult, error) {
	assets, err := s.tickeredAssets()
	if err != nil {
		return nil, err
	}
	if len(assets) < 2 {
		return nil, apperrors.WithMessage(apperrors.ErrInsufficientData, "At least 2 priced assets are required to compute correlations")
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -correlationWindowDays)

	series, err := s.fetchSeriesByAsset(ctx, assets, start, end)
	if err != nil {
		return nil, err
	}

	pairs, err := analytics.Correlations(series)
	if err != nil {
		if errors.Is(err, analytics.ErrInsufficientSeries) {
			return nil, apperrors.WithMessage(apperrors.ErrInsufficientData, "Fewer than 2 assets returned usable price history")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, pair := range pairs {
		if err := s.store.UpsertCorrelation(pair.AssetA, pair.AssetB, pair.Value); err != nil {
			return nil, err
		}
	}

	result := &CorrelationResult{
		AssetsUsed:   len(series),
		PairsWritten: len(pairs),
		Skipped:      len(assets) - len(series),
	}
	logger.Get().Infow("correlation batch complete",
		"assets_used", result.AssetsUsed,
		"pairs_written", result.PairsWritten,
		"assets_skipped", result.Skipped,
	)
	return result, nil
}

// UpdateRiskScores recomputes risk scores from a 60-day fetch window, scoring
// the volatility of the last 30 returns per asset. Every tickered asset gets
// a score: assets the feed knew nothing about score 0 rather than aborting
// the batch.
func (s *analyticsService) UpdateRiskScores(ctx context.Context) (*RiskResult, error) {
	assets, err := s.tickeredAssets()
	if err != nil {
		return nil, err
	}
	if len(assets) < 2 {
		return nil, apperrors.WithMessage(apperrors.ErrInsufficientData, "At least 2 priced assets are required to compute risk scores")
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -riskFetchWindowDays)

	series, err := s.fetchSeriesByAsset(ctx, assets, start, end)
	if err != nil {
		return nil, err
	}

	scores := analytics.RiskScores(series, riskReturnWindow)
	now := time.Now().UTC()

	scored := 0
	for _, asset := range assets {
		score, ok := scores[asset.ID]
		if !ok {
			// Feed had no data for this asset in the window.
			score = 0
		}
		if err := s.store.UpsertRiskScore(asset.ID, score, now); err != nil {
			return nil, err
		}
		scored++
	}

	logger.Get().Infow("risk batch complete", "assets_scored", scored)
	return &RiskResult{AssetsScored: scored}, nil
}

// RefreshAssetPrice refreshes a single asset's stored price from the feed's
// 5-day lookback. When no trading data exists in the window the previously
// stored price is preserved and Updated is false.
func (s *analyticsService) RefreshAssetPrice(ctx context.Context, assetID string) (*PriceRefreshResult, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !asset.HasTicker() {
		return nil, apperrors.ErrAssetNoTicker
	}

	price, found, err := s.feed.LatestClose(ctx, *asset.Ticker)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFeedUnavailable, err)
	}
	if !found {
		var stored models.Price
		if err := s.db.Where("asset_id = ?", assetID).First(&stored).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		logger.Get().Infow("no recent close, keeping stored price", "asset_id", assetID, "ticker", *asset.Ticker)
		return &PriceRefreshResult{AssetID: assetID, Updated: false, Price: stored.LastPrice}, nil
	}

	if err := s.store.UpsertPrice(assetID, price, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &PriceRefreshResult{AssetID: assetID, Updated: true, Price: price}, nil
}

// RefreshAllPrices refreshes every tickered asset's stored price from a bulk
// quote request. Tickers missing from the feed response keep their previous
// price; the run still succeeds.
func (s *analyticsService) RefreshAllPrices(ctx context.Context) (*BulkRefreshResult, error) {
	assets, err := s.tickeredAssets()
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return &BulkRefreshResult{}, nil
	}

	tickers := make([]string, len(assets))
	for i, a := range assets {
		tickers[i] = *a.Ticker
	}

	quotes, err := s.feed.BatchLatest(ctx, tickers)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFeedUnavailable, err)
	}

	now := time.Now().UTC()
	result := &BulkRefreshResult{}
	for _, asset := range assets {
		quote, ok := quotes[*asset.Ticker]
		if !ok {
			result.Skipped++
			continue
		}
		if err := s.store.UpsertPrice(asset.ID, quote, now); err != nil {
			return nil, err
		}
		result.Updated++
	}

	logger.Get().Infow("price refresh complete", "updated", result.Updated, "skipped", result.Skipped)
	return result, nil
}

// tickeredAssets returns the batch universe: assets with a ticker.
func (s *analyticsService) tickeredAssets() ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Where("ticker IS NOT NULL AND ticker <> ''").Order("id").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// fetchSeriesByAsset fetches history for the given assets and keys the result
// by asset ID. A total feed failure aborts; an empty result means the feed
// was reachable but had nothing for any ticker.
func (s *analyticsService) fetchSeriesByAsset(ctx context.Context, assets []models.Asset, start, end time.Time) (map[string]marketdata.Series, error) {
	tickers := make([]string, len(assets))
	for i, a := range assets {
		tickers[i] = *a.Ticker
	}

	history, err := s.feed.History(ctx, tickers, start, end)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFeedUnavailable, err)
	}
	if len(history) == 0 {
		return nil, apperrors.ErrNoMarketData
	}

	series := make(map[string]marketdata.Series, len(history))
	for _, asset := range assets {
		if s, ok := history[*asset.Ticker]; ok {
			series[asset.ID] = s
		}
	}
	return series, nil
}
