package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Krzemon/Instruments-Graph/internal/graph"
	"github.com/Krzemon/Instruments-Graph/internal/marketdata"
	"github.com/Krzemon/Instruments-Graph/internal/models"
	"github.com/Krzemon/Instruments-Graph/internal/testutil"

	"gorm.io/gorm"
)

// stubFeed serves canned market data keyed by ticker. A non-nil err simulates
// a total feed outage on every call.
type stubFeed struct {
	history map[string]marketdata.Series
	latest  map[string]float64
	err     error
}

func (f *stubFeed) History(_ context.Context, tickers []string, _, _ time.Time) (map[string]marketdata.Series, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]marketdata.Series)
	for _, t := range tickers {
		if s, ok := f.history[t]; ok {
			out[t] = s
		}
	}
	return out, nil
}

func (f *stubFeed) LatestClose(_ context.Context, ticker string) (float64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	price, ok := f.latest[ticker]
	return price, ok, nil
}

func (f *stubFeed) BatchLatest(_ context.Context, tickers []string) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]float64)
	for _, t := range tickers {
		if price, ok := f.latest[t]; ok {
			out[t] = price
		}
	}
	return out, nil
}

func testSeries(closes ...float64) marketdata.Series {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(marketdata.Series, len(closes))
	for i, c := range closes {
		s[i] = marketdata.Point{Date: base.AddDate(0, 0, i), Close: c}
	}
	return s
}

func newTestAnalyticsService(db *gorm.DB, feed marketdata.Feed) AnalyticsServicer {
	return NewAnalyticsService(db, feed, graph.NewStore(db))
}

func TestRecalculateCorrelations(t *testing.T) {
	t.Run("writes_every_pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		testutil.CreateTestAsset(t, db, "MSFT")
		testutil.CreateTestAsset(t, db, "GLD")
		svc := newTestAnalyticsService(db, &stubFeed{history: map[string]marketdata.Series{
			"AAPL": testSeries(1, 2, 3, 4, 5),
			"MSFT": testSeries(2, 4, 6, 8, 10),
			"GLD":  testSeries(5, 4, 3, 2, 1),
		}})

		result, err := svc.RecalculateCorrelations(context.Background())
		testutil.AssertNoError(t, err)

		if result.AssetsUsed != 3 || result.PairsWritten != 3 || result.Skipped != 0 {
			t.Errorf("unexpected result: %+v", result)
		}

		var edges []models.Correlation
		if err := db.Order("asset_a_id, asset_b_id").Find(&edges).Error; err != nil {
			t.Fatalf("failed to load edges: %v", err)
		}
		if len(edges) != 3 {
			t.Fatalf("expected 3 edges, got %d", len(edges))
		}
		for _, e := range edges {
			if e.AssetAID >= e.AssetBID {
				t.Errorf("edge (%s, %s) not canonical", e.AssetAID, e.AssetBID)
			}
		}
	})

	t.Run("rerun_overwrites_without_duplicates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		testutil.CreateTestAsset(t, db, "MSFT")
		svc := newTestAnalyticsService(db, &stubFeed{history: map[string]marketdata.Series{
			"AAPL": testSeries(1, 2, 3, 4, 5),
			"MSFT": testSeries(5, 4, 3, 2, 1),
		}})

		_, err := svc.RecalculateCorrelations(context.Background())
		testutil.AssertNoError(t, err)
		_, err = svc.RecalculateCorrelations(context.Background())
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Correlation{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 edge after rerun, got %d", count)
		}
	})

	t.Run("skips_tickers_without_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		testutil.CreateTestAsset(t, db, "MSFT")
		testutil.CreateTestAsset(t, db, "DELISTED")
		svc := newTestAnalyticsService(db, &stubFeed{history: map[string]marketdata.Series{
			"AAPL": testSeries(1, 2, 3, 4, 5),
			"MSFT": testSeries(2, 4, 6, 8, 10),
		}})

		result, err := svc.RecalculateCorrelations(context.Background())
		testutil.AssertNoError(t, err)

		if result.AssetsUsed != 2 || result.Skipped != 1 {
			t.Errorf("expected 2 used / 1 skipped, got %+v", result)
		}
		var count int64
		db.Model(&models.Correlation{}).Where("asset_a_id = ? OR asset_b_id = ?", "DELISTED", "DELISTED").Count(&count)
		if count != 0 {
			t.Errorf("expected no edges touching the skipped asset, got %d", count)
		}
	})

	t.Run("fewer_than_two_assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		svc := newTestAnalyticsService(db, &stubFeed{})

		_, err := svc.RecalculateCorrelations(context.Background())
		testutil.AssertAppError(t, err, "INSUFFICIENT_DATA")
	})

	t.Run("tickerless_assets_not_counted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		testutil.CreateTestTickerlessAsset(t, db, "CASH")
		svc := newTestAnalyticsService(db, &stubFeed{})

		_, err := svc.RecalculateCorrelations(context.Background())
		testutil.AssertAppError(t, err, "INSUFFICIENT_DATA")
	})

	t.Run("feed_outage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		testutil.CreateTestAsset(t, db, "MSFT")
		svc := newTestAnalyticsService(db, &stubFeed{err: errors.New("connection refused")})

		_, err := svc.RecalculateCorrelations(context.Background())
		testutil.AssertAppError(t, err, "FEED_UNAVAILABLE")

		var count int64
		db.Model(&models.Correlation{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no edges written on outage, got %d", count)
		}
	})

	t.Run("feed_empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		testutil.CreateTestAsset(t, db, "MSFT")
		svc := newTestAnalyticsService(db, &stubFeed{})

		_, err := svc.RecalculateCorrelations(context.Background())
		testutil.AssertAppError(t, err, "NO_MARKET_DATA")
	})
}

func TestUpdateRiskScores(t *testing.T) {
	t.Run("scores_every_tickered_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "CALM")
		testutil.CreateTestAsset(t, db, "WILD")
		testutil.CreateTestAsset(t, db, "UNKNOWN")
		svc := newTestAnalyticsService(db, &stubFeed{history: map[string]marketdata.Series{
			"CALM": testSeries(100, 100.1, 100.2, 100.3, 100.4, 100.5),
			"WILD": testSeries(100, 120, 90, 130, 80, 140),
		}})

		result, err := svc.UpdateRiskScores(context.Background())
		testutil.AssertNoError(t, err)
		if result.AssetsScored != 3 {
			t.Errorf("expected 3 assets scored, got %d", result.AssetsScored)
		}

		score := func(id string) int {
			var a models.Asset
			if err := db.First(&a, "id = ?", id).Error; err != nil {
				t.Fatalf("failed to load %s: %v", id, err)
			}
			if a.RiskScore == nil {
				t.Fatalf("expected %s to have a risk score", id)
			}
			if a.RiskLastUpdate == nil {
				t.Errorf("expected %s to have risk_last_update set", id)
			}
			return *a.RiskScore
		}

		if got := score("WILD"); got != 100 {
			t.Errorf("expected most volatile asset to score 100, got %d", got)
		}
		if got := score("CALM"); got != 0 {
			t.Errorf("expected least volatile asset to score 0, got %d", got)
		}
		// Missing from the feed response still gets a persisted zero score.
		if got := score("UNKNOWN"); got != 0 {
			t.Errorf("expected no-data asset to score 0, got %d", got)
		}
	})

	t.Run("fewer_than_two_assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		svc := newTestAnalyticsService(db, &stubFeed{})

		_, err := svc.UpdateRiskScores(context.Background())
		testutil.AssertAppError(t, err, "INSUFFICIENT_DATA")
	})

	t.Run("feed_outage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		testutil.CreateTestAsset(t, db, "MSFT")
		svc := newTestAnalyticsService(db, &stubFeed{err: errors.New("dns failure")})

		_, err := svc.UpdateRiskScores(context.Background())
		testutil.AssertAppError(t, err, "FEED_UNAVAILABLE")
	})
}

func TestRefreshAssetPrice(t *testing.T) {
	t.Run("updates_from_feed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		svc := newTestAnalyticsService(db, &stubFeed{latest: map[string]float64{"AAPL": 191.2}})

		result, err := svc.RefreshAssetPrice(context.Background(), "AAPL")
		testutil.AssertNoError(t, err)

		if !result.Updated || result.Price != 191.2 {
			t.Errorf("unexpected result: %+v", result)
		}
		var price models.Price
		if err := db.First(&price, "asset_id = ?", "AAPL").Error; err != nil {
			t.Fatalf("failed to load price: %v", err)
		}
		if price.LastPrice != 191.2 {
			t.Errorf("expected persisted price 191.2, got %v", price.LastPrice)
		}
	})

	t.Run("no_recent_close_preserves_stored_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		testutil.SetTestPrice(t, db, "AAPL", 150)
		svc := newTestAnalyticsService(db, &stubFeed{})

		result, err := svc.RefreshAssetPrice(context.Background(), "AAPL")
		testutil.AssertNoError(t, err)

		if result.Updated {
			t.Error("expected Updated=false when the feed has no recent close")
		}
		if result.Price != 150 {
			t.Errorf("expected stored price 150 to be reported, got %v", result.Price)
		}
	})

	t.Run("unknown_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newTestAnalyticsService(db, &stubFeed{})

		_, err := svc.RefreshAssetPrice(context.Background(), "GHOST")
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})

	t.Run("tickerless_asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestTickerlessAsset(t, db, "CASH")
		svc := newTestAnalyticsService(db, &stubFeed{})

		_, err := svc.RefreshAssetPrice(context.Background(), "CASH")
		testutil.AssertAppError(t, err, "ASSET_NO_TICKER")
	})

	t.Run("feed_outage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		svc := newTestAnalyticsService(db, &stubFeed{err: errors.New("timeout")})

		_, err := svc.RefreshAssetPrice(context.Background(), "AAPL")
		testutil.AssertAppError(t, err, "FEED_UNAVAILABLE")
	})
}

func TestRefreshAllPrices(t *testing.T) {
	t.Run("partial_response", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestAsset(t, db, "AAPL")
		testutil.CreateTestAsset(t, db, "MSFT")
		testutil.CreateTestAsset(t, db, "DELISTED")
		testutil.SetTestPrice(t, db, "DELISTED", 42)
		svc := newTestAnalyticsService(db, &stubFeed{latest: map[string]float64{
			"AAPL": 190,
			"MSFT": 410,
		}})

		result, err := svc.RefreshAllPrices(context.Background())
		testutil.AssertNoError(t, err)

		if result.Updated != 2 || result.Skipped != 1 {
			t.Errorf("expected 2 updated / 1 skipped, got %+v", result)
		}
		var price models.Price
		if err := db.First(&price, "asset_id = ?", "DELISTED").Error; err != nil {
			t.Fatalf("failed to load price: %v", err)
		}
		if price.LastPrice != 42 {
			t.Errorf("expected skipped asset to keep price 42, got %v", price.LastPrice)
		}
	})

	t.Run("no_tickered_assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestTickerlessAsset(t, db, "CASH")
		svc := newTestAnalyticsService(db, &stubFeed{})

		result, err := svc.RefreshAllPrices(context.Background())
		testutil.AssertNoError(t, err)
		if result.Updated != 0 || result.Skipped != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})
}
