package services

import (
	"testing"

	"github.com/Krzemon/Instruments-Graph/internal/graph"
	"github.com/Krzemon/Instruments-Graph/internal/testutil"
)

func TestRecommendTopCorrelated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := graph.NewStore(db)
	svc := NewRecommendService(db, store)
	for _, id := range []string{"AAPL", "MSFT", "GLD", "TLT", "BTC", "ETH", "SPY"} {
		testutil.CreateTestAsset(t, db, id)
	}
	testutil.AssertNoError(t, store.UpsertCorrelation("AAPL", "MSFT", 0.9))
	testutil.AssertNoError(t, store.UpsertCorrelation("AAPL", "GLD", -0.95))
	testutil.AssertNoError(t, store.UpsertCorrelation("AAPL", "TLT", 0.3))
	testutil.AssertNoError(t, store.UpsertCorrelation("AAPL", "BTC", 0.5))
	testutil.AssertNoError(t, store.UpsertCorrelation("AAPL", "ETH", 0.4))
	testutil.AssertNoError(t, store.UpsertCorrelation("AAPL", "SPY", 0.85))

	t.Run("default_limit", func(t *testing.T) {
		rows, err := svc.TopCorrelated("AAPL", 0)
		testutil.AssertNoError(t, err)
		if len(rows) != 5 {
			t.Fatalf("expected default limit of 5, got %d rows", len(rows))
		}
		if rows[0].AssetID != "GLD" {
			t.Errorf("expected GLD first by |value|, got %s", rows[0].AssetID)
		}
	})

	t.Run("explicit_limit", func(t *testing.T) {
		rows, err := svc.TopCorrelated("AAPL", 2)
		testutil.AssertNoError(t, err)
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
	})

	t.Run("unknown_asset", func(t *testing.T) {
		_, err := svc.TopCorrelated("GHOST", 5)
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}

func TestRecommendDiversifiers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store := graph.NewStore(db)
	svc := NewRecommendService(db, store)
	for _, id := range []string{"AAPL", "GLD", "TLT"} {
		testutil.CreateTestAsset(t, db, id)
	}
	testutil.CreateTestHolding(t, db, "AAPL", 1)
	testutil.AssertNoError(t, store.UpsertCorrelation("GLD", "AAPL", 0.1))
	testutil.AssertNoError(t, store.UpsertCorrelation("TLT", "AAPL", 0.7))

	rows, err := svc.Diversifiers(0)
	testutil.AssertNoError(t, err)
	if len(rows) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(rows))
	}
	if rows[0].AssetID != "GLD" {
		t.Errorf("expected least correlated candidate first, got %s", rows[0].AssetID)
	}
}
