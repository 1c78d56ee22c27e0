package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Krzemon/Instruments-Graph/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestClass creates an asset class, reusing it if the name exists.
func CreateTestClass(t *testing.T, db *gorm.DB, name string) *models.AssetClass {
	t.Helper()

	class := &models.AssetClass{Name: name}
	if err := db.Where("name = ?", name).FirstOrCreate(class, models.AssetClass{Name: name}).Error; err != nil {
		t.Fatalf("failed to create test asset class: %v", err)
	}
	return class
}

// CreateTestAsset creates an asset with a ticker equal to its ID, a class,
// and a zero-price companion row.
func CreateTestAsset(t *testing.T, db *gorm.DB, id string) *models.Asset {
	t.Helper()
	return CreateTestAssetInClass(t, db, id, "Equity")
}

// CreateTestAssetInClass creates an asset in the named class.
func CreateTestAssetInClass(t *testing.T, db *gorm.DB, id, className string) *models.Asset {
	t.Helper()

	class := CreateTestClass(t, db, className)
	ticker := id
	asset := &models.Asset{
		ID:       id,
		Name:     fmt.Sprintf("Test Asset %s %d", id, nextID()),
		Ticker:   &ticker,
		Currency: "USD",
		ClassID:  class.ID,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}

	price := &models.Price{AssetID: id, LastPrice: 0, LastPriceTS: time.Now().UTC()}
	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create test price: %v", err)
	}
	return asset
}

// CreateTestTickerlessAsset creates an asset with no ticker; such assets are
// excluded from the batch jobs.
func CreateTestTickerlessAsset(t *testing.T, db *gorm.DB, id string) *models.Asset {
	t.Helper()

	class := CreateTestClass(t, db, "Equity")
	asset := &models.Asset{
		ID:       id,
		Name:     fmt.Sprintf("Test Asset %s %d", id, nextID()),
		Currency: "USD",
		ClassID:  class.ID,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}

	price := &models.Price{AssetID: id, LastPrice: 0, LastPriceTS: time.Now().UTC()}
	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create test price: %v", err)
	}
	return asset
}

// CreateTestHolding creates a portfolio holding for the given asset.
func CreateTestHolding(t *testing.T, db *gorm.DB, assetID string, amount float64) *models.Holding {
	t.Helper()

	holding := &models.Holding{AssetID: assetID, Amount: amount}
	if err := db.Create(holding).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return holding
}

// SetTestPrice overwrites the stored price for an asset.
func SetTestPrice(t *testing.T, db *gorm.DB, assetID string, price float64) {
	t.Helper()

	err := db.Model(&models.Price{}).Where("asset_id = ?", assetID).Updates(map[string]interface{}{
		"last_price":    price,
		"last_price_ts": time.Now().UTC(),
	}).Error
	if err != nil {
		t.Fatalf("failed to set test price: %v", err)
	}
}
