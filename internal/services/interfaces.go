package services

import (
	"context"
	"time"

	"github.com/Krzemon/Instruments-Graph/internal/graph"
	"github.com/Krzemon/Instruments-Graph/internal/models"
	"github.com/Krzemon/Instruments-Graph/internal/pagination"
)

// AssetView is an asset joined with its class name and stored price, the
// shape the asset list and detail endpoints return.
type AssetView struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Ticker         *string    `json:"ticker,omitempty"`
	AssetClass     string     `json:"asset_class"`
	Currency       string     `json:"currency"`
	RiskScore      *int       `json:"risk_score,omitempty"`
	RiskLastUpdate *time.Time `json:"risk_last_update,omitempty"`
	Value          float64    `json:"value"`
	LastPriceTS    time.Time  `json:"last_price_ts"`
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(id, name, className string, ticker *string, currency string) (*models.Asset, error)
	GetAsset(id string) (*AssetView, error)
	ListAssets(page pagination.PageRequest) (*pagination.PageResponse[AssetView], error)
	DeleteAsset(id string) error
	ListTickered() ([]models.Asset, error)
}

// AssetValue is a holding's market value converted to the base currency.
type AssetValue struct {
	AssetID string  `json:"asset_id"`
	Value   float64 `json:"value"`
}

// ClassSlice is one asset class's share of the portfolio value.
type ClassSlice struct {
	Class   string  `json:"class"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// PortfolioServicer defines the contract for portfolio holding logic and the
// valuation projections built on top of it.
type PortfolioServicer interface {
	AddHolding(assetID string, amount float64) (*models.Holding, error)
	UpdateHolding(assetID string, amount float64) (*models.Holding, error)
	RemoveHolding(assetID string) error
	ListHoldings() ([]graph.HoldingValue, error)
	Values(ctx context.Context) ([]AssetValue, error)
	ClassDistribution(ctx context.Context) ([]ClassSlice, error)
	Graph() (*graph.PortfolioGraph, error)
}

// CorrelationResult summarizes one correlation batch run.
type CorrelationResult struct {
	AssetsUsed   int `json:"assets_used"`
	PairsWritten int `json:"pairs_written"`
	Skipped      int `json:"assets_skipped"`
}

// RiskResult summarizes one risk scoring batch run.
type RiskResult struct {
	AssetsScored int `json:"assets_scored"`
}

// PriceRefreshResult reports a single-asset price refresh. Updated is false
// when the feed had no data in the lookback window and the stored price was
// preserved.
type PriceRefreshResult struct {
	AssetID string  `json:"asset_id"`
	Updated bool    `json:"updated"`
	Price   float64 `json:"price"`
}

// BulkRefreshResult reports a bulk price refresh run.
type BulkRefreshResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// AnalyticsServicer defines the batch analytics jobs: correlation matrix
// recomputation, risk scoring, and price refresh.
type AnalyticsServicer interface {
	RecalculateCorrelations(ctx context.Context) (*CorrelationResult, error)
	UpdateRiskScores(ctx context.Context) (*RiskResult, error)
	RefreshAssetPrice(ctx context.Context, assetID string) (*PriceRefreshResult, error)
	RefreshAllPrices(ctx context.Context) (*BulkRefreshResult, error)
}

// RecommendServicer defines the read-only recommendation projections over
// persisted correlation and risk data.
type RecommendServicer interface {
	TopCorrelated(assetID string, limit int) ([]graph.CorrelatedAsset, error)
	Diversifiers(limit int) ([]graph.Diversifier, error)
}
