package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Krzemon/Instruments-Graph/internal/errors"
	"github.com/Krzemon/Instruments-Graph/internal/graph"
	"github.com/Krzemon/Instruments-Graph/internal/marketdata"
	"github.com/Krzemon/Instruments-Graph/internal/models"
)

// portfolioService handles the single portfolio's holdings and valuations.
type portfolioService struct {
	db    *gorm.DB
	store *graph.Store
	fx    *marketdata.ForexConverter
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, store *graph.Store, fx *marketdata.ForexConverter) PortfolioServicer {
	return &portfolioService{db: db, store: store, fx: fx}
}

// AddHolding adds amount to the asset's holding, creating it if absent.
func (s *portfolioService) AddHolding(assetID string, amount float64) (*models.Holding, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}
	if err := s.assetExists(assetID); err != nil {
		return nil, err
	}

	var holding models.Holding
	err := s.db.Where("asset_id = ?", assetID).First(&holding).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		holding = models.Holding{AssetID: assetID, Amount: amount}
		if err := s.db.Create(&holding).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	default:
		holding.Amount += amount
		if err := s.db.Model(&holding).Update("amount", holding.Amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &holding, nil
}

// UpdateHolding replaces the holding's amount. Zero removes the holding (nil
// is returned); negative amounts are rejected.
func (s *portfolioService) UpdateHolding(assetID string, amount float64) (*models.Holding, error) {
	if amount < 0 {
		return nil, apperrors.ErrNegativeAmount
	}
	if amount == 0 {
		if err := s.RemoveHolding(assetID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var holding models.Holding
	if err := s.db.Where("asset_id = ?", assetID).First(&holding).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHoldingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	holding.Amount = amount
	if err := s.db.Model(&holding).Update("amount", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &holding, nil
}

// RemoveHolding deletes the holding for the given asset.
func (s *portfolioService) RemoveHolding(assetID string) error {
	res := s.db.Where("asset_id = ?", assetID).Delete(&models.Holding{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrHoldingNotFound
	}
	return nil
}

// ListHoldings returns every holding joined with asset, class, and price.
func (s *portfolioService) ListHoldings() ([]graph.HoldingValue, error) {
	return s.store.HoldingValues()
}

// Values returns each holding's market value (amount × stored price)
// converted to the configured base currency.
func (s *portfolioService) Values(ctx context.Context) ([]AssetValue, error) {
	rows, err := s.store.HoldingValues()
	if err != nil {
		return nil, err
	}

	values := make([]AssetValue, 0, len(rows))
	for _, row := range rows {
		converted, err := s.fx.Convert(ctx, row.Amount*row.LastPrice, row.Currency)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrFeedUnavailable, err)
		}
		values = append(values, AssetValue{AssetID: row.AssetID, Value: converted})
	}
	return values, nil
}

// ClassDistribution aggregates holding values (in the base currency) by asset
// class and reports each class's percentage of the total.
func (s *portfolioService) ClassDistribution(ctx context.Context) ([]ClassSlice, error) {
	rows, err := s.store.HoldingValues()
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	order := []string{}
	var total float64
	for _, row := range rows {
		value, err := s.fx.Convert(ctx, row.Amount*row.LastPrice, row.Currency)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrFeedUnavailable, err)
		}
		if _, seen := totals[row.AssetClass]; !seen {
			order = append(order, row.AssetClass)
		}
		totals[row.AssetClass] += value
		total += value
	}

	slices := make([]ClassSlice, 0, len(order))
	for _, class := range order {
		slice := ClassSlice{Class: class, Value: totals[class]}
		if total > 0 {
			slice.Percent = 100 * totals[class] / total
		}
		slices = append(slices, slice)
	}
	return slices, nil
}

// Graph returns the held-asset subgraph for the frontend force layout.
func (s *portfolioService) Graph() (*graph.PortfolioGraph, error) {
	return s.store.HeldGraph()
}

// assetExists verifies the asset node is present before linking a holding.
func (s *portfolioService) assetExists(assetID string) error {
	var count int64
	if err := s.db.Model(&models.Asset{}).Where("id = ?", assetID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}
