package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Krzemon/Instruments-Graph/internal/errors"
	"github.com/Krzemon/Instruments-Graph/internal/models"
	"github.com/Krzemon/Instruments-Graph/internal/pagination"
)

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates an asset node, linking it to its class (created on
// demand) and creating the one-to-one Price companion with a zero price.
func (s *assetService) CreateAsset(id, name, className string, ticker *string, currency string) (*models.Asset, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if strings.TrimSpace(className) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset class is required")
	}
	if currency == "" {
		currency = "USD"
	}
	if ticker != nil && strings.TrimSpace(*ticker) == "" {
		ticker = nil
	}

	var class models.AssetClass
	if err := s.db.Where("name = ?", className).FirstOrCreate(&class, models.AssetClass{Name: className}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	asset := &models.Asset{
		ID:       id,
		Name:     name,
		Ticker:   ticker,
		Currency: strings.ToUpper(currency),
		ClassID:  class.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return err
		}
		price := &models.Price{AssetID: asset.ID, LastPrice: 0, LastPriceTS: time.Now().UTC()}
		return tx.Create(price).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateAsset
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	asset.Class = class
	return asset, nil
}

// GetAsset returns a single asset joined with its class and stored price.
func (s *assetService) GetAsset(id string) (*AssetView, error) {
	var view AssetView
	res := s.db.Raw(`
		SELECT
			a.id, a.name, a.ticker, ac.name AS asset_class, a.currency,
			a.risk_score, a.risk_last_update,
			p.last_price AS value, p.last_price_ts
		FROM assets a
		JOIN asset_classes ac ON ac.id = a.class_id
		JOIN prices p ON p.asset_id = a.id
		WHERE a.id = ?`, id).Scan(&view)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrAssetNotFound
	}
	return &view, nil
}

// ListAssets returns a paginated list of assets ordered by ID.
func (s *assetService) ListAssets(page pagination.PageRequest) (*pagination.PageResponse[AssetView], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Asset{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := []AssetView{}
	err := s.db.Raw(`
		SELECT
			a.id, a.name, a.ticker, ac.name AS asset_class, a.currency,
			a.risk_score, a.risk_last_update,
			p.last_price AS value, p.last_price_ts
		FROM assets a
		JOIN asset_classes ac ON ac.id = a.class_id
		JOIN prices p ON p.asset_id = a.id
		ORDER BY a.id
		LIMIT ? OFFSET ?`, page.PageSize, page.Offset()).Scan(&views).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(views, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteAsset removes an asset and everything hanging off it: its price
// companion, its holding, and any correlation edges touching it.
func (s *assetService) DeleteAsset(id string) error {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAssetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", id).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_a_id = ? OR asset_b_id = ?", id, id).Delete(&models.Correlation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", id).Delete(&models.Price{}).Error; err != nil {
			return err
		}
		return tx.Delete(&asset).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListTickered returns every asset that has a ticker and can therefore be
// priced and scored by the batch jobs.
func (s *assetService) ListTickered() ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Where("ticker IS NOT NULL AND ticker <> ''").Order("id").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
