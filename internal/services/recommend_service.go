package services

import (
	"gorm.io/gorm"

	apperrors "github.com/Krzemon/Instruments-Graph/internal/errors"
	"github.com/Krzemon/Instruments-Graph/internal/graph"
	"github.com/Krzemon/Instruments-Graph/internal/models"
)

// defaultRecommendLimit bounds recommendation responses when no limit is given.
const defaultRecommendLimit = 5

// recommendService serves read-only projections over the persisted
// correlation and risk data. It never recomputes anything.
type recommendService struct {
	db    *gorm.DB
	store *graph.Store
}

// NewRecommendService creates a new RecommendServicer.
func NewRecommendService(db *gorm.DB, store *graph.Store) RecommendServicer {
	return &recommendService{db: db, store: store}
}

// TopCorrelated returns the assets most strongly correlated with the given
// asset, by absolute edge value.
func (s *recommendService) TopCorrelated(assetID string, limit int) ([]graph.CorrelatedAsset, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}

	var count int64
	if err := s.db.Model(&models.Asset{}).Where("id = ?", assetID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrAssetNotFound
	}

	return s.store.TopCorrelated(assetID, limit)
}

// Diversifiers returns non-held assets with the lowest average absolute
// correlation to the current holdings.
func (s *recommendService) Diversifiers(limit int) ([]graph.Diversifier, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	return s.store.Diversifiers(limit)
}
