// Package graph is the persistence adapter for the portfolio graph. It is the
// sole writer path for derived data (correlation edges, risk scores, prices):
// every write is a parameter-bound, per-item atomic upsert, safe to retry.
// It also serves the read projections consumed by the recommendation and
// portfolio endpoints.
package graph

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/Krzemon/Instruments-Graph/internal/errors"
	"github.com/Krzemon/Instruments-Graph/internal/models"
)

// Store wraps the graph database with idempotent upserts and read projections.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CanonicalPair orders two asset ids lexically so each unordered pair maps to
// exactly one stored edge.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// UpsertCorrelation creates or overwrites the correlation edge for the
// unordered pair {a, b}. A reversed duplicate can never be created because
// the pair is canonicalized before the write.
func (s *Store) UpsertCorrelation(a, b string, value float64) error {
	if a == b {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Correlation edge endpoints must differ")
	}
	a, b = CanonicalPair(a, b)

	edge := models.Correlation{AssetAID: a, AssetBID: b, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "asset_a_id"}, {Name: "asset_b_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&edge).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpsertRiskScore sets risk_score and risk_last_update on an existing asset.
// It never creates assets; a missing asset is reported as not found.
func (s *Store) UpsertRiskScore(assetID string, score int, ts time.Time) error {
	res := s.db.Model(&models.Asset{}).Where("id = ?", assetID).Updates(map[string]interface{}{
		"risk_score":       score,
		"risk_last_update": ts,
	})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// UpsertPrice sets last_price and last_price_ts on an asset's Price companion.
// The companion row is created at asset creation time; its absence means the
// asset does not exist.
func (s *Store) UpsertPrice(assetID string, price float64, ts time.Time) error {
	res := s.db.Model(&models.Price{}).Where("asset_id = ?", assetID).Updates(map[string]interface{}{
		"last_price":    price,
		"last_price_ts": ts,
	})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// CorrelatedAsset is one row of the top-correlated projection.
type CorrelatedAsset struct {
	AssetID string  `json:"asset_id"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
}

// TopCorrelated returns the assets most strongly correlated (by absolute
// value) with the given asset, strongest first.
func (s *Store) TopCorrelated(assetID string, limit int) ([]CorrelatedAsset, error) {
	rows := []CorrelatedAsset{}
	err := s.db.Raw(`
		SELECT
			CASE WHEN c.asset_a_id = @id THEN c.asset_b_id ELSE c.asset_a_id END AS asset_id,
			a.name AS name,
			c.value AS value
		FROM correlations c
		JOIN assets a ON a.id = CASE WHEN c.asset_a_id = @id THEN c.asset_b_id ELSE c.asset_a_id END
		WHERE c.asset_a_id = @id OR c.asset_b_id = @id
		ORDER BY ABS(c.value) DESC
		LIMIT @limit`,
		map[string]interface{}{"id": assetID, "limit": limit},
	).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// Diversifier is one row of the diversifier projection: a non-held asset with
// its average absolute correlation against the current holdings.
type Diversifier struct {
	AssetID        string  `json:"asset_id"`
	Name           string  `json:"name"`
	AvgCorrelation float64 `json:"avg_correlation"`
	RiskScore      *int    `json:"risk_score,omitempty"`
}

// Diversifiers returns non-held assets ordered by ascending average absolute
// correlation to the portfolio's holdings, lower risk first on ties.
// Candidates with no correlation edge to any holding do not appear; the
// average is taken over whichever edges exist.
func (s *Store) Diversifiers(limit int) ([]Diversifier, error) {
	rows := []Diversifier{}
	err := s.db.Raw(`
		SELECT
			a.id AS asset_id,
			a.name AS name,
			AVG(ABS(c.value)) AS avg_correlation,
			a.risk_score AS risk_score
		FROM assets a
		JOIN correlations c
			ON (c.asset_a_id = a.id AND c.asset_b_id IN (SELECT h.asset_id FROM holdings h))
			OR (c.asset_b_id = a.id AND c.asset_a_id IN (SELECT h.asset_id FROM holdings h))
		WHERE a.id NOT IN (SELECT h.asset_id FROM holdings h)
		GROUP BY a.id, a.name, a.risk_score
		ORDER BY avg_correlation ASC, COALESCE(a.risk_score, 101) ASC
		LIMIT @limit`,
		map[string]interface{}{"limit": limit},
	).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// HoldingValue is one holding joined with its asset, class, and stored price.
type HoldingValue struct {
	AssetID    string  `json:"asset_id"`
	Name       string  `json:"name"`
	AssetClass string  `json:"asset_class"`
	Currency   string  `json:"currency"`
	Amount     float64 `json:"amount"`
	LastPrice  float64 `json:"last_price"`
}

// HoldingValues returns every holding with the data needed for valuation.
func (s *Store) HoldingValues() ([]HoldingValue, error) {
	rows := []HoldingValue{}
	err := s.db.Raw(`
		SELECT
			h.asset_id AS asset_id,
			a.name AS name,
			ac.name AS asset_class,
			a.currency AS currency,
			h.amount AS amount,
			p.last_price AS last_price
		FROM holdings h
		JOIN assets a ON a.id = h.asset_id
		JOIN asset_classes ac ON ac.id = a.class_id
		JOIN prices p ON p.asset_id = a.id
		ORDER BY h.asset_id`).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// GraphNode is an asset node of the portfolio graph projection.
type GraphNode struct {
	AssetID string `json:"asset_id"`
	Name    string `json:"name"`
}

// GraphLink is a correlation edge between two held assets.
type GraphLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// PortfolioGraph bundles the nodes and links of the held-asset subgraph.
type PortfolioGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// HeldGraph returns the held assets and the correlation edges between them.
func (s *Store) HeldGraph() (*PortfolioGraph, error) {
	nodes := []GraphNode{}
	err := s.db.Raw(`
		SELECT h.asset_id AS asset_id, a.name AS name
		FROM holdings h
		JOIN assets a ON a.id = h.asset_id
		ORDER BY h.asset_id`).Scan(&nodes).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	links := []GraphLink{}
	err = s.db.Raw(`
		SELECT c.asset_a_id AS source, c.asset_b_id AS target, c.value AS value
		FROM correlations c
		WHERE c.asset_a_id IN (SELECT h.asset_id FROM holdings h)
		  AND c.asset_b_id IN (SELECT h.asset_id FROM holdings h)
		ORDER BY c.asset_a_id, c.asset_b_id`).Scan(&links).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &PortfolioGraph{Nodes: nodes, Links: links}, nil
}
