package models

// Correlation is a CORRELATED edge between two distinct assets. Edges are
// stored once per unordered pair with AssetAID < AssetBID lexically; the
// graph adapter enforces the ordering and overwrites stale values in place.
type Correlation struct {
	Base
	AssetAID string  `gorm:"size:32;not null;uniqueIndex:uq_correlations_pair" json:"asset_a_id"`
	AssetBID string  `gorm:"size:32;not null;uniqueIndex:uq_correlations_pair" json:"asset_b_id"`
	Value    float64 `gorm:"not null" json:"value"`
}
