package models

// Holding links the single portfolio to an asset with a non-negative amount.
// A holding is removed when its amount reaches zero.
type Holding struct {
	Base
	AssetID string  `gorm:"size:32;not null;uniqueIndex" json:"asset_id"`
	Amount  float64 `gorm:"not null" json:"amount"`
	Asset   Asset   `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"asset,omitempty"`
}
