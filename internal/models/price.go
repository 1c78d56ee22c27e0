package models

import "time"

// Price is the one-to-one "has current price" companion of an Asset.
// It is created together with its asset and never deleted independently.
type Price struct {
	Base
	AssetID     string    `gorm:"size:32;not null;uniqueIndex" json:"asset_id"`
	LastPrice   float64   `gorm:"not null;default:0" json:"last_price"`
	LastPriceTS time.Time `json:"last_price_ts"`
	Asset       Asset     `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE" json:"-"`
}
