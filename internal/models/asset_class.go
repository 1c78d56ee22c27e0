package models

// AssetClass is a taxonomy node (e.g. "Equity", "Crypto"). Many assets belong
// to one class; class names are unique.
type AssetClass struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}
