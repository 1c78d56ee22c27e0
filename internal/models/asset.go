package models

import "time"

// Asset represents an investment instrument node in the portfolio graph.
// The ID is a stable, user-assigned identifier (e.g. "AAPL", "BTC").
// RiskScore and RiskLastUpdate are nil until the risk job first runs and are
// only ever written through the graph persistence adapter.
type Asset struct {
	ID             string     `gorm:"primaryKey;size:32" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Ticker         *string    `gorm:"size:32" json:"ticker,omitempty"`
	Currency       string     `gorm:"not null;default:'USD'" json:"currency"`
	RiskScore      *int       `json:"risk_score,omitempty"`
	RiskLastUpdate *time.Time `json:"risk_last_update,omitempty"`
	ClassID        string     `gorm:"type:uuid;not null" json:"class_id"`
	Class          AssetClass `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HasTicker reports whether the asset can be priced by the market data feed.
func (a *Asset) HasTicker() bool {
	return a.Ticker != nil && *a.Ticker != ""
}
