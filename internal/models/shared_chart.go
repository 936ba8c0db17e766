package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ChartType identifies what a shared chart displays.
type ChartType string

const (
	ChartTypeNetWorth ChartType = "net_worth"
)

// NetWorthPoint is one bucket of an aggregated net-worth series. The invariant
// NetWorth == Assets - Liabilities holds for every point.
type NetWorthPoint struct {
	Label       string    `json:"label"`
	Date        time.Time `json:"date"`
	Assets      int64     `json:"assets"`
	Liabilities int64     `json:"liabilities"`
	NetWorth    int64     `json:"net_worth"`
}

// SeriesSource tags how a series was reconstructed. The live fallback is a
// known approximation: without historical snapshots every bucket mirrors the
// current balances and only the final bucket is truly accurate.
type SeriesSource string

const (
	SourceHistoricalSnapshot SeriesSource = "historical_snapshot"
	SourceLiveFallback       SeriesSource = "live_fallback"
)

// ChartPayload is the frozen multi-timeframe snapshot stored on a share:
// a closed mapping from timeframe key to its point series. Stored as JSON.
type ChartPayload map[Timeframe][]NetWorthPoint

// Value implements driver.Valuer.
func (p ChartPayload) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (p *ChartPayload) Scan(value interface{}) error {
	return scanJSON(value, p)
}

// ShareSettings holds display options for the public share page.
type ShareSettings struct {
	DefaultTimeframe Timeframe `json:"default_timeframe"`
}

// Value implements driver.Valuer.
func (s ShareSettings) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (s *ShareSettings) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// SharedChart is a publication record for a user's chart. The token, not the
// user session, is the authorization boundary for anonymous reads. One row
// exists per (user, chart type); regenerating a share updates it in place.
type SharedChart struct {
	Base
	UserID    uint          `gorm:"not null;uniqueIndex:idx_shared_charts_user_chart" json:"user_id"`
	ChartType ChartType     `gorm:"not null;uniqueIndex:idx_shared_charts_user_chart" json:"chart_type"`
	Token     string        `gorm:"uniqueIndex;size:64;not null" json:"token"`
	Title     string        `json:"title"`
	ChartData ChartPayload  `gorm:"type:text" json:"chart_data"`
	Settings  ShareSettings `gorm:"type:text" json:"settings"`
	IsActive  bool          `gorm:"default:true" json:"is_active"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
	ViewCount int64         `gorm:"type:bigint;not null;default:0" json:"view_count"`
}
