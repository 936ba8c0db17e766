package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BalanceBreakdown maps account types to their aggregated balance in cents.
// Stored as a JSON column.
type BalanceBreakdown map[AccountType]int64

// Value implements driver.Valuer.
func (b BalanceBreakdown) Value() (driver.Value, error) {
	if b == nil {
		return "{}", nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (b *BalanceBreakdown) Scan(value interface{}) error {
	return scanJSON(value, b)
}

// NetWorthSnapshot holds one user's totals for one calendar day. At most one
// row exists per (user, date); same-day writes overwrite. This is append-only
// time-series data, so no Base embed and no soft deletes.
type NetWorthSnapshot struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	UserID       uint             `gorm:"not null;uniqueIndex:idx_snapshots_user_date" json:"user_id"`
	SnapshotDate time.Time        `gorm:"not null;uniqueIndex:idx_snapshots_user_date" json:"snapshot_date"`
	Assets       int64            `gorm:"type:bigint;not null" json:"assets"`
	Liabilities  int64            `gorm:"type:bigint;not null" json:"liabilities"`
	NetWorth     int64            `gorm:"type:bigint;not null" json:"net_worth"`
	Breakdown    BalanceBreakdown `gorm:"type:text" json:"breakdown"`
	CreatedAt    time.Time        `json:"created_at"`
}

// scanJSON decodes a JSON column that may arrive as []byte or string.
func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
}
