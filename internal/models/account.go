package models

import "time"

// AccountType classifies a linked financial account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
)

// IsAsset reports whether balances of this type count toward total assets.
func (t AccountType) IsAsset() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment:
		return true
	}
	return false
}

// IsLiability reports whether balances of this type count toward total
// liabilities. Liability balances are aggregated as positive magnitudes.
func (t AccountType) IsLiability() bool {
	switch t {
	case AccountTypeCredit, AccountTypeLoan:
		return true
	}
	return false
}

// Account represents a linked financial account. Accounts are created when a
// bank link completes, updated on every sync, and soft-deactivated (never
// hard-deleted while transactions reference them) on disconnect.
type Account struct {
	Base
	UserID           uint        `gorm:"not null;index" json:"user_id"`
	Name             string      `gorm:"not null" json:"name"`
	Institution      string      `json:"institution"`
	Type             AccountType `gorm:"not null" json:"type"`
	Balance          int64       `gorm:"type:bigint;not null;default:0" json:"balance"`
	AvailableBalance int64       `gorm:"type:bigint;not null;default:0" json:"available_balance"`
	Currency         string      `gorm:"not null;default:'USD'" json:"currency"`
	IsActive         bool        `gorm:"default:true" json:"is_active"`

	// ExternalID is the aggregation provider's account identifier.
	ExternalID   string     `gorm:"index" json:"external_id,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
