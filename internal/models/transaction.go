package models

import "time"

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single synced or manually entered transaction.
// Amounts are positive int64 cents; the type carries the direction.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	AccountID   uint            `gorm:"not null;index" json:"account_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Category    string          `gorm:"index" json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	// ExternalID is the aggregation provider's transaction identifier.
	ExternalID string `gorm:"index" json:"external_id,omitempty"`
}
