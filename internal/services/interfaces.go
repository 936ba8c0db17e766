package services

import (
	"time"

	"finsight/internal/models"
	"finsight/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// AccountUpdateFields holds optional fields for updating an account.
type AccountUpdateFields struct {
	Name        *string
	Institution *string
	IsActive    *bool
	Balance     *int64
	Currency    *string
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID uint, name, institution string, accountType models.AccountType, currency string, balance int64) (*models.Account, error)
	GetUserAccounts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	ListActiveAccounts(userID uint) ([]models.Account, error)
	GetAccountByID(userID, accountID uint) (*models.Account, error)
	UpdateAccount(userID, accountID uint, fields AccountUpdateFields) (*models.Account, error)
	DeactivateAccount(userID, accountID uint) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Type      *models.TransactionType
	Category  *string
	AccountID *uint
}

// CategorySpend is one row of the spending-by-category rollup.
type CategorySpend struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, accountID uint, transactionType models.TransactionType, amount int64, category, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetRecentTransactions(userID uint, limit int) ([]models.Transaction, error)
	GetSpendingByCategory(userID uint, from time.Time) ([]CategorySpend, error)
}

// NetWorthSeries is the result of a series computation. HasAnyAccount lets
// callers render "no data" distinctly from a legitimate zero net worth, and
// Source makes the live-fallback approximation explicit instead of silent.
type NetWorthSeries struct {
	Points        []models.NetWorthPoint `json:"points"`
	HasAnyAccount bool                   `json:"has_any_account"`
	Source        models.SeriesSource    `json:"source"`
}

// NetWorthServicer defines the contract for net-worth aggregation.
type NetWorthServicer interface {
	ComputeSeries(userID uint, timeframe models.Timeframe) (*NetWorthSeries, error)
}

// SnapshotServicer defines the contract for daily net-worth snapshot recording.
type SnapshotServicer interface {
	RecordDailySnapshots(day time.Time) (int, error)
	GetSnapshots(userID uint, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error)
}

// ShareResult is returned by CreateOrUpdateShare. IsExisting distinguishes a
// fresh publication from an in-place refresh of an existing share.
type ShareResult struct {
	ShareURL   string `json:"share_url"`
	Token      string `json:"token"`
	IsExisting bool   `json:"is_existing"`
}

// SharedChartView is the anonymous read model for a published chart.
type SharedChartView struct {
	Title     string               `json:"title"`
	ChartData models.ChartPayload  `json:"chart_data"`
	Settings  models.ShareSettings `json:"settings"`
	ViewCount int64                `json:"view_count"`
	CreatedAt time.Time            `json:"created_at"`
}

// ShareServicer defines the contract for publishing and serving shared charts.
type ShareServicer interface {
	CreateOrUpdateShare(userID uint, chartType models.ChartType, title string, defaultTimeframe models.Timeframe) (*ShareResult, error)
	GetSharedChart(token string) (*SharedChartView, error)
	ListShares(userID uint) ([]models.SharedChart, error)
	RevokeShare(userID uint, token string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
