package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finsight/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an account of the given type with the given balance (in cents).
func CreateTestAccount(t *testing.T, db *gorm.DB, userID uint, accountType models.AccountType, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Type:     accountType,
		Balance:  balance,
		Currency: "USD",
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCheckingAccount creates a checking account with the given balance (in cents).
func CreateTestCheckingAccount(t *testing.T, db *gorm.DB, userID uint, balance int64) *models.Account {
	t.Helper()
	return CreateTestAccount(t, db, userID, models.AccountTypeChecking, balance)
}

// CreateTestCreditAccount creates a credit account with the given balance (in cents).
func CreateTestCreditAccount(t *testing.T, db *gorm.DB, userID uint, balance int64) *models.Account {
	t.Helper()
	return CreateTestAccount(t, db, userID, models.AccountTypeCredit, balance)
}

// CreateTestTransaction creates a transaction of the given type and amount (in cents).
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID uint, txType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:    userID,
		AccountID: accountID,
		Type:      txType,
		Amount:    amount,
		Date:      time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestSnapshot creates a net worth snapshot for the given day.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, userID uint, date time.Time, assets, liabilities int64) *models.NetWorthSnapshot {
	t.Helper()

	snapshot := &models.NetWorthSnapshot{
		UserID:       userID,
		SnapshotDate: date.UTC().Truncate(24 * time.Hour),
		Assets:       assets,
		Liabilities:  liabilities,
		NetWorth:     assets - liabilities,
	}
	if err := db.Create(snapshot).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return snapshot
}

// CreateTestShare creates an active shared chart with a unique token.
func CreateTestShare(t *testing.T, db *gorm.DB, userID uint) *models.SharedChart {
	t.Helper()

	share := &models.SharedChart{
		UserID:    userID,
		ChartType: models.ChartTypeNetWorth,
		Token:     fmt.Sprintf("test-token-%d", nextID()),
		Title:     "My Net Worth",
		ChartData: models.ChartPayload{},
		Settings:  models.ShareSettings{DefaultTimeframe: models.Timeframe30D},
		IsActive:  true,
	}
	if err := db.Create(share).Error; err != nil {
		t.Fatalf("failed to create test share: %v", err)
	}
	return share
}
