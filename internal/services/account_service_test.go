package services

import (
	"testing"

	"finsight/internal/models"
	"finsight/internal/pagination"
	"finsight/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(user.ID, "Everyday Checking", "Chase", models.AccountTypeChecking, "USD", 250000)
		testutil.AssertNoError(t, err)

		if account.ID == 0 {
			t.Fatal("expected non-zero account ID")
		}
		if account.Balance != 250000 {
			t.Errorf("expected balance 250000, got %d", account.Balance)
		}
		if !account.IsActive {
			t.Error("expected account to be active")
		}
		if account.LastSyncedAt == nil {
			t.Error("expected last_synced_at to be set")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(user.ID, "", "", models.AccountTypeChecking, "USD", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateAccount(user.ID, "Mystery", "", "crypto", "USD", 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("default_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(user.ID, "No Currency", "", models.AccountTypeSavings, "", 0)
		testutil.AssertNoError(t, err)

		if account.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", account.Currency)
		}
	})
}

func TestGetUserAccountsService(t *testing.T) {
	t.Run("returns_user_accounts_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestCheckingAccount(t, db, user1.ID, 0)
		testutil.CreateTestCheckingAccount(t, db, user1.ID, 0)
		testutil.CreateTestCheckingAccount(t, db, user2.ID, 0)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserAccounts(user1.ID, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 accounts for user1, got %d", result.TotalItems)
		}
	})

	t.Run("excludes_inactive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestCheckingAccount(t, db, user.ID, 0)
		inactive := testutil.CreateTestCheckingAccount(t, db, user.ID, 0)
		db.Model(inactive).Update("is_active", false)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserAccounts(user.ID, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 active account, got %d", result.TotalItems)
		}
	})
}

func TestGetAccountByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCheckingAccount(t, db, user.ID, 100)

		got, err := svc.GetAccountByID(user.ID, account.ID)
		testutil.AssertNoError(t, err)
		if got.ID != account.ID {
			t.Errorf("expected account %d, got %d", account.ID, got.ID)
		}
	})

	t.Run("other_users_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCheckingAccount(t, db, owner.ID, 100)

		_, err := svc.GetAccountByID(other.ID, account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestUpdateAccount(t *testing.T) {
	t.Run("updates_balance_and_sync_time", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCheckingAccount(t, db, user.ID, 100000)

		balance := int64(175000)
		updated, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{Balance: &balance})
		testutil.AssertNoError(t, err)

		if updated.Balance != 175000 {
			t.Errorf("expected balance 175000, got %d", updated.Balance)
		}
		if updated.LastSyncedAt == nil {
			t.Error("expected last_synced_at to be refreshed on balance update")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		name := "New Name"
		_, err := svc.UpdateAccount(user.ID, 9999, AccountUpdateFields{Name: &name})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestDeactivateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)
	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestCheckingAccount(t, db, user.ID, 100)

	testutil.AssertNoError(t, svc.DeactivateAccount(user.ID, account.ID))

	var stored models.Account
	db.First(&stored, account.ID)
	if stored.IsActive {
		t.Error("expected account to be inactive")
	}

	// A deactivated account is gone from the user-facing API.
	_, err := svc.GetAccountByID(user.ID, account.ID)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}
