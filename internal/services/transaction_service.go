package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a transaction against one of the user's accounts.
func (s *transactionService) CreateTransaction(userID, accountID uint, transactionType models.TransactionType, amount int64, category, description string, date time.Time) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		return nil, apperrors.ErrAccountNotFound
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		Type:        transactionType,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered transaction list.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.AccountID != nil {
		base = base.Where("account_id = ?", *filter.AccountID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRecentTransactions returns the user's most recent transactions.
func (s *transactionService) GetRecentTransactions(userID uint, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetSpendingByCategory sums expense amounts per category since from,
// largest first. Uncategorized spending is reported under "uncategorized".
func (s *transactionService) GetSpendingByCategory(userID uint, from time.Time) ([]CategorySpend, error) {
	var rows []CategorySpend
	if err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(NULLIF(category, ''), 'uncategorized') AS category, SUM(amount) AS amount").
		Where("user_id = ? AND type = ? AND date >= ?", userID, models.TransactionTypeExpense, from).
		Group("COALESCE(NULLIF(category, ''), 'uncategorized')").
		Order("amount DESC").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rows == nil {
		rows = []CategorySpend{}
	}
	return rows, nil
}
