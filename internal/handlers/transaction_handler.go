package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
	"finsight/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	AccountID   uint                   `json:"account_id" binding:"required"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Amount      int64                  `json:"amount" binding:"required,gt=0"`
	Category    string                 `json:"category" binding:"max=100"`
	Description string                 `json:"description" binding:"max=500"`
	Date        string                 `json:"date" binding:"required"`
}

// ListTransactionsRequest represents query parameters for listing transactions.
type ListTransactionsRequest struct {
	pagination.PageRequest
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
	Type      string `form:"type" binding:"omitempty,transaction_type"`
	Category  string `form:"category"`
	AccountID uint   `form:"account_id"`
}

// parseDate accepts RFC3339 or a bare calendar date.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
	}
	return parsed, err
}

// CreateTransaction handles recording a new transaction
// @Summary     Create a transaction
// @Description Record a transaction against one of the authenticated user's accounts
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format"))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID,
		req.AccountID,
		req.Type,
		req.Amount,
		req.Category,
		req.Description,
		date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetUserTransactions handles the retrieval of transactions for a user
// @Summary     Get user transactions
// @Description Get a paginated, filterable list of transactions for the authenticated user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page       query int    false "Page number (default 1)"
// @Param       page_size  query int    false "Items per page (default 20, max 100)"
// @Param       from_date  query string false "Filter from date (inclusive)"
// @Param       to_date    query string false "Filter to date (inclusive)"
// @Param       type       query string false "Transaction type (income or expense)"
// @Param       category   query string false "Category filter"
// @Param       account_id query int    false "Account filter"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetUserTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.TransactionFilter
	if req.FromDate != "" {
		parsed, err := parseDate(req.FromDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format"))
			return
		}
		filter.FromDate = &parsed
	}
	if req.ToDate != "" {
		parsed, err := parseDate(req.ToDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format"))
			return
		}
		filter.ToDate = &parsed
	}
	if req.Type != "" {
		transactionType := models.TransactionType(req.Type)
		filter.Type = &transactionType
	}
	if req.Category != "" {
		filter.Category = &req.Category
	}
	if req.AccountID != 0 {
		filter.AccountID = &req.AccountID
	}

	result, err := h.transactionService.GetUserTransactions(userID, req.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
