package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/services"
)

// DashboardHandler composes the dashboard view from the account, transaction,
// and net-worth services.
type DashboardHandler struct {
	accountService     services.AccountServicer
	transactionService services.TransactionServicer
	netWorthService    services.NetWorthServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	accountService services.AccountServicer,
	transactionService services.TransactionServicer,
	netWorthService services.NetWorthServicer,
) *DashboardHandler {
	return &DashboardHandler{
		accountService:     accountService,
		transactionService: transactionService,
		netWorthService:    netWorthService,
	}
}

// TimeframeRequest represents the timeframe query parameter.
type TimeframeRequest struct {
	Timeframe string `form:"timeframe" binding:"omitempty,timeframe"`
}

// NetWorthSummary represents current totals on the dashboard.
type NetWorthSummary struct {
	Assets      int64 `json:"assets"`
	Liabilities int64 `json:"liabilities"`
	NetWorth    int64 `json:"net_worth"`
}

// DashboardResponse represents the full dashboard payload.
type DashboardResponse struct {
	Summary            NetWorthSummary          `json:"summary"`
	Accounts           []models.Account         `json:"accounts"`
	RecentTransactions []models.Transaction     `json:"recent_transactions"`
	SpendingByCategory []services.CategorySpend `json:"spending_by_category"`
	NetWorthData       []models.NetWorthPoint   `json:"net_worth_data"`
	HasAnyAccount      bool                     `json:"has_any_account"`
	Source             models.SeriesSource      `json:"source"`
}

func bindTimeframe(c *gin.Context) (models.Timeframe, error) {
	var req TimeframeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	if req.Timeframe == "" {
		return models.Timeframe30D, nil
	}
	return models.Timeframe(req.Timeframe), nil
}

// GetDashboard handles the dashboard view
// @Summary     Get dashboard
// @Description Get the authenticated user's dashboard: current totals, accounts, recent transactions, spending by category, and the net worth series for the requested timeframe
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       timeframe query string false "Timeframe (7d, 30d, 90d, 180d, 1y, 2y; default 30d)"
// @Success     200 {object} DashboardResponse "Dashboard data"
// @Failure     400 {object} ErrorResponse "Invalid timeframe"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	timeframe, err := bindTimeframe(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.netWorthService.ComputeSeries(userID, timeframe)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accounts, err := h.accountService.ListActiveAccounts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recent, err := h.transactionService.GetRecentTransactions(userID, 10)
	if err != nil {
		respondWithError(c, err)
		return
	}

	boundaries := timeframe.Boundaries(time.Now().UTC())
	spending, err := h.transactionService.GetSpendingByCategory(userID, boundaries[0])
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The final bucket of every series is current live totals.
	var summary NetWorthSummary
	if len(series.Points) > 0 {
		last := series.Points[len(series.Points)-1]
		summary = NetWorthSummary{Assets: last.Assets, Liabilities: last.Liabilities, NetWorth: last.NetWorth}
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Summary:            summary,
		Accounts:           accounts,
		RecentTransactions: recent,
		SpendingByCategory: spending,
		NetWorthData:       series.Points,
		HasAnyAccount:      series.HasAnyAccount,
		Source:             series.Source,
	})
}

// GetNetWorthSeries handles the standalone net worth chart endpoint
// @Summary     Get net worth series
// @Description Get the authenticated user's time-bucketed net worth series for a timeframe
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       timeframe query string false "Timeframe (7d, 30d, 90d, 180d, 1y, 2y; default 30d)"
// @Success     200 {object} services.NetWorthSeries "Net worth series"
// @Failure     400 {object} ErrorResponse "Invalid timeframe"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /networth [get]
func (h *DashboardHandler) GetNetWorthSeries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	timeframe, err := bindTimeframe(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.netWorthService.ComputeSeries(userID, timeframe)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}
