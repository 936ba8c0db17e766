package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/services"
)

// ShareHandler handles chart sharing requests.
type ShareHandler struct {
	shareService services.ShareServicer
	auditService services.AuditServicer
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shareService services.ShareServicer, auditService services.AuditServicer) *ShareHandler {
	return &ShareHandler{shareService: shareService, auditService: auditService}
}

// CreateShareRequest represents the request payload for publishing a chart.
type CreateShareRequest struct {
	ChartType        string `json:"chart_type" binding:"required,chart_type"`
	Title            string `json:"title" binding:"max=200"`
	DefaultTimeframe string `json:"default_timeframe" binding:"omitempty,timeframe"`
}

// ShareSummary represents one share in the owner's share list.
type ShareSummary struct {
	Token     string           `json:"token"`
	ChartType models.ChartType `json:"chart_type"`
	Title     string           `json:"title"`
	IsActive  bool             `json:"is_active"`
	ViewCount int64            `json:"view_count"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

// CreateShare publishes the caller's current chart data under a share token
// @Summary     Publish a shared chart
// @Description Freeze the authenticated user's current net worth chart into a publicly fetchable share link. Repeat calls refresh the existing share in place and keep its URL.
// @Tags        shares
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateShareRequest true "Share details"
// @Success     200 {object} services.ShareResult "Existing share refreshed"
// @Success     201 {object} services.ShareResult "Share created"
// @Failure     400 {object} ErrorResponse "Invalid input or no data to share"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /shares [post]
func (h *ShareHandler) CreateShare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.shareService.CreateOrUpdateShare(
		userID,
		models.ChartType(req.ChartType),
		req.Title,
		models.Timeframe(req.DefaultTimeframe),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PUBLISH_SHARE", "shared_chart", 0, c.ClientIP(),
		map[string]interface{}{"chart_type": req.ChartType, "is_existing": result.IsExisting})

	status := http.StatusCreated
	if result.IsExisting {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// GetSharedChart serves a published chart to anyone holding the link
// @Summary     Fetch a shared chart
// @Description Fetch a published chart by its share token. No authentication required. Each fetch increments the view counter.
// @Tags        shares
// @Accept      json
// @Produce     json
// @Param       token path string true "Share token"
// @Success     200 {object} services.SharedChartView "Shared chart data"
// @Failure     404 {object} ErrorResponse "Share not found or revoked"
// @Failure     410 {object} ErrorResponse "Share link expired"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /shares/{token} [get]
func (h *ShareHandler) GetSharedChart(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		respondWithError(c, apperrors.ErrShareNotFound)
		return
	}

	view, err := h.shareService.GetSharedChart(token)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListShares lists the caller's shares
// @Summary     List shares
// @Description List all of the authenticated user's shares, active and revoked, newest first
// @Tags        shares
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} []ShareSummary "Share list"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /shares [get]
func (h *ShareHandler) ListShares(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	shares, err := h.shareService.ListShares(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

// RevokeShare deactivates one of the caller's shares
// @Summary     Revoke a share
// @Description Deactivate a share so its link stops resolving. Republishing later issues a fresh token.
// @Tags        shares
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       token path string true "Share token"
// @Success     204 "Share revoked"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Share belongs to another user"
// @Failure     404 {object} ErrorResponse "Share not found or already revoked"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /shares/{token} [delete]
func (h *ShareHandler) RevokeShare(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token := c.Param("token")
	if err := h.shareService.RevokeShare(userID, token); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REVOKE_SHARE", "shared_chart", 0, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
