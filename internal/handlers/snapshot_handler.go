package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/pagination"
	"finsight/internal/services"
)

// SnapshotHandler handles net-worth snapshot requests. Recording is invoked by
// the scheduled pipeline, not end users.
type SnapshotHandler struct {
	snapshotService services.SnapshotServicer
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService services.SnapshotServicer) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// RecordSnapshotsRequest represents the request payload for a snapshot run.
type RecordSnapshotsRequest struct {
	Date string `json:"date"`
}

// ListSnapshotsRequest represents query parameters for listing snapshots.
type ListSnapshotsRequest struct {
	pagination.PageRequest
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
}

// RecordSnapshots runs the daily snapshot job
// @Summary     Record daily snapshots
// @Description Record a net worth snapshot for every user with active accounts. Re-running for the same day overwrites that day's snapshots. Defaults to today when no date is given.
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       X-API-Key header string true "Pipeline API key"
// @Param       request body RecordSnapshotsRequest false "Snapshot date (defaults to today)"
// @Success     200 {object} map[string]int "Number of users snapshotted"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pipeline/snapshots [post]
func (h *SnapshotHandler) RecordSnapshots(c *gin.Context) {
	var req RecordSnapshotsRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	day := time.Now().UTC()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format"))
			return
		}
		day = parsed
	}

	count, err := h.snapshotService.RecordDailySnapshots(day)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users_snapshotted": count})
}

// GetSnapshots lists the caller's historical snapshots
// @Summary     Get snapshots
// @Description Get a paginated list of the authenticated user's net worth snapshots, newest first
// @Tags        snapshots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       from_date query string false "Filter from date (inclusive)"
// @Param       to_date   query string false "Filter to date (inclusive)"
// @Success     200 {object} pagination.PageResponse[models.NetWorthSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /snapshots [get]
func (h *SnapshotHandler) GetSnapshots(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListSnapshotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var from, to time.Time
	if req.FromDate != "" {
		parsed, err := parseDate(req.FromDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format"))
			return
		}
		from = parsed
	}
	if req.ToDate != "" {
		parsed, err := parseDate(req.ToDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format"))
			return
		}
		to = parsed
	}

	result, err := h.snapshotService.GetSnapshots(userID, from, to, req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
