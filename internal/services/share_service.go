package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finsight/internal/errors"
	"finsight/internal/logger"
	"finsight/internal/models"
)

// SharedTimeframes are the timeframes frozen into every share payload.
var SharedTimeframes = []models.Timeframe{
	models.Timeframe7D, models.Timeframe30D, models.Timeframe90D, models.Timeframe1Y,
}

const tokenMintAttempts = 5

// shareService publishes and serves token-addressed chart snapshots.
type shareService struct {
	db       *gorm.DB
	netWorth NetWorthServicer
	baseURL  string

	// newToken is swappable in tests to force collisions.
	newToken func() (string, error)
}

// NewShareService creates a new ShareServicer. baseURL is the public origin
// used to build share links.
func NewShareService(db *gorm.DB, netWorth NetWorthServicer, baseURL string) ShareServicer {
	return &shareService{db: db, netWorth: netWorth, baseURL: baseURL, newToken: randomToken}
}

// randomToken mints a 256-bit URL-safe share token.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CreateOrUpdateShare freezes the user's current net-worth series for every
// shared timeframe into a token-addressed record. A user has at most one
// share per chart type: repeat calls refresh the existing record in place and
// keep its token, so published links stay stable. The insert-or-update runs
// against the (user_id, chart_type) unique index so two concurrent calls
// cannot both create a record.
func (s *shareService) CreateOrUpdateShare(userID uint, chartType models.ChartType, title string, defaultTimeframe models.Timeframe) (*ShareResult, error) {
	if chartType != models.ChartTypeNetWorth {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported chart type: "+string(chartType))
	}
	if defaultTimeframe == "" {
		defaultTimeframe = models.Timeframe30D
	}
	if !defaultTimeframe.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown timeframe: "+string(defaultTimeframe))
	}

	payload := models.ChartPayload{}
	hasData := false
	for _, tf := range SharedTimeframes {
		series, err := s.netWorth.ComputeSeries(userID, tf)
		if err != nil {
			return nil, err
		}
		if series.HasAnyAccount {
			hasData = true
		}
		payload[tf] = series.Points
	}
	if !hasData {
		return nil, apperrors.ErrNoDataToShare
	}

	settings := models.ShareSettings{DefaultTimeframe: defaultTimeframe}

	var result *ShareResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		token, err := s.mintToken(tx)
		if err != nil {
			return err
		}

		share := &models.SharedChart{
			UserID:    userID,
			ChartType: chartType,
			Token:     token,
			Title:     title,
			ChartData: payload,
			Settings:  settings,
			IsActive:  true,
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "chart_type"}},
			DoNothing: true,
		}).Create(share)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 1 {
			result = &ShareResult{ShareURL: s.shareURL(token), Token: token, IsExisting: false}
			return nil
		}

		// Row exists: refresh payload, title, and settings in place.
		var existing models.SharedChart
		if err := tx.Where("user_id = ? AND chart_type = ?", userID, chartType).First(&existing).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := map[string]interface{}{
			"chart_data": payload,
			"settings":   settings,
			"title":      title,
			"is_active":  true,
		}
		// A revoked share comes back with a fresh token; the old link stays dead.
		if !existing.IsActive {
			updates["token"] = token
			existing.Token = token
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result = &ShareResult{ShareURL: s.shareURL(existing.Token), Token: existing.Token, IsExisting: true}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return result, nil
}

// mintToken generates a share token, retrying on the unlikely collision with
// an existing token. The token namespace is global.
func (s *shareService) mintToken(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < tokenMintAttempts; attempt++ {
		token, err := s.newToken()
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var count int64
		if err := tx.Model(&models.SharedChart{}).Where("token = ?", token).Count(&count).Error; err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return token, nil
		}
	}
	return "", apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("token collision after %d attempts", tokenMintAttempts))
}

func (s *shareService) shareURL(token string) string {
	return fmt.Sprintf("%s/shares/%s", s.baseURL, token)
}

// GetSharedChart serves a published chart by token alone — no authentication.
// Inactive or unknown tokens are indistinguishable (not found); an expired
// share is reported distinctly so the page can say "this link expired". Each
// successful fetch bumps the view counter with a single atomic SQL increment;
// a failed increment never fails the read.
func (s *shareService) GetSharedChart(token string) (*SharedChartView, error) {
	var share models.SharedChart
	if err := s.db.Where("token = ?", token).First(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrShareNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !share.IsActive {
		return nil, apperrors.ErrShareNotFound
	}
	if share.ExpiresAt != nil && share.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrShareExpired
	}

	if err := s.db.Model(&models.SharedChart{}).
		Where("id = ?", share.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		logger.Get().Warnw("failed to increment share view count", "error", err, "share_id", share.ID)
	} else {
		share.ViewCount++
	}

	return &SharedChartView{
		Title:     share.Title,
		ChartData: share.ChartData,
		Settings:  share.Settings,
		ViewCount: share.ViewCount,
		CreatedAt: share.CreatedAt,
	}, nil
}

// ListShares returns all of a user's shares, active or not, newest first.
func (s *shareService) ListShares(userID uint) ([]models.SharedChart, error) {
	var shares []models.SharedChart
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&shares).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return shares, nil
}

// RevokeShare deactivates a share the caller owns. Revoking someone else's
// share is Forbidden; revoking an unknown or already-inactive share is
// NotFound — never a silent success.
func (s *shareService) RevokeShare(userID uint, token string) error {
	var share models.SharedChart
	if err := s.db.Where("token = ?", token).First(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrShareNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if share.UserID != userID {
		return apperrors.ErrForbidden
	}
	if !share.IsActive {
		return apperrors.ErrShareNotFound
	}

	if err := s.db.Model(&share).Update("is_active", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
