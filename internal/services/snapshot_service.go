package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// snapshotService records per-day net-worth snapshots.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB) SnapshotServicer {
	return &snapshotService{db: db}
}

// RecordDailySnapshots computes and stores one snapshot per user with active
// accounts for the given calendar day. A second run for the same day
// overwrites rather than duplicates: at most one row per (user, date).
func (s *snapshotService) RecordDailySnapshots(day time.Time) (int, error) {
	snapshotDate := day.UTC().Truncate(24 * time.Hour)

	var userIDs []uint
	if err := s.db.Model(&models.Account{}).
		Where("is_active = ?", true).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for _, userID := range userIDs {
		snapshot, err := s.computeSnapshot(userID, snapshotDate)
		if err != nil {
			return count, err
		}

		err = s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "snapshot_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"assets":      snapshot.Assets,
				"liabilities": snapshot.Liabilities,
				"net_worth":   snapshot.NetWorth,
				"breakdown":   snapshot.Breakdown,
			}),
		}).Create(snapshot).Error
		if err != nil {
			return count, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		count++
	}

	return count, nil
}

// computeSnapshot rolls up a user's active account balances for one day.
func (s *snapshotService) computeSnapshot(userID uint, snapshotDate time.Time) (*models.NetWorthSnapshot, error) {
	var accounts []models.Account
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	assets, liabilities := splitBalances(accounts)

	breakdown := models.BalanceBreakdown{}
	for i := range accounts {
		balance := accounts[i].Balance
		if accounts[i].Type.IsLiability() && balance < 0 {
			balance = -balance
		}
		breakdown[accounts[i].Type] += balance
	}

	return &models.NetWorthSnapshot{
		UserID:       userID,
		SnapshotDate: snapshotDate,
		Assets:       assets,
		Liabilities:  liabilities,
		NetWorth:     assets - liabilities,
		Breakdown:    breakdown,
	}, nil
}

// GetSnapshots returns paginated snapshots for a user within a date range.
func (s *snapshotService) GetSnapshots(
	userID uint,
	from, to time.Time,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.NetWorthSnapshot{}).Where("user_id = ?", userID)
	if !from.IsZero() {
		base = base.Where("snapshot_date >= ?", from)
	}
	if !to.IsZero() {
		base = base.Where("snapshot_date <= ?", to)
	}
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.NetWorthSnapshot
	if err := base.Order("snapshot_date DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
