package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

// ============================================
// SHARE OPERATIONS
// ============================================

func (s *GORMStore) GetShareByToken(ctx context.Context, token string) (*models.Share, error) {
	var share models.Share
	err := s.db.WithContext(ctx).
		Preload("UserGrants").
		Where("token = ?", token).
		First(&share).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrShareNotFound)
	}
	return &share, nil
}

func (s *GORMStore) GetShareByID(ctx context.Context, id string) (*models.Share, error) {
	var share models.Share
	err := s.db.WithContext(ctx).
		Preload("UserGrants").
		Where("id = ?", id).
		First(&share).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrShareNotFound)
	}
	return &share, nil
}

func (s *GORMStore) ListShares(ctx context.Context, ownerID string) ([]*models.Share, error) {
	var shares []*models.Share
	q := s.db.WithContext(ctx).Preload("UserGrants")
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	if err := q.Order("created_at desc").Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

func (s *GORMStore) CreateShare(ctx context.Context, share *models.Share) (string, error) {
	if share.ID == "" {
		share.ID = uuid.New().String()
	}
	if share.Token == "" {
		share.Token = uuid.New().String()
	}
	now := time.Now()
	share.CreatedAt = now
	share.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(share).Error; err != nil {
		if isUniqueConstraintError(err) {
			return "", models.ErrDuplicateShare
		}
		return "", err
	}
	return share.ID, nil
}

func (s *GORMStore) UpdateShare(ctx context.Context, share *models.Share) error {
	share.UpdatedAt = time.Now()

	// Source, path, and owner are immutable after creation
	result := s.db.WithContext(ctx).
		Model(&models.Share{}).
		Where("id = ?", share.ID).
		Updates(map[string]any{
			"sharing_type": share.SharingType,
			"access_mode":  share.AccessMode,
			"expires_at":   share.ExpiresAt,
			"updated_at":   share.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrShareNotFound
	}
	return nil
}

func (s *GORMStore) DeleteShare(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var share models.Share
		if err := tx.Where("id = ?", id).First(&share).Error; err != nil {
			return convertNotFoundError(err, models.ErrShareNotFound)
		}

		if err := tx.Where("share_id = ?", share.ID).Delete(&models.ShareUserGrant{}).Error; err != nil {
			return err
		}

		return tx.Delete(&share).Error
	})
}

func (s *GORMStore) SetShareUsers(ctx context.Context, shareID string, userIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var share models.Share
		if err := tx.Where("id = ?", shareID).First(&share).Error; err != nil {
			return convertNotFoundError(err, models.ErrShareNotFound)
		}

		if err := tx.Where("share_id = ?", shareID).Delete(&models.ShareUserGrant{}).Error; err != nil {
			return err
		}

		for _, userID := range userIDs {
			grant := models.ShareUserGrant{ShareID: shareID, UserID: userID}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *GORMStore) DeleteExpiredShares(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shareIDs []string
		if err := tx.Model(&models.Share{}).
			Where("expires_at IS NOT NULL AND expires_at <= ?", now).
			Pluck("id", &shareIDs).Error; err != nil {
			return err
		}
		if len(shareIDs) == 0 {
			return nil
		}

		if err := tx.Where("share_id IN ?", shareIDs).Delete(&models.ShareUserGrant{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", shareIDs).Delete(&models.Share{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	return removed, err
}
