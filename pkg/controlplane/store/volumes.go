package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

// ============================================
// USER VOLUME OPERATIONS
// ============================================

func (s *GORMStore) GetVolume(ctx context.Context, id string) (*models.UserVolume, error) {
	return getByField[models.UserVolume](s.db, ctx, "id", id, models.ErrVolumeNotFound)
}

func (s *GORMStore) GetVolumeByLabel(ctx context.Context, userID, label string) (*models.UserVolume, error) {
	var volume models.UserVolume
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND label = ?", userID, label).
		First(&volume).Error
	if err != nil {
		return nil, convertNotFoundError(err, models.ErrVolumeNotFound)
	}
	return &volume, nil
}

func (s *GORMStore) ListVolumes(ctx context.Context, userID string) ([]*models.UserVolume, error) {
	var volumes []*models.UserVolume
	query := s.db.WithContext(ctx).Order("label asc")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&volumes).Error; err != nil {
		return nil, err
	}
	return volumes, nil
}

func (s *GORMStore) CreateVolume(ctx context.Context, volume *models.UserVolume) (string, error) {
	now := time.Now()
	volume.CreatedAt = now
	volume.UpdatedAt = now
	return createWithID(s.db, ctx, volume, func(v *models.UserVolume, id string) { v.ID = id }, volume.ID, models.ErrDuplicateVolume)
}

func (s *GORMStore) UpdateVolume(ctx context.Context, volume *models.UserVolume) error {
	result := s.db.WithContext(ctx).
		Model(&models.UserVolume{}).
		Where("id = ?", volume.ID).
		Updates(map[string]any{
			"label":       volume.Label,
			"access_mode": volume.AccessMode,
			"root_path":   volume.RootPath,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return models.ErrDuplicateVolume
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrVolumeNotFound
	}
	return nil
}

func (s *GORMStore) DeleteVolume(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var volume models.UserVolume
		if err := tx.Where("id = ?", id).First(&volume).Error; err != nil {
			return convertNotFoundError(err, models.ErrVolumeNotFound)
		}

		// Shares sourced from this volume go with it
		var shareIDs []string
		if err := tx.Model(&models.Share{}).Where("volume_id = ?", volume.ID).Pluck("id", &shareIDs).Error; err != nil {
			return err
		}
		if len(shareIDs) > 0 {
			if err := tx.Where("share_id IN ?", shareIDs).Delete(&models.ShareUserGrant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("volume_id = ?", volume.ID).Delete(&models.Share{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&volume).Error
	})
}
