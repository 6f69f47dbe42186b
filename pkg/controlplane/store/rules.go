package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

// ============================================
// PATH RULE OPERATIONS
// ============================================

func (s *GORMStore) GetRule(ctx context.Context, id string) (*models.PathRule, error) {
	return getByField[models.PathRule](s.db, ctx, "id", id, models.ErrRuleNotFound)
}

func (s *GORMStore) ListRules(ctx context.Context) ([]*models.PathRule, error) {
	var rules []*models.PathRule
	if err := s.db.WithContext(ctx).Order("position asc").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *GORMStore) CreateRule(ctx context.Context, rule *models.PathRule) (string, error) {
	var id string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// New rules go to the end of the list
		var maxPos *int
		if err := tx.Model(&models.PathRule{}).Select("max(position)").Scan(&maxPos).Error; err != nil {
			return err
		}
		if maxPos != nil {
			rule.Position = *maxPos + 1
		} else {
			rule.Position = 0
		}

		now := time.Now()
		rule.CreatedAt = now
		rule.UpdatedAt = now

		if rule.ID == "" {
			rule.ID = uuid.New().String()
		}
		if err := tx.Create(rule).Error; err != nil {
			return err
		}
		id = rule.ID
		return nil
	})
	return id, err
}

func (s *GORMStore) UpdateRule(ctx context.Context, rule *models.PathRule) error {
	result := s.db.WithContext(ctx).
		Model(&models.PathRule{}).
		Where("id = ?", rule.ID).
		Updates(map[string]any{
			"path":        rule.Path,
			"recursive":   rule.Recursive,
			"permissions": rule.Permissions,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrRuleNotFound
	}
	return nil
}

func (s *GORMStore) DeleteRule(ctx context.Context, id string) error {
	return deleteByField[models.PathRule](s.db, ctx, "id", id, models.ErrRuleNotFound)
}

func (s *GORMStore) ReorderRules(ctx context.Context, ids []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rules []*models.PathRule
		if err := tx.Order("position asc").Find(&rules).Error; err != nil {
			return err
		}

		known := make(map[string]*models.PathRule, len(rules))
		for _, r := range rules {
			known[r.ID] = r
		}

		// Assign positions to the listed IDs first, in the given order
		pos := 0
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			rule, ok := known[id]
			if !ok {
				return models.ErrRuleNotFound
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			if err := tx.Model(rule).Update("position", pos).Error; err != nil {
				return err
			}
			pos++
		}

		// Unlisted rules keep their relative order after the listed ones
		for _, r := range rules {
			if seen[r.ID] {
				continue
			}
			if err := tx.Model(r).Update("position", pos).Error; err != nil {
				return err
			}
			pos++
		}

		return nil
	})
}
