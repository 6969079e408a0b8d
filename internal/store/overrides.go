package store

import (
	"github.com/estroop3-gif/second-watch-network-sub006/internal/model"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOverrides returns the sparse override map for an organization.
func GetOverrides(db *gorm.DB, orgID uint) (quota.Limits, error) {
	if err := organizationExists(db, orgID); err != nil {
		return nil, err
	}

	var rows []model.LimitOverride
	if result := db.Where("organization_id = ?", orgID).Find(&rows); result.Error != nil {
		return nil, result.Error
	}
	return model.OverridesToLimits(rows), nil
}

// HasOverrides reports whether any override row exists for the
// organization. Computed live; never stored as a flag that could drift.
func HasOverrides(db *gorm.DB, orgID uint) (bool, error) {
	var count int64
	result := db.Model(&model.LimitOverride{}).Where("organization_id = ?", orgID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// SetOverrides merges the given resource->value map into the
// organization's override set in one transaction. Keys absent from the
// call are left untouched; an empty map is rejected so a no-op write
// cannot mask user intent.
func SetOverrides(db *gorm.DB, orgID uint, values map[string]int64) error {
	if len(values) == 0 {
		return quota.Validationf("at least one override value required")
	}
	limits, err := parseLimits(values)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := organizationExists(tx, orgID); err != nil {
			return err
		}

		rows := make([]model.LimitOverride, 0, len(limits))
		for _, key := range quota.Keys {
			value, ok := limits[key]
			if !ok {
				continue
			}
			rows = append(rows, model.LimitOverride{
				OrganizationID: orgID,
				Resource:       string(key),
				Value:          value,
			})
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "organization_id"}, {Name: "resource"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}

// ClearOverrides removes every override row for the organization,
// reverting it fully to tier defaults. A no-op when nothing is overridden.
func ClearOverrides(db *gorm.DB, orgID uint) error {
	if err := organizationExists(db, orgID); err != nil {
		return err
	}
	return db.Where("organization_id = ?", orgID).Delete(&model.LimitOverride{}).Error
}

// ClearOverride removes the override for a single resource dimension.
// A no-op when that dimension is not overridden.
func ClearOverride(db *gorm.DB, orgID uint, resource string) error {
	if !quota.ValidKey(resource) {
		return quota.Validationf("unknown resource %q", resource)
	}
	if err := organizationExists(db, orgID); err != nil {
		return err
	}
	return db.Where("organization_id = ? AND resource = ?", orgID, resource).
		Delete(&model.LimitOverride{}).Error
}
