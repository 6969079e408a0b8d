package store

import (
	"github.com/estroop3-gif/second-watch-network-sub006/internal/model"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"gorm.io/gorm"
)

// OwnerLimitStatus is what the organization-creation flow gates on:
// the user's cap and the live count of organizations they own.
type OwnerLimitStatus struct {
	UserID  uint  `json:"user_id"`
	Limit   int64 `json:"limit"`
	Owned   int64 `json:"owned"`
	AtLimit bool  `json:"at_limit"`
}

// GetOwnerLimit returns the ownership cap for a user, lazily creating the
// record with the configured default on first access. Owned is always
// counted live from the organizations table, never cached.
func GetOwnerLimit(db *gorm.DB, userID uint, defaultLimit int64) (*OwnerLimitStatus, error) {
	var record model.OwnerLimit
	result := db.Where(model.OwnerLimit{UserID: userID}).
		Attrs(model.OwnerLimit{MaxOrganizations: defaultLimit}).
		FirstOrCreate(&record)
	if result.Error != nil {
		// Two concurrent first reads can both miss and race on the
		// insert; the loser hits the user_id unique index, so re-read
		// the winner's row.
		retry := db.Where("user_id = ?", userID).First(&record)
		if retry.Error != nil {
			return nil, result.Error
		}
	}

	owned, err := countOwnedOrganizations(db, userID)
	if err != nil {
		return nil, err
	}

	return &OwnerLimitStatus{
		UserID:  userID,
		Limit:   record.MaxOrganizations,
		Owned:   owned,
		AtLimit: owned >= record.MaxOrganizations,
	}, nil
}

// SetOwnerLimit assigns a new ownership cap for a user. Setting a limit
// below the current ownership count is permitted; it only blocks future
// creations.
func SetOwnerLimit(db *gorm.DB, userID uint, newLimit int64) (*OwnerLimitStatus, error) {
	if newLimit < 0 {
		return nil, quota.Validationf("limit must be >= 0, got %d", newLimit)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var record model.OwnerLimit
		result := tx.Where(model.OwnerLimit{UserID: userID}).
			Attrs(model.OwnerLimit{MaxOrganizations: newLimit}).
			FirstOrCreate(&record)
		if result.Error != nil {
			return result.Error
		}
		if record.MaxOrganizations == newLimit {
			return nil
		}
		record.MaxOrganizations = newLimit
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}

	owned, err := countOwnedOrganizations(db, userID)
	if err != nil {
		return nil, err
	}

	return &OwnerLimitStatus{
		UserID:  userID,
		Limit:   newLimit,
		Owned:   owned,
		AtLimit: owned >= newLimit,
	}, nil
}

func countOwnedOrganizations(db *gorm.DB, userID uint) (int64, error) {
	var owned int64
	result := db.Model(&model.Organization{}).Where("owner_user_id = ?", userID).Count(&owned)
	return owned, result.Error
}
