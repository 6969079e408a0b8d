package store

import (
	"encoding/json"
	"errors"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/model"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"gorm.io/gorm"
)

// ListOrganizations returns every organization with its tier preloaded.
func ListOrganizations(db *gorm.DB) ([]model.Organization, error) {
	var orgs []model.Organization
	if result := db.Preload("Tier").Order("id ASC").Find(&orgs); result.Error != nil {
		return nil, result.Error
	}
	return orgs, nil
}

// GetOrganization loads one organization with tier and override rows.
func GetOrganization(db *gorm.DB, id uint) (*model.Organization, error) {
	var org model.Organization
	result := db.Preload("Tier").Preload("Overrides").First(&org, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, quota.ErrNotFound
		}
		return nil, result.Error
	}
	return &org, nil
}

// TierAssignment is the billing-collaborator payload. The tier changes
// only when the payload carries the tier_id key: an explicit null
// detaches, an omitted key leaves the current tier alone, so a
// status-only update can never silently detach.
type TierAssignment struct {
	TierID             *uint
	TierSet            bool
	SubscriptionStatus *string
}

// UnmarshalJSON records whether tier_id was present in the payload, since
// an omitted key and an explicit null both bind to a nil pointer.
func (a *TierAssignment) UnmarshalJSON(data []byte) error {
	var raw struct {
		TierID             *uint   `json:"tier_id"`
		SubscriptionStatus *string `json:"subscription_status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}

	_, a.TierSet = keys["tier_id"]
	a.TierID = raw.TierID
	a.SubscriptionStatus = raw.SubscriptionStatus
	return nil
}

// AssignTier stores a tier assignment on an organization. Deactivated
// tiers cannot be newly assigned, but an organization already on the tier
// keeps it (deactivation never revokes existing defaults).
func AssignTier(db *gorm.DB, orgID uint, req TierAssignment) (*model.Organization, error) {
	if !req.TierSet && req.SubscriptionStatus == nil {
		return nil, quota.Validationf("tier_id or subscription_status required")
	}

	var org model.Organization

	err := db.Transaction(func(tx *gorm.DB) error {
		if result := tx.First(&org, orgID); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return quota.ErrNotFound
			}
			return result.Error
		}

		if req.TierSet {
			if req.TierID != nil {
				var tier model.Tier
				if result := tx.First(&tier, *req.TierID); result.Error != nil {
					if errors.Is(result.Error, gorm.ErrRecordNotFound) {
						return quota.ErrNotFound
					}
					return result.Error
				}
				alreadyAssigned := org.TierID != nil && *org.TierID == tier.ID
				if !tier.IsActive && !alreadyAssigned {
					return quota.Validationf("tier %q is deactivated and cannot be newly assigned", tier.Name)
				}
			}
			org.TierID = req.TierID
		}

		if req.SubscriptionStatus != nil {
			if !model.ValidSubscriptionStatus(*req.SubscriptionStatus) {
				return quota.Validationf("unknown subscription status %q", *req.SubscriptionStatus)
			}
			org.SubscriptionStatus = *req.SubscriptionStatus
		}

		return tx.Save(&org).Error
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// organizationExists reports whether the organization id resolves,
// translating absence to ErrNotFound.
func organizationExists(db *gorm.DB, orgID uint) error {
	var count int64
	if result := db.Model(&model.Organization{}).Where("id = ?", orgID).Count(&count); result.Error != nil {
		return result.Error
	}
	if count == 0 {
		return quota.ErrNotFound
	}
	return nil
}
