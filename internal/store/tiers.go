package store

import (
	"errors"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/model"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"gorm.io/gorm"
)

// TierCreate carries the fields for a new tier. Limits is keyed by
// resource dimension; absent dimensions default to zero.
type TierCreate struct {
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	PriceCents        int64            `json:"price_cents"`
	EnterpriseSupport bool             `json:"enterprise_support"`
	PublicCallSheets  bool             `json:"public_call_sheets"`
	PriorityResponse  bool             `json:"priority_response"`
	BillingPriceRef   *string          `json:"billing_price_ref"`
	Limits            map[string]int64 `json:"limits"`
}

// TierUpdate carries a partial tier update; nil fields are left untouched.
type TierUpdate struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	PriceCents        *int64           `json:"price_cents"`
	EnterpriseSupport *bool            `json:"enterprise_support"`
	PublicCallSheets  *bool            `json:"public_call_sheets"`
	PriorityResponse  *bool            `json:"priority_response"`
	BillingPriceRef   *string          `json:"billing_price_ref"`
	ClearBillingRef   bool             `json:"clear_billing_price_ref"`
	IsActive          *bool            `json:"is_active"`
	Limits            map[string]int64 `json:"limits"`
}

// ListTiers returns all tiers, excluding deactivated ones unless asked.
func ListTiers(db *gorm.DB, includeInactive bool) ([]model.Tier, error) {
	query := db.Order("price_cents ASC, id ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var tiers []model.Tier
	if result := query.Find(&tiers); result.Error != nil {
		return nil, result.Error
	}
	return tiers, nil
}

// GetTier loads a single tier by id.
func GetTier(db *gorm.DB, id uint) (*model.Tier, error) {
	var tier model.Tier
	if result := db.First(&tier, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, quota.ErrNotFound
		}
		return nil, result.Error
	}
	return &tier, nil
}

// CreateTier validates and inserts a new tier. New tiers start active.
func CreateTier(db *gorm.DB, req TierCreate) (*model.Tier, error) {
	if req.Name == "" {
		return nil, quota.Validationf("name is required")
	}
	if len(req.Name) > 100 {
		return nil, quota.Validationf("name must be at most 100 characters")
	}
	if req.PriceCents < 0 {
		return nil, quota.Validationf("price_cents must be >= 0")
	}
	limits, err := parseLimits(req.Limits)
	if err != nil {
		return nil, err
	}

	// Check if a tier with the same name exists
	var count int64
	if result := db.Model(&model.Tier{}).Where("name = ?", req.Name).Count(&count); result.Error != nil {
		return nil, result.Error
	}
	if count > 0 {
		return nil, quota.Validationf("tier name %q already exists", req.Name)
	}

	tier := model.Tier{
		Name:              req.Name,
		Description:       req.Description,
		PriceCents:        req.PriceCents,
		EnterpriseSupport: req.EnterpriseSupport,
		PublicCallSheets:  req.PublicCallSheets,
		PriorityResponse:  req.PriorityResponse,
		BillingPriceRef:   req.BillingPriceRef,
		IsActive:          true,
	}
	applyLimits(&tier, limits)

	if result := db.Create(&tier); result.Error != nil {
		return nil, result.Error
	}
	return &tier, nil
}

// UpdateTier applies a partial update to an existing tier as one
// single-row transaction. Unknown ids fail with ErrNotFound; out-of-range
// values fail with ValidationError and nothing is written.
func UpdateTier(db *gorm.DB, id uint, req TierUpdate) (*model.Tier, error) {
	var tier model.Tier

	err := db.Transaction(func(tx *gorm.DB) error {
		if result := tx.First(&tier, id); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return quota.ErrNotFound
			}
			return result.Error
		}

		if req.Name != nil {
			if *req.Name == "" {
				return quota.Validationf("name cannot be empty")
			}
			if len(*req.Name) > 100 {
				return quota.Validationf("name must be at most 100 characters")
			}
			if *req.Name != tier.Name {
				var count int64
				result := tx.Model(&model.Tier{}).
					Where("name = ? AND id <> ?", *req.Name, tier.ID).
					Count(&count)
				if result.Error != nil {
					return result.Error
				}
				if count > 0 {
					return quota.Validationf("tier name %q already exists", *req.Name)
				}
			}
			tier.Name = *req.Name
		}
		if req.Description != nil {
			tier.Description = *req.Description
		}
		if req.PriceCents != nil {
			if *req.PriceCents < 0 {
				return quota.Validationf("price_cents must be >= 0")
			}
			tier.PriceCents = *req.PriceCents
		}
		if req.EnterpriseSupport != nil {
			tier.EnterpriseSupport = *req.EnterpriseSupport
		}
		if req.PublicCallSheets != nil {
			tier.PublicCallSheets = *req.PublicCallSheets
		}
		if req.PriorityResponse != nil {
			tier.PriorityResponse = *req.PriorityResponse
		}
		if req.ClearBillingRef {
			tier.BillingPriceRef = nil
		} else if req.BillingPriceRef != nil {
			tier.BillingPriceRef = req.BillingPriceRef
		}
		if req.IsActive != nil {
			tier.IsActive = *req.IsActive
		}

		limits, err := parseLimits(req.Limits)
		if err != nil {
			return err
		}
		applyLimits(&tier, limits)

		return tx.Save(&tier).Error
	})
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

// parseLimits validates a raw resource->value map against the known
// dimensions and the "-1 or >= 0" invariant.
func parseLimits(raw map[string]int64) (quota.Limits, error) {
	limits := make(quota.Limits, len(raw))
	for key, value := range raw {
		if !quota.ValidKey(key) {
			return nil, quota.Validationf("unknown resource %q", key)
		}
		if !quota.ValidLimit(value) {
			return nil, quota.Validationf("limit for %q must be -1 (unlimited) or >= 0, got %d", key, value)
		}
		limits[quota.Key(key)] = value
	}
	return limits, nil
}

func applyLimits(tier *model.Tier, limits quota.Limits) {
	for key, value := range limits {
		switch key {
		case quota.OwnerSeats:
			tier.OwnerSeats = value
		case quota.CollaboratorSeats:
			tier.CollaboratorSeats = value
		case quota.FreelancerSeatsPerProject:
			tier.FreelancerSeatsPerProject = value
		case quota.ViewerSeatsPerProject:
			tier.ViewerSeatsPerProject = value
		case quota.ActiveProjects:
			tier.ActiveProjects = value
		case quota.ActiveStorageBytes:
			tier.ActiveStorageBytes = value
		case quota.ArchiveStorageBytes:
			tier.ArchiveStorageBytes = value
		case quota.MonthlyBandwidthBytes:
			tier.MonthlyBandwidthBytes = value
		}
	}
}
