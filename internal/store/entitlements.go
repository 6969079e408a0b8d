package store

import (
	"time"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/model"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"gorm.io/gorm"
)

// EntitlementReport is the combined view the admin console renders:
// resolved limits joined with the latest stored usage snapshot.
type EntitlementReport struct {
	OrganizationID uint                 `json:"organization_id"`
	TierID         *uint                `json:"tier_id,omitempty"`
	TierName       string               `json:"tier_name,omitempty"`
	HasOverrides   bool                 `json:"has_overrides"`
	Resources      quota.Report         `json:"resources"`
	Seats          quota.ResourceReport `json:"seats"`
	RecalculatedAt *time.Time           `json:"recalculated_at,omitempty"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

// ResolveOrganizationLimits returns the effective limits for an
// organization: tier defaults (a deactivated tier still counts while
// referenced) merged with override rows, with the floor filling the gaps.
func ResolveOrganizationLimits(db *gorm.DB, orgID uint, floor int64) (quota.Limits, error) {
	org, err := GetOrganization(db, orgID)
	if err != nil {
		return nil, err
	}
	return resolveLimits(org, floor), nil
}

// BuildEntitlementReport joins the resolved limits with the stored usage
// snapshot. The snapshot is read as-is; callers wanting fresh numbers run
// a recalculation first.
func BuildEntitlementReport(db *gorm.DB, orgID uint, floor int64) (*EntitlementReport, error) {
	org, err := GetOrganization(db, orgID)
	if err != nil {
		return nil, err
	}
	limits := resolveLimits(org, floor)

	snapshot, err := GetUsageSnapshot(db, orgID)
	if err != nil {
		return nil, err
	}
	usage := snapshot.Counters()

	report := &EntitlementReport{
		OrganizationID: org.ID,
		TierID:         org.TierID,
		HasOverrides:   len(org.Overrides) > 0,
		Resources:      quota.BuildReport(limits, usage),
		Seats:          quota.SeatSummary(limits, usage),
		GeneratedAt:    time.Now().UTC(),
	}
	if org.Tier != nil {
		report.TierName = org.Tier.Name
	}
	if !snapshot.RecalculatedAt.IsZero() {
		at := snapshot.RecalculatedAt
		report.RecalculatedAt = &at
	}
	return report, nil
}

func resolveLimits(org *model.Organization, floor int64) quota.Limits {
	var defaults quota.Limits
	if org.Tier != nil {
		defaults = org.Tier.Defaults()
	}
	return quota.Resolve(defaults, model.OverridesToLimits(org.Overrides), floor)
}
