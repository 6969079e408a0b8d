package model

import (
	"time"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
)

// LimitOverride pins one resource dimension of one organization to a
// value that supersedes the tier default. The override set for an
// organization is sparse: dimensions without a row fall back to the tier.
type LimitOverride struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	OrganizationID uint   `json:"organization_id" gorm:"not null;uniqueIndex:idx_override_org_resource"`
	Resource       string `json:"resource" gorm:"type:varchar(40);not null;uniqueIndex:idx_override_org_resource"`
	Value          int64  `json:"value" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OverridesToLimits collects override rows into a sparse limits map.
func OverridesToLimits(rows []LimitOverride) quota.Limits {
	limits := make(quota.Limits, len(rows))
	for _, row := range rows {
		limits[quota.Key(row.Resource)] = row.Value
	}
	return limits
}
