package model

import "time"

// OwnerLimit caps how many organizations a single user may own. The
// record is created lazily with the configured default on first query.
// Lowering a limit below the current ownership count is allowed; it only
// blocks future creations, which the creation flow gates on.
type OwnerLimit struct {
	ID               uint  `json:"id" gorm:"primaryKey"`
	UserID           uint  `json:"user_id" gorm:"not null;uniqueIndex"`
	MaxOrganizations int64 `json:"max_organizations" gorm:"not null;default:1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
