package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription statuses mirrored from the billing collaborator. This
// service stores whatever the billing side reports; it never validates
// payment state itself.
const (
	SubscriptionActive   = "active"
	SubscriptionTrialing = "trialing"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
	SubscriptionUnpaid   = "unpaid"
	SubscriptionPaused   = "paused"
	SubscriptionNone     = "none"
)

// SubscriptionStatuses lists every accepted subscription status value.
var SubscriptionStatuses = []string{
	SubscriptionActive,
	SubscriptionTrialing,
	SubscriptionPastDue,
	SubscriptionCanceled,
	SubscriptionUnpaid,
	SubscriptionPaused,
	SubscriptionNone,
}

// ValidSubscriptionStatus reports whether s is a known status value.
func ValidSubscriptionStatus(s string) bool {
	for _, status := range SubscriptionStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// Organization represents a customer organization. TierID is nullable:
// an organization without a tier resolves every limit to the configured
// floor unless an override says otherwise.
type Organization struct {
	ID                 uint   `json:"id" gorm:"primaryKey"`
	Name               string `json:"name" gorm:"type:varchar(100);not null"`
	Slug               string `json:"slug" gorm:"type:varchar(100);not null;uniqueIndex"`
	OwnerUserID        uint   `json:"owner_user_id" gorm:"index;not null"`
	TierID             *uint  `json:"tier_id,omitempty" gorm:"index"`
	SubscriptionStatus string `json:"subscription_status" gorm:"type:varchar(20);not null;default:'none'"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Tier      *Tier           `json:"tier,omitempty" gorm:"foreignKey:TierID"`
	Overrides []LimitOverride `json:"-" gorm:"foreignKey:OrganizationID"`
}
