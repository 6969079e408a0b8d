package model

import (
	"time"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"gorm.io/gorm"
)

// Tier represents a named entitlement bundle assignable to organizations.
// Tiers are never hard-deleted while referenced; retiring a tier flips
// IsActive off, which only blocks new assignment.
type Tier struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
	// PriceCents is the monthly price in minor currency units.
	PriceCents int64 `json:"price_cents" gorm:"not null;default:0"`

	// Feature flags
	EnterpriseSupport bool `json:"enterprise_support" gorm:"default:false"`
	PublicCallSheets  bool `json:"public_call_sheets" gorm:"default:false"`
	PriorityResponse  bool `json:"priority_response" gorm:"default:false"`

	// BillingPriceRef is the opaque external billing price id, if linked.
	BillingPriceRef *string `json:"billing_price_ref,omitempty" gorm:"type:varchar(255)"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	// Default limits per resource dimension; -1 means unlimited.
	OwnerSeats                int64 `json:"owner_seats" gorm:"not null;default:0"`
	CollaboratorSeats         int64 `json:"collaborator_seats" gorm:"not null;default:0"`
	FreelancerSeatsPerProject int64 `json:"freelancer_seats_per_project" gorm:"not null;default:0"`
	ViewerSeatsPerProject     int64 `json:"viewer_seats_per_project" gorm:"not null;default:0"`
	ActiveProjects            int64 `json:"active_projects" gorm:"not null;default:0"`
	ActiveStorageBytes        int64 `json:"active_storage_bytes" gorm:"not null;default:0"`
	ArchiveStorageBytes       int64 `json:"archive_storage_bytes" gorm:"not null;default:0"`
	MonthlyBandwidthBytes     int64 `json:"monthly_bandwidth_bytes" gorm:"not null;default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Defaults returns the tier's default limits keyed by resource dimension.
func (t *Tier) Defaults() quota.Limits {
	return quota.Limits{
		quota.OwnerSeats:                t.OwnerSeats,
		quota.CollaboratorSeats:         t.CollaboratorSeats,
		quota.FreelancerSeatsPerProject: t.FreelancerSeatsPerProject,
		quota.ViewerSeatsPerProject:     t.ViewerSeatsPerProject,
		quota.ActiveProjects:            t.ActiveProjects,
		quota.ActiveStorageBytes:        t.ActiveStorageBytes,
		quota.ArchiveStorageBytes:       t.ArchiveStorageBytes,
		quota.MonthlyBandwidthBytes:     t.MonthlyBandwidthBytes,
	}
}
