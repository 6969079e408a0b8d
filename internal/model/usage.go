package model

import (
	"time"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
)

// UsageSnapshot holds the last recomputed consumption counters for an
// organization. It is observed state: the only write path is a full
// recalculation from the authoritative source tables, never a hand edit.
type UsageSnapshot struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	OrganizationID uint `json:"organization_id" gorm:"not null;uniqueIndex"`

	OwnerSeatsUsed        int64 `json:"owner_seats_used" gorm:"not null;default:0"`
	CollaboratorSeatsUsed int64 `json:"collaborator_seats_used" gorm:"not null;default:0"`
	// Per-project dimensions record the busiest active project, so the
	// counter reads as "worst project vs the per-project cap".
	FreelancerSeatsPerProjectUsed int64 `json:"freelancer_seats_per_project_used" gorm:"not null;default:0"`
	ViewerSeatsPerProjectUsed     int64 `json:"viewer_seats_per_project_used" gorm:"not null;default:0"`
	ActiveProjectsUsed            int64 `json:"active_projects_used" gorm:"not null;default:0"`
	ActiveStorageBytesUsed        int64 `json:"active_storage_bytes_used" gorm:"not null;default:0"`
	ArchiveStorageBytesUsed       int64 `json:"archive_storage_bytes_used" gorm:"not null;default:0"`
	MonthlyBandwidthBytesUsed     int64 `json:"monthly_bandwidth_bytes_used" gorm:"not null;default:0"`

	RecalculatedAt time.Time `json:"recalculated_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Counters returns the snapshot keyed by resource dimension.
func (s *UsageSnapshot) Counters() quota.Usage {
	return quota.Usage{
		quota.OwnerSeats:                s.OwnerSeatsUsed,
		quota.CollaboratorSeats:         s.CollaboratorSeatsUsed,
		quota.FreelancerSeatsPerProject: s.FreelancerSeatsPerProjectUsed,
		quota.ViewerSeatsPerProject:     s.ViewerSeatsPerProjectUsed,
		quota.ActiveProjects:            s.ActiveProjectsUsed,
		quota.ActiveStorageBytes:        s.ActiveStorageBytesUsed,
		quota.ArchiveStorageBytes:       s.ArchiveStorageBytesUsed,
		quota.MonthlyBandwidthBytes:     s.MonthlyBandwidthBytesUsed,
	}
}
