package model

import (
	"time"

	"gorm.io/gorm"
)

// Authoritative source tables read by usage recalculation. Collaborator
// systems (project management, upload pipeline, CDN ledger) write these;
// this service treats them as read-only oracles.

// Membership roles (org-wide seats)
const (
	RoleOwner        = "owner"
	RoleCollaborator = "collaborator"
)

// Project-scoped seat kinds
const (
	SeatFreelancer = "freelancer"
	SeatViewer     = "viewer"
)

// Project statuses
const (
	ProjectActive   = "active"
	ProjectArchived = "archived"
)

// Storage classes
const (
	StorageActive  = "active"
	StorageArchive = "archive"
)

// Membership is an org-wide seat assignment.
type Membership struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	UserID         uint   `json:"user_id" gorm:"index;not null"`
	Role           string `json:"role" gorm:"type:varchar(20);not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Project is a production project belonging to an organization.
type Project struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Name           string `json:"name" gorm:"type:varchar(100);not null"`
	Status         string `json:"status" gorm:"type:varchar(20);not null;default:'active'"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ProjectSeat is a per-project seat assignment (freelancer or view-only).
type ProjectSeat struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ProjectID      uint   `json:"project_id" gorm:"index;not null"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	UserID         uint   `json:"user_id" gorm:"index;not null"`
	Kind           string `json:"kind" gorm:"type:varchar(20);not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// StorageEntry is one row of the storage ledger.
type StorageEntry struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Class          string `json:"class" gorm:"type:varchar(20);not null;default:'active'"`
	Bytes          int64  `json:"bytes" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BandwidthEntry is one row of the monthly bandwidth ledger. Period is a
// UTC "YYYY-MM" bucket; the monthly reset happens upstream by writing into
// a new bucket.
type BandwidthEntry struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	Period         string `json:"period" gorm:"type:varchar(7);index;not null"`
	Bytes          int64  `json:"bytes" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}
