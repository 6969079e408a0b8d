package store

import (
	"time"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/model"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BandwidthPeriod formats the UTC month bucket used by the bandwidth
// ledger.
func BandwidthPeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// GetUsageSnapshot loads the stored snapshot for an organization. Returns
// a zeroed snapshot when the organization has never been recalculated.
func GetUsageSnapshot(db *gorm.DB, orgID uint) (*model.UsageSnapshot, error) {
	if err := organizationExists(db, orgID); err != nil {
		return nil, err
	}

	var snapshot model.UsageSnapshot
	result := db.Where("organization_id = ?", orgID).Limit(1).Find(&snapshot)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return &model.UsageSnapshot{OrganizationID: orgID}, nil
	}
	return &snapshot, nil
}

// RecalculateUsage re-derives every usage counter from the authoritative
// source tables and overwrites the stored snapshot. The whole derivation
// runs in one transaction: if any source read fails the previous snapshot
// is left untouched and the error surfaces as SourceUnavailable.
// Idempotent; concurrent calls converge since each fully recomputes.
func RecalculateUsage(db *gorm.DB, orgID uint, now time.Time) (*model.UsageSnapshot, error) {
	if err := organizationExists(db, orgID); err != nil {
		return nil, err
	}

	var snapshot model.UsageSnapshot

	err := db.Transaction(func(tx *gorm.DB) error {
		ownerSeats, err := countMemberships(tx, orgID, model.RoleOwner)
		if err != nil {
			return &quota.SourceUnavailableError{Source: "memberships", Err: err}
		}
		collabSeats, err := countMemberships(tx, orgID, model.RoleCollaborator)
		if err != nil {
			return &quota.SourceUnavailableError{Source: "memberships", Err: err}
		}

		var activeProjects int64
		result := tx.Model(&model.Project{}).
			Where("organization_id = ? AND status = ?", orgID, model.ProjectActive).
			Count(&activeProjects)
		if result.Error != nil {
			return &quota.SourceUnavailableError{Source: "projects", Err: result.Error}
		}

		freelancerMax, err := maxSeatsPerProject(tx, orgID, model.SeatFreelancer)
		if err != nil {
			return &quota.SourceUnavailableError{Source: "project_seats", Err: err}
		}
		viewerMax, err := maxSeatsPerProject(tx, orgID, model.SeatViewer)
		if err != nil {
			return &quota.SourceUnavailableError{Source: "project_seats", Err: err}
		}

		activeStorage, err := sumStorage(tx, orgID, model.StorageActive)
		if err != nil {
			return &quota.SourceUnavailableError{Source: "storage_entries", Err: err}
		}
		archiveStorage, err := sumStorage(tx, orgID, model.StorageArchive)
		if err != nil {
			return &quota.SourceUnavailableError{Source: "storage_entries", Err: err}
		}

		var bandwidth int64
		result = tx.Model(&model.BandwidthEntry{}).
			Where("organization_id = ? AND period = ?", orgID, BandwidthPeriod(now)).
			Select("COALESCE(SUM(bytes), 0)").
			Scan(&bandwidth)
		if result.Error != nil {
			return &quota.SourceUnavailableError{Source: "bandwidth_entries", Err: result.Error}
		}

		snapshot = model.UsageSnapshot{
			OrganizationID:                orgID,
			OwnerSeatsUsed:                ownerSeats,
			CollaboratorSeatsUsed:         collabSeats,
			FreelancerSeatsPerProjectUsed: freelancerMax,
			ViewerSeatsPerProjectUsed:     viewerMax,
			ActiveProjectsUsed:            activeProjects,
			ActiveStorageBytesUsed:        activeStorage,
			ArchiveStorageBytesUsed:       archiveStorage,
			MonthlyBandwidthBytesUsed:     bandwidth,
			RecalculatedAt:                now.UTC(),
		}

		// Full overwrite: last recalculation wins.
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"owner_seats_used",
				"collaborator_seats_used",
				"freelancer_seats_per_project_used",
				"viewer_seats_per_project_used",
				"active_projects_used",
				"active_storage_bytes_used",
				"archive_storage_bytes_used",
				"monthly_bandwidth_bytes_used",
				"recalculated_at",
				"updated_at",
			}),
		}).Create(&snapshot).Error
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func countMemberships(tx *gorm.DB, orgID uint, role string) (int64, error) {
	var count int64
	result := tx.Model(&model.Membership{}).
		Where("organization_id = ? AND role = ?", orgID, role).
		Count(&count)
	return count, result.Error
}

// maxSeatsPerProject returns the highest seat count of the given kind on
// any single active project of the organization.
func maxSeatsPerProject(tx *gorm.DB, orgID uint, kind string) (int64, error) {
	var max int64
	result := tx.Raw(`
		SELECT COALESCE(MAX(seat_count), 0) FROM (
			SELECT COUNT(*) AS seat_count
			FROM project_seats
			JOIN projects ON projects.id = project_seats.project_id
			WHERE project_seats.organization_id = ?
			  AND project_seats.kind = ?
			  AND project_seats.deleted_at IS NULL
			  AND projects.status = ?
			  AND projects.deleted_at IS NULL
			GROUP BY project_seats.project_id
		) per_project`,
		orgID, kind, model.ProjectActive,
	).Scan(&max)
	return max, result.Error
}

func sumStorage(tx *gorm.DB, orgID uint, class string) (int64, error) {
	var total int64
	result := tx.Model(&model.StorageEntry{}).
		Where("organization_id = ? AND class = ?", orgID, class).
		Select("COALESCE(SUM(bytes), 0)").
		Scan(&total)
	return total, result.Error
}
