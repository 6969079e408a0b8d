package quota

// Key identifies one independently tracked resource dimension.
type Key string

const (
	OwnerSeats                Key = "owner_seats"
	CollaboratorSeats         Key = "collaborator_seats"
	FreelancerSeatsPerProject Key = "freelancer_seats_per_project"
	ViewerSeatsPerProject     Key = "viewer_seats_per_project"
	ActiveProjects            Key = "active_projects"
	ActiveStorageBytes        Key = "active_storage_bytes"
	ArchiveStorageBytes       Key = "archive_storage_bytes"
	MonthlyBandwidthBytes     Key = "monthly_bandwidth_bytes"
)

// Unlimited is the sentinel limit value meaning "no cap". It is never
// scaled, clamped, or summed; every comparison path checks for it first.
const Unlimited int64 = -1

// Keys lists every resource dimension in stable order.
var Keys = []Key{
	OwnerSeats,
	CollaboratorSeats,
	FreelancerSeatsPerProject,
	ViewerSeatsPerProject,
	ActiveProjects,
	ActiveStorageBytes,
	ArchiveStorageBytes,
	MonthlyBandwidthBytes,
}

// Limits maps resource dimensions to limit values. Absent keys are unset.
type Limits map[Key]int64

// Usage maps resource dimensions to observed consumption counters.
type Usage map[Key]int64

// ValidKey reports whether s names a known resource dimension.
func ValidKey(s string) bool {
	for _, k := range Keys {
		if string(k) == s {
			return true
		}
	}
	return false
}

// ValidLimit reports whether v is a legal limit value: the unlimited
// sentinel or a non-negative cap.
func ValidLimit(v int64) bool {
	return v == Unlimited || v >= 0
}
