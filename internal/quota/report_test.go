package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name  string
		used  int64
		limit int64
		want  int
	}{
		{"unlimited is always zero", 1 << 50, Unlimited, 0},
		{"zero limit unused", 0, 0, 0},
		{"zero limit with usage", 1, 0, 100},
		{"partial", 4, 5, 80},
		{"full", 10, 10, 100},
		{"rounded up", 1, 3, 33},
		{"rounded half", 1, 2, 50},
		{"over limit clamps to 100", 15, 10, 100},
		{"empty", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentOf(tt.used, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestBuildReportProScenario(t *testing.T) {
	// Tier "Pro": owner_seats=5, active_projects=10. Usage: 4 owners,
	// 10 active projects.
	limits := Resolve(proDefaults(), nil, 0)
	usage := Usage{
		OwnerSeats:     4,
		ActiveProjects: 10,
	}

	report := BuildReport(limits, usage)

	owners := report[OwnerSeats]
	assert.Equal(t, int64(4), owners.Used)
	assert.Equal(t, int64(5), owners.Limit)
	assert.Equal(t, 80, owners.Percent)
	assert.True(t, owners.NearLimit)

	projects := report[ActiveProjects]
	assert.Equal(t, int64(10), projects.Used)
	assert.Equal(t, int64(10), projects.Limit)
	assert.Equal(t, 100, projects.Percent)
	assert.True(t, projects.NearLimit)
}

func TestBuildReportUnlimitedNeverNearLimit(t *testing.T) {
	limits := Resolve(nil, Limits{ActiveProjects: Unlimited}, 0)
	usage := Usage{ActiveProjects: 1 << 40}

	report := BuildReport(limits, usage)

	projects := report[ActiveProjects]
	assert.Equal(t, Unlimited, projects.Limit)
	assert.Equal(t, 0, projects.Percent)
	assert.False(t, projects.NearLimit)
}

func TestBuildReportUnlimitedFloorNeverNearLimit(t *testing.T) {
	// Tier-less org, no overrides, floor of -1: nothing may flag.
	limits := Resolve(nil, nil, Unlimited)
	usage := Usage{}
	for _, key := range Keys {
		usage[key] = 1 << 30
	}

	report := BuildReport(limits, usage)

	for _, key := range Keys {
		assert.False(t, report[key].NearLimit, "dimension %s", key)
		assert.Equal(t, 0, report[key].Percent, "dimension %s", key)
	}
}

func TestBuildReportOverLimitStaysVisible(t *testing.T) {
	limits := Limits{ActiveProjects: 10}
	usage := Usage{ActiveProjects: 14}

	report := BuildReport(limits, usage)

	projects := report[ActiveProjects]
	assert.Equal(t, int64(14), projects.Used)
	assert.Equal(t, int64(10), projects.Limit)
	assert.Equal(t, 100, projects.Percent)
	assert.True(t, projects.NearLimit)
	assert.Greater(t, projects.Used, projects.Limit)
}

func TestBuildReportCoversEveryDimension(t *testing.T) {
	report := BuildReport(Resolve(proDefaults(), nil, 0), Usage{})

	require.Len(t, report, len(Keys))
	for _, key := range Keys {
		_, ok := report[key]
		assert.True(t, ok, "dimension %s missing", key)
	}
}

func TestSeatSummaryAggregates(t *testing.T) {
	limits := Limits{OwnerSeats: 5, CollaboratorSeats: 10}
	usage := Usage{OwnerSeats: 3, CollaboratorSeats: 9}

	seats := SeatSummary(limits, usage)

	assert.Equal(t, int64(12), seats.Used)
	assert.Equal(t, int64(15), seats.Limit)
	assert.Equal(t, 80, seats.Percent)
	assert.True(t, seats.NearLimit)
}

func TestSeatSummaryPreservesUnlimitedSentinel(t *testing.T) {
	// One unlimited seat dimension makes the aggregate unlimited; the
	// sentinel must never be summed into an arithmetic result.
	limits := Limits{OwnerSeats: Unlimited, CollaboratorSeats: 10}
	usage := Usage{OwnerSeats: 100, CollaboratorSeats: 100}

	seats := SeatSummary(limits, usage)

	assert.Equal(t, int64(200), seats.Used)
	assert.Equal(t, Unlimited, seats.Limit)
	assert.Equal(t, 0, seats.Percent)
	assert.False(t, seats.NearLimit)
}

func TestNearLimitThreshold(t *testing.T) {
	below := buildResource(79, 100)
	assert.False(t, below.NearLimit)

	at := buildResource(80, 100)
	assert.True(t, at.NearLimit)
}
