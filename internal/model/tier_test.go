package model

import (
	"testing"

	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierDefaultsCoverEveryDimension(t *testing.T) {
	tier := Tier{
		OwnerSeats:                5,
		CollaboratorSeats:         10,
		FreelancerSeatsPerProject: 20,
		ViewerSeatsPerProject:     50,
		ActiveProjects:            10,
		ActiveStorageBytes:        1 << 40,
		ArchiveStorageBytes:       quota.Unlimited,
		MonthlyBandwidthBytes:     10 << 40,
	}

	defaults := tier.Defaults()

	require.Len(t, defaults, len(quota.Keys))
	assert.Equal(t, int64(5), defaults[quota.OwnerSeats])
	assert.Equal(t, int64(10), defaults[quota.ActiveProjects])
	assert.Equal(t, quota.Unlimited, defaults[quota.ArchiveStorageBytes])
}

func TestOverridesToLimits(t *testing.T) {
	rows := []LimitOverride{
		{OrganizationID: 1, Resource: string(quota.ActiveProjects), Value: quota.Unlimited},
		{OrganizationID: 1, Resource: string(quota.OwnerSeats), Value: 7},
	}

	limits := OverridesToLimits(rows)

	require.Len(t, limits, 2)
	assert.Equal(t, quota.Unlimited, limits[quota.ActiveProjects])
	assert.Equal(t, int64(7), limits[quota.OwnerSeats])

	_, ok := limits[quota.CollaboratorSeats]
	assert.False(t, ok, "overrides must stay sparse")
}

func TestValidSubscriptionStatus(t *testing.T) {
	for _, status := range SubscriptionStatuses {
		assert.True(t, ValidSubscriptionStatus(status))
	}
	assert.False(t, ValidSubscriptionStatus("expired"))
	assert.False(t, ValidSubscriptionStatus(""))
}
