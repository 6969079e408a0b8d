package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/model"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectRecalculationReads(mock sqlmock.Sqlmock) {
	// Reads happen in a fixed order: owner seats, collaborator seats,
	// active projects, freelancer max, viewer max, active storage,
	// archive storage, bandwidth.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "memberships"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "memberships"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(seat_count\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(seat_count\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(9))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(bytes\), 0\) FROM "storage_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1000))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(bytes\), 0\) FROM "storage_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5000))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(bytes\), 0\) FROM "bandwidth_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(777))
}

func expectRecalculation(mock sqlmock.Sqlmock) {
	expectOrganizationExists(mock, true)
	mock.ExpectBegin()
	expectRecalculationReads(mock)
	mock.ExpectQuery(`INSERT INTO "usage_snapshots" .* ON CONFLICT \("organization_id"\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()
}

func TestRecalculateUsageDerivesAllCounters(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	expectRecalculation(mock)

	snapshot, err := RecalculateUsage(db, 1, now)

	require.NoError(t, err)
	assert.Equal(t, uint(1), snapshot.OrganizationID)
	assert.Equal(t, int64(2), snapshot.OwnerSeatsUsed)
	assert.Equal(t, int64(6), snapshot.CollaboratorSeatsUsed)
	assert.Equal(t, int64(3), snapshot.ActiveProjectsUsed)
	assert.Equal(t, int64(4), snapshot.FreelancerSeatsPerProjectUsed)
	assert.Equal(t, int64(9), snapshot.ViewerSeatsPerProjectUsed)
	assert.Equal(t, int64(1000), snapshot.ActiveStorageBytesUsed)
	assert.Equal(t, int64(5000), snapshot.ArchiveStorageBytesUsed)
	assert.Equal(t, int64(777), snapshot.MonthlyBandwidthBytesUsed)
	assert.Equal(t, now, snapshot.RecalculatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecalculateUsageIsIdempotent(t *testing.T) {
	// Two recalculations over unchanged sources yield identical
	// snapshots.
	db, mock := newMockDB(t)
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	expectRecalculation(mock)
	expectRecalculation(mock)

	first, err := RecalculateUsage(db, 1, now)
	require.NoError(t, err)
	second, err := RecalculateUsage(db, 1, now)
	require.NoError(t, err)

	assert.Equal(t, first.Counters(), second.Counters())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecalculateUsageSourceFailureLeavesSnapshotUntouched(t *testing.T) {
	db, mock := newMockDB(t)

	expectOrganizationExists(mock, true)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "memberships"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := RecalculateUsage(db, 1, time.Now())

	var sourceErr *quota.SourceUnavailableError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, "memberships", sourceErr.Source)
	// ExpectationsWereMet proves no snapshot write was attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecalculateUsageUnknownOrganization(t *testing.T) {
	db, mock := newMockDB(t)

	expectOrganizationExists(mock, false)

	_, err := RecalculateUsage(db, 404, time.Now())

	require.ErrorIs(t, err, quota.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUsageSnapshotDefaultsToZero(t *testing.T) {
	db, mock := newMockDB(t)

	expectOrganizationExists(mock, true)
	mock.ExpectQuery(`SELECT \* FROM "usage_snapshots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id"}))

	snapshot, err := GetUsageSnapshot(db, 5)

	require.NoError(t, err)
	assert.Equal(t, uint(5), snapshot.OrganizationID)
	for key, used := range snapshot.Counters() {
		assert.Equal(t, int64(0), used, "dimension %s", key)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBandwidthPeriod(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*3600)
	at := time.Date(2026, time.September, 1, 5, 0, 0, 0, loc)

	// Period buckets are UTC: 05:00 on Sep 1 in UTC+14 is still August.
	assert.Equal(t, "2026-08", BandwidthPeriod(at))
	assert.Equal(t, "2026-08", BandwidthPeriod(time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)))
}

func TestSnapshotCountersCoverEveryDimension(t *testing.T) {
	snapshot := model.UsageSnapshot{
		OwnerSeatsUsed:                1,
		CollaboratorSeatsUsed:         2,
		FreelancerSeatsPerProjectUsed: 3,
		ViewerSeatsPerProjectUsed:     4,
		ActiveProjectsUsed:            5,
		ActiveStorageBytesUsed:        6,
		ArchiveStorageBytesUsed:       7,
		MonthlyBandwidthBytesUsed:     8,
	}

	counters := snapshot.Counters()
	require.Len(t, counters, len(quota.Keys))
	assert.Equal(t, int64(1), counters[quota.OwnerSeats])
	assert.Equal(t, int64(8), counters[quota.MonthlyBandwidthBytes])
}
