package store

import (
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/estroop3-gif/second-watch-network-sub006/internal/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func organizationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "slug", "owner_user_id", "tier_id", "subscription_status",
	})
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

func TestAssignTierRejectsInactiveTierForNewAssignment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "organizations"`).
		WillReturnRows(organizationRows().AddRow(1, "Acme Films", "acme-films", 7, nil, "none"))
	mock.ExpectQuery(`SELECT \* FROM "tiers"`).
		WillReturnRows(tierRows().AddRow(2, "Legacy", 900, false, 2, 4, 6))
	mock.ExpectRollback()

	_, err := AssignTier(db, 1, TierAssignment{TierID: uintPtr(2), TierSet: true})

	var validationErr *quota.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Msg, "deactivated")
	// ExpectationsWereMet proves no UPDATE reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTierKeepsInactiveTierAlreadyAssigned(t *testing.T) {
	// Deactivation blocks new assignment only; an organization already
	// on the tier keeps it.
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "organizations"`).
		WillReturnRows(organizationRows().AddRow(1, "Acme Films", "acme-films", 7, 2, "active"))
	mock.ExpectQuery(`SELECT \* FROM "tiers"`).
		WillReturnRows(tierRows().AddRow(2, "Legacy", 900, false, 2, 4, 6))
	mock.ExpectExec(`UPDATE "organizations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	org, err := AssignTier(db, 1, TierAssignment{
		TierID:             uintPtr(2),
		TierSet:            true,
		SubscriptionStatus: strPtr("past_due"),
	})

	require.NoError(t, err)
	require.NotNil(t, org.TierID)
	assert.Equal(t, uint(2), *org.TierID)
	assert.Equal(t, "past_due", org.SubscriptionStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTierExplicitNullDetaches(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "organizations"`).
		WillReturnRows(organizationRows().AddRow(1, "Acme Films", "acme-films", 7, 2, "active"))
	mock.ExpectExec(`UPDATE "organizations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	org, err := AssignTier(db, 1, TierAssignment{TierID: nil, TierSet: true})

	require.NoError(t, err)
	assert.Nil(t, org.TierID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTierStatusOnlyUpdateKeepsTier(t *testing.T) {
	// A payload without the tier_id key must not detach the tier.
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "organizations"`).
		WillReturnRows(organizationRows().AddRow(1, "Acme Films", "acme-films", 7, 2, "active"))
	mock.ExpectExec(`UPDATE "organizations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	org, err := AssignTier(db, 1, TierAssignment{SubscriptionStatus: strPtr("paused")})

	require.NoError(t, err)
	require.NotNil(t, org.TierID)
	assert.Equal(t, uint(2), *org.TierID)
	assert.Equal(t, "paused", org.SubscriptionStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTierRejectsEmptyPayload(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := AssignTier(db, 1, TierAssignment{})

	var validationErr *quota.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignTierRejectsUnknownStatus(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "organizations"`).
		WillReturnRows(organizationRows().AddRow(1, "Acme Films", "acme-films", 7, nil, "none"))
	mock.ExpectRollback()

	_, err := AssignTier(db, 1, TierAssignment{SubscriptionStatus: strPtr("expired")})

	var validationErr *quota.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTierAssignmentUnmarshalTracksKeyPresence(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantSet  bool
		wantTier *uint
	}{
		{"explicit tier", `{"tier_id": 3}`, true, uintPtr(3)},
		{"explicit null detaches", `{"tier_id": null}`, true, nil},
		{"omitted key leaves tier alone", `{"subscription_status": "active"}`, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req TierAssignment
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))
			assert.Equal(t, tt.wantSet, req.TierSet)
			assert.Equal(t, tt.wantTier, req.TierID)
		})
	}
}
