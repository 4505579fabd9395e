package invite

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/db/controller/membership"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // one in-memory database for all goroutines

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Membership{},
		&models.InviteLink{},
		&models.JoinGroupRequest{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedGroup creates a group whose owner is user 1, with an admin (2),
// a reviewer (3) and a viewer (4).
func seedGroup(t *testing.T, db *gorm.DB) *models.Group {
	t.Helper()

	group := models.Group{Name: "book-club"}
	require.NoError(t, db.Create(&group).Error)

	seed := []models.Membership{
		{GroupID: group.ID, UserID: 1, Role: models.GroupRoleOwner, AddedByID: 1},
		{GroupID: group.ID, UserID: 2, Role: models.GroupRoleAdmin, AddedByID: 1},
		{GroupID: group.ID, UserID: 3, Role: models.GroupRoleReviewer, AddedByID: 2},
		{GroupID: group.ID, UserID: 4, Role: models.GroupRoleViewer, AddedByID: 2},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	return &group
}

func TestCreatePolicy(t *testing.T) {
	testCases := []struct {
		name        string
		requesterID uint64
		role        models.GroupRole
		wantErr     error
	}{
		{name: "owner invites admin", requesterID: 1, role: models.GroupRoleAdmin},
		{name: "owner invites viewer", requesterID: 1, role: models.GroupRoleViewer},
		{name: "admin invites reviewer", requesterID: 2, role: models.GroupRoleReviewer},
		{name: "admin invites viewer", requesterID: 2, role: models.GroupRoleViewer},
		{name: "admin may not invite admin", requesterID: 2, role: models.GroupRoleAdmin, wantErr: outcome.Forbidden},
		{name: "nobody invites owner", requesterID: 1, role: models.GroupRoleOwner, wantErr: outcome.Forbidden},
		{name: "reviewer may not invite", requesterID: 3, role: models.GroupRoleViewer, wantErr: outcome.Forbidden},
		{name: "viewer may not invite", requesterID: 4, role: models.GroupRoleViewer, wantErr: outcome.Forbidden},
		{name: "non-member may not invite", requesterID: 99, role: models.GroupRoleViewer, wantErr: outcome.Forbidden},
		{name: "invalid role rejected", requesterID: 1, role: models.GroupRole("root"), wantErr: outcome.Forbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)
			group := seedGroup(t, db)

			link, err := Create(db, group.ID, tc.requesterID, tc.role, nil, nil)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, link.Code, CodeLen)
			assert.Equal(t, tc.role, link.Role)
			assert.Equal(t, tc.requesterID, link.CreatedByID)
		})
	}
}

func TestResolveClassifiesAtReadTime(t *testing.T) {
	db := setupTestDB(t)
	group := seedGroup(t, db)

	now := time.Now()
	soon := now.Add(time.Hour)

	link, err := Create(db, group.ID, 1, models.GroupRoleViewer, &soon, nil)
	require.NoError(t, err)

	_, status, err := Resolve(db, link.Code, now)
	require.NoError(t, err)
	assert.Equal(t, models.LinkStatusActive, status)

	// the same stored row reads as expired once the clock passes the bound
	_, status, err = Resolve(db, link.Code, soon.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.LinkStatusExpired, status)

	_, status, err = Resolve(db, "no-such-code", now)
	require.NoError(t, err)
	assert.Equal(t, models.LinkStatusNotFound, status)
}

func TestConsumeGrantsMembership(t *testing.T) {
	db := setupTestDB(t)
	group := seedGroup(t, db)
	now := time.Now()

	link, err := Create(db, group.ID, 2, models.GroupRoleReviewer, nil, nil)
	require.NoError(t, err)

	granted, err := Consume(db, link.Code, 50, now)
	require.NoError(t, err)
	assert.Equal(t, group.ID, granted.GroupID)
	assert.Equal(t, models.GroupRoleReviewer, granted.Role)
	assert.Equal(t, uint64(2), granted.AddedByID)

	role, err := membership.RoleOf(db, group.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleReviewer, role)
}

func TestConsumeSingleUseLink(t *testing.T) {
	db := setupTestDB(t)
	group := seedGroup(t, db)
	now := time.Now()

	one := 1
	link, err := Create(db, group.ID, 1, models.GroupRoleViewer, nil, &one)
	require.NoError(t, err)

	_, err = Consume(db, link.Code, 50, now)
	require.NoError(t, err)

	// the second consumption reports exhaustion, not absence
	_, err = Consume(db, link.Code, 51, now)
	require.ErrorIs(t, err, outcome.UsageLimitExceeded)

	role, err := membership.RoleOf(db, group.ID, 51)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleNone, role)
}

func TestConsumeExpiredLink(t *testing.T) {
	db := setupTestDB(t)
	group := seedGroup(t, db)
	now := time.Now()

	past := now.Add(-time.Hour)
	link, err := Create(db, group.ID, 1, models.GroupRoleViewer, &past, nil)
	require.NoError(t, err)

	_, err = Consume(db, link.Code, 50, now)
	require.ErrorIs(t, err, outcome.LinkExpired)

	_, err = Consume(db, "no-such-code", 50, now)
	require.ErrorIs(t, err, outcome.NotFound)
}

func TestConsumeRevokedLinkLooksAbsent(t *testing.T) {
	db := setupTestDB(t)
	group := seedGroup(t, db)
	now := time.Now()

	link, err := Create(db, group.ID, 1, models.GroupRoleViewer, nil, nil)
	require.NoError(t, err)
	require.NoError(t, Revoke(db, link.Code, 1, now))

	_, err = Consume(db, link.Code, 50, now)
	require.ErrorIs(t, err, outcome.NotFound)
}

func TestConsumeConcurrent(t *testing.T) {
	db := setupTestDB(t)
	group := seedGroup(t, db)
	now := time.Now()

	limit := 3
	link, err := Create(db, group.ID, 1, models.GroupRoleViewer, nil, &limit)
	require.NoError(t, err)

	const consumers = 8

	var wg sync.WaitGroup
	var succeeded, exhausted atomic.Int64

	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func(userID uint64) {
			defer wg.Done()

			_, err := Consume(db, link.Code, userID, now)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, outcome.UsageLimitExceeded):
				exhausted.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(uint64(100 + i))
	}
	wg.Wait()

	assert.Equal(t, int64(limit), succeeded.Load())
	assert.Equal(t, int64(consumers-limit), exhausted.Load())

	var stored models.InviteLink
	require.NoError(t, db.Where("code = ?", link.Code).First(&stored).Error)
	assert.Equal(t, limit, stored.Uses)

	var members int64
	require.NoError(t, db.Model(&models.Membership{}).
		Where("group_id = ? AND user_id >= 100", group.ID).Count(&members).Error)
	assert.Equal(t, int64(limit), members)
}

func TestRevoke(t *testing.T) {
	db := setupTestDB(t)
	group := seedGroup(t, db)
	now := time.Now()

	link, err := Create(db, group.ID, 1, models.GroupRoleViewer, nil, nil)
	require.NoError(t, err)

	// viewers cannot revoke
	require.ErrorIs(t, Revoke(db, link.Code, 4, now), outcome.Forbidden)

	require.NoError(t, Revoke(db, link.Code, 2, now))

	// revoking again is a no-op success
	require.NoError(t, Revoke(db, link.Code, 2, now))

	require.ErrorIs(t, Revoke(db, "no-such-code", 1, now), outcome.NotFound)
}

func TestJoinRequests(t *testing.T) {
	db := setupTestDB(t)
	group := seedGroup(t, db)
	now := time.Now()

	request, err := CreateRequest(db, group.ID, 50, models.GroupRoleReviewer, 2)
	require.NoError(t, err)

	// the delegation policy applies to targeted requests too
	_, err = CreateRequest(db, group.ID, 50, models.GroupRoleAdmin, 2)
	require.ErrorIs(t, err, outcome.Forbidden)

	pending, err := ListRequestsFor(db, 50)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// only the addressed user may accept
	_, err = AcceptRequest(db, request.ID, 51, now)
	require.ErrorIs(t, err, outcome.Forbidden)

	granted, err := AcceptRequest(db, request.ID, 50, now)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleReviewer, granted.Role)

	// a request is single-use
	_, err = AcceptRequest(db, request.ID, 50, now)
	require.ErrorIs(t, err, outcome.UsageLimitExceeded)

	pending, err = ListRequestsFor(db, 50)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = AcceptRequest(db, 999, 50, now)
	require.ErrorIs(t, err, outcome.NotFound)
}
