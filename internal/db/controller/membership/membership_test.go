package membership

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

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

	err = db.AutoMigrate(&models.User{}, &models.Group{}, &models.Membership{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestRoleOf(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Membership{
		GroupID: 1, UserID: 7, Role: models.GroupRoleAdmin, AddedByID: 1,
	}).Error)

	role, err := RoleOf(db, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleAdmin, role)

	// no membership row means no role, not an error
	role, err = RoleOf(db, 1, 99)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleNone, role)

	_, err = RoleOf(nil, 1, 7)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestGrantInsertsThenOverwrites(t *testing.T) {
	db := setupTestDB(t)

	m, err := Grant(db, 1, 7, models.GroupRoleViewer, 2)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleViewer, m.Role)
	assert.Equal(t, uint64(2), m.AddedByID)

	// a second grant updates the existing row instead of inserting
	m, err = Grant(db, 1, 7, models.GroupRoleReviewer, 3)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleReviewer, m.Role)
	assert.Equal(t, uint64(3), m.AddedByID)

	var count int64
	require.NoError(t, db.Model(&models.Membership{}).
		Where("group_id = ? AND user_id = ?", 1, 7).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	role, err := RoleOf(db, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleReviewer, role)
}

func TestListMembers(t *testing.T) {
	db := setupTestDB(t)

	seed := []models.Membership{
		{GroupID: 1, UserID: 1, Role: models.GroupRoleOwner, AddedByID: 1},
		{GroupID: 1, UserID: 2, Role: models.GroupRoleAdmin, AddedByID: 1},
		{GroupID: 1, UserID: 3, Role: models.GroupRoleViewer, AddedByID: 2},
		{GroupID: 2, UserID: 4, Role: models.GroupRoleOwner, AddedByID: 4},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	testCases := []struct {
		name        string
		requesterID uint64
		wantErr     error
		wantCount   int
	}{
		{name: "owner may list", requesterID: 1, wantCount: 3},
		{name: "admin may list", requesterID: 2, wantCount: 3},
		{name: "viewer may not list", requesterID: 3, wantErr: outcome.Forbidden},
		{name: "non-member may not list", requesterID: 99, wantErr: outcome.Forbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			members, err := ListMembers(db, 1, tc.requesterID)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, members, tc.wantCount)
		})
	}
}
