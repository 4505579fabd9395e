// Package membership is the single write path for group roles.
// Links and join requests never write roles directly; they call Grant
// inside their own transaction.
package membership

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/access"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
)

const groupUserQuery = "group_id = ? AND user_id = ?"

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// RoleOf returns the user's current role in the group, GroupRoleNone when
// the user has no membership. Callers must not cache the result across
// writes; every permission check re-reads the current role.
func RoleOf(db *gorm.DB, groupID, userID uint64) (models.GroupRole, error) {
	if db == nil {
		return models.GroupRoleNone, ErrDBNil
	}

	var m models.Membership
	result := db.Where(groupUserQuery, groupID, userID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return models.GroupRoleNone, nil
		}
		return models.GroupRoleNone, result.Error
	}

	return m.Role, nil
}

// Grant upserts the user's membership in the group: an existing row gets
// its role and delegator overwritten, otherwise a new row is inserted.
// The unique (group, user) index backstops the read-then-write against a
// concurrent insert.
func Grant(db *gorm.DB, groupID, userID uint64, role models.GroupRole, grantedByID uint64) (*models.Membership, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var m models.Membership
	result := db.Where(groupUserQuery, groupID, userID).First(&m)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		m = models.Membership{
			GroupID:   groupID,
			UserID:    userID,
			Role:      role,
			AddedByID: grantedByID,
		}
		if err := db.Create(&m).Error; err != nil {
			return nil, err
		}

		return &m, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	m.Role = role
	m.AddedByID = grantedByID
	if err := db.Save(&m).Error; err != nil {
		return nil, err
	}

	return &m, nil
}

// ListMembers returns all memberships of the group. Only admins and the
// owner may list members.
func ListMembers(db *gorm.DB, groupID, requesterID uint64) ([]models.Membership, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	role, err := RoleOf(db, groupID, requesterID)
	if err != nil {
		return nil, err
	}

	if !access.CanWatchMembers(role) {
		return nil, outcome.Forbidden
	}

	var members []models.Membership
	if err := db.Where("group_id = ?", groupID).Order("added_at").Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}
