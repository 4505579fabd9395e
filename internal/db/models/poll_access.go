package models

import "time"

// PollAccess grants a whole group access to a poll with a poll role.
// Every member of the group views (or votes in) the poll through this grant.
type PollAccess struct {
	// ID is the unique identifier for the grant.
	ID uint64 `gorm:"primaryKey"`
	// PollID is the poll being shared.
	// Combined with GroupID this forms a unique constraint.
	PollID uint64 `gorm:"not null;uniqueIndex:idx_poll_group"`
	// GroupID is the group receiving access.
	GroupID uint64 `gorm:"not null;uniqueIndex:idx_poll_group"`
	// Role is the capability level every group member receives on the poll.
	Role PollRole `gorm:"type:varchar(20);not null"`
	// AddedAt is the timestamp when the grant was created.
	AddedAt time.Time `gorm:"autoCreateTime"`
	// Poll is the associated poll (loaded via foreign key).
	// When a poll is deleted, its group grants are removed (CASCADE).
	Poll Poll `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
	// Group is the associated group (loaded via foreign key).
	// When a group is deleted, its poll grants are removed (CASCADE).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the PollAccess model.
func (PollAccess) TableName() string {
	return "poll_groups_relations"
}

// PollMember grants a single user access to a poll with a poll role.
// Rows are created by consuming share links or accepting targeted poll
// invites; there is at most one row per (poll, user) pair and role changes
// overwrite the existing row.
type PollMember struct {
	// ID is the unique identifier for the grant.
	ID uint64 `gorm:"primaryKey"`
	// PollID is the poll the user was granted access to.
	// Combined with UserID this forms a unique constraint.
	PollID uint64 `gorm:"not null;uniqueIndex:idx_poll_user"`
	// UserID is the user receiving access.
	UserID uint64 `gorm:"not null;uniqueIndex:idx_poll_user"`
	// Role is the capability level the user holds on the poll.
	Role PollRole `gorm:"type:varchar(20);not null"`
	// AddedByID records who granted the current role.
	AddedByID uint64
	// AddedAt is the timestamp when the grant was created.
	AddedAt time.Time `gorm:"autoCreateTime"`
	// Poll is the associated poll (loaded via foreign key).
	// When a poll is deleted, its user grants are removed (CASCADE).
	Poll Poll `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
	// User is the associated user (loaded via foreign key).
	// When a user is deleted, their poll grants are removed (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the PollMember model.
func (PollMember) TableName() string {
	return "poll_users_relations"
}
