package models

import "time"

// Membership represents a user's role within a group.
// There is at most one row per (group, user) pair; role changes overwrite
// the existing row instead of creating a second one. The stored role is
// the single source of truth for the user's rights in the group — effective
// rights are never cached anywhere else.
type Membership struct {
	// ID is the unique identifier for the membership row.
	ID uint64 `gorm:"primaryKey"`
	// GroupID is the group this membership belongs to.
	// Combined with UserID this forms a unique constraint.
	GroupID uint64 `gorm:"not null;uniqueIndex:idx_group_user"`
	// UserID is the member.
	UserID uint64 `gorm:"not null;uniqueIndex:idx_group_user"`
	// Role is the capability level the user holds in the group.
	Role GroupRole `gorm:"type:varchar(20);not null"`
	// AddedByID records who granted the current role (the delegator).
	AddedByID uint64
	// AddedAt is the timestamp when the user was added to the group.
	AddedAt time.Time `gorm:"autoCreateTime"`
	// Group is the associated group (loaded via foreign key).
	// When a group is deleted, all its memberships are removed (CASCADE).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// User is the associated user (loaded via foreign key).
	// When a user is deleted, all their memberships are removed (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the Membership model.
func (Membership) TableName() string {
	return "group_users_relations"
}
