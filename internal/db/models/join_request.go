package models

import "time"

// JoinGroupRequest is an invite targeted at a specific user rather than a
// public code. Only the targeted user may accept it, and it is single-use
// by construction: accepting resolves the membership and stamps AcceptedAt.
type JoinGroupRequest struct {
	// ID is the unique identifier for the request.
	ID uint64 `gorm:"primaryKey"`
	// Role is the group role granted on acceptance (never owner).
	Role GroupRole `gorm:"type:varchar(20);not null"`
	// GroupID is the group the request invites into.
	GroupID uint64 `gorm:"not null;index"`
	// ForWhomID is the only user allowed to accept the request.
	ForWhomID uint64 `gorm:"not null;index"`
	// CreatedByID is the user who issued the request.
	CreatedByID uint64
	// AcceptedAt is set when the target accepts; a second accept fails.
	AcceptedAt *time.Time
	// CreatedAt is the timestamp when the request was created (managed by GORM).
	CreatedAt time.Time
	// Group is the associated group (loaded via foreign key).
	// When a group is deleted, its pending requests are removed (CASCADE).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the JoinGroupRequest model.
func (JoinGroupRequest) TableName() string {
	return "join_group_requests"
}
