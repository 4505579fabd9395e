package models

import "time"

// JoinPollInvite is an invite to a poll targeted at a specific user,
// the poll-scoped analogue of JoinGroupRequest.
type JoinPollInvite struct {
	// ID is the unique identifier for the invite.
	ID uint64 `gorm:"primaryKey"`
	// PollID is the poll the invite grants access to.
	PollID uint64 `gorm:"not null;index"`
	// ForWhomID is the only user allowed to accept the invite.
	ForWhomID uint64 `gorm:"not null;index"`
	// Role is the poll role granted on acceptance.
	Role PollRole `gorm:"type:varchar(20);not null"`
	// CreatedByID is the user who issued the invite.
	CreatedByID uint64
	// AcceptedAt is set when the target accepts; a second accept fails.
	AcceptedAt *time.Time
	// CreatedAt is the timestamp when the invite was created (managed by GORM).
	CreatedAt time.Time
	// Poll is the associated poll (loaded via foreign key).
	// When a poll is deleted, its pending invites are removed (CASCADE).
	Poll Poll `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the JoinPollInvite model.
func (JoinPollInvite) TableName() string {
	return "join_poll_invites"
}
