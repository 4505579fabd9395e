package models

import "time"

// Group represents a user group. Groups own polls (via PollAccess) and
// members (via Membership); all access to a poll is scoped either through
// a group the poll was shared with or through a direct per-user grant.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint64 `gorm:"primaryKey"`
	// Name is the unique display name of the group.
	Name string `gorm:"unique;size:255;not null"`
	// Logo is the URL of the group's logo image.
	Logo string `gorm:"size:255"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "groups"
}
