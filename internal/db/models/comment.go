package models

import "time"

// Comment represents a reviewer remark on a poll.
// Comments follow the poll lifecycle: once the poll is frozen, neither new
// comments nor resolution changes are accepted.
type Comment struct {
	// ID is the unique identifier for the comment.
	ID uint64 `gorm:"primaryKey"`
	// Text is the comment body.
	Text string `gorm:"size:255;not null"`
	// IsResolved marks the comment as addressed.
	IsResolved bool `gorm:"not null;default:false"`
	// SentAt is the timestamp when the comment was posted.
	SentAt time.Time `gorm:"autoCreateTime"`
	// PollID is the poll being commented on.
	PollID uint64 `gorm:"not null;index"`
	// OwnerID is the user who wrote the comment.
	OwnerID uint64 `gorm:"not null"`
	// Poll is the associated poll (loaded via foreign key).
	// When a poll is deleted, its comments are removed (CASCADE).
	Poll Poll `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the Comment model.
func (Comment) TableName() string {
	return "comments"
}
