package models

import "time"

// Poll represents a yes/no poll collecting votes.
// At least one of VotersLimit or Deadline must be set at creation so the
// poll is guaranteed to terminate. Once State is frozen, no further
// vote-accepting or comment-mutating operation may succeed.
type Poll struct {
	// ID is the unique identifier for the poll.
	ID uint64 `gorm:"primaryKey"`
	// Title is the poll question shown to voters.
	Title string `gorm:"size:255;not null;index"`
	// AttachmentID optionally references an uploaded document the poll is about.
	AttachmentID *string `gorm:"size:255"`
	// Deadline is the optional point in time after which votes are rejected.
	Deadline *time.Time
	// VotersLimit is the optional maximum number of votes accepted.
	VotersLimit *int
	// State is the lifecycle state of the poll (active or frozen).
	// The frozen state is terminal; there is no un-freeze.
	State PollState `gorm:"type:varchar(20);not null;default:'active'"`
	// VotedFor counts accepted votes. Kept equal to the number of Vote rows
	// with Accepted=true for this poll; mutated only together with a Vote
	// insert in the same transaction.
	VotedFor int `gorm:"not null;default:0"`
	// VotedAgainst counts rejecting votes, maintained like VotedFor.
	VotedAgainst int `gorm:"not null;default:0"`
	// ResultID optionally references an exported result document.
	ResultID string `gorm:"size:255"`
	// OwnerID is the user who created the poll.
	OwnerID uint64 `gorm:"not null;index"`
	// CreatedAt is the timestamp when the poll was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Poll model.
func (Poll) TableName() string {
	return "polls"
}
