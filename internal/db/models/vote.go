package models

import "time"

// Vote represents a single user's vote on a poll.
// Votes are immutable once cast: the unique (voter, poll) index rejects a
// second vote by the same voter, and there is no update path. The poll's
// VotedFor/VotedAgainst counters are incremented in the same transaction
// that inserts the row, so they always equal the row counts.
type Vote struct {
	// ID is the unique identifier for the vote.
	ID uint64 `gorm:"primaryKey"`
	// VoterID is the user who cast the vote.
	// Combined with PollID this forms a unique constraint.
	VoterID uint64 `gorm:"not null;uniqueIndex:idx_voter_poll"`
	// PollID is the poll voted on.
	PollID uint64 `gorm:"not null;uniqueIndex:idx_voter_poll"`
	// Accepted is true for a vote in favour, false for a vote against.
	Accepted bool `gorm:"not null"`
	// CreatedAt is the timestamp when the vote was cast (managed by GORM).
	CreatedAt time.Time
	// Poll is the associated poll (loaded via foreign key).
	// When a poll is deleted, its votes are removed (CASCADE).
	Poll Poll `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
	// Voter is the associated user (loaded via foreign key).
	Voter User `gorm:"foreignKey:VoterID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the Vote model.
func (Vote) TableName() string {
	return "votes"
}
