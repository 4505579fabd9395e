package models

import "time"

// SharePollLink is a shareable code granting access to a single poll.
// It follows the same lifecycle as InviteLink; the Type decides whether
// consumption grants viewing or voting rights.
type SharePollLink struct {
	// Code is the random shareable identifier of the link (primary key).
	Code string `gorm:"primaryKey;size:255"`
	// Expires is the optional timestamp after which the link is dead.
	Expires *time.Time
	// UsageLimit is the optional maximum number of consumptions.
	UsageLimit *int
	// Uses is the number of successful consumptions so far.
	Uses int `gorm:"not null;default:0"`
	// Type decides the poll role granted on consumption (viewer or voter).
	Type ShareLinkType `gorm:"type:varchar(20);not null"`
	// PollID is the poll the link shares.
	PollID uint64 `gorm:"not null;index"`
	// CreatedByID is the user who created the link.
	CreatedByID uint64
	// RevokedAt is set when the poll owner deletes the link.
	RevokedAt *time.Time
	// CreatedAt is the timestamp when the link was created (managed by GORM).
	CreatedAt time.Time
	// Poll is the associated poll (loaded via foreign key).
	// When a poll is deleted, its share links are removed (CASCADE).
	Poll Poll `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the SharePollLink model.
func (SharePollLink) TableName() string {
	return "share_poll_links"
}

// Status classifies the link at the given point in time.
func (l *SharePollLink) Status(now time.Time) LinkStatus {
	return classifyLink(l.RevokedAt, l.Expires, l.UsageLimit, l.Uses, now)
}

// Grants maps the link type to the poll role it grants on consumption.
func (l *SharePollLink) Grants() PollRole {
	if l.Type == ShareLinkVoter {
		return PollRoleVoter
	}

	return PollRoleViewer
}
