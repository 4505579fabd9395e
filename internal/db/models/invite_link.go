package models

import "time"

// InviteLink is a shareable code granting a group role upon consumption.
// A link may be bounded by an expiry timestamp, a usage limit, both or
// neither. Its status is always derived from those bounds and the current
// time at the moment of the check (see Status); it is never stored, so a
// link can expire between two reads without any write happening.
type InviteLink struct {
	// Code is the random shareable identifier of the link (primary key).
	Code string `gorm:"primaryKey;size:255"`
	// Expires is the optional timestamp after which the link is dead.
	// Nil means unbounded in time.
	Expires *time.Time
	// UsageLimit is the optional maximum number of consumptions.
	// Nil means unbounded in count.
	UsageLimit *int
	// Uses is the number of successful consumptions so far. Incremented
	// only via a conditional update guarded by UsageLimit, so concurrent
	// consumptions can never push it past the limit.
	Uses int `gorm:"not null;default:0"`
	// Role is the group role granted on consumption. Restricted to
	// viewer/reviewer/admin; owner can never be granted through a link.
	Role GroupRole `gorm:"type:varchar(20);not null"`
	// GroupID is the group the link invites into.
	GroupID uint64 `gorm:"not null;index"`
	// CreatedByID is the user who created the link.
	CreatedByID uint64
	// RevokedAt is set when an admin or owner deletes the link. Revocation
	// is terminal and idempotent.
	RevokedAt *time.Time
	// CreatedAt is the timestamp when the link was created (managed by GORM).
	CreatedAt time.Time
	// Group is the associated group (loaded via foreign key).
	// When a group is deleted, its invite links are removed (CASCADE).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the InviteLink model.
func (InviteLink) TableName() string {
	return "invite_group_links"
}

// Status classifies the link at the given point in time.
// Revocation takes precedence over expiry, expiry over exhaustion.
func (l *InviteLink) Status(now time.Time) LinkStatus {
	return classifyLink(l.RevokedAt, l.Expires, l.UsageLimit, l.Uses, now)
}

// classifyLink derives a link status from its stored bounds. Shared by
// group invite links and poll share links.
func classifyLink(revokedAt, expires *time.Time, usageLimit *int, uses int, now time.Time) LinkStatus {
	if revokedAt != nil {
		return LinkStatusRevoked
	}
	if expires != nil && now.After(*expires) {
		return LinkStatusExpired
	}
	if usageLimit != nil && uses >= *usageLimit {
		return LinkStatusUsageLimitExceeded
	}

	return LinkStatusActive
}
