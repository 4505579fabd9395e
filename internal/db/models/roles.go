// Package models contains database model definitions.
package models

// GroupRole represents a user's capability level within a group.
// Roles are compared by identity only; there is no numeric ranking
// between them, so reordering the constants can never change a
// permission decision.
type GroupRole string

const (
	// GroupRoleNone is the zero value meaning the user has no membership
	// in the group. Every permission check fails closed for it.
	GroupRoleNone GroupRole = ""
	// GroupRoleViewer may view polls the group has access to.
	GroupRoleViewer GroupRole = "viewer"
	// GroupRoleReviewer may additionally comment on polls.
	GroupRoleReviewer GroupRole = "reviewer"
	// GroupRoleAdmin may manage members and invite links (but never grant
	// admin or owner).
	GroupRoleAdmin GroupRole = "admin"
	// GroupRoleOwner has full control of the group. Exactly one owner is
	// created when the group is created; ownership is never granted via links.
	GroupRoleOwner GroupRole = "owner"
)

// Valid reports whether r is one of the known group roles.
func (r GroupRole) Valid() bool {
	switch r {
	case GroupRoleViewer, GroupRoleReviewer, GroupRoleAdmin, GroupRoleOwner:
		return true
	default:
		return false
	}
}

// PollRole represents a user's or group's capability level on a poll.
type PollRole string

const (
	// PollRoleViewer may view the poll and its results.
	PollRoleViewer PollRole = "viewer"
	// PollRoleVoter may additionally cast a vote.
	PollRoleVoter PollRole = "voter"
)

// Valid reports whether r is one of the known poll roles.
func (r PollRole) Valid() bool {
	return r == PollRoleViewer || r == PollRoleVoter
}

// PollState represents the lifecycle state of a poll.
type PollState string

const (
	// PollStateActive accepts votes and comments.
	PollStateActive PollState = "active"
	// PollStateFrozen is terminal: no vote or comment mutation succeeds.
	PollStateFrozen PollState = "frozen"
)

// ShareLinkType distinguishes what a poll share link grants on consumption.
type ShareLinkType string

const (
	// ShareLinkViewer grants read access to the poll.
	ShareLinkViewer ShareLinkType = "viewer"
	// ShareLinkVoter grants the right to cast a vote.
	ShareLinkVoter ShareLinkType = "voter"
)

// Valid reports whether t is one of the known share link types.
func (t ShareLinkType) Valid() bool {
	return t == ShareLinkViewer || t == ShareLinkVoter
}

// LinkStatus classifies the current state of an invite or share link.
// It is always derived from the stored expiry, usage counters and
// revocation timestamp at the moment of the check, never persisted.
type LinkStatus string

const (
	// LinkStatusActive means the link can still be consumed.
	LinkStatusActive LinkStatus = "active"
	// LinkStatusExpired means the current time has passed the link's expiry.
	LinkStatusExpired LinkStatus = "expired"
	// LinkStatusUsageLimitExceeded means the consumption count reached the
	// link's usage limit.
	LinkStatusUsageLimitExceeded LinkStatus = "usage_limit_exceeded"
	// LinkStatusRevoked means the link was explicitly deleted by an admin
	// or owner.
	LinkStatusRevoked LinkStatus = "revoked"
	// LinkStatusNotFound means no link with the given code exists.
	LinkStatusNotFound LinkStatus = "not_found"
)
