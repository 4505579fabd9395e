// Package access implements the role policy for groups and polls.
// All checks are pure functions over role values: no storage access, no
// side effects, and unknown or empty roles always deny. Roles are compared
// by identity, never by a numeric ranking, so a change in the ordering of
// the role constants can never widen a permission.
package access

import "github.com/pollhive/pollhive/internal/db/models"

// CanCreateInviteLink reports whether a member holding got may create an
// invite link (or targeted join request) granting given.
// Admins may invite viewers and reviewers; only the owner may invite
// another admin; ownership can never be granted through a link.
func CanCreateInviteLink(got, given models.GroupRole) bool {
	if got != models.GroupRoleAdmin && got != models.GroupRoleOwner {
		return false
	}

	if !given.Valid() || given == models.GroupRoleOwner {
		return false
	}

	if given == models.GroupRoleAdmin && got != models.GroupRoleOwner {
		return false
	}

	return true
}

// CanWatchInviteLinks reports whether got may list a group's invite links.
func CanWatchInviteLinks(got models.GroupRole) bool {
	return got == models.GroupRoleAdmin || got == models.GroupRoleOwner
}

// CanDeleteInviteLink reports whether got may revoke a group's invite links.
func CanDeleteInviteLink(got models.GroupRole) bool {
	return got == models.GroupRoleAdmin || got == models.GroupRoleOwner
}

// CanWatchMembers reports whether got may list a group's members.
func CanWatchMembers(got models.GroupRole) bool {
	return got == models.GroupRoleAdmin || got == models.GroupRoleOwner
}

// CanWatchJoinPollInvites reports whether got may list the poll invites
// addressed to a group. Owner only.
func CanWatchJoinPollInvites(got models.GroupRole) bool {
	return got == models.GroupRoleOwner
}

// CanAcceptJoinPollInvites reports whether got may accept a poll invite on
// behalf of a group. Owner only.
func CanAcceptJoinPollInvites(got models.GroupRole) bool {
	return got == models.GroupRoleOwner
}

// CanVote reports whether a group member may vote in polls the group has
// access to. Every member may; eligibility for a specific poll is gated by
// the poll-scope role instead.
func CanVote(got models.GroupRole) bool {
	return got.Valid()
}

// PollRoleCanVote reports whether a poll-scope role permits casting a vote.
func PollRoleCanVote(role models.PollRole) bool {
	return role == models.PollRoleVoter
}

// PollRoleCanView reports whether a poll-scope role permits viewing the poll.
func PollRoleCanView(role models.PollRole) bool {
	return role == models.PollRoleViewer || role == models.PollRoleVoter
}
