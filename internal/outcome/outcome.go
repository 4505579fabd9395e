// Package outcome defines the typed failure outcomes the domain layer
// reports to its callers. Each outcome carries a stable numeric id, an
// HTTP status and a machine-readable code; external callers key on the id,
// so ids must never change once assigned. The set is a fixed, load-time
// table: constructing or returning an outcome has no side effects.
package outcome

import "errors"

// Outcome is a typed, recoverable domain failure. It implements error and
// is returned as-is by the controllers; the web layer maps it 1:1 to an
// HTTP response.
type Outcome struct {
	// ID is the stable numeric identifier of the outcome kind.
	ID int
	// Status is the HTTP status the outcome maps to.
	Status int
	// Code is the machine-readable code of the outcome.
	Code string
	// Message is the human-readable description.
	Message string
}

// Error implements the error interface.
func (o *Outcome) Error() string {
	return o.Code + ": " + o.Message
}

// The fixed outcome table. Ids 11-14 are a compatibility contract with
// existing callers; 15-17 distinguish the link and vote conflicts that
// previously surfaced as generic not-found responses.
var (
	// NoNeededConstraints is returned when a poll is created with neither
	// a voters limit nor a deadline.
	NoNeededConstraints = &Outcome{
		ID:      11,
		Status:  400,
		Code:    "constraints_failed",
		Message: "one of voters_limit or deadline must be set",
	}

	// NotFound is returned when a referenced entity does not exist.
	// Revoked links also report NotFound so a revoked code is
	// indistinguishable from one that never existed.
	NotFound = &Outcome{
		ID:      12,
		Status:  404,
		Code:    "not_found",
		Message: "entity not found",
	}

	// Forbidden is returned when the requester's role does not permit the action.
	Forbidden = &Outcome{
		ID:      13,
		Status:  403,
		Code:    "forbidden",
		Message: "action is forbidden for the current role",
	}

	// AlreadyFrozen is returned when a vote or comment mutation targets a
	// frozen poll.
	AlreadyFrozen = &Outcome{
		ID:      14,
		Status:  410,
		Code:    "poll_already_frozen",
		Message: "this poll is already frozen, no further changes are accepted",
	}

	// LinkExpired is returned when a link is consumed past its expiry.
	LinkExpired = &Outcome{
		ID:      15,
		Status:  410,
		Code:    "link_expired",
		Message: "the link has expired",
	}

	// UsageLimitExceeded is returned when a link's consumption count has
	// reached its usage limit, or a poll's voters limit is exhausted.
	UsageLimitExceeded = &Outcome{
		ID:      16,
		Status:  410,
		Code:    "usage_limit_exceeded",
		Message: "the usage limit has been reached",
	}

	// DuplicateVote is returned when a voter casts a second vote on the
	// same poll. Votes are immutable once cast.
	DuplicateVote = &Outcome{
		ID:      17,
		Status:  409,
		Code:    "duplicate_vote",
		Message: "a vote was already cast on this poll",
	}
)

// From extracts the Outcome from err, unwrapping as needed.
// Returns nil when err carries no outcome.
func From(err error) *Outcome {
	var o *Outcome
	if errors.As(err, &o) {
		return o
	}

	return nil
}
