package outcome

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ids and statuses are an external contract and must never change.
func TestRegistryStability(t *testing.T) {
	testCases := []struct {
		outcome *Outcome
		id      int
		status  int
	}{
		{NoNeededConstraints, 11, 400},
		{NotFound, 12, 404},
		{Forbidden, 13, 403},
		{AlreadyFrozen, 14, 410},
		{LinkExpired, 15, 410},
		{UsageLimitExceeded, 16, 410},
		{DuplicateVote, 17, 409},
	}

	seen := make(map[int]bool)

	for _, tc := range testCases {
		assert.Equal(t, tc.id, tc.outcome.ID)
		assert.Equal(t, tc.status, tc.outcome.Status)
		assert.NotEmpty(t, tc.outcome.Code)
		assert.NotEmpty(t, tc.outcome.Message)
		assert.Falsef(t, seen[tc.id], "duplicate outcome id %d", tc.id)
		seen[tc.id] = true
	}
}

func TestErrorsIs(t *testing.T) {
	var err error = NotFound

	require.ErrorIs(t, err, NotFound)
	assert.NotErrorIs(t, err, Forbidden)

	wrapped := fmt.Errorf("consume link: %w", UsageLimitExceeded)
	require.ErrorIs(t, wrapped, UsageLimitExceeded)
}

func TestFrom(t *testing.T) {
	assert.Equal(t, Forbidden, From(fmt.Errorf("check: %w", Forbidden)))
	assert.Nil(t, From(errors.New("plain failure")))
	assert.Nil(t, From(nil))
}
