package poll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollhive/pollhive/internal/outcome"
)

func TestAddComment(t *testing.T) {
	db := setupTestDB(t)
	p := seedPoll(t, db)

	first, err := AddComment(db, p.ID, 2, "what about option C?")
	require.NoError(t, err)
	assert.False(t, first.IsResolved)

	_, err = AddComment(db, p.ID, 3, "seconded")
	require.NoError(t, err)

	comments, err := Comments(db, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "what about option C?", comments[0].Text)

	_, err = AddComment(db, 999, 2, "lost")
	require.ErrorIs(t, err, outcome.NotFound)
}

func TestResolveComment(t *testing.T) {
	db := setupTestDB(t)
	p := seedPoll(t, db)

	c, err := AddComment(db, p.ID, 2, "what about option C?")
	require.NoError(t, err)

	// a bystander may not resolve
	_, err = ResolveComment(db, c.ID, 3)
	require.ErrorIs(t, err, outcome.Forbidden)

	// the author may
	resolved, err := ResolveComment(db, c.ID, 2)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)

	// so may the poll owner
	other, err := AddComment(db, p.ID, 3, "typo in the title")
	require.NoError(t, err)
	_, err = ResolveComment(db, other.ID, 1)
	require.NoError(t, err)

	_, err = ResolveComment(db, 999, 1)
	require.ErrorIs(t, err, outcome.NotFound)
}

func TestFrozenPollBlocksComments(t *testing.T) {
	db := setupTestDB(t)
	p := seedPoll(t, db)

	c, err := AddComment(db, p.ID, 2, "pending question")
	require.NoError(t, err)

	_, err = Freeze(db, p.ID, 1)
	require.NoError(t, err)

	_, err = AddComment(db, p.ID, 2, "too late")
	require.ErrorIs(t, err, outcome.AlreadyFrozen)

	_, err = ResolveComment(db, c.ID, 1)
	require.ErrorIs(t, err, outcome.AlreadyFrozen)
}
