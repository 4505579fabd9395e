package poll

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/access"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
)

// canVoteOn reports whether the user may cast a vote on the poll: the
// owner always may, otherwise a voter-level grant is needed, either
// directly (poll_users_relations) or through a group the poll was shared
// with at voter level.
func canVoteOn(tx *gorm.DB, p *models.Poll, userID uint64) (bool, error) {
	if p.OwnerID == userID {
		return true, nil
	}

	var member models.PollMember
	result := tx.Where("poll_id = ? AND user_id = ?", p.ID, userID).First(&member)
	if result.Error == nil {
		return access.PollRoleCanVote(member.Role), nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, result.Error
	}

	// Any member of a group holding a voter grant may vote.
	var count int64
	err := tx.Table("poll_groups_relations").
		Joins("JOIN group_users_relations ON group_users_relations.group_id = poll_groups_relations.group_id").
		Where("poll_groups_relations.poll_id = ? AND poll_groups_relations.role = ? AND group_users_relations.user_id = ?",
			p.ID, models.PollRoleVoter, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CastVote records the user's vote on the poll and increments the matching
// counter in the same transaction, so the counters always equal the vote
// row counts. Votes are immutable: a second vote by the same voter is
// rejected, never overwritten. The counter update carries the voters-limit
// guard, so concurrent votes cannot push the total past the limit.
func CastVote(db *gorm.DB, pollID, voterID uint64, accepted bool, now time.Time) (*models.Vote, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var vote *models.Vote

	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := GetByID(tx, pollID)
		if err != nil {
			return err
		}

		if p.State == models.PollStateFrozen {
			return outcome.AlreadyFrozen
		}

		if p.Deadline != nil && now.After(*p.Deadline) {
			return outcome.AlreadyFrozen
		}

		eligible, err := canVoteOn(tx, p, voterID)
		if err != nil {
			return err
		}
		if !eligible {
			return outcome.Forbidden
		}

		var existing models.Vote
		result := tx.Where("voter_id = ? AND poll_id = ?", voterID, pollID).First(&existing)
		if result.Error == nil {
			return outcome.DuplicateVote
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		column := "voted_against"
		if accepted {
			column = "voted_for"
		}

		// Guarded increment: fails once the voters limit is reached or the
		// poll froze after our read.
		bump := tx.Model(&models.Poll{}).
			Where("id = ? AND state = ? AND (voters_limit IS NULL OR voted_for + voted_against < voters_limit)",
				pollID, models.PollStateActive).
			Update(column, gorm.Expr(column+" + 1"))
		if bump.Error != nil {
			return bump.Error
		}
		if bump.RowsAffected == 0 {
			return outcome.UsageLimitExceeded
		}

		v := models.Vote{VoterID: voterID, PollID: pollID, Accepted: accepted}
		if err := tx.Create(&v).Error; err != nil {
			// The unique (voter, poll) index backstops the duplicate check
			// against a concurrent vote by the same voter.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return outcome.DuplicateVote
			}
			return err
		}

		vote = &v

		return nil
	})
	if err != nil {
		return nil, err
	}

	return vote, nil
}
