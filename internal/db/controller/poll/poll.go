// Package poll implements the poll lifecycle: creation under the
// constraint rule, the one-way freeze transition, transactional vote
// casting with counter consistency, share links and targeted poll invites,
// and comments.
package poll

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Create creates a new active poll. At least one of deadline or
// votersLimit must be set so the poll is guaranteed to terminate; the
// owner receives a voter grant on their own poll.
func Create(
	db *gorm.DB,
	ownerID uint64,
	title string,
	deadline *time.Time,
	votersLimit *int,
	attachmentID *string,
) (*models.Poll, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if deadline == nil && votersLimit == nil {
		return nil, outcome.NoNeededConstraints
	}

	p := models.Poll{
		Title:        title,
		Deadline:     deadline,
		VotersLimit:  votersLimit,
		AttachmentID: attachmentID,
		State:        models.PollStateActive,
		OwnerID:      ownerID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		grant := models.PollMember{
			PollID:    p.ID,
			UserID:    ownerID,
			Role:      models.PollRoleVoter,
			AddedByID: ownerID,
		}

		return tx.Create(&grant).Error
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// GetByID retrieves a poll by its ID.
func GetByID(db *gorm.DB, pollID uint64) (*models.Poll, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Poll
	result := db.First(&p, pollID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outcome.NotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// Freeze transitions the poll to the frozen state. Only the poll owner may
// freeze; freezing an already frozen poll fails, and the transition leaves
// the vote counters untouched. There is no un-freeze.
func Freeze(db *gorm.DB, pollID, requesterID uint64) (*models.Poll, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var frozen *models.Poll

	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := GetByID(tx, pollID)
		if err != nil {
			return err
		}

		if p.OwnerID != requesterID {
			return outcome.Forbidden
		}

		if p.State == models.PollStateFrozen {
			return outcome.AlreadyFrozen
		}

		result := tx.Model(&models.Poll{}).
			Where("id = ? AND state = ?", pollID, models.PollStateActive).
			Update("state", models.PollStateFrozen)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return outcome.AlreadyFrozen
		}

		p.State = models.PollStateFrozen
		frozen = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return frozen, nil
}

// AttachGroup grants a whole group access to the poll with the given poll
// role. Only the poll owner may share the poll with groups; an existing
// grant gets its role overwritten.
func AttachGroup(db *gorm.DB, pollID, groupID, requesterID uint64, role models.PollRole) (*models.PollAccess, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if !role.Valid() {
		return nil, outcome.Forbidden
	}

	var grant *models.PollAccess

	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := GetByID(tx, pollID)
		if err != nil {
			return err
		}

		if p.OwnerID != requesterID {
			return outcome.Forbidden
		}

		var existing models.PollAccess
		result := tx.Where("poll_id = ? AND group_id = ?", pollID, groupID).First(&existing)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			existing = models.PollAccess{PollID: pollID, GroupID: groupID, Role: role}
			if err := tx.Create(&existing).Error; err != nil {
				return err
			}

			grant = &existing

			return nil
		}
		if result.Error != nil {
			return result.Error
		}

		existing.Role = role
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		grant = &existing

		return nil
	})
	if err != nil {
		return nil, err
	}

	return grant, nil
}
