package poll

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
)

// AddComment posts a comment on the poll. Comments follow the poll
// lifecycle: a frozen poll accepts no new comments.
func AddComment(db *gorm.DB, pollID, ownerID uint64, text string) (*models.Comment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var comment *models.Comment

	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := GetByID(tx, pollID)
		if err != nil {
			return err
		}

		if p.State == models.PollStateFrozen {
			return outcome.AlreadyFrozen
		}

		c := models.Comment{Text: text, PollID: pollID, OwnerID: ownerID}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}

		comment = &c

		return nil
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// ResolveComment marks a comment as addressed. Only the poll owner or the
// comment author may resolve it; a frozen poll blocks the change.
func ResolveComment(db *gorm.DB, commentID, requesterID uint64) (*models.Comment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var resolved *models.Comment

	err := db.Transaction(func(tx *gorm.DB) error {
		var c models.Comment
		result := tx.First(&c, commentID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return outcome.NotFound
			}
			return result.Error
		}

		p, err := GetByID(tx, c.PollID)
		if err != nil {
			return err
		}

		if p.State == models.PollStateFrozen {
			return outcome.AlreadyFrozen
		}

		if p.OwnerID != requesterID && c.OwnerID != requesterID {
			return outcome.Forbidden
		}

		if err := tx.Model(&c).Update("is_resolved", true).Error; err != nil {
			return err
		}

		c.IsResolved = true
		resolved = &c

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resolved, nil
}

// Comments returns all comments on the poll in posting order.
func Comments(db *gorm.DB, pollID uint64) ([]models.Comment, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var comments []models.Comment
	if err := db.Where("poll_id = ?", pollID).Order("sent_at").Find(&comments).Error; err != nil {
		return nil, err
	}

	return comments, nil
}
