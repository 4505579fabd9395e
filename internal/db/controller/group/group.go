// Package group provides group creation and lookup. The creator becomes
// the group's owner in the same transaction, so a group never exists
// without exactly one owner membership.
package group

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNameEmpty is returned when creating a group without a name.
	ErrNameEmpty = errors.New("group name cannot be empty")
	// ErrNameTaken is returned when the group name is already in use.
	ErrNameTaken = errors.New("group name is already taken")
)

// Create creates a new group owned by the creator.
func Create(db *gorm.DB, creatorID uint64, name, logo string) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrNameEmpty
	}

	var g models.Group

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Group
		result := tx.Where("name = ?", name).First(&existing)
		if result.Error == nil {
			return ErrNameTaken
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		g = models.Group{Name: name, Logo: logo}
		if err := tx.Create(&g).Error; err != nil {
			return err
		}

		owner := models.Membership{
			GroupID:   g.ID,
			UserID:    creatorID,
			Role:      models.GroupRoleOwner,
			AddedByID: creatorID,
		}

		return tx.Create(&owner).Error
	})
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// GetByID retrieves a group by ID.
func GetByID(db *gorm.DB, id uint64) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.Group
	result := db.First(&g, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outcome.NotFound
		}
		return nil, result.Error
	}

	return &g, nil
}

// Polls returns the polls the group has been granted access to.
func Polls(db *gorm.DB, groupID uint64) ([]models.Poll, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var polls []models.Poll
	err := db.Table("polls").
		Joins("JOIN poll_groups_relations ON poll_groups_relations.poll_id = polls.id").
		Where("poll_groups_relations.group_id = ?", groupID).
		Find(&polls).Error
	if err != nil {
		return nil, err
	}

	return polls, nil
}
