package invite

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/access"
	"github.com/pollhive/pollhive/internal/db/controller/membership"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
)

// CreateRequest issues a join request targeted at a specific user.
// The same delegation policy applies as for public links.
func CreateRequest(
	db *gorm.DB,
	groupID, forWhomID uint64,
	role models.GroupRole,
	requesterID uint64,
) (*models.JoinGroupRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	got, err := membership.RoleOf(db, groupID, requesterID)
	if err != nil {
		return nil, err
	}

	if !access.CanCreateInviteLink(got, role) {
		return nil, outcome.Forbidden
	}

	request := models.JoinGroupRequest{
		Role:        role,
		GroupID:     groupID,
		ForWhomID:   forWhomID,
		CreatedByID: requesterID,
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

// ListRequestsFor returns the pending join requests addressed to the user.
func ListRequestsFor(db *gorm.DB, userID uint64) ([]models.JoinGroupRequest, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var requests []models.JoinGroupRequest
	err := db.Where("for_whom_id = ? AND accepted_at IS NULL", userID).
		Order("created_at").Find(&requests).Error
	if err != nil {
		return nil, err
	}

	return requests, nil
}

// AcceptRequest redeems a targeted join request. Only the targeted user
// may accept, and a request is single-use: the conditional stamp of
// AcceptedAt makes a concurrent second accept fail.
func AcceptRequest(db *gorm.DB, requestID, userID uint64, now time.Time) (*models.Membership, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var granted *models.Membership

	err := db.Transaction(func(tx *gorm.DB) error {
		var request models.JoinGroupRequest
		result := tx.First(&request, requestID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return outcome.NotFound
			}
			return result.Error
		}

		if request.ForWhomID != userID {
			return outcome.Forbidden
		}

		if request.AcceptedAt != nil {
			return outcome.UsageLimitExceeded
		}

		stamp := tx.Model(&models.JoinGroupRequest{}).
			Where("id = ? AND accepted_at IS NULL", requestID).
			Update("accepted_at", now)
		if stamp.Error != nil {
			return stamp.Error
		}
		if stamp.RowsAffected == 0 {
			return outcome.UsageLimitExceeded
		}

		var err error
		granted, err = membership.Grant(tx, request.GroupID, userID, request.Role, request.CreatedByID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return granted, nil
}
