package poll

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
	"github.com/pollhive/pollhive/internal/uniuri"
)

// ShareCodeLen is the length of generated share link codes.
const ShareCodeLen = 22

// grantMember is the single write path for per-user poll roles: an
// existing grant gets its role overwritten, otherwise a row is inserted.
func grantMember(tx *gorm.DB, pollID, userID uint64, role models.PollRole, grantedByID uint64) (*models.PollMember, error) {
	var m models.PollMember
	result := tx.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&m)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		m = models.PollMember{
			PollID:    pollID,
			UserID:    userID,
			Role:      role,
			AddedByID: grantedByID,
		}
		if err := tx.Create(&m).Error; err != nil {
			return nil, err
		}

		return &m, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	m.Role = role
	m.AddedByID = grantedByID
	if err := tx.Save(&m).Error; err != nil {
		return nil, err
	}

	return &m, nil
}

// shareStatusOutcome maps a non-active link status to its outcome,
// mirroring the group invite link mapping.
func shareStatusOutcome(status models.LinkStatus) error {
	switch status {
	case models.LinkStatusExpired:
		return outcome.LinkExpired
	case models.LinkStatusUsageLimitExceeded:
		return outcome.UsageLimitExceeded
	default:
		return outcome.NotFound
	}
}

// CreateShareLink issues a share link for the poll. Only the poll owner
// may share; the link type decides whether consumption grants viewing or
// voting rights. Both bounds are optional.
func CreateShareLink(
	db *gorm.DB,
	pollID, requesterID uint64,
	linkType models.ShareLinkType,
	expires *time.Time,
	usageLimit *int,
) (*models.SharePollLink, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if !linkType.Valid() {
		return nil, outcome.Forbidden
	}

	p, err := GetByID(db, pollID)
	if err != nil {
		return nil, err
	}

	if p.OwnerID != requesterID {
		return nil, outcome.Forbidden
	}

	link := models.SharePollLink{
		Code:        uniuri.NewLen(ShareCodeLen),
		Expires:     expires,
		UsageLimit:  usageLimit,
		Type:        linkType,
		PollID:      pollID,
		CreatedByID: requesterID,
	}
	if err := db.Create(&link).Error; err != nil {
		return nil, err
	}

	return &link, nil
}

// ResolveShareLink looks up a share link and classifies its status at the
// given time. Computed from the stored bounds on every call, never cached.
func ResolveShareLink(db *gorm.DB, code string, now time.Time) (*models.SharePollLink, models.LinkStatus, error) {
	if db == nil {
		return nil, models.LinkStatusNotFound, ErrDBNil
	}

	var link models.SharePollLink
	result := db.Where("code = ?", code).First(&link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.LinkStatusNotFound, nil
		}
		return nil, models.LinkStatusNotFound, result.Error
	}

	return &link, link.Status(now), nil
}

// ConsumeShareLink redeems a share link for the given user, granting the
// poll role the link's type maps to. Same transactional state machine as
// group invite links: status check, guarded usage increment, grant.
func ConsumeShareLink(db *gorm.DB, code string, userID uint64, now time.Time) (*models.PollMember, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var granted *models.PollMember

	err := db.Transaction(func(tx *gorm.DB) error {
		link, status, err := ResolveShareLink(tx, code, now)
		if err != nil {
			return err
		}

		if status != models.LinkStatusActive {
			return shareStatusOutcome(status)
		}

		result := tx.Model(&models.SharePollLink{}).
			Where("code = ? AND revoked_at IS NULL AND (usage_limit IS NULL OR uses < usage_limit)", code).
			Update("uses", gorm.Expr("uses + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return outcome.UsageLimitExceeded
		}

		granted, err = grantMember(tx, link.PollID, userID, link.Grants(), link.CreatedByID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return granted, nil
}

// RevokeShareLink marks a share link revoked. Only the poll owner may
// revoke; revoking a dead link again is a no-op success.
func RevokeShareLink(db *gorm.DB, code string, requesterID uint64, now time.Time) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var link models.SharePollLink
		result := tx.Where("code = ?", code).First(&link)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return outcome.NotFound
			}
			return result.Error
		}

		p, err := GetByID(tx, link.PollID)
		if err != nil {
			return err
		}

		if p.OwnerID != requesterID {
			return outcome.Forbidden
		}

		if link.RevokedAt != nil {
			return nil
		}

		return tx.Model(&link).Update("revoked_at", now).Error
	})
}

// CreateInvite issues a poll invite targeted at a specific user. Only the
// poll owner may invite.
func CreateInvite(
	db *gorm.DB,
	pollID, forWhomID uint64,
	role models.PollRole,
	requesterID uint64,
) (*models.JoinPollInvite, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if !role.Valid() {
		return nil, outcome.Forbidden
	}

	p, err := GetByID(db, pollID)
	if err != nil {
		return nil, err
	}

	if p.OwnerID != requesterID {
		return nil, outcome.Forbidden
	}

	inv := models.JoinPollInvite{
		PollID:      pollID,
		ForWhomID:   forWhomID,
		Role:        role,
		CreatedByID: requesterID,
	}
	if err := db.Create(&inv).Error; err != nil {
		return nil, err
	}

	return &inv, nil
}

// ListInvitesFor returns the pending poll invites addressed to the user.
func ListInvitesFor(db *gorm.DB, userID uint64) ([]models.JoinPollInvite, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var invites []models.JoinPollInvite
	err := db.Where("for_whom_id = ? AND accepted_at IS NULL", userID).
		Order("created_at").Find(&invites).Error
	if err != nil {
		return nil, err
	}

	return invites, nil
}

// AcceptInvite redeems a targeted poll invite. Only the targeted user may
// accept; the invite is single-use via the conditional AcceptedAt stamp.
func AcceptInvite(db *gorm.DB, inviteID, userID uint64, now time.Time) (*models.PollMember, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var granted *models.PollMember

	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.JoinPollInvite
		result := tx.First(&inv, inviteID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return outcome.NotFound
			}
			return result.Error
		}

		if inv.ForWhomID != userID {
			return outcome.Forbidden
		}

		if inv.AcceptedAt != nil {
			return outcome.UsageLimitExceeded
		}

		stamp := tx.Model(&models.JoinPollInvite{}).
			Where("id = ? AND accepted_at IS NULL", inviteID).
			Update("accepted_at", now)
		if stamp.Error != nil {
			return stamp.Error
		}
		if stamp.RowsAffected == 0 {
			return outcome.UsageLimitExceeded
		}

		var err error
		granted, err = grantMember(tx, inv.PollID, userID, inv.Role, inv.CreatedByID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return granted, nil
}
