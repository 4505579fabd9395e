// Package invite implements the lifecycle of group invite links and
// targeted join requests: creation under the role policy, status
// classification at read time, transactional consumption and idempotent
// revocation.
package invite

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/access"
	"github.com/pollhive/pollhive/internal/db/controller/membership"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
	"github.com/pollhive/pollhive/internal/uniuri"
)

// CodeLen is the length of generated link codes (~130 bits of entropy).
const CodeLen = 22

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// statusOutcome maps a non-active link status to the outcome reported to
// the caller. A revoked link is reported as not found on purpose: the code
// should behave as if it never existed.
func statusOutcome(status models.LinkStatus) error {
	switch status {
	case models.LinkStatusExpired:
		return outcome.LinkExpired
	case models.LinkStatusUsageLimitExceeded:
		return outcome.UsageLimitExceeded
	default:
		return outcome.NotFound
	}
}

// Create issues a new invite link for the group. The requester's current
// role is re-read and checked against the delegation policy; both the
// expiry and the usage limit are optional (nil means unbounded).
func Create(
	db *gorm.DB,
	groupID, requesterID uint64,
	role models.GroupRole,
	expires *time.Time,
	usageLimit *int,
) (*models.InviteLink, error) {
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

	link := models.InviteLink{
		Code:        uniuri.NewLen(CodeLen),
		Expires:     expires,
		UsageLimit:  usageLimit,
		Role:        role,
		GroupID:     groupID,
		CreatedByID: requesterID,
	}
	if err := db.Create(&link).Error; err != nil {
		return nil, err
	}

	return &link, nil
}

// Resolve looks up a link and classifies its status at the given time.
// The status is computed from the stored bounds on every call, never
// cached, since time advances independently of writes.
func Resolve(db *gorm.DB, code string, now time.Time) (*models.InviteLink, models.LinkStatus, error) {
	if db == nil {
		return nil, models.LinkStatusNotFound, ErrDBNil
	}

	var link models.InviteLink
	result := db.Where("code = ?", code).First(&link)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, models.LinkStatusNotFound, nil
		}
		return nil, models.LinkStatusNotFound, result.Error
	}

	return &link, link.Status(now), nil
}

// List returns all invite links of the group. Only admins and the owner
// may list them.
func List(db *gorm.DB, groupID, requesterID uint64) ([]models.InviteLink, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	role, err := membership.RoleOf(db, groupID, requesterID)
	if err != nil {
		return nil, err
	}

	if !access.CanWatchInviteLinks(role) {
		return nil, outcome.Forbidden
	}

	var links []models.InviteLink
	if err := db.Where("group_id = ?", groupID).Order("created_at").Find(&links).Error; err != nil {
		return nil, err
	}

	return links, nil
}

// Consume redeems a link for the given user, granting the link's role in
// the link's group. The whole operation runs in one transaction: the
// status check, the conditional usage increment and the membership grant
// either all happen or none do. The increment is guarded by the usage
// limit in the UPDATE itself, so two concurrent consumptions of a link
// with one use left cannot both succeed.
func Consume(db *gorm.DB, code string, userID uint64, now time.Time) (*models.Membership, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var granted *models.Membership

	err := db.Transaction(func(tx *gorm.DB) error {
		link, status, err := Resolve(tx, code, now)
		if err != nil {
			return err
		}

		if status != models.LinkStatusActive {
			return statusOutcome(status)
		}

		// Compare-and-swap on the usage counter. Zero rows affected means
		// a concurrent consumption spent the last use after our read.
		result := tx.Model(&models.InviteLink{}).
			Where("code = ? AND revoked_at IS NULL AND (usage_limit IS NULL OR uses < usage_limit)", code).
			Update("uses", gorm.Expr("uses + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return outcome.UsageLimitExceeded
		}

		granted, err = membership.Grant(tx, link.GroupID, userID, link.Role, link.CreatedByID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return granted, nil
}

// Revoke marks a link revoked. Only admins and the owner of the link's
// group may revoke. Revoking an already revoked, expired or exhausted link
// is a no-op success.
func Revoke(db *gorm.DB, code string, requesterID uint64, now time.Time) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var link models.InviteLink
		result := tx.Where("code = ?", code).First(&link)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return outcome.NotFound
			}
			return result.Error
		}

		role, err := membership.RoleOf(tx, link.GroupID, requesterID)
		if err != nil {
			return err
		}

		if !access.CanDeleteInviteLink(role) {
			return outcome.Forbidden
		}

		if link.RevokedAt != nil {
			return nil
		}

		return tx.Model(&link).Update("revoked_at", now).Error
	})
}
