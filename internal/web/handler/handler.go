// Package handler holds the pieces shared by all API handlers: the
// handler service interface, the outcome-to-response mapping and the
// current-user accessor.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/config"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
)

// ErrNilACDFatalLogMsg is logged when a handler is initialized with nil dependencies.
const ErrNilACDFatalLogMsg = "app, config and db cannot be nil"

// CurrentUserKey is the fiber.Locals key the auth middleware stores the
// logged-in user under.
const CurrentUserKey = "CurrentUser"

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB)
}

// CurrentUser returns the logged-in user placed in Locals by the auth
// middleware. The bool is false on routes that skip authentication.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	u, ok := c.Locals(CurrentUserKey).(models.User)
	return u, ok
}

// RenderError writes the response for a failed domain operation. Typed
// outcomes map 1:1 to their status and the stable exception id contract
// {"exception_id": id, "message": description}; anything else is an
// internal error and is logged, not leaked.
func RenderError(c *fiber.Ctx, err error) error {
	if o := outcome.From(err); o != nil {
		return c.Status(o.Status).JSON(fiber.Map{
			"exception_id": o.ID,
			"message":      o.Message,
		})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled domain error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}

// RenderValidation writes a 400 response for a malformed or invalid request body.
func RenderValidation(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": err.Error(),
	})
}
