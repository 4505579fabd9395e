// Package auth implements the session authentication middleware for the API.
package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pollhive/pollhive/internal/web/handler"
	"github.com/pollhive/pollhive/internal/web/session"
)

// openPaths are reachable without a session.
var openPaths = map[string]bool{
	"/users/create": true,
	"/users/login":  true,
	"/checkalive":   true,
}

// Middleware is a Fiber middleware that resolves the session cookie into
// the current user. Requests without a valid session get a 401; open
// paths pass through.
func Middleware(c *fiber.Ctx) error {
	if openPaths[c.Path()] {
		return c.Next()
	}

	cookie := c.Cookies(session.CookieName)
	if cookie == "" {
		return unauthorized(c)
	}

	sessData := new(session.Data)
	if err := sessData.Read(cookie); err != nil {
		return unauthorized(c)
	}

	if sessData.User.ID == 0 {
		return unauthorized(c)
	}

	c.Locals(handler.CurrentUserKey, sessData.User)

	return c.Next()
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "unauthorized",
	})
}
