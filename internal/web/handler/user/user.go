// Package user provides the account endpoints: registration, login,
// logout and the current-user view.
package user

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/config"
	dbuser "github.com/pollhive/pollhive/internal/db/controller/user"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/web/handler"
	"github.com/pollhive/pollhive/internal/web/session"
)

// Path is the base path for user endpoints.
const Path = "/users"

// Service provides the user endpoints.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

type createInput struct {
	Username  string `json:"username" validate:"required,min=1,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=255"`
	FirstName string `json:"first_name" validate:"max=255"`
	LastName  string `json:"last_name" validate:"max=255"`
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userView is the public shape of a user, without the password hash.
type userView struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Image     string `json:"image"`
}

func viewOf(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Image:     u.Image,
	}
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Post(Path+"/create", s.Create)
	app.Post(Path+"/login", s.Login)
	app.Post(Path+"/logout", s.Logout)
	app.Get(Path+"/me", s.Me)
}

// Create registers a new account.
func (s *Service) Create(c *fiber.Ctx) error {
	var input createInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	u, err := dbuser.Create(s.db, input.Username, input.Password, input.FirstName, input.LastName)
	if err != nil {
		if errors.Is(err, dbuser.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(viewOf(u))
}

// Login verifies credentials and issues a session cookie.
func (s *Service) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	u, err := dbuser.Authenticate(s.db, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, dbuser.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		return handler.RenderError(c, err)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		return handler.RenderError(c, err)
	}

	sessData := session.Data{User: *u}
	if err := sessData.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		return handler.RenderError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		Expires:  time.Now().Add(s.cfg.Webserver.Session.ExpiryTime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(viewOf(u))
}

// Logout drops the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	if cookie := c.Cookies(session.CookieName); cookie != "" {
		if err := session.Delete(cookie); err != nil {
			log.Warn().Err(err).Msg("failed to delete session")
		}
	}

	c.ClearCookie(session.CookieName)

	return c.SendStatus(fiber.StatusNoContent)
}

// Me returns the logged-in user.
func (s *Service) Me(c *fiber.Ctx) error {
	u, ok := handler.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized",
		})
	}

	// re-read so a stale session never serves outdated profile data
	fresh, err := dbuser.GetByID(s.db, u.ID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(viewOf(fresh))
}
