// Package group provides the group endpoints: creation, member listing,
// invite links, and targeted join requests.
package group

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/config"
	dbgroup "github.com/pollhive/pollhive/internal/db/controller/group"
	"github.com/pollhive/pollhive/internal/db/controller/invite"
	"github.com/pollhive/pollhive/internal/db/controller/membership"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/web/handler"
)

// Path is the base path for group endpoints.
const Path = "/groups"

// Service provides the group endpoints.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

type createInput struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Logo string `json:"logo" validate:"max=255"`
}

type inviteInput struct {
	Role       string     `json:"role" validate:"required,oneof=viewer reviewer admin"`
	Expires    *time.Time `json:"expires"`
	UsageLimit *int       `json:"usage_limit" validate:"omitempty,min=1"`
}

type requestInput struct {
	ForWhomID uint64 `json:"for_whom_id" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=viewer reviewer admin"`
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

	app.Post(Path, s.Create)
	app.Get(Path+"/:id", s.Get)
	app.Get(Path+"/:id/members", s.Members)
	app.Post(Path+"/:id/invites", s.CreateInvite)
	app.Get(Path+"/:id/invites", s.ListInvites)
	app.Delete(Path+"/:id/invites/:code", s.RevokeInvite)
	app.Post("/invites/:code/join", s.Join)
	app.Post(Path+"/:id/requests", s.CreateRequest)
	app.Get("/requests", s.MyRequests)
	app.Post("/requests/:id/accept", s.AcceptRequest)
}

func parseID(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}

// Create creates a group owned by the caller.
func (s *Service) Create(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	var input createInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	g, err := dbgroup.Create(s.db, u.ID, input.Name, input.Logo)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(g)
}

// Get returns a group by id.
func (s *Service) Get(c *fiber.Ctx) error {
	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	g, err := dbgroup.GetByID(s.db, groupID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(g)
}

// Members lists the group's memberships. Admin or owner only.
func (s *Service) Members(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	members, err := membership.ListMembers(s.db, groupID, u.ID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(members)
}

// CreateInvite issues an invite link for the group.
func (s *Service) CreateInvite(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	var input inviteInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	link, err := invite.Create(s.db, groupID, u.ID, models.GroupRole(input.Role), input.Expires, input.UsageLimit)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(link)
}

// ListInvites lists the group's invite links. Admin or owner only.
func (s *Service) ListInvites(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	links, err := invite.List(s.db, groupID, u.ID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(links)
}

// RevokeInvite revokes an invite link. Idempotent.
func (s *Service) RevokeInvite(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	if err := invite.Revoke(s.db, c.Params("code"), u.ID, time.Now()); err != nil {
		return handler.RenderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Join consumes an invite link, adding the caller to the link's group.
func (s *Service) Join(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	m, err := invite.Consume(s.db, c.Params("code"), u.ID, time.Now())
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}

// CreateRequest issues a join request targeted at a specific user.
func (s *Service) CreateRequest(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	groupID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	var input requestInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	request, err := invite.CreateRequest(s.db, groupID, input.ForWhomID, models.GroupRole(input.Role), u.ID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// MyRequests lists the pending join requests addressed to the caller.
func (s *Service) MyRequests(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	requests, err := invite.ListRequestsFor(s.db, u.ID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(requests)
}

// AcceptRequest accepts a join request addressed to the caller.
func (s *Service) AcceptRequest(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	requestID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	m, err := invite.AcceptRequest(s.db, requestID, u.ID, time.Now())
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}
