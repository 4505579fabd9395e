// Package poll provides the poll endpoints: creation, freezing, voting,
// share links, targeted invites, group grants and comments.
package poll

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/config"
	dbpoll "github.com/pollhive/pollhive/internal/db/controller/poll"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/web/handler"
)

// Path is the base path for poll endpoints.
const Path = "/polls"

// Service provides the poll endpoints.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

type createInput struct {
	Title        string     `json:"title" validate:"required,min=1,max=255"`
	Deadline     *time.Time `json:"deadline"`
	VotersLimit  *int       `json:"voters_limit" validate:"omitempty,min=1"`
	AttachmentID *string    `json:"attachment_id" validate:"omitempty,max=255"`
}

type voteInput struct {
	Accepted *bool `json:"accepted" validate:"required"`
}

type shareInput struct {
	Type       string     `json:"type" validate:"required,oneof=viewer voter"`
	Expires    *time.Time `json:"expires"`
	UsageLimit *int       `json:"usage_limit" validate:"omitempty,min=1"`
}

type pollInviteInput struct {
	ForWhomID uint64 `json:"for_whom_id" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=viewer voter"`
}

type attachGroupInput struct {
	GroupID uint64 `json:"group_id" validate:"required"`
	Role    string `json:"role" validate:"required,oneof=viewer voter"`
}

type commentInput struct {
	Text string `json:"text" validate:"required,min=1,max=255"`
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
	app.Post(Path+"/:id/freeze", s.Freeze)
	app.Post(Path+"/:id/vote", s.Vote)
	app.Post(Path+"/:id/share", s.CreateShareLink)
	app.Delete(Path+"/:id/share/:code", s.RevokeShareLink)
	app.Post("/share/:code/join", s.JoinByShareLink)
	app.Post(Path+"/:id/invites", s.CreateInvite)
	app.Get("/poll-invites", s.MyInvites)
	app.Post("/poll-invites/:id/accept", s.AcceptInvite)
	app.Post(Path+"/:id/groups", s.AttachGroup)
	app.Post(Path+"/:id/comments", s.AddComment)
	app.Get(Path+"/:id/comments", s.Comments)
	app.Post("/comments/:id/resolve", s.ResolveComment)
}

func parseID(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}

// Create creates a poll owned by the caller. At least one of deadline or
// voters_limit must be set.
func (s *Service) Create(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	var input createInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	p, err := dbpoll.Create(s.db, u.ID, input.Title, input.Deadline, input.VotersLimit, input.AttachmentID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

// Get returns a poll by id.
func (s *Service) Get(c *fiber.Ctx) error {
	pollID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	p, err := dbpoll.GetByID(s.db, pollID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(p)
}

// Freeze transitions the poll to its terminal state. Owner only.
func (s *Service) Freeze(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	pollID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	p, err := dbpoll.Freeze(s.db, pollID, u.ID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(p)
}

// Vote casts the caller's vote on the poll.
func (s *Service) Vote(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	pollID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	var input voteInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	v, err := dbpoll.CastVote(s.db, pollID, u.ID, *input.Accepted, time.Now())
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(v)
}

// CreateShareLink issues a share link for the poll. Owner only.
func (s *Service) CreateShareLink(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	pollID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	var input shareInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	link, err := dbpoll.CreateShareLink(
		s.db, pollID, u.ID, models.ShareLinkType(input.Type), input.Expires, input.UsageLimit)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(link)
}

// RevokeShareLink revokes a share link. Idempotent.
func (s *Service) RevokeShareLink(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	if err := dbpoll.RevokeShareLink(s.db, c.Params("code"), u.ID, time.Now()); err != nil {
		return handler.RenderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// JoinByShareLink consumes a share link, granting the caller the link's
// poll role.
func (s *Service) JoinByShareLink(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	m, err := dbpoll.ConsumeShareLink(s.db, c.Params("code"), u.ID, time.Now())
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}

// CreateInvite issues a poll invite targeted at a specific user. Owner only.
func (s *Service) CreateInvite(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	pollID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	var input pollInviteInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	inv, err := dbpoll.CreateInvite(s.db, pollID, input.ForWhomID, models.PollRole(input.Role), u.ID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(inv)
}

// MyInvites lists the pending poll invites addressed to the caller.
func (s *Service) MyInvites(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	invites, err := dbpoll.ListInvitesFor(s.db, u.ID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(invites)
}

// AcceptInvite accepts a poll invite addressed to the caller.
func (s *Service) AcceptInvite(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	inviteID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	m, err := dbpoll.AcceptInvite(s.db, inviteID, u.ID, time.Now())
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}

// AttachGroup grants a group access to the poll. Owner only.
func (s *Service) AttachGroup(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	pollID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	var input attachGroupInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	grant, err := dbpoll.AttachGroup(s.db, pollID, input.GroupID, u.ID, models.PollRole(input.Role))
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(grant)
}

// AddComment posts a comment on the poll.
func (s *Service) AddComment(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	pollID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	var input commentInput
	if err := c.BodyParser(&input); err != nil {
		return handler.RenderValidation(c, err)
	}

	if err := s.validator.Struct(input); err != nil {
		return handler.RenderValidation(c, err)
	}

	comment, err := dbpoll.AddComment(s.db, pollID, u.ID, input.Text)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// Comments lists the poll's comments.
func (s *Service) Comments(c *fiber.Ctx) error {
	pollID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	comments, err := dbpoll.Comments(s.db, pollID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(comments)
}

// ResolveComment marks a comment as addressed.
func (s *Service) ResolveComment(c *fiber.Ctx) error {
	u, _ := handler.CurrentUser(c)

	commentID, err := parseID(c, "id")
	if err != nil {
		return handler.RenderValidation(c, err)
	}

	comment, err := dbpoll.ResolveComment(s.db, commentID, u.ID)
	if err != nil {
		return handler.RenderError(c, err)
	}

	return c.JSON(comment)
}
