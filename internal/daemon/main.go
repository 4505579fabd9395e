// Package daemon wires the database, session storage and web service together.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/config"
	"github.com/pollhive/pollhive/internal/db/dsn"
	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/web"
	"github.com/pollhive/pollhive/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService web.Service
	port       int
}

// Start starts the Daemon's web service and blocks until it stops.
// Shutdown signals are handled in the background for a graceful stop.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.port))
}

// openDialector selects the gorm driver for the configured database.
func openDialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.Driver {
	case "postgres":
		return gormpostgres.Open(dsn.Create(cfg))
	case "sqlite":
		return sqlite.Open(dsn.Create(cfg))
	default:
		return gormmysql.Open(dsn.Create(cfg))
	}
}

// sessionStorage selects the session storage backend matching the database
// driver. Under sqlite the fiber in-memory store is used.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.Driver {
	case "mysql":
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	case "postgres":
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	default:
		return nil
	}
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Membership{},
		&models.Poll{},
		&models.PollAccess{},
		&models.PollMember{},
		&models.Vote{},
		&models.Comment{},
		&models.Attachment{},
		&models.InviteLink{},
		&models.JoinGroupRequest{},
		&models.SharePollLink{},
		&models.JoinPollInvite{},
	)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{
		TranslateError: true, // map unique violations to gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, db)

	session.Init(sessionStorage(cfg))

	return &Daemon{
		webService: *web.New(cfg, db),
		port:       cfg.Webserver.Port,
	}
}
