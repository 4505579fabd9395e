package daemon

import (
	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/config"
	"github.com/pollhive/pollhive/internal/db/models"
)

func seed(cfg *config.Config, db *gorm.DB) {
	// Seed a first account in dev mode so the API is usable right away.
	if !cfg.DevMode {
		return
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		db.Create(
			&models.User{
				Username: "admin",
				Password: models.HashPassword("changeme"),
			},
		)
	}
}
