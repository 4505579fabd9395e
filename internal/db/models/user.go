package models

import (
	"net/url"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// IdenticonBaseURL is the base URL for generated fallback avatars.
// A user without an uploaded image gets an identicon seeded by username.
const IdenticonBaseURL = "https://api.dicebear.com/7.x/identicon/svg?seed="

// User represents a user account in the system.
// Users authenticate with a local password and are referenced by ID from
// memberships, polls, votes, links and comments.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Username is the unique username for login.
	Username string `gorm:"unique;size:255;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:255"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:255"`
	// Image is the URL of the user's avatar. Defaults to an identicon
	// derived from the username when left empty.
	Image string `gorm:"size:255"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// BeforeCreate fills in the identicon avatar for users created without an image.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.Image == "" {
		u.Image = IdenticonBaseURL + url.QueryEscape(u.Username)
	}

	return nil
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating user passwords.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// It uses constant-time comparison to prevent timing attacks.
// Returns true if the password matches, false otherwise.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
