// Package user provides account creation, lookup and password checks.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pollhive/pollhive/internal/db/models"
	"github.com/pollhive/pollhive/internal/outcome"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUsernameEmpty is returned when creating a user without a username.
	ErrUsernameEmpty = errors.New("username cannot be empty")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrInvalidCredentials is returned when authentication fails. The
	// message does not reveal whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Create registers a new user with an Argon2id-hashed password.
func Create(db *gorm.DB, username, password, firstName, lastName string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	var existing models.User
	result := db.Where("username = ?", username).First(&existing)
	if result.Error == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	u := models.User{
		Username:  username,
		Password:  models.HashPassword(password),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := db.Create(&u).Error; err != nil {
		return nil, err
	}

	return &u, nil
}

// GetByID retrieves a user by ID.
func GetByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, outcome.NotFound
		}
		return nil, result.Error
	}

	return &u, nil
}

// Authenticate verifies the username/password pair and returns the user.
func Authenticate(db *gorm.DB, username, password string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	result := db.Where("username = ?", username).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, result.Error
	}

	if !u.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return &u, nil
}
