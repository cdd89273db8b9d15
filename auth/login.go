package auth

import (
	"context"
	"errors"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/models"
	"gorm.io/gorm"
)

// Authenticator checks credentials against the users table in the ownership store.
type Authenticator struct {
	db *gorm.DB
}

func NewAuthenticator(db *gorm.DB) *Authenticator {
	return &Authenticator{db: db}
}

func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := a.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	if err != nil {
		return nil, apperr.Storage("Failed to load user", err)
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	return &user, nil
}

// UpsertUser creates the user or resets the password of an existing one.
func (a *Authenticator) UpsertUser(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = a.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{Username: username, PasswordHash: hash}
		if err := a.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, apperr.Storage("Failed to create user", err)
		}
	case err != nil:
		return nil, apperr.Storage("Failed to load user", err)
	default:
		if err := a.db.WithContext(ctx).Model(&user).Update("password_hash", hash).Error; err != nil {
			return nil, apperr.Storage("Failed to update user", err)
		}
	}
	return &user, nil
}
