package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserGame marks a catalog game as owned by a user. Absence means not owned.
type UserGame struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_user_game_platform" json:"userId"`
	GameID    string    `gorm:"size:36;not null;uniqueIndex:idx_user_game_platform" json:"gameId"`
	Platform  string    `gorm:"size:8;not null;uniqueIndex:idx_user_game_platform" json:"platform"`
	Owned     bool      `gorm:"not null;default:true" json:"owned"`
	CreatedAt time.Time `json:"createdAt"`
}

func (UserGame) TableName() string { return "user_games" }

func (o *UserGame) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// ToggleInput - body of POST /api/ownership/toggle
type ToggleInput struct {
	GameID        string `json:"gameId" validate:"required,max=64"`
	CurrentStatus bool   `json:"currentStatus"`
	Console       string `json:"console" validate:"omitempty,oneof=PS1 N64"`
}
