package ownership

import (
	"context"
	"errors"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/models"
	"gorm.io/gorm"
)

// Store is the ownership database. It never joins against the catalog stores.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Find returns the record for the composite key, or nil when the game is not owned.
func (s *Store) Find(ctx context.Context, userID, gameID, platform string) (*models.UserGame, error) {
	var rec models.UserGame
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ? AND platform = ?", userID, gameID, platform).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("Failed to load ownership", err)
	}
	return &rec, nil
}

// OwnedIDs returns the subset of gameIDs the user owns on platform.
func (s *Store) OwnedIDs(ctx context.Context, userID, platform string, gameIDs []string) (map[string]struct{}, error) {
	owned := make(map[string]struct{})
	if userID == "" || len(gameIDs) == 0 {
		return owned, nil
	}

	var ids []string
	err := s.db.WithContext(ctx).Model(&models.UserGame{}).
		Where("user_id = ? AND platform = ? AND owned = ? AND game_id IN ?", userID, platform, true, gameIDs).
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, apperr.Storage("Failed to load ownership", err)
	}
	for _, id := range ids {
		owned[id] = struct{}{}
	}
	return owned, nil
}

func (s *Store) CountOwned(ctx context.Context, userID, platform string) (int64, error) {
	var n int64
	if userID == "" {
		return 0, nil
	}
	err := s.db.WithContext(ctx).Model(&models.UserGame{}).
		Where("user_id = ? AND platform = ? AND owned = ?", userID, platform, true).
		Count(&n).Error
	if err != nil {
		return 0, apperr.Storage("Failed to count owned games", err)
	}
	return n, nil
}

// Delete removes every record for the key. Deleting nothing is not an error.
func (s *Store) Delete(ctx context.Context, userID, gameID, platform string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ? AND platform = ?", userID, gameID, platform).
		Delete(&models.UserGame{}).Error
	if err != nil {
		return apperr.Storage("Failed to remove ownership", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, userID, gameID, platform string) error {
	rec := models.UserGame{UserID: userID, GameID: gameID, Platform: platform, Owned: true}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return apperr.Storage("Failed to add ownership", err)
	}
	return nil
}
