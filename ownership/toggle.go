package ownership

import (
	"context"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/models"
	"github.com/cleitonzila/n64-checklist/utils"
	"github.com/sirupsen/logrus"
)

// Notifier is told that listings for a user are stale after a toggle.
type Notifier interface {
	Refresh(ctx context.Context, userID, platform string) error
}

type nopNotifier struct{}

func (nopNotifier) Refresh(context.Context, string, string) error { return nil }

type Service struct {
	store    *Store
	notifier Notifier
}

func NewService(store *Store, notifier Notifier) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Service{store: store, notifier: notifier}
}

// Toggle flips ownership of gameID for userID and returns the new owned state.
//
// The create branch checks for an existing record first so a repeated submit is a no-op
// instead of a unique-constraint failure. The check and the write are not atomic.
func (s *Service) Toggle(ctx context.Context, gameID string, currentStatus bool, platform, userID string) (bool, error) {
	if userID == "" {
		return false, apperr.Unauthorized("Unauthorized")
	}
	if platform != models.PlatformN64 {
		platform = models.PlatformPS1
	}

	fields := logrus.Fields{"user_id": userID, "game_id": gameID, "platform": platform}

	if currentStatus {
		if err := s.store.Delete(ctx, userID, gameID, platform); err != nil {
			utils.Log.WithFields(fields).WithError(err).Error("Ownership delete failed")
			return true, err
		}
	} else {
		existing, err := s.store.Find(ctx, userID, gameID, platform)
		if err != nil {
			utils.Log.WithFields(fields).WithError(err).Error("Ownership lookup failed")
			return false, err
		}
		if existing == nil {
			if err := s.store.Create(ctx, userID, gameID, platform); err != nil {
				utils.Log.WithFields(fields).WithError(err).Error("Ownership create failed")
				return false, err
			}
		} else {
			utils.Log.WithFields(fields).Debug("Ownership already recorded")
		}
	}

	if err := s.notifier.Refresh(ctx, userID, platform); err != nil {
		utils.Log.WithFields(fields).WithError(err).Warn("Refresh signal failed")
	}
	return !currentStatus, nil
}
