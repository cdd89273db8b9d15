package catalog

import (
	"context"
	"math"
	"sync"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/models"
)

// Stats reports collection progress per platform for userID (or the public viewer).
func (s *Service) Stats(ctx context.Context, userID string) (*models.CollectionStats, error) {
	viewer := s.ViewerID(userID)

	ctx, span := tracer.Start(ctx, "catalog.Stats")
	defer span.End()

	// The four counts hit independent stores, so they run concurrently.
	var ps1Total, n64Total, ps1Owned, n64Owned int64
	var wg sync.WaitGroup
	errChan := make(chan error, 4)
	count := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				errChan <- err
			}
		}()
	}

	count(func() error {
		if err := s.ps1.WithContext(ctx).Model(&models.PS1Game{}).Distinct("title").Count(&ps1Total).Error; err != nil {
			return apperr.Storage("Failed to count games", err)
		}
		return nil
	})
	count(func() error {
		if err := s.n64.WithContext(ctx).Model(&models.N64Game{}).Count(&n64Total).Error; err != nil {
			return apperr.Storage("Failed to count games", err)
		}
		return nil
	})
	count(func() (err error) {
		ps1Owned, err = s.owners.CountOwned(ctx, viewer, models.PlatformPS1)
		return err
	})
	count(func() (err error) {
		n64Owned, err = s.owners.CountOwned(ctx, viewer, models.PlatformN64)
		return err
	})

	wg.Wait()
	close(errChan)
	if err := <-errChan; err != nil {
		return nil, err
	}

	return &models.CollectionStats{
		PS1: platformStats(ps1Total, ps1Owned),
		N64: platformStats(n64Total, n64Owned),
	}, nil
}

func platformStats(total, owned int64) models.PlatformStats {
	return models.PlatformStats{Total: total, Owned: owned, Percentage: Percentage(owned, total)}
}

// Percentage is round(owned/total*100), 0 for an empty catalog.
func Percentage(owned, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(owned) / float64(total) * 100))
}
