package catalog

import (
	"context"
	"errors"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/models"
	"gorm.io/gorm"
)

// PS1Cover returns the stored cover bytes for a PS1 row.
func (s *Service) PS1Cover(ctx context.Context, id string) ([]byte, error) {
	var g models.PS1Game
	err := s.ps1.WithContext(ctx).Select("id", "cover_data").Where("id = ?", id).First(&g).Error
	return coverBytes(g.CoverData, err)
}

// N64Cover returns the stored cover bytes for an N64 row.
func (s *Service) N64Cover(ctx context.Context, id string) ([]byte, error) {
	var g models.N64Game
	err := s.n64.WithContext(ctx).Select("id", "cover_data").Where("id = ?", id).First(&g).Error
	return coverBytes(g.CoverData, err)
}

func coverBytes(data []byte, err error) ([]byte, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Cover not found")
	}
	if err != nil {
		return nil, apperr.Storage("Failed to load cover", err)
	}
	if len(data) == 0 {
		return nil, apperr.NotFound("Cover not found")
	}
	return data, nil
}
