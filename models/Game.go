package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlatformPS1 = "PS1"
	PlatformN64 = "N64"
)

// Region codes stored on catalog rows.
const (
	RegionUSA = "U"
	RegionJPN = "J"
	RegionEUR = "P"
)

// PS1Game is one regional release. Several rows share a Title.
type PS1Game struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Title       string  `gorm:"not null;index" json:"title"`
	Serial      string  `gorm:"not null;uniqueIndex" json:"serial"`
	Region      string  `gorm:"size:1;not null;index" json:"region"`
	ReleaseDate *string `json:"releaseDate"`
	ReleaseYear *int    `gorm:"index" json:"releaseYear"`
	CoverPath   *string `json:"coverPath"`
	CoverData   []byte  `json:"-"`
	SourceURL   string  `json:"sourceUrl"`
}

func (PS1Game) TableName() string { return "ps1_games" }

func (g *PS1Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

// N64Game carries a single row per title with free-form regional release dates.
type N64Game struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	Title      string  `gorm:"not null;index" json:"title"`
	ReleaseNA  *string `gorm:"column:release_na" json:"release_na"`
	ReleaseJP  *string `gorm:"column:release_jp" json:"release_jp"`
	ReleasePAL *string `gorm:"column:release_pal" json:"release_pal"`
	CoverData  []byte  `gorm:"column:cover_data" json:"-"`
}

func (N64Game) TableName() string { return "n64_games" }

func (g *N64Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}
