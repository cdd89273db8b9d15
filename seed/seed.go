// Package seed imports catalog dumps into the catalog stores.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cleitonzila/n64-checklist/models"
	"github.com/cleitonzila/n64-checklist/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Year accepts a JSON number, a numeric string, or "N/A".
type Year struct {
	Value *int
}

func (y *Year) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if raw == "" || raw == "null" || strings.EqualFold(raw, "N/A") {
		y.Value = nil
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Unknown years are imported as missing rather than failing the whole dump.
		y.Value = nil
		return nil
	}
	y.Value = &n
	return nil
}

type PS1Record struct {
	Title     string `json:"title"`
	Serial    string `json:"serial"`
	Date      string `json:"date"`
	Year      Year   `json:"year"`
	CoverPath string `json:"cover_path"`
	URL       string `json:"url"`
}

type N64Record struct {
	Title      string  `json:"title"`
	ReleaseNA  *string `json:"release_na"`
	ReleaseJP  *string `json:"release_jp"`
	ReleasePAL *string `json:"release_pal"`
	CoverPath  string  `json:"cover_path"`
}

type Result struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// LoadJSON reads a JSON array dump.
func LoadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// RegionFromURL derives the region code from the source page URL.
func RegionFromURL(url string) string {
	switch {
	case strings.Contains(url, "/U/"):
		return models.RegionUSA
	case strings.Contains(url, "/J/"):
		return models.RegionJPN
	default:
		return models.RegionEUR
	}
}

// ImportPS1 inserts records keyed by serial. Existing serials are left untouched.
func ImportPS1(ctx context.Context, db *gorm.DB, records []PS1Record, coverRoot string) (Result, error) {
	var res Result
	for _, r := range records {
		if r.Serial == "" || r.Title == "" {
			res.Skipped++
			continue
		}
		game := models.PS1Game{
			Title:       strings.TrimSpace(r.Title),
			Serial:      strings.TrimSpace(r.Serial),
			Region:      RegionFromURL(r.URL),
			ReleaseDate: optional(r.Date),
			ReleaseYear: r.Year.Value,
			CoverPath:   optional(r.CoverPath),
			CoverData:   readCover(coverRoot, r.CoverPath),
			SourceURL:   r.URL,
		}
		tx := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "serial"}}, DoNothing: true}).
			Create(&game)
		if tx.Error != nil {
			return res, fmt.Errorf("import %s: %w", r.Serial, tx.Error)
		}
		if tx.RowsAffected == 0 {
			res.Skipped++
			continue
		}
		res.Created++
	}
	utils.Log.WithFields(logrus.Fields{"created": res.Created, "skipped": res.Skipped}).Info("PS1 import finished")
	return res, nil
}

// ImportN64 inserts records keyed by title.
func ImportN64(ctx context.Context, db *gorm.DB, records []N64Record, coverRoot string) (Result, error) {
	var res Result
	for _, r := range records {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			res.Skipped++
			continue
		}
		var existing models.N64Game
		err := db.WithContext(ctx).Select("id").Where("title = ?", title).First(&existing).Error
		if err == nil {
			res.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("lookup %q: %w", title, err)
		}

		game := models.N64Game{
			Title:      title,
			ReleaseNA:  r.ReleaseNA,
			ReleaseJP:  r.ReleaseJP,
			ReleasePAL: r.ReleasePAL,
			CoverData:  readCover(coverRoot, r.CoverPath),
		}
		if err := db.WithContext(ctx).Create(&game).Error; err != nil {
			return res, fmt.Errorf("import %q: %w", title, err)
		}
		res.Created++
	}
	utils.Log.WithFields(logrus.Fields{"created": res.Created, "skipped": res.Skipped}).Info("N64 import finished")
	return res, nil
}

type Duplicate struct {
	Title string `json:"title"`
	Count int64  `json:"count"`
}

// Duplicates lists PS1 titles with more than one regional release.
func Duplicates(ctx context.Context, db *gorm.DB) ([]Duplicate, error) {
	var out []Duplicate
	err := db.WithContext(ctx).Model(&models.PS1Game{}).
		Select("title, COUNT(*) AS count").
		Group("title").
		Having("COUNT(*) > ?", 1).
		Order("count DESC, title ASC").
		Scan(&out).Error
	return out, err
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func readCover(root, rel string) []byte {
	if rel == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		utils.Log.WithField("cover", rel).Debug("Cover file not readable")
		return nil
	}
	return data
}
