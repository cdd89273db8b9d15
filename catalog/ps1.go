package catalog

import (
	"context"
	"fmt"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/models"
	"gorm.io/gorm"
)

// Titles compare case-insensitively, matching the N64 collator. NULL years go last in both
// directions; the title tie-break follows the year direction so desc is the exact reverse of asc.
var ps1GroupOrder = map[string]string{
	SortTitle:    "LOWER(title) ASC, title ASC",
	SortYearAsc:  "CASE WHEN MIN(release_year) IS NULL THEN 1 ELSE 0 END ASC, MIN(release_year) ASC, LOWER(title) ASC, title ASC",
	SortYearDesc: "CASE WHEN MIN(release_year) IS NULL THEN 1 ELSE 0 END ASC, MIN(release_year) DESC, LOWER(title) DESC, title DESC",
}

type ps1Group struct {
	Title   string
	MinYear *int
}

func ps1Filter(q query) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.search != "" {
			p := likePattern(q.search)
			tx = tx.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(serial) LIKE ? ESCAPE '\')`, p, p)
		}
		if q.region != "" {
			tx = tx.Where("region = ?", q.region)
		}
		return tx
	}
}

// listPS1 pages over title groups, not rows, then loads every variant of the page's titles.
func (s *Service) listPS1(ctx context.Context, q query, viewer string) ([]models.GroupedGame, int64, error) {
	base := s.ps1.WithContext(ctx).Model(&models.PS1Game{}).Scopes(ps1Filter(q))

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("title").Count(&total).Error; err != nil {
		return nil, 0, apperr.Storage("Failed to count games", err)
	}

	var groups []ps1Group
	err := base.Session(&gorm.Session{}).
		Select("title, MIN(release_year) AS min_year").
		Group("title").
		Order(ps1GroupOrder[q.sort]).
		Offset(q.skip()).
		Limit(q.limit).
		Scan(&groups).Error
	if err != nil {
		return nil, 0, apperr.Storage("Failed to fetch games", err)
	}
	if len(groups) == 0 {
		return nil, total, nil
	}

	titles := make([]string, len(groups))
	for i, g := range groups {
		titles[i] = g.Title
	}

	var rows []models.PS1Game
	err = s.ps1.WithContext(ctx).
		Select("id", "title", "serial", "region", "release_year", "cover_path").
		Where("title IN ?", titles).
		Order("region ASC, serial ASC").
		Find(&rows).Error
	if err != nil {
		return nil, 0, apperr.Storage("Failed to fetch games", err)
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	owned, err := s.owners.OwnedIDs(ctx, viewer, models.PlatformPS1, ids)
	if err != nil {
		return nil, 0, err
	}

	return groupPS1(titles, rows, owned), total, nil
}

// groupPS1 builds one GroupedGame per title in page order. rows must already be in variant order.
func groupPS1(titles []string, rows []models.PS1Game, owned map[string]struct{}) []models.GroupedGame {
	games := make([]models.GroupedGame, len(titles))
	index := make(map[string]int, len(titles))
	for i, t := range titles {
		games[i] = models.GroupedGame{Title: t, Variants: []models.Variant{}}
		index[t] = i
	}

	for _, r := range rows {
		i, ok := index[r.Title]
		if !ok {
			continue
		}
		g := &games[i]
		if g.CoverPath == nil && r.CoverPath != nil {
			cover := PS1CoverPath(r.ID)
			g.CoverPath = &cover
		}
		_, isOwned := owned[r.ID]
		g.Variants = append(g.Variants, models.Variant{
			ID:          r.ID,
			Serial:      r.Serial,
			Region:      r.Region,
			Console:     models.PlatformPS1,
			ReleaseYear: r.ReleaseYear,
			Owned:       isOwned,
		})
	}
	return games
}

func PS1CoverPath(id string) string { return fmt.Sprintf("/api/ps1-covers/%s", id) }
