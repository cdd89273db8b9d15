package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type n64Entry struct {
	game     models.GroupedGame
	earliest *time.Time
}

// listN64 has no secondary grouping: every row is its own group and the whole
// match set is sorted and sliced in memory, since the sort key is derived.
func (s *Service) listN64(ctx context.Context, q query, viewer string) ([]models.GroupedGame, int64, error) {
	tx := s.n64.WithContext(ctx).Select("id", "title", "release_na", "release_jp", "release_pal")
	if q.search != "" {
		tx = tx.Where(`LOWER(title) LIKE ? ESCAPE '\'`, likePattern(q.search))
	}

	var rows []models.N64Game
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, apperr.Storage("Failed to fetch games", err)
	}

	entries := make([]n64Entry, 0, len(rows))
	for _, r := range rows {
		e := toN64Entry(r)
		if q.region != "" && e.game.Variants[0].Region != q.region {
			continue
		}
		entries = append(entries, e)
	}
	total := int64(len(entries))

	sortN64(entries, q.sort)

	start := q.skip()
	if start > len(entries) {
		start = len(entries)
	}
	end := start + q.limit
	if end > len(entries) {
		end = len(entries)
	}
	page := entries[start:end]

	ids := make([]string, len(page))
	for i, e := range page {
		ids[i] = e.game.Variants[0].ID
	}
	owned, err := s.owners.OwnedIDs(ctx, viewer, models.PlatformN64, ids)
	if err != nil {
		return nil, 0, err
	}

	games := make([]models.GroupedGame, len(page))
	for i, e := range page {
		g := e.game
		_, g.Variants[0].Owned = owned[g.Variants[0].ID]
		games[i] = g
	}
	return games, total, nil
}

func toN64Entry(r models.N64Game) n64Entry {
	earliest := EarliestRelease(r.ReleaseNA, r.ReleaseJP, r.ReleasePAL)
	var year *int
	if earliest != nil {
		y := earliest.Year()
		year = &y
	}
	cover := N64CoverPath(r.ID)
	return n64Entry{
		earliest: earliest,
		game: models.GroupedGame{
			Title:      r.Title,
			CoverPath:  &cover,
			ReleaseNA:  r.ReleaseNA,
			ReleaseJP:  r.ReleaseJP,
			ReleasePAL: r.ReleasePAL,
			Variants: []models.Variant{{
				ID:          r.ID,
				Serial:      models.PlatformN64,
				Region:      InferRegion(r.ReleaseNA, r.ReleaseJP, r.ReleasePAL),
				Console:     models.PlatformN64,
				ReleaseYear: year,
			}},
		},
	}
}

// sortN64 orders by title first so that equal dates keep a stable, readable order.
// Under year_desc the title pass runs descending too, so desc is the exact reverse of asc.
func sortN64(entries []n64Entry, mode string) {
	desc := mode == SortYearDesc
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		c := col.CompareString(entries[i].game.Title, entries[j].game.Title)
		if desc {
			return c > 0
		}
		return c < 0
	})

	if mode != SortYearAsc && !desc {
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].earliest, entries[j].earliest
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		case desc:
			return a.After(*b)
		default:
			return a.Before(*b)
		}
	})
}

func N64CoverPath(id string) string { return fmt.Sprintf("/api/n64-covers/%s", id) }
