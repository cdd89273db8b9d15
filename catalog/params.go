package catalog

import (
	"strings"

	"github.com/cleitonzila/n64-checklist/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
)

const (
	SortTitle    = "title"
	SortYearAsc  = "year_asc"
	SortYearDesc = "year_desc"
)

// regionCodes maps the region filter values to stored region codes.
var regionCodes = map[string]string{
	"USA": models.RegionUSA,
	"JPN": models.RegionJPN,
	"EUR": models.RegionEUR,
}

// query is a ListParams with every field resolved to a supported value.
type query struct {
	console string
	page    int
	limit   int
	search  string
	region  string // stored region code, "" for all
	sort    string
}

func (q query) skip() int { return (q.page - 1) * q.limit }

// normalize applies defaults. Unknown region, sort and console values fall back silently.
func normalize(p models.ListParams) query {
	q := query{
		console: models.PlatformPS1,
		page:    p.Page,
		limit:   p.Limit,
		search:  strings.TrimSpace(p.Search),
		region:  regionCodes[strings.ToUpper(strings.TrimSpace(p.Region))],
		sort:    SortTitle,
	}
	if strings.EqualFold(p.Console, models.PlatformN64) {
		q.console = models.PlatformN64
	}
	if q.page < 1 {
		q.page = DefaultPage
	}
	if q.limit < 1 {
		q.limit = DefaultLimit
	}
	if q.limit > MaxLimit {
		q.limit = MaxLimit
	}
	switch p.Sort {
	case SortYearAsc, SortYearDesc:
		q.sort = p.Sort
	}
	return q
}

func totalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func metadata(q query, total int64) models.ListMetadata {
	return models.ListMetadata{
		Page:       q.page,
		Limit:      q.limit,
		Total:      total,
		TotalPages: totalPages(total, q.limit),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a lower-cased substring pattern for "LOWER(col) LIKE ? ESCAPE '\'".
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

// Resolve returns params with defaults and fallbacks applied, as ListGames sees them.
func Resolve(p models.ListParams) models.ListParams {
	q := normalize(p)
	region := ""
	for name, code := range regionCodes {
		if code == q.region {
			region = name
		}
	}
	return models.ListParams{
		Page:    q.page,
		Limit:   q.limit,
		Search:  q.search,
		Region:  region,
		Sort:    q.sort,
		Console: q.console,
	}
}
