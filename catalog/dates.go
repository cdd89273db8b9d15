package catalog

import (
	"strings"
	"time"

	"github.com/cleitonzila/n64-checklist/models"
)

var releaseLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"January 2006",
	"Jan 2006",
	"2006-01",
	"2006",
}

// released reports whether a regional date field names an actual release.
func released(s *string) bool {
	if s == nil {
		return false
	}
	v := strings.TrimSpace(*s)
	return v != "" && !strings.Contains(strings.ToLower(v), "unreleased")
}

// ParseReleaseDate parses a free-form release date. Anything unparseable is reported as absent.
func ParseReleaseDate(s *string) (time.Time, bool) {
	if !released(s) {
		return time.Time{}, false
	}
	v := strings.TrimSpace(*s)
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EarliestRelease returns the earliest parseable date among the regional fields.
func EarliestRelease(fields ...*string) *time.Time {
	var earliest *time.Time
	for _, f := range fields {
		t, ok := ParseReleaseDate(f)
		if !ok {
			continue
		}
		if earliest == nil || t.Before(*earliest) {
			earliest = &t
		}
	}
	return earliest
}

// InferRegion picks a region for rows without a region column. NA wins, then Japan, then PAL;
// a row with no release anywhere is U.
func InferRegion(na, jp, pal *string) string {
	switch {
	case released(na):
		return models.RegionUSA
	case released(jp):
		return models.RegionJPN
	case released(pal):
		return models.RegionEUR
	default:
		return models.RegionUSA
	}
}
