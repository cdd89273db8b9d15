package catalog

import (
	"context"
	"testing"

	"github.com/cleitonzila/n64-checklist/db/dbtest"
	"github.com/cleitonzila/n64-checklist/models"
	"github.com/cleitonzila/n64-checklist/ownership"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const publicViewer = "public-viewer"

type env struct {
	svc    *Service
	ps1    *gorm.DB
	n64    *gorm.DB
	owners *ownership.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ps1, n64, own := dbtest.Stores(t)
	owners := ownership.NewStore(own)
	return &env{
		svc:    NewService(ps1, n64, owners, publicViewer),
		ps1:    ps1,
		n64:    n64,
		owners: owners,
	}
}

func strPtr(s string) *string { return &s }

func reverse(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
func intPtr(i int) *int       { return &i }

func (e *env) addPS1(t *testing.T, title, serial, region string, year *int, cover bool) models.PS1Game {
	t.Helper()
	g := models.PS1Game{Title: title, Serial: serial, Region: region, ReleaseYear: year}
	if cover {
		g.CoverPath = strPtr("covers/" + serial + ".jpg")
	}
	require.NoError(t, e.ps1.Create(&g).Error)
	return g
}

func (e *env) addN64(t *testing.T, title string, na, jp, pal *string) models.N64Game {
	t.Helper()
	g := models.N64Game{Title: title, ReleaseNA: na, ReleaseJP: jp, ReleasePAL: pal}
	require.NoError(t, e.n64.Create(&g).Error)
	return g
}

func (e *env) own(t *testing.T, userID, gameID, platform string) {
	t.Helper()
	require.NoError(t, e.owners.Create(context.Background(), userID, gameID, platform))
}

func titles(games []models.GroupedGame) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title
	}
	return out
}
