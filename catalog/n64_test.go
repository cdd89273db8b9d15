package catalog

import (
	"context"
	"testing"

	"github.com/cleitonzila/n64-checklist/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListN64NullDateSortsLast(t *testing.T) {
	e := newEnv(t)
	e.addN64(t, "Alpha", strPtr("June 1, 1998"), nil, nil)
	e.addN64(t, "Beta", strPtr("Unreleased"), nil, strPtr("TBA"))
	e.addN64(t, "Gamma", nil, strPtr("1996-06-23"), nil)

	res, err := e.svc.ListGames(context.Background(), models.ListParams{Console: "N64", Sort: SortYearDesc, Limit: 2}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Gamma"}, titles(res.Games))
	assert.Equal(t, models.ListMetadata{Page: 1, Limit: 2, Total: 3, TotalPages: 2}, res.Metadata)

	res, err = e.svc.ListGames(context.Background(), models.ListParams{Console: "N64", Sort: SortYearAsc}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gamma", "Alpha", "Beta"}, titles(res.Games))
	assert.Nil(t, res.Games[2].Variants[0].ReleaseYear)
}

func TestListN64UsesEarliestRegionalDate(t *testing.T) {
	e := newEnv(t)
	e.addN64(t, "Super Mario 64", strPtr("1996-09-29"), strPtr("1996-06-23"), strPtr("1997-03-01"))
	e.addN64(t, "Pilotwings 64", strPtr("1996-09-29"), strPtr("1996-06-23T00:00:00Z"), nil)
	e.addN64(t, "Wave Race 64", strPtr("November 1, 1996"), strPtr("1996-09-27"), nil)

	res, err := e.svc.ListGames(context.Background(), models.ListParams{Console: "N64", Sort: SortYearAsc}, "")
	require.NoError(t, err)
	// Pilotwings and Mario tie on date and keep title order.
	assert.Equal(t, []string{"Pilotwings 64", "Super Mario 64", "Wave Race 64"}, titles(res.Games))
	assert.Equal(t, intPtr(1996), res.Games[0].Variants[0].ReleaseYear)
}

func TestListN64YearOrdersAreReversed(t *testing.T) {
	e := newEnv(t)
	e.addN64(t, "Bravo", strPtr("1997-01-01"), nil, nil)
	e.addN64(t, "alpha", strPtr("1997-01-01"), nil, nil)
	e.addN64(t, "Charlie", strPtr("1996-06-23"), nil, nil)
	e.addN64(t, "Delta", nil, nil, strPtr("March 1, 1998"))

	asc, err := e.svc.ListGames(context.Background(), models.ListParams{Console: "N64", Sort: SortYearAsc}, "")
	require.NoError(t, err)
	desc, err := e.svc.ListGames(context.Background(), models.ListParams{Console: "N64", Sort: SortYearDesc}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Charlie", "alpha", "Bravo", "Delta"}, titles(asc.Games))
	assert.Equal(t, reverse(titles(asc.Games)), titles(desc.Games))
}

func TestListN64SingleVariantShape(t *testing.T) {
	e := newEnv(t)
	g := e.addN64(t, "Sin and Punishment", nil, strPtr("November 21, 2000"), nil)
	e.own(t, publicViewer, g.ID, models.PlatformN64)

	res, err := e.svc.ListGames(context.Background(), models.ListParams{Console: "n64"}, "")
	require.NoError(t, err)
	require.Len(t, res.Games, 1)

	got := res.Games[0]
	require.NotNil(t, got.CoverPath)
	assert.Equal(t, N64CoverPath(g.ID), *got.CoverPath)
	assert.Equal(t, strPtr("November 21, 2000"), got.ReleaseJP)
	assert.Equal(t, []models.Variant{{
		ID:          g.ID,
		Serial:      "N64",
		Region:      models.RegionJPN,
		Console:     models.PlatformN64,
		ReleaseYear: intPtr(2000),
		Owned:       true,
	}}, got.Variants)
}

func TestListN64SearchAndRegion(t *testing.T) {
	e := newEnv(t)
	e.addN64(t, "GoldenEye 007", strPtr("August 25, 1997"), strPtr("August 23, 1997"), nil)
	e.addN64(t, "Goemon's Great Adventure", strPtr("1998-09-30"), strPtr("1997-12-23"), nil)
	e.addN64(t, "Ganbare Goemon 2", nil, strPtr("1997-12-23"), nil)
	e.addN64(t, "Mystical Ninja 2", nil, nil, strPtr("1999-03-01"))

	res, err := e.svc.ListGames(context.Background(), models.ListParams{Console: "N64", Search: "GOEMON"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ganbare Goemon 2", "Goemon's Great Adventure"}, titles(res.Games))

	res, err = e.svc.ListGames(context.Background(), models.ListParams{Console: "N64", Region: "JPN"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ganbare Goemon 2"}, titles(res.Games))
	assert.Equal(t, int64(1), res.Metadata.Total)

	res, err = e.svc.ListGames(context.Background(), models.ListParams{Console: "N64", Region: "EUR"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mystical Ninja 2"}, titles(res.Games))
}

func TestListN64TitleSortIgnoresCase(t *testing.T) {
	e := newEnv(t)
	e.addN64(t, "banjo-Kazooie", nil, nil, nil)
	e.addN64(t, "Body Harvest", nil, nil, nil)
	e.addN64(t, "Aero Gauge", nil, nil, nil)

	res, err := e.svc.ListGames(context.Background(), models.ListParams{Console: "N64", Sort: "bogus"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Aero Gauge", "banjo-Kazooie", "Body Harvest"}, titles(res.Games))
}
