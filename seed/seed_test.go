package seed

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cleitonzila/n64-checklist/db/dbtest"
	"github.com/cleitonzila/n64-checklist/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearUnmarshal(t *testing.T) {
	var recs []PS1Record
	require.NoError(t, json.Unmarshal([]byte(`[{"year":"1997"},{"year":1998},{"year":"N/A"},{"year":null},{"year":"199x"}]`), &recs))

	got := []any{}
	for _, r := range recs {
		if r.Year.Value == nil {
			got = append(got, nil)
		} else {
			got = append(got, *r.Year.Value)
		}
	}
	assert.Equal(t, []any{1997, 1998, nil, nil, nil}, got)
}

func TestRegionFromURL(t *testing.T) {
	assert.Equal(t, "U", RegionFromURL("https://psxdatacenter.com/games/U/C/SCUS-94900.html"))
	assert.Equal(t, "J", RegionFromURL("https://psxdatacenter.com/games/J/A/SLPS-00001.html"))
	assert.Equal(t, "P", RegionFromURL("https://psxdatacenter.com/games/P/B/SCES-00001.html"))
}

func TestImportPS1(t *testing.T) {
	ps1, _, _ := dbtest.Stores(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crash.jpg"), []byte("img"), 0o644))

	records := []PS1Record{
		{Title: "Crash Bandicoot", Serial: "SCUS-94900", Year: Year{Value: intPtr(1996)}, CoverPath: "crash.jpg", URL: "/games/U/C/x.html"},
		{Title: "Crash Bandicoot", Serial: "SCES-00344", CoverPath: "missing.jpg", URL: "/games/P/C/y.html"},
		{Title: "Crash Bandicoot", Serial: "SCUS-94900", URL: "/games/U/C/x.html"},
		{Title: "", Serial: "SLUS-00000"},
	}

	res, err := ImportPS1(context.Background(), ps1, records, dir)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 2, Skipped: 2}, res)

	var us models.PS1Game
	require.NoError(t, ps1.Where("serial = ?", "SCUS-94900").First(&us).Error)
	assert.Equal(t, "U", us.Region)
	assert.Equal(t, []byte("img"), us.CoverData)
	assert.Equal(t, 1996, *us.ReleaseYear)

	var eu models.PS1Game
	require.NoError(t, ps1.Where("serial = ?", "SCES-00344").First(&eu).Error)
	assert.Equal(t, "P", eu.Region)
	assert.Nil(t, eu.CoverData)
	require.NotNil(t, eu.CoverPath)

	dups, err := Duplicates(context.Background(), ps1)
	require.NoError(t, err)
	assert.Equal(t, []Duplicate{{Title: "Crash Bandicoot", Count: 2}}, dups)
}

func TestImportN64(t *testing.T) {
	_, n64, _ := dbtest.Stores(t)
	na := "September 29, 1996"

	path := filepath.Join(t.TempDir(), "n64.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"title": "Super Mario 64", "release_na": "September 29, 1996", "release_jp": "June 23, 1996"},
		{"title": "Super Mario 64"},
		{"title": "  "}
	]`), 0o644))

	records, err := LoadJSON[N64Record](path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	res, err := ImportN64(context.Background(), n64, records, "")
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 1, Skipped: 2}, res)

	var g models.N64Game
	require.NoError(t, n64.First(&g).Error)
	assert.Equal(t, &na, g.ReleaseNA)
	assert.Nil(t, g.ReleasePAL)
}

func intPtr(i int) *int { return &i }
