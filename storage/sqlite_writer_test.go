package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2-report/models"
)

func joinedFixture() *models.JoinedTable {
	return &models.JoinedTable{
		EmissionColumns: []string{models.ColTotal, models.ColBunker},
		Records: []models.Record{
			{
				Country:                 "SPAIN",
				Year:                    2013,
				Emissions:               map[string]float64{models.ColTotal: 100, models.ColBunker: 10},
				GDP:                     1000,
				Population:              10,
				TotalPerCapita:          10,
				TotalIncludingBunker:    110,
				TotalAndBunkerPerCapita: 11,
				GDPPerCapita:            100,
			},
			{
				Country:                 "ARUBA",
				Year:                    2013,
				Emissions:               map[string]float64{models.ColTotal: 50, models.ColBunker: models.Null()},
				GDP:                     models.Null(),
				Population:              models.Null(),
				TotalPerCapita:          models.Null(),
				TotalIncludingBunker:    models.Null(),
				TotalAndBunkerPerCapita: models.Null(),
				GDPPerCapita:            models.Null(),
			},
		},
	}
}

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")

	w, err := NewSQLiteWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(joinedFixture()))
	_, err = uuid.Parse(w.RunID())
	assert.NoError(t, err)
	require.NoError(t, w.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM country_year_stats`).Scan(&n))
	assert.Equal(t, 2, n)

	var perCapita sql.NullFloat64
	var breakdown string
	require.NoError(t, db.QueryRow(
		`SELECT total_and_bunker_per_capita, breakdown FROM country_year_stats WHERE country = ?`, "SPAIN",
	).Scan(&perCapita, &breakdown))
	assert.True(t, perCapita.Valid)
	assert.InDelta(t, 11, perCapita.Float64, 1e-9)

	var got map[string]float64
	require.NoError(t, json.Unmarshal([]byte(breakdown), &got))
	assert.Equal(t, map[string]float64{models.ColTotal: 100, models.ColBunker: 10}, got)

	var population sql.NullFloat64
	require.NoError(t, db.QueryRow(
		`SELECT population, breakdown FROM country_year_stats WHERE country = ?`, "ARUBA",
	).Scan(&population, &breakdown))
	assert.False(t, population.Valid)
	assert.JSONEq(t, `{"Bunker fuels (Not in Total)": null, "Total": 50}`, breakdown)

	var runIDs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(DISTINCT run_id) FROM country_year_stats`).Scan(&runIDs))
	assert.Equal(t, 1, runIDs)
}

func TestSQLiteWriterReplacesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")

	for i := 0; i < 2; i++ {
		w, err := NewSQLiteWriter(path)
		require.NoError(t, err)
		require.NoError(t, w.Write(joinedFixture()))
		require.NoError(t, w.Close())
	}

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM country_year_stats`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestSQLiteWriterReportsRemoveError(t *testing.T) {
	notDir := filepath.Join(t.TempDir(), "plain-file")
	require.NoError(t, os.WriteFile(notDir, []byte("x"), 0o644))

	_, err := NewSQLiteWriter(filepath.Join(notDir, "stats.db"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove old database")
}
