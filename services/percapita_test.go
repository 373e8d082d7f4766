package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2-report/models"
)

func TestDerivePerCapita(t *testing.T) {
	in := &models.JoinedTable{
		EmissionColumns: []string{models.ColTotal, models.ColBunker},
		Records: []models.Record{
			{Country: "SPAIN", Year: 2013, GDP: 5000, Population: 1000,
				Emissions: map[string]float64{models.ColTotal: 1, models.ColBunker: 9324}},
			{Country: "SPAIN", Year: 2014, GDP: 6000, Population: 1000,
				Emissions: map[string]float64{models.ColTotal: 1, models.ColBunker: 9892}},
		},
	}

	out := DerivePerCapita(in)
	require.Len(t, out.Records, 2)

	r := out.Records[0]
	assert.InDelta(t, 0.001, r.TotalPerCapita, 1e-12)
	assert.InDelta(t, 9325, r.TotalIncludingBunker, 1e-9)
	assert.InDelta(t, 9.325, r.TotalAndBunkerPerCapita, 1e-9)
	assert.InDelta(t, 5, r.GDPPerCapita, 1e-9)
	assert.InDelta(t, 9.893, out.Records[1].TotalAndBunkerPerCapita, 1e-9)

	for _, r := range out.Records {
		assert.InDelta(t, r.Total()/r.Population, r.TotalPerCapita, 1e-12)
		assert.InDelta(t, r.Total()+r.Bunker(), r.TotalIncludingBunker, 1e-12)
		assert.InDelta(t, r.TotalIncludingBunker/r.Population, r.TotalAndBunkerPerCapita, 1e-12)
		assert.InDelta(t, r.GDP/r.Population, r.GDPPerCapita, 1e-12)
	}

	// Input is untouched.
	assert.Equal(t, 0.0, in.Records[0].TotalAndBunkerPerCapita)
}

func TestDerivePerCapitaNullPopulation(t *testing.T) {
	in := &models.JoinedTable{Records: []models.Record{{
		Country:    "FRANCE",
		Year:       2013,
		GDP:        200,
		Population: models.Null(),
		Emissions:  map[string]float64{models.ColTotal: 3, models.ColBunker: 4},
	}}}

	out := DerivePerCapita(in)
	require.Len(t, out.Records, 1)

	r := out.Records[0]
	assert.True(t, models.IsNull(r.TotalPerCapita))
	assert.True(t, models.IsNull(r.TotalAndBunkerPerCapita))
	assert.True(t, models.IsNull(r.GDPPerCapita))
	assert.Equal(t, 7.0, r.TotalIncludingBunker)
}

func TestDerivePerCapitaMissingEmissions(t *testing.T) {
	in := &models.JoinedTable{Records: []models.Record{{
		Country: "X", Year: 2013, GDP: 1, Population: 1,
		Emissions: map[string]float64{models.ColTotal: 3},
	}}}

	r := DerivePerCapita(in).Records[0]

	assert.Equal(t, 3.0, r.TotalPerCapita)
	assert.True(t, models.IsNull(r.TotalIncludingBunker))
	assert.True(t, models.IsNull(r.TotalAndBunkerPerCapita))
}
