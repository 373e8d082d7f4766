package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2-report/models"
)

func slotCountries(row models.TopRow) []string {
	var out []string
	for _, s := range row.Slots {
		if s.Filled() {
			out = append(out, s.Values[0].Str)
		}
	}
	return out
}

func TestRankerTopBreaksTiesByRowOrder(t *testing.T) {
	tbl := &models.JoinedTable{}
	values := []float64{1000, 1000, 100, 100, 10, 1, 1}
	for i, v := range values {
		tbl.Records = append(tbl.Records, perCapitaRecord(string(rune('A'+i)), 2013, v))
	}

	report := NewRanker(newTestLogger()).Top(tbl, GDPFields, models.ColGDPPerCapita)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, 2013, report.Rows[0].Year)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, slotCountries(report.Rows[0]))
	assert.Equal(t, models.ColGDPPerCapita, report.SortBy)
	assert.Equal(t, GDPFields, report.Fields)
}

func TestRankerTopOrdering(t *testing.T) {
	values := map[int][]float64{
		2014: {3, 9, 1, 7, 7, 2, 8, 0.5},
		2013: {5, 4, 6, 1},
	}
	tbl := &models.JoinedTable{}
	for _, y := range []int{2014, 2013} {
		for i, v := range values[y] {
			tbl.Records = append(tbl.Records, perCapitaRecord(string(rune('A'+i)), y, v))
		}
	}

	report := NewRanker(newTestLogger()).Top(tbl, EmissionFields, models.ColTotalAndBunkerPerCapita)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, 2013, report.Rows[0].Year)
	assert.Equal(t, 2014, report.Rows[1].Year)

	for _, row := range report.Rows {
		var picked []float64
		for _, s := range row.Slots {
			if s.Filled() {
				picked = append(picked, s.Values[2].Float)
			}
		}
		for i := 1; i < len(picked); i++ {
			assert.GreaterOrEqual(t, picked[i-1], picked[i], "year %d", row.Year)
		}
		if len(picked) == models.TopSlots {
			fifth := picked[len(picked)-1]
			chosen := make(map[string]bool)
			for _, c := range slotCountries(row) {
				chosen[c] = true
			}
			for _, r := range tbl.Records {
				if r.Year == row.Year && !chosen[r.Country] {
					assert.LessOrEqual(t, r.TotalAndBunkerPerCapita, fifth)
				}
			}
		}
	}
	assert.Equal(t, []string{"B", "G", "D", "E", "A"}, slotCountries(report.Rows[1]))
}

func TestRankerTopFewerThanFive(t *testing.T) {
	tbl := &models.JoinedTable{Records: []models.Record{
		perCapitaRecord("A", 2013, 1),
		perCapitaRecord("B", 2013, 2),
		perCapitaRecord("C", 2013, math.NaN()),
	}}

	report := NewRanker(newTestLogger()).Top(tbl, GDPFields, models.ColGDPPerCapita)

	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, []string{"B", "A"}, slotCountries(row))
	for _, s := range row.Slots[2:] {
		assert.False(t, s.Filled())
	}
}

func TestRankerTopRoundsNumbers(t *testing.T) {
	r := perCapitaRecord("A", 2013, 1.234567891)
	r.GDP = 10.0000049
	tbl := &models.JoinedTable{Records: []models.Record{r}}

	report := NewRanker(newTestLogger()).Top(tbl, GDPFields, models.ColGDPPerCapita)

	vals := report.Rows[0].Slots[0].Values
	assert.Equal(t, models.StringValue("A"), vals[0])
	assert.InDelta(t, 10.0, vals[1].Float, 1e-12)
	assert.InDelta(t, 1.23457, vals[2].Float, 1e-12)
}

func TestRankerTopEmptyInput(t *testing.T) {
	report := NewRanker(newTestLogger()).Top(&models.JoinedTable{}, GDPFields, models.ColGDPPerCapita)
	assert.Empty(t, report.Rows)
}
