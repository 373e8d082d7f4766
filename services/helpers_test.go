package services

import (
	"co2-report/models"
	"co2-report/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func wideTable(years []int, rows ...models.WideRow) models.WideTable {
	return models.WideTable{Years: years, Rows: rows}
}

func wideRow(country string, values ...float64) models.WideRow {
	return models.WideRow{Country: country, Values: values}
}

// emissionsTable builds a long table with Total and Bunker columns.
func emissionsTable(rows ...models.LongRow) models.LongTable {
	return models.LongTable{Columns: []string{models.ColTotal, models.ColBunker}, Rows: rows}
}

func emissionsRow(year int, country string, total, bunker float64) models.LongRow {
	return models.LongRow{Country: country, Year: year, Values: []float64{total, bunker}}
}

// perCapitaRecord is a derived record with only the fields the ranker and
// change scanner read.
func perCapitaRecord(country string, year int, perCapita float64) models.Record {
	return models.Record{
		Country:                 country,
		Year:                    year,
		Emissions:               map[string]float64{},
		TotalAndBunkerPerCapita: perCapita,
		GDPPerCapita:            perCapita,
	}
}

func ptr(n int) *int { return &n }
