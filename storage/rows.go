package storage

import (
	"encoding/json"
	"fmt"

	"co2-report/models"
)

const statsTable = "country_year_stats"

// statColumns is the archive layout shared by the SQL backends.
var statColumns = []string{
	"run_id", "country", "year",
	"total", "bunker", "gdp", "population",
	"total_per_capita", "total_including_bunker", "total_and_bunker_per_capita", "gdp_per_capita",
	"breakdown",
}

// nullable maps the missing-value sentinel to SQL NULL.
func nullable(v float64) any {
	if models.IsNull(v) {
		return nil
	}
	return v
}

// breakdownJSON encodes the per-source emissions of r in column order.
// Missing values become JSON null.
func breakdownJSON(columns []string, r models.Record) (string, error) {
	m := make(map[string]any, len(columns))
	for _, c := range columns {
		v, ok := r.Emissions[c]
		if !ok {
			continue
		}
		m[c] = nullable(v)
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode breakdown for %s %d: %w", r.Country, r.Year, err)
	}
	return string(b), nil
}

func statArgs(runID string, columns []string, r models.Record) ([]any, error) {
	breakdown, err := breakdownJSON(columns, r)
	if err != nil {
		return nil, err
	}
	return []any{
		runID, r.Country, r.Year,
		nullable(r.Total()), nullable(r.Bunker()), nullable(r.GDP), nullable(r.Population),
		nullable(r.TotalPerCapita), nullable(r.TotalIncludingBunker),
		nullable(r.TotalAndBunkerPerCapita), nullable(r.GDPPerCapita),
		breakdown,
	}, nil
}
