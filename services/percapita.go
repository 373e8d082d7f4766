package services

import "co2-report/models"

// DerivePerCapita returns a copy of t with the per-capita fields filled in.
// Null population (or any Null operand) yields Null results. Total including
// bunker does not divide by population, so it keeps its value when only the
// population is Null.
func DerivePerCapita(t *models.JoinedTable) *models.JoinedTable {
	out := &models.JoinedTable{
		EmissionColumns: append([]string(nil), t.EmissionColumns...),
		Records:         make([]models.Record, len(t.Records)),
	}
	for i, r := range t.Records {
		d := r.Clone()
		d.TotalPerCapita = d.Total() / d.Population
		d.TotalIncludingBunker = d.Total() + d.Bunker()
		d.TotalAndBunkerPerCapita = d.TotalIncludingBunker / d.Population
		d.GDPPerCapita = d.GDP / d.Population
		out.Records[i] = d
	}
	return out
}
