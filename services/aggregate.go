package services

import (
	"co2-report/models"
	"co2-report/utils"
)

// Aggregator collapses rows sharing a key into a single row by summing their
// numeric fields. Missing values are skipped; a field missing in every row of
// a group stays missing. Groups keep the position of their first row.
type Aggregator struct {
	logger *utils.Logger
}

func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

type countryYear struct {
	Country string
	Year    int
}

// accumulator sums one group's values.
type accumulator struct {
	sums []float64
	seen []bool
}

func newAccumulator(width int) *accumulator {
	return &accumulator{sums: make([]float64, width), seen: make([]bool, width)}
}

func (a *accumulator) add(values []float64) {
	for i, v := range values {
		if i >= len(a.sums) || models.IsNull(v) {
			continue
		}
		a.sums[i] += v
		a.seen[i] = true
	}
}

// result keeps a column missing when every row of the group lacked it,
// rather than reporting a sum of 0.
func (a *accumulator) result() []float64 {
	out := make([]float64, len(a.sums))
	for i, s := range a.sums {
		if a.seen[i] {
			out[i] = s
		} else {
			out[i] = models.Null()
		}
	}
	return out
}

// DedupeLong groups t by (Year, Country Name).
func (g *Aggregator) DedupeLong(t models.LongTable) models.LongTable {
	order := make([]countryYear, 0, len(t.Rows))
	groups := make(map[countryYear]*accumulator, len(t.Rows))
	for _, r := range t.Rows {
		k := countryYear{Country: r.Country, Year: r.Year}
		acc, ok := groups[k]
		if !ok {
			acc = newAccumulator(len(t.Columns))
			groups[k] = acc
			order = append(order, k)
		}
		acc.add(r.Values)
	}

	out := models.LongTable{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]models.LongRow, 0, len(order)),
	}
	for _, k := range order {
		out.Rows = append(out.Rows, models.LongRow{Country: k.Country, Year: k.Year, Values: groups[k].result()})
	}
	if merged := len(t.Rows) - len(out.Rows); merged > 0 {
		g.logger.Info("[aggregator] Merged %d duplicate country-year rows (%d → %d)", merged, len(t.Rows), len(out.Rows))
	}
	return out
}

// DedupeWide groups t by Country Name.
func (g *Aggregator) DedupeWide(t models.WideTable) models.WideTable {
	order := make([]string, 0, len(t.Rows))
	groups := make(map[string]*accumulator, len(t.Rows))
	for _, r := range t.Rows {
		acc, ok := groups[r.Country]
		if !ok {
			acc = newAccumulator(len(t.Years))
			groups[r.Country] = acc
			order = append(order, r.Country)
		}
		acc.add(r.Values)
	}

	out := models.WideTable{
		Years: append([]int(nil), t.Years...),
		Rows:  make([]models.WideRow, 0, len(order)),
	}
	for _, c := range order {
		out.Rows = append(out.Rows, models.WideRow{Country: c, Values: groups[c].result()})
	}
	if merged := len(t.Rows) - len(out.Rows); merged > 0 {
		g.logger.Info("[aggregator] Merged %d duplicate country rows (%d → %d)", merged, len(t.Rows), len(out.Rows))
	}
	return out
}
