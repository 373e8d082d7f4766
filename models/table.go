package models

import (
	"maps"
	"math"
)

// Column names shared by the input files, the joined table and the reports.
const (
	ColCountry                 = "Country Name"
	ColYear                    = "Year"
	ColTotal                   = "Total"
	ColBunker                  = "Bunker fuels (Not in Total)"
	ColGDP                     = "GDP"
	ColPopulation              = "Population"
	ColTotalPerCapita          = "Total per capita"
	ColTotalIncludingBunker    = "Total including bunker"
	ColTotalAndBunkerPerCapita = "Total and bunker per capita"
	ColGDPPerCapita            = "GDP per capita"
)

// Null is the missing-value sentinel used for every numeric field.
func Null() float64 { return math.NaN() }

// IsNull reports whether v is the missing-value sentinel.
func IsNull(v float64) bool { return math.IsNaN(v) }

// WideTable is a source with one row per country and one column per year
// (the GDP and population files).
type WideTable struct {
	Years []int
	Rows  []WideRow
}

// WideRow holds one country's values, aligned with WideTable.Years.
type WideRow struct {
	Country string
	Values  []float64
}

// Clone returns a deep copy of t.
func (t WideTable) Clone() WideTable {
	out := WideTable{
		Years: append([]int(nil), t.Years...),
		Rows:  make([]WideRow, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = WideRow{Country: r.Country, Values: append([]float64(nil), r.Values...)}
	}
	return out
}

// YearIndex returns the column position of year, or -1.
func (t WideTable) YearIndex(year int) int {
	for i, y := range t.Years {
		if y == year {
			return i
		}
	}
	return -1
}

// LongTable is a source with one row per (country, year) (the emissions file).
// Columns names the numeric fields carried by every row, in file order.
type LongTable struct {
	Columns []string
	Rows    []LongRow
}

// LongRow holds one (country, year) observation, aligned with LongTable.Columns.
type LongRow struct {
	Country string
	Year    int
	Values  []float64
}

// Clone returns a deep copy of t.
func (t LongTable) Clone() LongTable {
	out := LongTable{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]LongRow, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = LongRow{Country: r.Country, Year: r.Year, Values: append([]float64(nil), r.Values...)}
	}
	return out
}

// ColumnIndex returns the position of name in Columns, or -1.
func (t LongTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Record is one row of the joined table: a country-year with its emissions
// breakdown, GDP, population and the derived per-capita fields.
type Record struct {
	Country    string
	Year       int
	Emissions  map[string]float64
	GDP        float64
	Population float64

	TotalPerCapita          float64
	TotalIncludingBunker    float64
	TotalAndBunkerPerCapita float64
	GDPPerCapita            float64
}

// Clone returns a copy of r that shares no map with it.
func (r Record) Clone() Record {
	r.Emissions = maps.Clone(r.Emissions)
	return r
}

// Total returns the emissions total, or Null if the column is absent.
func (r Record) Total() float64 { return r.emission(ColTotal) }

// Bunker returns the bunker fuel emissions, or Null if the column is absent.
func (r Record) Bunker() float64 { return r.emission(ColBunker) }

func (r Record) emission(col string) float64 {
	v, ok := r.Emissions[col]
	if !ok {
		return Null()
	}
	return v
}

// Field looks a column up by its table name.
func (r Record) Field(name string) (Value, bool) {
	switch name {
	case ColCountry:
		return StringValue(r.Country), true
	case ColYear:
		return IntValue(r.Year), true
	case ColGDP:
		return FloatValue(r.GDP), true
	case ColPopulation:
		return FloatValue(r.Population), true
	case ColTotalPerCapita:
		return FloatValue(r.TotalPerCapita), true
	case ColTotalIncludingBunker:
		return FloatValue(r.TotalIncludingBunker), true
	case ColTotalAndBunkerPerCapita:
		return FloatValue(r.TotalAndBunkerPerCapita), true
	case ColGDPPerCapita:
		return FloatValue(r.GDPPerCapita), true
	}
	if v, ok := r.Emissions[name]; ok {
		return FloatValue(v), true
	}
	return Value{}, false
}

// JoinedTable is the reconciled per-country-per-year table.
// EmissionColumns keeps the emissions file's column order for output.
type JoinedTable struct {
	EmissionColumns []string
	Records         []Record
}

// Years returns the distinct years present, in first-seen order.
func (t *JoinedTable) Years() []int {
	seen := make(map[int]struct{})
	var years []int
	for _, r := range t.Records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	return years
}
