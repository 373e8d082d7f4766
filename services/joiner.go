package services

import (
	"strings"

	"co2-report/models"
	"co2-report/utils"
)

// aggregateMarkers identify World Bank regional and income-group rows, which
// the emissions source never has.
var aggregateMarkers = []string{
	"INCOME", "ASIA", "EURO", "IDA", "AFRICA", "AMERICA",
	"MEMBERS", "DIVIDEND", "DEVEL", "DEBTED",
}

// IsRegionAggregate reports whether token names a regional or income-group
// aggregate rather than a country.
func IsRegionAggregate(token string) bool {
	for _, m := range aggregateMarkers {
		if strings.Contains(token, m) {
			return true
		}
	}
	return false
}

// Observation is one melted (country, year, value) triple.
type Observation struct {
	Country string
	Year    int
	Value   float64
}

// Melt reshapes a wide table into one observation per (row, year column),
// year-major.
func Melt(t models.WideTable) []Observation {
	out := make([]Observation, 0, len(t.Rows)*len(t.Years))
	for j, y := range t.Years {
		for _, r := range t.Rows {
			v := models.Null()
			if j < len(r.Values) {
				v = r.Values[j]
			}
			out = append(out, Observation{Country: r.Country, Year: y, Value: v})
		}
	}
	return out
}

// JoinResult is the joined table plus the tokens missing from at least one source.
type JoinResult struct {
	Table    *models.JoinedTable
	Excluded []string
}

// Joiner reshapes and inner-joins the three reconciled sources.
type Joiner struct {
	logger *utils.Logger
}

func NewJoiner(logger *utils.Logger) *Joiner {
	return &Joiner{logger: logger}
}

type gdpPop struct {
	GDP        float64
	Population float64
}

// Join inner-joins GDP and population on (Country Name, Year), then the
// emissions rows onto that. Output rows follow the emissions table's order.
// Zero populations become Null.
func (j *Joiner) Join(gdp, pop models.WideTable, co2 models.LongTable) *JoinResult {
	popByKey := make(map[countryYear]float64)
	for _, o := range Melt(pop) {
		popByKey[countryYear{o.Country, o.Year}] = o.Value
	}

	both := make(map[countryYear]gdpPop)
	for _, o := range Melt(gdp) {
		k := countryYear{o.Country, o.Year}
		p, ok := popByKey[k]
		if !ok {
			continue
		}
		both[k] = gdpPop{GDP: o.Value, Population: p}
	}

	table := &models.JoinedTable{EmissionColumns: append([]string(nil), co2.Columns...)}
	zeroPop := 0
	for _, r := range co2.Rows {
		gp, ok := both[countryYear{r.Country, r.Year}]
		if !ok {
			continue
		}
		emissions := make(map[string]float64, len(co2.Columns))
		for i, c := range co2.Columns {
			if i < len(r.Values) {
				emissions[c] = r.Values[i]
			}
		}
		population := gp.Population
		if population == 0 {
			population = models.Null()
			zeroPop++
		}
		table.Records = append(table.Records, models.Record{
			Country:    r.Country,
			Year:       r.Year,
			Emissions:  emissions,
			GDP:        gp.GDP,
			Population: population,
		})
	}

	excluded := j.excluded(gdp, pop, co2)

	j.logger.Info("[joiner] Joined %d country-year rows (%d emissions, %d gdp, %d population rows)",
		len(table.Records), len(co2.Rows), len(gdp.Rows), len(pop.Rows))
	if zeroPop > 0 {
		j.logger.Warn("[joiner] %d rows have zero population; per-capita values left empty", zeroPop)
	}
	return &JoinResult{Table: table, Excluded: excluded}
}

// excluded returns the tokens present in some but not all sources, sorted.
func (j *Joiner) excluded(gdp, pop models.WideTable, co2 models.LongTable) []string {
	gdpSet, popSet, co2Set := utils.NewStringSet(), utils.NewStringSet(), utils.NewStringSet()
	for _, r := range gdp.Rows {
		gdpSet.Add(r.Country)
	}
	for _, r := range pop.Rows {
		popSet.Add(r.Country)
	}
	for _, r := range co2.Rows {
		co2Set.Add(r.Country)
	}

	odd := gdpSet.Union(popSet, co2Set).Difference(gdpSet.Intersect(popSet, co2Set)).Sorted()
	if len(odd) == 0 {
		return odd
	}

	regions := 0
	for _, c := range odd {
		if IsRegionAggregate(c) {
			regions++
		}
	}
	j.logger.Warn("[joiner] %d countries have not been found in all of the files and are excluded (%d regional aggregates, %d countries)",
		len(odd), regions, len(odd)-regions)
	j.logger.Debug("[joiner] Excluded: %s", strings.Join(odd, "; "))
	return odd
}
