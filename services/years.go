package services

import (
	"fmt"
	"sort"

	"co2-report/models"
	"co2-report/utils"
)

// YearRange bounds the analysed years. A nil end means "no bound".
type YearRange struct {
	Start *int
	End   *int
}

// Selection is the output of the year selector: the three sources reduced to
// the chosen years.
type Selection struct {
	GDP        models.WideTable
	Population models.WideTable
	Emissions  models.LongTable
	Years      []int
}

// YearSelector picks the years shared by all sources.
type YearSelector struct {
	logger *utils.Logger
}

func NewYearSelector(logger *utils.Logger) *YearSelector {
	return &YearSelector{logger: logger}
}

// CommonYears returns the sorted years present in both wide tables' columns
// and in the long table's Year values.
func CommonYears(gdp, pop models.WideTable, co2 models.LongTable) []int {
	inGDP := make(map[int]struct{}, len(gdp.Years))
	for _, y := range gdp.Years {
		inGDP[y] = struct{}{}
	}
	inPop := make(map[int]struct{}, len(pop.Years))
	for _, y := range pop.Years {
		inPop[y] = struct{}{}
	}

	seen := make(map[int]struct{})
	var years []int
	for _, r := range co2.Rows {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		_, g := inGDP[r.Year]
		_, p := inPop[r.Year]
		if g && p {
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)
	return years
}

// Select narrows the three tables to the common years within r.
func (s *YearSelector) Select(gdp, pop models.WideTable, co2 models.LongTable, r YearRange) (*Selection, error) {
	common := CommonYears(gdp, pop, co2)
	if len(common) == 0 {
		return nil, fmt.Errorf("years: %w", ErrNoCommonYears)
	}

	start, end := common[0], common[len(common)-1]
	if r.Start != nil {
		start = *r.Start
	}
	if r.End != nil {
		end = *r.End
	}

	var chosen []int
	for _, y := range common {
		if y >= start && y <= end {
			chosen = append(chosen, y)
		}
	}
	if len(chosen) == 0 {
		return nil, fmt.Errorf("years: %d-%d (common %d-%d): %w",
			start, end, common[0], common[len(common)-1], ErrNoYearsInRange)
	}

	s.logger.Info("[years] %d common years, using %d (%d-%d)",
		len(common), len(chosen), chosen[0], chosen[len(chosen)-1])

	return &Selection{
		GDP:        subsetWide(gdp, chosen),
		Population: subsetWide(pop, chosen),
		Emissions:  subsetLong(co2, chosen),
		Years:      chosen,
	}, nil
}

func subsetWide(t models.WideTable, years []int) models.WideTable {
	idx := make([]int, len(years))
	for i, y := range years {
		idx[i] = t.YearIndex(y)
	}
	out := models.WideTable{
		Years: append([]int(nil), years...),
		Rows:  make([]models.WideRow, len(t.Rows)),
	}
	for i, r := range t.Rows {
		vals := make([]float64, len(idx))
		for j, k := range idx {
			if k >= 0 && k < len(r.Values) {
				vals[j] = r.Values[k]
			} else {
				vals[j] = models.Null()
			}
		}
		out.Rows[i] = models.WideRow{Country: r.Country, Values: vals}
	}
	return out
}

func subsetLong(t models.LongTable, years []int) models.LongTable {
	keep := make(map[int]struct{}, len(years))
	for _, y := range years {
		keep[y] = struct{}{}
	}
	out := models.LongTable{Columns: append([]string(nil), t.Columns...)}
	for _, r := range t.Rows {
		if _, ok := keep[r.Year]; !ok {
			continue
		}
		out.Rows = append(out.Rows, models.LongRow{
			Country: r.Country,
			Year:    r.Year,
			Values:  append([]float64(nil), r.Values...),
		})
	}
	return out
}
