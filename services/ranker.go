package services

import (
	"sort"

	"gonum.org/v1/gonum/floats/scalar"

	"co2-report/models"
	"co2-report/utils"
)

// roundPlaces is the precision of numbers placed in ranking slots.
const roundPlaces = 5

// Ranker builds per-year top-k tables.
type Ranker struct {
	logger *utils.Logger
}

func NewRanker(logger *utils.Logger) *Ranker {
	return &Ranker{logger: logger}
}

// Top picks, for every year of t, the models.TopSlots records with the largest
// sortBy value and lays their fields out left to right. Ties keep table order;
// records whose sortBy value is missing are never ranked.
func (k *Ranker) Top(t *models.JoinedTable, fields []models.Field, sortBy string) *models.TopReport {
	report := &models.TopReport{
		Fields: append([]models.Field(nil), fields...),
		SortBy: sortBy,
	}

	years := t.Years()
	sort.Ints(years)

	byYear := make(map[int][]rankedRecord, len(years))
	for i, r := range t.Records {
		v, ok := r.Field(sortBy)
		if !ok || v.Kind != models.KindFloat || models.IsNull(v.Float) {
			continue
		}
		byYear[r.Year] = append(byYear[r.Year], rankedRecord{index: i, key: v.Float})
	}

	short := 0
	for _, y := range years {
		cands := byYear[y]
		sort.SliceStable(cands, func(a, b int) bool {
			return cands[a].key > cands[b].key
		})
		if len(cands) > models.TopSlots {
			cands = cands[:models.TopSlots]
		}
		if len(cands) < models.TopSlots {
			short++
		}

		row := models.TopRow{Year: y}
		for s, c := range cands {
			row.Slots[s] = k.slot(t.Records[c.index], fields)
		}
		report.Rows = append(report.Rows, row)
	}

	if short > 0 {
		k.logger.Warn("[ranker] %s: %d of %d years have fewer than %d countries",
			sortBy, short, len(years), models.TopSlots)
	}
	return report
}

type rankedRecord struct {
	index int
	key   float64
}

func (k *Ranker) slot(r models.Record, fields []models.Field) models.Slot {
	s := models.Slot{Values: make([]models.Value, len(fields))}
	for i, f := range fields {
		v, ok := r.Field(f.Column)
		if !ok {
			continue
		}
		if v.Kind == models.KindFloat && !models.IsNull(v.Float) {
			v.Float = scalar.Round(v.Float, roundPlaces)
		}
		s.Values[i] = v
	}
	return s
}
