package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"co2-report/models"
)

var (
	ErrEmptyFile     = errors.New("no data")
	ErrMissingColumn = errors.New("missing column")
)

const (
	// wideSkipRows is the number of metadata rows above a wide file's header.
	wideSkipRows = 2
	// wideMetaColumns precede the year columns: name, code, indicator name, indicator code.
	wideMetaColumns = 4

	emissionsCountryCol = "Country"
)

func readRecords(path string) ([][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("csv: %q: %w", path, ErrEmptyFile)
	}

	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %q: %w", path, ErrEmptyFile)
	}
	return records, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Null(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// ReadWide loads a GDP or population file: two metadata rows, a header of
// "Country Name, Country Code, Indicator Name, Indicator Code, <year>...", and
// a trailing column that is dropped.
func ReadWide(path string) (models.WideTable, error) {
	records, err := readRecords(path)
	if err != nil {
		return models.WideTable{}, err
	}
	if len(records) <= wideSkipRows {
		return models.WideTable{}, fmt.Errorf("csv: %q: no header row: %w", path, ErrEmptyFile)
	}

	header := records[wideSkipRows]
	if len(header) > 0 {
		header = header[:len(header)-1]
	}
	if len(header) < wideMetaColumns || strings.TrimSpace(header[0]) != models.ColCountry {
		return models.WideTable{}, fmt.Errorf("csv: %q: %q: %w", path, models.ColCountry, ErrMissingColumn)
	}

	var t models.WideTable
	for _, h := range header[wideMetaColumns:] {
		y, err := strconv.Atoi(strings.TrimSpace(h))
		if err != nil {
			return models.WideTable{}, fmt.Errorf("csv: %q: year column %q: %w", path, h, err)
		}
		t.Years = append(t.Years, y)
	}

	for i, rec := range records[wideSkipRows+1:] {
		line := wideSkipRows + 2 + i
		row := models.WideRow{Country: rec[0], Values: make([]float64, len(t.Years))}
		for j := range t.Years {
			col := wideMetaColumns + j
			if col >= len(rec) {
				row.Values[j] = models.Null()
				continue
			}
			v, err := parseNumber(rec[col])
			if err != nil {
				return models.WideTable{}, fmt.Errorf("csv: %q record %d column %d: %w", path, line, col+1, err)
			}
			row.Values[j] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadLong loads an emissions file: a header row with Year and Country
// columns, one row per country-year, every other column numeric. The Country
// column is renamed to models.ColCountry.
func ReadLong(path string) (models.LongTable, error) {
	records, err := readRecords(path)
	if err != nil {
		return models.LongTable{}, err
	}

	header := records[0]
	yearIdx, countryIdx := -1, -1
	var t models.LongTable
	var valueIdx []int
	for i, h := range header {
		h = strings.TrimSpace(h)
		switch h {
		case models.ColYear:
			yearIdx = i
		case emissionsCountryCol, models.ColCountry:
			countryIdx = i
		default:
			t.Columns = append(t.Columns, h)
			valueIdx = append(valueIdx, i)
		}
	}
	for _, req := range []struct {
		name string
		ok   bool
	}{
		{models.ColYear, yearIdx >= 0},
		{emissionsCountryCol, countryIdx >= 0},
		{models.ColTotal, t.ColumnIndex(models.ColTotal) >= 0},
		{models.ColBunker, t.ColumnIndex(models.ColBunker) >= 0},
	} {
		if !req.ok {
			return models.LongTable{}, fmt.Errorf("csv: %q: %q: %w", path, req.name, ErrMissingColumn)
		}
	}

	for i, rec := range records[1:] {
		line := i + 2
		if yearIdx >= len(rec) || countryIdx >= len(rec) {
			return models.LongTable{}, fmt.Errorf("csv: %q record %d: short row", path, line)
		}
		year, err := strconv.Atoi(strings.TrimSpace(rec[yearIdx]))
		if err != nil {
			return models.LongTable{}, fmt.Errorf("csv: %q record %d: year: %w", path, line, err)
		}
		row := models.LongRow{Country: rec[countryIdx], Year: year, Values: make([]float64, len(valueIdx))}
		for j, col := range valueIdx {
			if col >= len(rec) {
				row.Values[j] = models.Null()
				continue
			}
			v, err := parseNumber(rec[col])
			if err != nil {
				return models.LongTable{}, fmt.Errorf("csv: %q record %d column %q: %w", path, line, t.Columns[j], err)
			}
			row.Values[j] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
