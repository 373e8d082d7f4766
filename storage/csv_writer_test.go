package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2-report/models"
)

var testFields = []models.Field{
	{Label: "Country", Column: models.ColCountry},
	{Label: "Emission per capita", Column: models.ColTotalAndBunkerPerCapita},
}

func testReport() *models.Report {
	var row models.TopRow
	row.Year = 2013
	row.Slots[0] = models.Slot{Values: []models.Value{models.StringValue("SPAIN"), models.FloatValue(9.893)}}
	row.Slots[1] = models.Slot{Values: []models.Value{models.StringValue("ARUBA"), models.FloatValue(models.Null())}}

	return &models.Report{
		Years:     []int{2013, 2014},
		Emissions: &models.TopReport{Fields: testFields, SortBy: models.ColTotalAndBunkerPerCapita, Rows: []models.TopRow{row}},
		Changes: &models.ChangeReport{
			StartYear:    2013,
			EndYear:      2014,
			MaxCountries: []string{"B", "C"},
			MaxDelta:     9900,
			MinCountries: []string{"A"},
			MinDelta:     -900,
		},
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(string(b), "\n")
}

func TestCSVWriterWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteReport(testReport()))
	require.NoError(t, w.Close())

	lines := readLines(t, path)
	want := []string{
		models.EmissionsTitle,
		",Country 1,Country 1,Country 2,Country 2,Country 3,Country 3,Country 4,Country 4,Country 5,Country 5",
		"Year,Country,Emission per capita,Country,Emission per capita,Country,Emission per capita,Country,Emission per capita,Country,Emission per capita",
		"2013,SPAIN,9.89300,ARUBA,,,,,,,",
		"",
		"Countries with biggest changes in CO2 emission between 2013 and 2014",
		",Growth in emission,Growth,Decrease in emission,Decrease",
		`1,"B, C",9900.00000,A,-900.00000`,
		"",
		"",
	}
	assert.Equal(t, want, lines)
}

func TestCSVWriterOmitsMissingChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	r := testReport()
	r.Changes = nil

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteReport(r))
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "Countries with biggest changes")
	assert.True(t, strings.HasPrefix(string(b), models.EmissionsTitle+"\n"))
}

func TestCSVWriterTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale\n", 100)), 0o644))

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteReport(&models.Report{}))
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestCSVWriterAsReportSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	var sink ReportSink = w
	require.NoError(t, sink.WriteReport(testReport()))
	require.NoError(t, sink.Close())

	assert.Equal(t, models.EmissionsTitle, readLines(t, path)[0])
}
