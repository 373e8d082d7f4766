package services

import (
	"sort"

	"co2-report/models"
	"co2-report/utils"
)

// DefaultChangeWindow is the number of trailing years the change scanner
// looks at.
const DefaultChangeWindow = 10

// ChangeScanner finds the countries whose emissions per capita grew and fell
// the most between the endpoints of a trailing window of years.
type ChangeScanner struct {
	window int
	logger *utils.Logger
}

// NewChangeScanner creates a scanner over the last window years. A window
// shorter than two years has no endpoints to compare and falls back to
// DefaultChangeWindow.
func NewChangeScanner(window int, logger *utils.Logger) *ChangeScanner {
	if window < 2 {
		window = DefaultChangeWindow
	}
	return &ChangeScanner{window: window, logger: logger}
}

// Window returns the years scanned: the last window years of the sorted
// distinct years of t.
func (c *ChangeScanner) Window(t *models.JoinedTable) []int {
	years := t.Years()
	sort.Ints(years)
	if len(years) > c.window {
		years = years[len(years)-c.window:]
	}
	return years
}

// Scan returns false when fewer than two years are present.
func (c *ChangeScanner) Scan(t *models.JoinedTable) (*models.ChangeReport, bool) {
	window := c.Window(t)
	if len(window) < 2 {
		c.logger.Warn("[changes] Only one year provided. No changes can be calculated")
		return nil, false
	}
	if len(window) < c.window {
		c.logger.Warn("[changes] There is not enough data to calculate the change in the last %d years. Will use provided %d years instead",
			c.window, len(window))
	}

	first, last := window[0], window[len(window)-1]
	report := &models.ChangeReport{StartYear: first, EndYear: last}

	type endpoints struct {
		start, end   float64
		hasStart     bool
		hasEnd       bool
		extraRecords bool
	}
	var order []string
	byCountry := make(map[string]*endpoints)
	for _, r := range t.Records {
		if r.Year != first && r.Year != last {
			continue
		}
		e, ok := byCountry[r.Country]
		if !ok {
			e = &endpoints{}
			byCountry[r.Country] = e
			order = append(order, r.Country)
		}
		switch {
		case r.Year == first && !e.hasStart:
			e.start, e.hasStart = r.TotalAndBunkerPerCapita, true
		case r.Year == last && !e.hasEnd:
			e.end, e.hasEnd = r.TotalAndBunkerPerCapita, true
		default:
			e.extraRecords = true
		}
	}

	for _, country := range order {
		e := byCountry[country]
		if !e.hasStart || !e.hasEnd || e.extraRecords {
			continue
		}
		delta := e.end - e.start
		// Missing values and unmoved countries never compete.
		if models.IsNull(delta) || delta == 0 {
			continue
		}
		switch {
		case delta < report.MinDelta:
			report.MinDelta, report.MinCountries = delta, []string{country}
		case delta == report.MinDelta:
			report.MinCountries = append(report.MinCountries, country)
		case delta > report.MaxDelta:
			report.MaxDelta, report.MaxCountries = delta, []string{country}
		case delta == report.MaxDelta:
			report.MaxCountries = append(report.MaxCountries, country)
		}
	}

	c.logger.Info("[changes] %d-%d: largest growth %v (%.5f), largest decrease %v (%.5f)",
		first, last, report.MaxCountries, report.MaxDelta, report.MinCountries, report.MinDelta)
	return report, true
}
