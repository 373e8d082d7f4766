package models

import (
	"fmt"
	"strings"
)

const (
	EmissionsTitle = "5 countries with biggest CO2 emission per capita"
	GDPTitle       = "5 countries with highest gdp per capita"
)

// ChangeHeader labels the change report columns.
var ChangeHeader = []string{"Growth in emission", "Growth", "Decrease in emission", "Decrease"}

// ChangesTitle names the two endpoint years of a change report.
func ChangesTitle(c *ChangeReport) string {
	return fmt.Sprintf("Countries with biggest changes in CO2 emission between %d and %d", c.StartYear, c.EndYear)
}

// ChangeRow formats a change report as the cells under ChangeHeader.
func ChangeRow(c *ChangeReport) []string {
	return []string{
		strings.Join(c.MaxCountries, ", "),
		FloatValue(c.MaxDelta).Format(),
		strings.Join(c.MinCountries, ", "),
		FloatValue(c.MinDelta).Format(),
	}
}
