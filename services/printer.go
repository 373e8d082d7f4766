package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"co2-report/models"
)

// Printer renders a report on the console.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Print(r *models.Report) {
	sep := strings.Repeat("═", 60)

	fmt.Fprintf(p.w, "\n%s\n  CO2 / GDP REPORT  (%s)\n%s\n\n", sep, yearSpan(r.Years), sep)
	if r.Joined != nil {
		fmt.Fprintf(p.w, "  Joined rows        : %d\n", len(r.Joined.Records))
	}
	fmt.Fprintf(p.w, "  Excluded countries : %d\n\n", len(r.Excluded))

	p.printTop(models.EmissionsTitle, r.Emissions)
	p.printTop(models.GDPTitle, r.GDP)

	if r.Changes != nil {
		fmt.Fprintf(p.w, "  %s\n", models.ChangesTitle(r.Changes))
		table := tablewriter.NewWriter(p.w)
		table.SetAutoWrapText(false)
		table.SetHeader(models.ChangeHeader)
		table.Append(models.ChangeRow(r.Changes))
		table.Render()
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) printTop(title string, t *models.TopReport) {
	if t == nil {
		return
	}
	fmt.Fprintf(p.w, "  %s\n", title)
	table := tablewriter.NewWriter(p.w)
	table.SetAutoWrapText(false)
	header := []string{"Year"}
	for i := 0; i < models.TopSlots; i++ {
		header = append(header, fmt.Sprintf("#%d", i+1))
	}
	table.SetHeader(header)
	for _, row := range t.Rows {
		line := []string{fmt.Sprint(row.Year)}
		for _, s := range row.Slots {
			line = append(line, slotSummary(s))
		}
		table.Append(line)
	}
	table.Render()
	fmt.Fprintln(p.w)
}

// slotSummary joins a slot's values into one cell: "SPAIN 9.89300".
func slotSummary(s models.Slot) string {
	parts := make([]string, 0, len(s.Values))
	for _, v := range s.Values {
		if f := v.Format(); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

func yearSpan(years []int) string {
	switch len(years) {
	case 0:
		return "no years"
	case 1:
		return fmt.Sprint(years[0])
	}
	return fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
}
