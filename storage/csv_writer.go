package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"co2-report/models"
)

var _ ReportSink = (*CSVWriter)(nil)

// CSVWriter writes the report sections to a single CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}
	return &CSVWriter{file: f, writer: csv.NewWriter(f)}, nil
}

// WriteReport writes the emissions ranking, the GDP ranking and, when
// present, the change report, each under its title line.
func (c *CSVWriter) WriteReport(r *models.Report) error {
	if r.Emissions != nil {
		if err := c.writeTop(models.EmissionsTitle, r.Emissions); err != nil {
			return err
		}
	}
	if r.GDP != nil {
		if err := c.writeTop(models.GDPTitle, r.GDP); err != nil {
			return err
		}
	}
	if r.Changes != nil {
		if err := c.writeChanges(r.Changes); err != nil {
			return err
		}
	}
	c.writer.Flush()
	return c.writer.Error()
}

func (c *CSVWriter) writeTop(title string, t *models.TopReport) error {
	groups := []string{""}
	labels := []string{models.ColYear}
	for i := 0; i < models.TopSlots; i++ {
		for _, f := range t.Fields {
			groups = append(groups, models.SlotName(i))
			labels = append(labels, f.Label)
		}
	}

	rows := [][]string{{title}, groups, labels}
	for _, tr := range t.Rows {
		row := []string{models.IntValue(tr.Year).Format()}
		for _, s := range tr.Slots {
			for i := range t.Fields {
				cell := ""
				if i < len(s.Values) {
					cell = s.Values[i].Format()
				}
				row = append(row, cell)
			}
		}
		rows = append(rows, row)
	}
	return c.writeSection(rows)
}

func (c *CSVWriter) writeChanges(ch *models.ChangeReport) error {
	return c.writeSection([][]string{
		{models.ChangesTitle(ch)},
		append([]string{""}, models.ChangeHeader...),
		append([]string{"1"}, models.ChangeRow(ch)...),
	})
}

// writeSection writes rows followed by a blank separator line.
func (c *CSVWriter) writeSection(rows [][]string) error {
	for _, row := range rows {
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if _, err := c.file.WriteString("\n"); err != nil {
		return fmt.Errorf("csv: write separator: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
