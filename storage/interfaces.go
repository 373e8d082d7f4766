package storage

import "co2-report/models"

// RecordWriter is the interface any archive backend for the joined table must satisfy.
type RecordWriter interface {
	Write(table *models.JoinedTable) error
	Close() error
}

// ReportSink is the interface for persisting the final report.
type ReportSink interface {
	WriteReport(report *models.Report) error
	Close() error
}
