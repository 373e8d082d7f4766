package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"co2-report/models"
)

// SQLiteWriter archives the joined table into a single-file SQLite database.
type SQLiteWriter struct {
	db    *sql.DB
	runID string
}

// NewSQLiteWriter replaces any database at path with a fresh one.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("sqlite: remove old database %q: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	return &SQLiteWriter{db: db, runID: uuid.NewString()}, nil
}

// RunID identifies the rows written by this writer.
func (w *SQLiteWriter) RunID() string { return w.runID }

func (w *SQLiteWriter) migrate() error {
	colTypes := map[string]string{"run_id": "TEXT", "country": "TEXT", "year": "INTEGER", "breakdown": "TEXT"}
	var defs []string
	for _, c := range statColumns {
		t := colTypes[c]
		if t == "" {
			t = "REAL"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, t))
	}
	if _, err := w.db.Exec(`DROP TABLE IF EXISTS "` + statsTable + `"`); err != nil {
		return err
	}
	_, err := w.db.Exec(`CREATE TABLE "` + statsTable + `" (` + strings.Join(defs, ",") + `)`)
	return err
}

// Write stores every record of t in one transaction.
func (w *SQLiteWriter) Write(t *models.JoinedTable) error {
	if err := w.migrate(); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	ph := strings.TrimRight(strings.Repeat("?,", len(statColumns)), ",")
	stmt, err := tx.Prepare(`INSERT INTO "` + statsTable + `" (` + strings.Join(statColumns, ",") + `) VALUES (` + ph + `)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range t.Records {
		args, err := statArgs(w.runID, t.EmissionColumns, r)
		if err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("sqlite: insert %s %d: %w", r.Country, r.Year, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_country_year_stats_country ON country_year_stats(country)`,
		`CREATE INDEX IF NOT EXISTS idx_country_year_stats_year ON country_year_stats(year)`,
	} {
		if _, err := w.db.Exec(idx); err != nil {
			return fmt.Errorf("sqlite: index: %w", err)
		}
	}
	return nil
}

func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}
