package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"co2-report/models"
	"co2-report/utils"
)

// PostgresWriter archives the joined table in PostgreSQL.
type PostgresWriter struct {
	db    *sql.DB
	runID string
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying the first ping,
// runs schema migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db, runID: uuid.NewString()}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

// RunID identifies the rows written by this writer.
func (pw *PostgresWriter) RunID() string { return pw.runID }

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS country_year_stats (
			run_id                      UUID             NOT NULL,
			country                     TEXT             NOT NULL,
			year                        INTEGER          NOT NULL,
			total                       DOUBLE PRECISION,
			bunker                      DOUBLE PRECISION,
			gdp                         DOUBLE PRECISION,
			population                  DOUBLE PRECISION,
			total_per_capita            DOUBLE PRECISION,
			total_including_bunker      DOUBLE PRECISION,
			total_and_bunker_per_capita DOUBLE PRECISION,
			gdp_per_capita              DOUBLE PRECISION,
			breakdown                   JSONB            NOT NULL DEFAULT '{}',
			created_at                  TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
			PRIMARY KEY (run_id, country, year)
		);

		CREATE INDEX IF NOT EXISTS idx_country_year_stats_country ON country_year_stats(country);
		CREATE INDEX IF NOT EXISTS idx_country_year_stats_year    ON country_year_stats(year);
	`)
	return err
}

// Clear deletes all previously archived rows.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM country_year_stats")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts every record of t, clearing old data first.
func (pw *PostgresWriter) Write(t *models.JoinedTable) error {
	if len(t.Records) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(t.Records); i += batchSize {
		end := i + batchSize
		if end > len(t.Records) {
			end = len(t.Records)
		}
		if err := pw.insertBatch(t.EmissionColumns, t.Records[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(columns []string, batch []models.Record) error {
	query, args, err := insertStatement(pw.runID, columns, batch)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if _, err := pw.db.Exec(query, args...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// insertStatement builds one multi-row INSERT with $n placeholders.
func insertStatement(runID string, columns []string, batch []models.Record) (string, []any, error) {
	width := len(statColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*width)

	for idx, r := range batch {
		args, err := statArgs(runID, columns, r)
		if err != nil {
			return "", nil, err
		}
		ph := make([]string, width)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", idx*width+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs, args...)
	}

	query := fmt.Sprintf(`
		INSERT INTO country_year_stats (%s)
		VALUES %s
		ON CONFLICT (run_id, country, year) DO NOTHING
	`, strings.Join(statColumns, ", "), strings.Join(valueStrings, ","))
	return query, valueArgs, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
