package main

import (
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"co2-report/config"
	"co2-report/services"
	"co2-report/storage"
	"co2-report/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	gdpFlag := flag.StringP("gdp", "g", "", "GDP file (World Bank wide csv)")
	popFlag := flag.StringP("pop", "p", "", "Population file (World Bank wide csv)")
	co2Flag := flag.StringP("co2", "c", "", "CO2 emissions file (one row per country and year)")
	y1Flag := flag.Int("y1", 0, "first year of the analysed range (default: first common year)")
	y2Flag := flag.Int("y2", 0, "last year of the analysed range (default: last common year)")
	outputFlag := flag.StringP("output", "f", cfg.OutputPath, "report file (or set OUTPUT_PATH env var)")
	aliasesFlag := flag.String("aliases", cfg.AliasesPath, "TOML file replacing the built-in country alias table (or set ALIASES_PATH env var)")
	sqliteFlag := flag.String("sqlite", cfg.SQLitePath, "also archive the joined table into this SQLite file (or set SQLITE_PATH env var)")
	postgresFlag := flag.Bool("postgres", cfg.PostgresEnabled, "also archive the joined table in PostgreSQL (or set POSTGRES_ENABLED=true)")
	windowFlag := flag.Int("window", cfg.ChangeWindow, "number of trailing years scanned for emission changes (or set CHANGE_WINDOW env var)")
	verboseFlag := flag.BoolP("verbose", "v", cfg.Verbose, "enable verbose (debug) logging")
	flag.Parse()

	logger := utils.NewLogger(*verboseFlag)

	opts := config.Options{
		GDPPath:        *gdpFlag,
		PopulationPath: *popFlag,
		EmissionsPath:  *co2Flag,
		OutputPath:     *outputFlag,
	}
	if flag.CommandLine.Changed("y1") {
		opts.StartYear = y1Flag
	}
	if flag.CommandLine.Changed("y2") {
		opts.EndYear = y2Flag
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if fixed, changed := config.NormalizeOutputPath(opts.OutputPath); changed {
		logger.Warn("Wrong output file name %q. Will use %q instead", opts.OutputPath, fixed)
		opts.OutputPath = fixed
	}

	aliases, err := config.ResolveAliases(*aliasesFlag)
	if err != nil {
		return err
	}

	logger.Info("=== CO2 report starting ===")
	logger.Info("Inputs: gdp=%s | population=%s | emissions=%s", opts.GDPPath, opts.PopulationPath, opts.EmissionsPath)

	gdp, err := storage.ReadWide(opts.GDPPath)
	if err != nil {
		return err
	}
	pop, err := storage.ReadWide(opts.PopulationPath)
	if err != nil {
		return err
	}
	co2, err := storage.ReadLong(opts.EmissionsPath)
	if err != nil {
		return err
	}
	logger.Info("Loaded %d gdp, %d population and %d emissions rows", len(gdp.Rows), len(pop.Rows), len(co2.Rows))

	pipeline := services.NewPipeline(aliases, *windowFlag, logger)
	report, err := pipeline.Run(gdp, pop, co2, services.YearRange{Start: opts.StartYear, End: opts.EndYear})
	if err != nil {
		return err
	}

	csvWriter, err := storage.NewCSVWriter(opts.OutputPath)
	if err != nil {
		return err
	}
	var sink storage.ReportSink = csvWriter
	defer sink.Close()
	if err := sink.WriteReport(report); err != nil {
		return err
	}
	logger.Info("Report saved to %s", opts.OutputPath)

	archives, err := openArchives(cfg, *sqliteFlag, *postgresFlag, logger)
	if err != nil {
		return err
	}
	for _, w := range archives {
		defer w.Close()
	}
	for _, w := range archives {
		if err := w.Write(report.Joined); err != nil {
			return err
		}
	}
	if len(archives) > 0 {
		logger.Info("Stored %d joined rows (table: country_year_stats)", len(report.Joined.Records))
	}

	services.NewPrinter(os.Stdout).Print(report)
	fmt.Printf("  Done. Report → %s\n\n", opts.OutputPath)
	return nil
}

// openArchives opens the requested archive backends. On failure every writer
// opened so far is closed.
func openArchives(cfg *config.Config, sqlitePath string, postgres bool, logger *utils.Logger) (archives []storage.RecordWriter, err error) {
	defer func() {
		if err != nil {
			for _, w := range archives {
				_ = w.Close()
			}
			archives = nil
		}
	}()

	if sqlitePath != "" {
		w, err := storage.NewSQLiteWriter(sqlitePath)
		if err != nil {
			return archives, err
		}
		logger.Info("Archiving joined table to SQLite %s (run %s)", sqlitePath, w.RunID())
		archives = append(archives, w)
	}
	if postgres {
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 500 * time.Millisecond, Logger: logger}
		w, err := storage.NewPostgresWriter(cfg.DSN(), retry)
		if err != nil {
			logger.Error("Make sure PostgreSQL is reachable at %s:%s", cfg.PostgresHost, cfg.PostgresPort)
			return archives, err
		}
		logger.Info("Archiving joined table to PostgreSQL (run %s)", w.RunID())
		archives = append(archives, w)
	}
	return archives, nil
}
