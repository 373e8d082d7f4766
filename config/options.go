package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultOutputPath   = "results.csv"
	DefaultChangeWindow = 10
	csvExt              = ".csv"
)

var (
	ErrMissingInput     = errors.New("missing input file")
	ErrInvalidExtension = errors.New("input files need to be in csv format")
	ErrInvalidYearRange = errors.New("start year needs to be smaller than or equal to end year")
)

// Options are the per-run parameters given on the command line.
// StartYear and EndYear are nil when unset.
type Options struct {
	GDPPath        string
	PopulationPath string
	EmissionsPath  string
	StartYear      *int
	EndYear        *int
	OutputPath     string
}

// Validate checks the inputs before any file is read.
func (o *Options) Validate() error {
	inputs := []struct{ flag, path string }{
		{"--gdp", o.GDPPath},
		{"--pop", o.PopulationPath},
		{"--co2", o.EmissionsPath},
	}
	for _, in := range inputs {
		if in.path == "" {
			return fmt.Errorf("config: %s: %w", in.flag, ErrMissingInput)
		}
		if !strings.HasSuffix(in.path, csvExt) {
			return fmt.Errorf("config: %s %q: %w", in.flag, in.path, ErrInvalidExtension)
		}
	}
	if o.StartYear != nil && o.EndYear != nil && *o.StartYear > *o.EndYear {
		return fmt.Errorf("config: %d > %d: %w", *o.StartYear, *o.EndYear, ErrInvalidYearRange)
	}
	return nil
}

// NormalizeOutputPath repairs an output file name that does not look like a
// single-extension csv file: everything from the first dot of the file name on
// is replaced with ".csv". Directories are kept. The second result reports
// whether the name was changed.
func NormalizeOutputPath(path string) (string, bool) {
	dir, file := filepath.Split(path)
	if file == "" {
		return filepath.Join(dir, DefaultOutputPath), true
	}
	if strings.Count(file, ".") == 1 && strings.HasSuffix(file, csvExt) {
		return path, false
	}
	base, _, _ := strings.Cut(file, ".")
	if base == "" {
		base = strings.TrimSuffix(DefaultOutputPath, csvExt)
	}
	return dir + base + csvExt, true
}
