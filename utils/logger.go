package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// Logger provides leveled logging throughout the pipeline.
type Logger struct {
	info    *log.Logger
	warn    *log.Logger
	err     *log.Logger
	debug   *log.Logger
	verbose bool
	now     func() time.Time
}

// NewLogger creates a Logger writing to stdout/stderr. Debug messages are
// only emitted when verbose is set.
func NewLogger(verbose bool) *Logger {
	return newLogger(os.Stdout, os.Stderr, verbose)
}

// NewLoggerTo creates a Logger sending every level to w.
func NewLoggerTo(w io.Writer, verbose bool) *Logger {
	return newLogger(w, w, verbose)
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() *Logger {
	return newLogger(io.Discard, io.Discard, false)
}

func newLogger(out, errOut io.Writer, verbose bool) *Logger {
	return &Logger{
		info:    log.New(out, "", 0),
		warn:    log.New(out, "", 0),
		err:     log.New(errOut, "", 0),
		debug:   log.New(out, "", 0),
		verbose: verbose,
		now:     time.Now,
	}
}

func (l *Logger) timestamp() string {
	return l.now().Format("2006-01-02 15:04:05")
}

func (l *Logger) line(c *color.Color, level, format string, args ...any) string {
	pad := ""
	if len(level) < 5 {
		pad = " "
	}
	return fmt.Sprintf("[%s] %s%s %s", l.timestamp(), c.Sprint(level), pad, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Println(l.line(infoColor, "INFO", format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Println(l.line(warnColor, "WARN", format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Println(l.line(errorColor, "ERROR", format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.debug.Println(l.line(debugColor, "DEBUG", format, args...))
}
