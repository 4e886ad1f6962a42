// Package report provides the leveled, colorized terminal output used by
// the annex command line.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Level gates how much output the reporter emits
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelVerbose
)

// Reporter writes structured, user-facing messages. The core library never
// prints; everything going to a terminal flows through a Reporter.
type Reporter struct {
	level    Level
	out      io.Writer
	errOut   io.Writer
	colorize bool
}

// New creates a reporter at the given level writing to stdout/stderr
func New(level Level) *Reporter {
	return &Reporter{
		level:    level,
		out:      os.Stdout,
		errOut:   os.Stderr,
		colorize: !color.NoColor,
	}
}

// NewQuiet creates a reporter that only shows errors
func NewQuiet() *Reporter { return New(LevelError) }

// NewVerbose creates a reporter with full output
func NewVerbose() *Reporter { return New(LevelVerbose) }

// SetOutput redirects both streams, for tests
func (r *Reporter) SetOutput(w io.Writer) {
	r.out = w
	r.errOut = w
}

func (r *Reporter) write(w io.Writer, label string, c *color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.colorize {
		label = c.Sprint(label)
	}
	fmt.Fprintf(w, "%s %s\n", label, msg)
}

// Error reports a failure; shown unless silent
func (r *Reporter) Error(format string, args ...any) {
	if r.level >= LevelError {
		r.write(r.errOut, "ERROR", color.New(color.FgRed, color.Bold), format, args...)
	}
}

// Warn reports a non-fatal condition
func (r *Reporter) Warn(format string, args ...any) {
	if r.level >= LevelWarn {
		r.write(r.out, "WARN", color.New(color.FgYellow), format, args...)
	}
}

// Info reports normal progress
func (r *Reporter) Info(format string, args ...any) {
	if r.level >= LevelInfo {
		r.write(r.out, "INFO", color.New(color.FgBlue), format, args...)
	}
}

// Success reports a completed step with emphasis
func (r *Reporter) Success(format string, args ...any) {
	if r.level >= LevelInfo {
		r.write(r.out, "OK", color.New(color.FgGreen), format, args...)
	}
}

// Verbose reports detail shown only in verbose mode
func (r *Reporter) Verbose(format string, args ...any) {
	if r.level >= LevelVerbose {
		r.write(r.out, "DEBUG", color.New(color.FgHiBlack), format, args...)
	}
}

// Section prints a section header
func (r *Reporter) Section(title string) {
	if r.level >= LevelInfo {
		if r.colorize {
			title = color.New(color.FgCyan, color.Bold).Sprint(title)
		}
		fmt.Fprintf(r.out, "\n%s\n", title)
	}
}

// List prints one bulleted item
func (r *Reporter) List(format string, args ...any) {
	if r.level >= LevelInfo {
		fmt.Fprintf(r.out, "  - %s\n", fmt.Sprintf(format, args...))
	}
}
