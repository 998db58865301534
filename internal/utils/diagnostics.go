package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem provides structured, user-friendly output
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
	runID     string
	progress  map[string]time.Time
}

// NewDiagnosticSystem creates a new diagnostic system
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticVerbose,
		output:    os.Stdout,
		errorOut:  os.Stderr,
		runID:     uuid.NewString(),
		progress:  make(map[string]time.Time),
	}
}

// NewQuietDiagnostics creates a diagnostic system that only shows errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// NewVerboseDiagnostics creates a diagnostic system with full output
func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

// SetOutput redirects normal and error output. Colors are turned off for non-terminal writers.
func (d *DiagnosticSystem) SetOutput(out, errOut io.Writer) {
	d.output = out
	d.errorOut = errOut
	d.useColors = false
	d.showTime = false
}

// IsVerbose reports whether verbose output is enabled
func (d *DiagnosticSystem) IsVerbose() bool {
	return d.level >= DiagnosticVerbose
}

// RunID returns the identifier of the current run
func (d *DiagnosticSystem) RunID() string {
	return d.runID
}

// Color constants for terminal output
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorGray    = "\033[90m"
)

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, "ERROR", ColorRed, format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.output, "WARN", ColorYellow, format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "INFO", ColorBlue, format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "SUCCESS", ColorGreen, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", ColorGray, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, "DEBUG", ColorMagenta, format, args...)
	}
}

// StartProgress marks the beginning of a timed step
func (d *DiagnosticSystem) StartProgress(step string) {
	d.progress[step] = time.Now()
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", ColorGray, "%s...", step)
	}
}

// EndProgress closes a timed step opened with StartProgress
func (d *DiagnosticSystem) EndProgress(step string) {
	started, ok := d.progress[step]
	if !ok {
		return
	}
	delete(d.progress, step)

	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", ColorGray, "%s done in %s", step, time.Since(started).Round(time.Millisecond))
	}
}

// Subsection creates a subsection header
func (d *DiagnosticSystem) Subsection(title string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "\n%s:\n", title)
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		message := fmt.Sprintf(format, args...)
		fmt.Fprintf(d.output, "%s- %s\n", d.getIndent(), message)
	}
}

// Indent increases the indentation level
func (d *DiagnosticSystem) Indent() {
	d.indent++
}

// Unindent decreases the indentation level
func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Header outputs the tool banner
func (d *DiagnosticSystem) Header(message string) {
	if d.level >= DiagnosticInfo {
		if d.useColors {
			color.New(color.FgCyan).Fprintf(d.output, "serialgen: %s\n", message)
			return
		}
		fmt.Fprintf(d.output, "serialgen: %s\n", message)
	}
}

// PhaseItem outputs a completed item with a checkmark
func (d *DiagnosticSystem) PhaseItem(message string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprint(d.output, d.getIndent())
		if d.useColors {
			color.New(color.FgGreen).Fprint(d.output, "✓ ")
		} else {
			fmt.Fprint(d.output, "✓ ")
		}
		fmt.Fprintf(d.output, "%s\n", message)
	}
}

// PhaseProgress outputs an in-progress item; writes get their own glyph
func (d *DiagnosticSystem) PhaseProgress(message string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprint(d.output, d.getIndent())
		if strings.HasPrefix(message, "Writing") {
			if d.useColors {
				color.New(color.FgMagenta).Fprint(d.output, "✏ ")
			} else {
				fmt.Fprint(d.output, "✏ ")
			}
			fmt.Fprintf(d.output, "%s\n", message)
			return
		}
		fmt.Fprintf(d.output, "- %s\n", message)
	}
}

// writeMessage is the internal message writing function
func (d *DiagnosticSystem) writeMessage(writer io.Writer, level, colorCode, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	var output strings.Builder
	output.WriteString(d.getIndent())

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	if d.useColors {
		output.WriteString(fmt.Sprintf("%s[%s]%s ", colorCode, level, ColorReset))
	} else {
		output.WriteString(fmt.Sprintf("[%s] ", level))
	}

	output.WriteString(message)
	output.WriteString("\n")

	fmt.Fprint(writer, output.String())
}

// getIndent returns the current indentation string
func (d *DiagnosticSystem) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	// NO_COLOR is the common opt-out
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
