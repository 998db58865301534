package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/serialgen/internal/errors"
)

// DiagnosticReporter renders errors with their code, location, context and suggestions
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the reporter
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	warn := color.New(color.FgYellow, color.Bold)
	warn.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints an error. Collections are reported one entry at a time.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		for _, e := range multi.Errors {
			r.ReportError(e)
		}
		return
	}

	var procErr errors.ProcessorError
	if !stderrors.As(err, &procErr) {
		r.printHeader("Error")
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
		return
	}

	r.printHeader(procErr.ErrorCode().String())
	fmt.Fprintf(r.out, "Message: %s\n", err.Error())
	if loc := procErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n", loc.String())
	}

	if context := procErr.Context(); len(context) > 0 {
		r.printContext(context)
	}
	if suggestions := procErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}
	if r.verbose {
		r.printChain(err)
	}
	fmt.Fprintln(r.out)
}

func (r *DiagnosticReporter) printHeader(kind string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(r.out, "x ")
	fmt.Fprintf(r.out, "%s\n", kind)
}

// printContext prints context entries sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
}

// printChain lists every wrapped error below the top one
func (r *DiagnosticReporter) printChain(err error) {
	level := 1
	for cause := stderrors.Unwrap(err); cause != nil; cause = stderrors.Unwrap(cause) {
		if level == 1 {
			fmt.Fprintf(r.out, "Error chain:\n")
		}
		fmt.Fprintf(r.out, "   %d. %s\n", level, cause.Error())
		level++
	}
}

// formatContextKey turns snake_case keys into Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
