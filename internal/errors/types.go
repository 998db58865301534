package errors

import (
	"fmt"
	"strings"
)

// ProcessorError is implemented by every error the processor reports
type ProcessorError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a failure
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// a marked declaration could not be used
	StructureNotFoundCode
	FieldExtractionEmptyCode

	MacroDiscoveryIOCode
	InjectionIOCode
	FileSystemErrorCode

	GenerationErrorCode
	TemplateErrorCode

	ConfigurationErrorCode
)

var codeNames = map[ErrorCode]string{
	StructureNotFoundCode:    "StructureNotFound",
	FieldExtractionEmptyCode: "FieldExtractionEmpty",
	MacroDiscoveryIOCode:     "MacroDiscoveryIO",
	InjectionIOCode:          "InjectionIO",
	FileSystemErrorCode:      "FileSystemError",
	GenerationErrorCode:      "GenerationError",
	TemplateErrorCode:        "TemplateError",
	ConfigurationErrorCode:   "ConfigurationError",
}

func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation points at a header line. Line 0 means the whole file.
type SourceLocation struct {
	File string
	Line int
}

// String formats the location as file or file:line
func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	default:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
}

// IsEmpty reports whether no file is known
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError carries a code, an optional location and cause, free-form context and
// suggestions for the user
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// Error renders "location: message: cause", leaving out the parts that are unset
func (e *BaseError) Error() string {
	var b strings.Builder
	if !e.Loc.IsEmpty() {
		b.WriteString(e.Loc.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.Hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// Context never returns nil
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates an error with no cause
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Newf is New with a format string
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an error around cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause}
}

// MultipleErrors collects the problems of a whole run
type MultipleErrors struct {
	Errors []ProcessorError
}

// NewMultipleErrors creates an empty collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{}
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	lines := make([]string, 0, len(e.Errors)+1)
	lines = append(lines, fmt.Sprintf("multiple errors (%d total):", len(e.Errors)))
	for i, err := range e.Errors {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes every collected error to errors.Is and errors.As
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		errs = append(errs, err)
	}
	return errs
}

func (e *MultipleErrors) Add(err ProcessorError) {
	e.Errors = append(e.Errors, err)
}

func (e *MultipleErrors) IsEmpty() bool { return len(e.Errors) == 0 }
func (e *MultipleErrors) Count() int    { return len(e.Errors) }

// ByCode returns the collected errors with the given code
func (e *MultipleErrors) ByCode(code ErrorCode) []ProcessorError {
	var matched []ProcessorError
	for _, err := range e.Errors {
		if err.ErrorCode() == code {
			matched = append(matched, err)
		}
	}
	return matched
}

// HasCode reports whether any collected error has the given code
func (e *MultipleErrors) HasCode(code ErrorCode) bool {
	return len(e.ByCode(code)) > 0
}
