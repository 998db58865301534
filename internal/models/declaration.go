package models

import (
	"fmt"
	"strings"
)

// SourceFile owns the line buffer of one header while it is being processed
type SourceFile struct {
	Path            string   // absolute path of the header
	Lines           []string // line contents without terminators
	TrailingNewline bool     // whether the original content ended with a newline
	LineEnding      string   // "\r\n" or "\n", taken from the first line break
}

// NewSourceFile splits content into lines, remembering whether it ended with a newline
// and which line ending it uses
func NewSourceFile(path, content string) *SourceFile {
	ending := "\n"
	if i := strings.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		ending = "\r\n"
	}

	trailing := strings.HasSuffix(content, "\n")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	body := strings.TrimSuffix(content, "\n")

	var lines []string
	if body != "" || trailing {
		lines = strings.Split(body, "\n")
	}

	return &SourceFile{
		Path:            path,
		Lines:           lines,
		TrailingNewline: trailing,
		LineEnding:      ending,
	}
}

// Content joins the line buffer back into file content with the original line ending.
// A file with mixed endings is written with the ending of its first line break.
func (f *SourceFile) Content() string {
	ending := f.LineEnding
	if ending == "" {
		ending = "\n"
	}
	content := strings.Join(f.Lines, ending)
	if f.TrailingNewline {
		content += ending
	}
	return content
}

// Boundary is the inclusive, 1-indexed line range of a declaration body
type Boundary struct {
	Start int
	End   int
}

// Valid reports whether the boundary is well formed
func (b Boundary) Valid() bool {
	return b.Start >= 1 && b.Start <= b.End
}

// Contains reports whether the 1-indexed line falls inside the boundary
func (b Boundary) Contains(line int) bool {
	return line >= b.Start && line <= b.End
}

// Slice returns the lines covered by the boundary
func (b Boundary) Slice(lines []string) []string {
	if !b.Valid() || b.End > len(lines) {
		return nil
	}
	return lines[b.Start-1 : b.End]
}

// String returns a formatted representation of the boundary
func (b Boundary) String() string {
	return fmt.Sprintf("%d-%d", b.Start, b.End)
}

// Marker is an annotation comment associated with the declaration that follows it
type Marker struct {
	Line            int        // 1-indexed line of the marker comment
	Kind            MarkerKind // processed or not
	Subject         Subject    // class or enum
	Name            string     // annotation name without the @ prefix
	Declaration     string     // name of the associated declaration
	DeclarationLine int        // 1-indexed line of the associated declaration
}

// FieldDescriptor describes one member field of a class or struct
type FieldDescriptor struct {
	Type   string
	Name   string
	Access Access
	Line   int
}

// Info returns the derived type classification of the field
func (f FieldDescriptor) Info() TypeInfo {
	return ClassifyType(f.Type)
}

// EnumDescriptor holds an enum name and its values in declaration order
type EnumDescriptor struct {
	Name   string
	Values []string
}

// ValidationMacro binds a rule name to a validator function
type ValidationMacro struct {
	Rule     string // short rule name, e.g. NotNull
	Function string // validator function as written in the directive
	Source   string // file that defined the rule
	Line     int    // 1-indexed line of the directive
}

// ValidationBinding associates a rule with one annotated field
type ValidationBinding struct {
	Rule     string
	Function string
	Field    FieldDescriptor
}
