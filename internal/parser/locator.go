package parser

import (
	"regexp"
	"strings"

	"github.com/toyz/serialgen/internal/annotations"
	"github.com/toyz/serialgen/internal/errors"
	"github.com/toyz/serialgen/internal/models"
)

// DeclKind selects which declaration keywords the locator accepts
type DeclKind int

const (
	DeclClass DeclKind = iota // class or struct
	DeclEnum                  // enum, enum class, enum struct
)

// String returns the string representation of the declaration kind
func (k DeclKind) String() string {
	if k == DeclEnum {
		return "enum"
	}
	return "class"
}

// DeclKindFor maps a marker subject to the declaration kind it annotates
func DeclKindFor(subject models.Subject) DeclKind {
	if subject == models.SubjectEnum {
		return DeclEnum
	}
	return DeclClass
}

var enumKeyword = regexp.MustCompile(`\benum\b`)

func declPattern(kind DeclKind, name string) *regexp.Regexp {
	keyword := `(?:class|struct)`
	if kind == DeclEnum {
		keyword = `enum`
	}
	return regexp.MustCompile(`\b` + keyword + `\b.*\b` + regexp.QuoteMeta(name) + `\b`)
}

// Locate finds the line range of the named declaration
func Locate(lines []string, kind DeclKind, name string) (models.Boundary, error) {
	return LocateFrom(lines, kind, name, 1)
}

// LocateFrom finds the line range of the named declaration, searching from fromLine (1-based).
// Comment lines and forward declarations are skipped. The boundary ends on the line where the
// brace depth returns to zero.
func LocateFrom(lines []string, kind DeclKind, name string, fromLine int) (models.Boundary, error) {
	if fromLine < 1 {
		fromLine = 1
	}
	pattern := declPattern(kind, name)

	start := -1
	commentScanner := &annotations.BraceScanner{}
	for i := 0; i < len(lines); i++ {
		inComment := commentScanner.InComment()
		commentScanner.Scan(lines[i], 0)
		if i < fromLine-1 || inComment {
			continue
		}

		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		if !pattern.MatchString(lines[i]) {
			continue
		}
		if strings.Contains(lines[i], ";") && !strings.Contains(lines[i], "{") {
			continue
		}
		if kind == DeclClass && enumKeyword.MatchString(lines[i]) {
			continue
		}

		start = i
		break
	}

	if start < 0 {
		return models.Boundary{}, errors.NewStructureNotFoundError(kind.String(), name, errors.SourceLocation{Line: fromLine})
	}

	scanner := &annotations.BraceScanner{}
	depth := 0
	for i := start; i < len(lines); i++ {
		var reachedZero bool
		depth, _, reachedZero = scanner.Scan(lines[i], depth)
		if reachedZero {
			return models.Boundary{Start: start + 1, End: i + 1}, nil
		}
	}

	err := errors.NewStructureNotFoundError(kind.String(), name, errors.SourceLocation{Line: start + 1})
	err.WithSuggestion("The declaration body is not closed before the end of the file")
	return models.Boundary{}, err
}
