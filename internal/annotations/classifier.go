package annotations

import (
	"regexp"
	"strings"

	"github.com/toyz/serialgen/internal/models"
)

// LineKind is the structural category of a header line
type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineMarker
	LineAccess
	LineField
	LineDirective
	LineOther
)

// String returns the string representation of the line kind
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineMarker:
		return "marker"
	case LineAccess:
		return "access"
	case LineField:
		return "field"
	case LineDirective:
		return "directive"
	default:
		return "other"
	}
}

// Line is one classified source line
type Line struct {
	Number    int    // 1-based line number in the source file
	Text      string // raw line text
	Kind      LineKind
	Depth     int           // brace depth at the start of the line, relative to the stream start
	Marker    ParsedMarker  // set for LineMarker
	Access    models.Access // access named by an access line or an inline field qualifier
	FieldType string        // set for LineField
	FieldName string        // set for LineField
}

// IsMarker reports whether the line is the named marker in the given state
func (l Line) IsMarker(name string, kind models.MarkerKind) bool {
	return l.Kind == LineMarker && l.Marker.Name == name && l.Marker.Kind == kind
}

var (
	accessPattern = regexp.MustCompile(`(?i)^\s*(public|private|protected)\s*:`)
	fieldPattern  = regexp.MustCompile(`^\s*(?:Public|Private|Protected)?\s*([A-Za-z_][A-Za-z0-9_<>*&,:\s]*?)\s+([A-Za-z_][A-Za-z0-9_]*)\s*[;=]`)
	inlinePattern = regexp.MustCompile(`^\s*(Public|Private|Protected)\s`)
	leadingWord   = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)`)
)

// keywords that open a statement shaped like a field but declare something else
var nonFieldKeywords = map[string]bool{
	"friend":        true,
	"using":         true,
	"typedef":       true,
	"return":        true,
	"template":      true,
	"namespace":     true,
	"static_assert": true,
}

// Classify classifies every line of a file. Line numbers start at 1.
func Classify(lines []string) []Line {
	return classify(lines, 1)
}

// ClassifyRange classifies the lines of a boundary. Depth is relative to the boundary start.
func ClassifyRange(lines []string, boundary models.Boundary) []Line {
	region := boundary.Slice(lines)
	if region == nil {
		return nil
	}
	return classify(region, boundary.Start)
}

func classify(lines []string, firstNumber int) []Line {
	stream := make([]Line, 0, len(lines))
	scanner := &BraceScanner{}
	depth := 0

	for i, text := range lines {
		line := Line{
			Number: firstNumber + i,
			Text:   text,
			Depth:  depth,
		}

		inComment := scanner.InComment()
		classifyLine(&line, inComment)

		depth, _, _ = scanner.Scan(text, depth)
		stream = append(stream, line)
	}

	return stream
}

func classifyLine(line *Line, inComment bool) {
	trimmed := strings.TrimSpace(line.Text)

	switch {
	case trimmed == "":
		line.Kind = LineBlank
		return
	case inComment:
		line.Kind = LineComment
		return
	}

	if marker, ok := ParseMarker(trimmed); ok {
		line.Kind = LineMarker
		line.Marker = marker
		return
	}

	switch {
	case strings.HasPrefix(trimmed, "///@"):
		// doc-comment annotations terminate a field lookahead
		line.Kind = LineOther
	case strings.HasPrefix(trimmed, "//"), strings.HasPrefix(trimmed, "/*"), strings.HasPrefix(trimmed, "*"):
		line.Kind = LineComment
	case strings.HasPrefix(trimmed, "#"):
		line.Kind = LineDirective
	case accessPattern.MatchString(trimmed):
		line.Kind = LineAccess
		access, _ := models.ParseAccess(accessPattern.FindStringSubmatch(trimmed)[1])
		line.Access = access
	default:
		if fieldType, fieldName, ok := matchField(trimmed); ok {
			line.Kind = LineField
			line.FieldType = fieldType
			line.FieldName = fieldName
			if m := inlinePattern.FindStringSubmatch(trimmed); m != nil {
				line.Access, _ = models.ParseAccess(m[1])
			}
			return
		}
		line.Kind = LineOther
	}
}

// matchField applies the field declaration shape to a trimmed line
func matchField(trimmed string) (string, string, bool) {
	if strings.ContainsAny(trimmed, "()") {
		return "", "", false
	}
	if m := leadingWord.FindStringSubmatch(trimmed); m != nil && nonFieldKeywords[m[1]] {
		return "", "", false
	}

	m := fieldPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", "", false
	}

	fieldType := strings.TrimSpace(m[1])
	if fieldType == "" {
		return "", "", false
	}
	return fieldType, m[2], true
}
