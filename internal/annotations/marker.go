package annotations

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/serialgen/internal/models"
)

// markerAST is the grammar of a marker comment such as /* @Serializable */ or /*--@Serializable--*/
type markerAST struct {
	Open  string `parser:"@(ProcessedOpen | Open)"`
	Name  string `parser:"At @Ident"`
	Close string `parser:"@(ProcessedClose | Close)"`
}

// ParsedMarker is a marker comment recognised on a single line
type ParsedMarker struct {
	Name string
	Kind models.MarkerKind
}

// MarkerParser recognises marker comments using participle
type MarkerParser struct {
	parser *participle.Parser[markerAST]
}

// NewMarkerParser creates a new marker parser
func NewMarkerParser() *MarkerParser {
	// dashed delimiters must come before the plain ones
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "ProcessedOpen", Pattern: `/\*--`},
		{Name: "Open", Pattern: `/\*`},
		{Name: "ProcessedClose", Pattern: `--\*/`},
		{Name: "Close", Pattern: `\*/`},
		{Name: "At", Pattern: `@`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Punct", Pattern: `[^\sA-Za-z0-9_]`},
	})

	parser := participle.MustBuild[markerAST](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &MarkerParser{parser: parser}
}

// Parse reports whether the whole trimmed line is a marker comment.
// The delimiters must agree: both dashed is Processed, both plain is Unprocessed.
func (p *MarkerParser) Parse(line string) (ParsedMarker, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "/*") || !strings.HasSuffix(trimmed, "*/") || !strings.Contains(trimmed, "@") {
		return ParsedMarker{}, false
	}

	ast, err := p.parser.ParseString("", trimmed)
	if err != nil {
		return ParsedMarker{}, false
	}

	switch {
	case ast.Open == "/*" && ast.Close == "*/":
		return ParsedMarker{Name: ast.Name, Kind: models.MarkerUnprocessed}, true
	case ast.Open == "/*--" && ast.Close == "--*/":
		return ParsedMarker{Name: ast.Name, Kind: models.MarkerProcessed}, true
	default:
		return ParsedMarker{}, false
	}
}

var defaultMarkerParser = NewMarkerParser()

// ParseMarker parses a line with the shared marker parser
func ParseMarker(line string) (ParsedMarker, bool) {
	return defaultMarkerParser.Parse(line)
}

// FormatMarker renders a marker comment in its canonical form
func FormatMarker(name string, kind models.MarkerKind) string {
	if kind == models.MarkerProcessed {
		return "/*--@" + name + "--*/"
	}
	return "/* @" + name + " */"
}
