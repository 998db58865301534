package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/serialgen/internal/models"
)

func TestParseMarker(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
		want  ParsedMarker
	}{
		{name: "unprocessed", input: "/* @Serializable */", ok: true, want: ParsedMarker{Name: "Serializable", Kind: models.MarkerUnprocessed}},
		{name: "unprocessed tight", input: "/*@NotNull*/", ok: true, want: ParsedMarker{Name: "NotNull", Kind: models.MarkerUnprocessed}},
		{name: "processed", input: "/*--@Serializable--*/", ok: true, want: ParsedMarker{Name: "Serializable", Kind: models.MarkerProcessed}},
		{name: "processed spaced", input: "  /*-- @Entity --*/  ", ok: true, want: ParsedMarker{Name: "Entity", Kind: models.MarkerProcessed}},
		{name: "mixed open", input: "/*-- @Serializable */", ok: false},
		{name: "mixed close", input: "/* @Serializable --*/", ok: false},
		{name: "no at sign", input: "/* Serializable */", ok: false},
		{name: "trailing code", input: "/* @NotNull */ optional<int> x;", ok: false},
		{name: "two names", input: "/* @Not Null */", ok: false},
		{name: "line comment", input: "// @Serializable", ok: false},
		{name: "plain comment", input: "/* just a comment */", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMarker(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatMarkerRoundTrip(t *testing.T) {
	for _, kind := range []models.MarkerKind{models.MarkerUnprocessed, models.MarkerProcessed} {
		parsed, ok := ParseMarker(FormatMarker("Serializable", kind))
		assert.True(t, ok)
		assert.Equal(t, kind, parsed.Kind)
		assert.Equal(t, "Serializable", parsed.Name)
	}
}

func TestBraceScanner(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		depth   int
		next    int
		opened  bool
		reached bool
	}{
		{name: "open", line: "class User {", depth: 0, next: 1, opened: true},
		{name: "close", line: "};", depth: 1, next: 0, reached: true},
		{name: "one line body", line: "class Empty {};", depth: 0, next: 0, opened: true, reached: true},
		{name: "brace in string", line: `const char* s = "{";`, depth: 1, next: 1},
		{name: "brace in char", line: `char c = '}';`, depth: 1, next: 1},
		{name: "escaped quote", line: `const char* s = "\"{";`, depth: 1, next: 1},
		{name: "line comment", line: "int x; // }", depth: 1, next: 1},
		{name: "block comment", line: "int x; /* } */ int y;", depth: 1, next: 1},
		{name: "stray close at zero", line: "}", depth: 0, next: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &BraceScanner{}
			next, opened, reached := s.Scan(tt.line, tt.depth)
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.opened, opened)
			assert.Equal(t, tt.reached, reached)
		})
	}
}

func TestBraceScannerBlockCommentSpansLines(t *testing.T) {
	s := &BraceScanner{}
	depth, _, _ := s.Scan("/* start {", 0)
	assert.True(t, s.InComment())
	assert.Equal(t, 0, depth)

	depth, _, _ = s.Scan("} end */ {", depth)
	assert.False(t, s.InComment())
	assert.Equal(t, 1, depth)
}
