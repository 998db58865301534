package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFileRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lines   int
	}{
		{name: "trailing newline", content: "#ifndef A_H\n#define A_H\n#endif\n", lines: 3},
		{name: "no trailing newline", content: "#ifndef A_H\n#endif", lines: 2},
		{name: "empty", content: "", lines: 0},
		{name: "blank line only", content: "\n", lines: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := NewSourceFile("a.h", tt.content)
			assert.Len(t, file.Lines, tt.lines)
			assert.Equal(t, tt.content, file.Content())
		})
	}
}

func TestSourceFileKeepsCRLF(t *testing.T) {
	file := NewSourceFile("a.h", "a\r\nb\r\n")
	require.Len(t, file.Lines, 2)
	assert.Equal(t, "a", file.Lines[0])
	assert.Equal(t, "\r\n", file.LineEnding)
	assert.Equal(t, "a\r\nb\r\n", file.Content())

	file.Lines = append(file.Lines, "c")
	assert.Equal(t, "a\r\nb\r\nc\r\n", file.Content())
}

func TestSourceFileLineEnding(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ending  string
		want    string
	}{
		{name: "lf", content: "a\nb\n", ending: "\n", want: "a\nb\n"},
		{name: "crlf without trailing newline", content: "a\r\nb", ending: "\r\n", want: "a\r\nb"},
		{name: "mixed follows first break", content: "a\r\nb\nc\r\n", ending: "\r\n", want: "a\r\nb\r\nc\r\n"},
		{name: "single line", content: "a", ending: "\n", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := NewSourceFile("a.h", tt.content)
			assert.Equal(t, tt.ending, file.LineEnding)
			assert.Equal(t, tt.want, file.Content())
		})
	}
}

func TestBoundary(t *testing.T) {
	lines := []string{"class A {", "int x;", "};", "// tail"}
	b := Boundary{Start: 1, End: 3}

	assert.True(t, b.Valid())
	assert.True(t, b.Contains(2))
	assert.False(t, b.Contains(4))
	assert.Equal(t, []string{"class A {", "int x;", "};"}, b.Slice(lines))
	assert.Equal(t, "1-3", b.String())

	assert.False(t, Boundary{Start: 3, End: 1}.Valid())
	assert.Nil(t, Boundary{Start: 1, End: 10}.Slice(lines))
}

func TestParseAccess(t *testing.T) {
	access, ok := ParseAccess("Public")
	assert.True(t, ok)
	assert.Equal(t, AccessPublic, access)

	access, ok = ParseAccess(" protected ")
	assert.True(t, ok)
	assert.Equal(t, AccessProtected, access)

	_, ok = ParseAccess("friend")
	assert.False(t, ok)

	assert.Equal(t, "none", AccessNone.String())
}

func TestBindingSet(t *testing.T) {
	set := NewBindingSet()
	name := FieldDescriptor{Type: "optional<StdString>", Name: "name"}
	age := FieldDescriptor{Type: "optional<int>", Name: "age"}

	set.Add(ValidationBinding{Rule: "NotNull", Function: "Validate::NotNull", Field: name})
	set.Add(ValidationBinding{Rule: "NotBlank", Function: "Validate::NotBlank", Field: name})
	set.Add(ValidationBinding{Rule: "NotNull", Function: "Validate::NotNull", Field: age})

	assert.Equal(t, []string{"NotNull", "NotBlank"}, set.Rules())
	assert.Equal(t, []string{"NotNull", "NotBlank"}, set.RulesFor("name"))
	assert.Equal(t, []string{"NotNull"}, set.RulesFor("age"))
	assert.Empty(t, set.RulesFor("missing"))
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 0, NewBindingSet().Len())

	all := set.All()
	require.Len(t, all, 3)
	assert.Equal(t, []FieldDescriptor{name, age, name}, []FieldDescriptor{all[0].Field, all[1].Field, all[2].Field})
}

func TestOutcome(t *testing.T) {
	assert.True(t, OutcomeInjected.Succeeded())
	assert.True(t, OutcomeAlreadyPresent.Succeeded())
	assert.False(t, OutcomeSkipped.Succeeded())
	assert.Equal(t, "already present", OutcomeAlreadyPresent.String())
}
