package annotations

import (
	"regexp"
	"strings"

	"github.com/toyz/serialgen/internal/models"
)

const (
	classLookahead = 5
	enumLookahead  = 20
)

var (
	classDeclPattern = regexp.MustCompile(`^\s*(?:template\s*<.*>\s*)?(?:class|struct)\s+((?:[A-Za-z_]\w*\s+)*)([A-Za-z_]\w*)\s*(?:[:{]|$)`)
	enumDeclPattern  = regexp.MustCompile(`enum\s+(?:class\s+|struct\s+)?([A-Za-z_]\w*)\s*(?:[:{]|$)`)
)

// FindMarkers returns the markers with the given name that annotate a declaration of the subject kind.
// Markers with no matching declaration within the lookahead window are ignored.
func FindMarkers(lines []string, name string, subject models.Subject) []models.Marker {
	return FindMarkersIn(Classify(lines), name, subject)
}

// FindMarkersIn is FindMarkers over an already classified stream
func FindMarkersIn(stream []Line, name string, subject models.Subject) []models.Marker {
	var markers []models.Marker

	for i, line := range stream {
		if line.Kind != LineMarker || line.Marker.Name != name {
			continue
		}

		declName, declLine, ok := associate(stream, i, subject)
		if !ok {
			continue
		}

		markers = append(markers, models.Marker{
			Line:            line.Number,
			Kind:            line.Marker.Kind,
			Subject:         subject,
			Name:            name,
			Declaration:     declName,
			DeclarationLine: declLine,
		})
	}

	return markers
}

// associate finds the declaration a marker at index i points at
func associate(stream []Line, i int, subject models.Subject) (string, int, bool) {
	window := classLookahead
	if subject == models.SubjectEnum {
		window = enumLookahead
	}

	for j := i + 1; j < len(stream) && j <= i+window; j++ {
		next := stream[j]
		switch next.Kind {
		case LineBlank, LineComment, LineMarker:
			continue
		case LineDirective:
			if subject == models.SubjectEnum {
				continue
			}
		}

		if subject == models.SubjectEnum {
			if m := enumDeclPattern.FindStringSubmatch(next.Text); m != nil {
				return m[1], next.Number, true
			}
			return "", 0, false
		}

		if declName, ok := classDeclName(next.Text); ok {
			return declName, next.Number, true
		}
		return "", 0, false
	}

	return "", 0, false
}

// classDeclName extracts the declared name from a class or struct head,
// skipping export macros before the name and a trailing final
func classDeclName(text string) (string, bool) {
	m := classDeclPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	declName := m[2]
	if declName == "final" {
		prefix := strings.Fields(m[1])
		if len(prefix) == 0 {
			return "", false
		}
		declName = prefix[len(prefix)-1]
	}
	return declName, true
}

// MarkProcessed rewrites the marker at marker.Line to its processed form, keeping indentation.
// A line that is already processed is left alone and reported as success.
func MarkProcessed(lines []string, marker models.Marker) ([]string, bool) {
	idx := marker.Line - 1
	if idx < 0 || idx >= len(lines) {
		return lines, false
	}

	parsed, ok := ParseMarker(lines[idx])
	if !ok || parsed.Name != marker.Name {
		return lines, false
	}
	if parsed.Kind == models.MarkerProcessed {
		return lines, true
	}

	text := lines[idx]
	indent := text[:len(text)-len(strings.TrimLeft(text, " \t"))]

	updated := make([]string, len(lines))
	copy(updated, lines)
	updated[idx] = indent + FormatMarker(marker.Name, models.MarkerProcessed)
	return updated, true
}
