package parser

import (
	"github.com/toyz/serialgen/internal/annotations"
	"github.com/toyz/serialgen/internal/models"
)

// fieldLookahead is how many lines after an annotation may hold the annotated field
const fieldLookahead = 10

// ExtractFields returns the top-level member fields of a class boundary in declaration order
func ExtractFields(lines []string, boundary models.Boundary) []models.FieldDescriptor {
	return ExtractFieldsFrom(annotations.ClassifyRange(lines, boundary))
}

// ExtractFieldsFrom returns the depth-1 fields of a classified class stream
func ExtractFieldsFrom(stream []annotations.Line) []models.FieldDescriptor {
	var fields []models.FieldDescriptor
	current := models.AccessNone

	for _, line := range stream {
		switch line.Kind {
		case annotations.LineAccess:
			if line.Depth == 1 {
				current = line.Access
			}
		case annotations.LineField:
			if line.Depth != 1 {
				continue
			}
			if line.Access != models.AccessNone {
				current = line.Access
			}
			fields = append(fields, descriptor(line, current))
		}
	}

	return fields
}

// LookaheadField finds the field an annotation at stream[index] applies to.
// Blank lines, comments, other markers and directives are skipped; an access
// specifier or any other statement ends the search unbound.
func LookaheadField(stream []annotations.Line, index int) (models.FieldDescriptor, bool) {
	for j := index + 1; j < len(stream) && j <= index+fieldLookahead; j++ {
		line := stream[j]
		switch line.Kind {
		case annotations.LineBlank, annotations.LineComment, annotations.LineMarker, annotations.LineDirective:
			continue
		case annotations.LineField:
			if line.Depth != 1 {
				return models.FieldDescriptor{}, false
			}
			return descriptor(line, accessAt(stream, j)), true
		default:
			return models.FieldDescriptor{}, false
		}
	}

	return models.FieldDescriptor{}, false
}

// accessAt replays access changes up to and including stream[index]
func accessAt(stream []annotations.Line, index int) models.Access {
	current := models.AccessNone
	for _, line := range stream[:index+1] {
		if line.Depth != 1 {
			continue
		}
		if (line.Kind == annotations.LineAccess || line.Kind == annotations.LineField) && line.Access != models.AccessNone {
			current = line.Access
		}
	}
	return current
}

func descriptor(line annotations.Line, access models.Access) models.FieldDescriptor {
	return models.FieldDescriptor{
		Type:   line.FieldType,
		Name:   line.FieldName,
		Access: access,
		Line:   line.Number,
	}
}
