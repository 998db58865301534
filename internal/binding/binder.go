// Package binding attaches validation rules to the class fields they annotate.
package binding

import (
	"github.com/toyz/serialgen/internal/annotations"
	"github.com/toyz/serialgen/internal/models"
	"github.com/toyz/serialgen/internal/parser"
	"github.com/toyz/serialgen/internal/registry"
)

// Bind finds /* @Rule */ markers for every registered rule inside a class boundary and
// binds each to the field that follows it. Rules whose function only applies to strings
// drop fields that are not strings.
func Bind(lines []string, boundary models.Boundary, rules *registry.MacroRegistry) *models.BindingSet {
	return BindStream(annotations.ClassifyRange(lines, boundary), rules)
}

// BindStream is Bind over an already classified class stream
func BindStream(stream []annotations.Line, rules *registry.MacroRegistry) *models.BindingSet {
	set := models.NewBindingSet()
	if rules == nil {
		return set
	}

	for _, macro := range rules.Macros() {
		stringOnly := registry.IsStringOnly(macro.Function)

		for i, line := range stream {
			if line.Depth != 1 || !line.IsMarker(macro.Rule, models.MarkerUnprocessed) {
				continue
			}

			field, ok := parser.LookaheadField(stream, i)
			if !ok {
				continue
			}
			if stringOnly && !models.IsStringType(field.Type) {
				continue
			}

			set.Add(models.ValidationBinding{
				Rule:     macro.Rule,
				Function: macro.Function,
				Field:    field,
			})
		}
	}

	return set
}
