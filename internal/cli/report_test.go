package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/serialgen/internal/errors"
	"github.com/toyz/serialgen/internal/utils/fileops"
)

func TestRenderSummaryAndOutcomes(t *testing.T) {
	dir := writeArchive(t, demoProject)
	processor, _ := newTestProcessor(t, dir, nil)
	result, err := processor.Run(context.Background(), scanProject(t, dir))
	require.NoError(t, err)

	var out bytes.Buffer
	RenderSummary(&out, result)
	assert.Contains(t, out.String(), "processed")
	assert.Contains(t, out.String(), "files changed")

	out.Reset()
	RenderOutcomes(&out, result, dir)
	assert.Contains(t, out.String(), "src/models/User.h")
	assert.Contains(t, out.String(), "Color")
	assert.Contains(t, out.String(), "injected")
}

func TestFindAllMarkersAndRender(t *testing.T) {
	dir := writeArchive(t, `-- Shapes.h --
#ifndef SHAPES_H
#define SHAPES_H
/* @Serializable */
enum class Kind { A };
/*--@Serializable--*/
class Circle {
    optional<int> r;
};
#endif
`)
	files := []string{filepath.Join(dir, "Shapes.h"), filepath.Join(dir, "missing.h")}

	entries, errs := FindAllMarkers(fileops.NewFileOps(), files, "Serializable")
	assert.Len(t, errs, 1)
	require.Len(t, entries, 2)
	assert.Equal(t, "Kind", entries[0].Marker.Declaration)
	assert.Equal(t, 3, entries[0].Marker.Line)
	assert.Equal(t, "Circle", entries[1].Marker.Declaration)

	var out bytes.Buffer
	RenderMarkers(&out, entries, dir)
	assert.Contains(t, out.String(), "Shapes.h")
	assert.Contains(t, out.String(), "unprocessed")
	assert.Contains(t, out.String(), "processed")
}

func TestRenderRules(t *testing.T) {
	dir := writeArchive(t, demoProject)
	processor, _ := newTestProcessor(t, dir, nil)

	rules, errs := processor.DiscoverRules(context.Background(), scanProject(t, dir))
	require.Empty(t, errs)

	var out bytes.Buffer
	RenderRules(&out, rules, dir)
	assert.Contains(t, out.String(), "ValidateNotBlank")
	assert.Contains(t, out.String(), "src/validation/Macros.h:2")
	assert.Contains(t, out.String(), "yes")
}

func TestDiagnosticReporter(t *testing.T) {
	var out bytes.Buffer
	reporter := NewDiagnosticReporter(true)
	reporter.SetOutput(&out)

	cause := errors.New(errors.FileSystemErrorCode, "disk full")
	err := errors.WrapInjectionError("write", "/p/User.h", cause).
		WithSuggestion("Free some space")

	multi := errors.NewMultipleErrors()
	multi.Add(err)
	multi.Add(errors.NewFieldExtractionEmptyError("Empty", errors.SourceLocation{File: "/p/Empty.h", Line: 4}))
	reporter.ReportError(multi)

	output := out.String()
	assert.Contains(t, output, "InjectionIO")
	assert.Contains(t, output, "Location: /p/User.h")
	assert.Contains(t, output, "Operation: write")
	assert.Contains(t, output, "1. Free some space")
	assert.Contains(t, output, "Error chain:")
	assert.Contains(t, output, "disk full")
	assert.Contains(t, output, "FieldExtractionEmpty")
	assert.Contains(t, output, "Location: /p/Empty.h:4")

	out.Reset()
	reporter.ReportWarning("careful")
	assert.Contains(t, out.String(), "! careful")
}
