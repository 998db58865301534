package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/serialgen/internal/errors"
	"github.com/toyz/serialgen/internal/models"
	"github.com/toyz/serialgen/internal/utils"
)

const demoProject = `-- CMakeLists.txt --
project(demo)
-- src/validation/Macros.h --
#pragma once
#define NotNull /* Validation Function -> ValidateNotNull */
#define NotBlank /* Validation Function -> ValidateNotBlank */
-- src/models/User.h --
#ifndef USER_H
#define USER_H

#include <StandardDefines.h>

/* @Serializable */
class User {
public:
    /* @NotNull */
    /* @NotBlank */
    optional<StdString> name;
    optional<int> age;
    optional<Address> address;
};

#endif // USER_H
-- src/models/Color.h --
#ifndef COLOR_H
#define COLOR_H

/* @Serializable */
enum class Color {
    RED,
    GREEN = 2,
};

#endif // COLOR_H
`

func newTestProcessor(t *testing.T, dir string, mutate func(*Config)) (*Processor, *bytes.Buffer) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ProjectDir = dir
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticDebug)
	diagnostics.SetOutput(&out, &out)
	return NewProcessor(&cfg, diagnostics), &out
}

func scanProject(t *testing.T, dir string) []string {
	t.Helper()
	files, err := NewHeaderScanner().Scan([]string{dir}, []string{".h"}, nil)
	require.NoError(t, err)
	return files
}

func TestProcessorRun(t *testing.T) {
	dir := writeArchive(t, demoProject)
	processor, _ := newTestProcessor(t, dir, nil)

	result, err := processor.Run(context.Background(), scanProject(t, dir))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Files)
	assert.Equal(t, 2, result.Rules)
	assert.Equal(t, 2, result.Processed)
	assert.Zero(t, result.Skipped)
	assert.Zero(t, result.Failed)
	assert.True(t, result.Errors.IsEmpty())
	assert.Equal(t, []string{
		filepath.Join(dir, "src", "models", "Color.h"),
		filepath.Join(dir, "src", "models", "User.h"),
	}, result.FilesChanged)

	user := readFile(t, filepath.Join(dir, "src", "models", "User.h"))
	assert.Contains(t, user, "/*--@Serializable--*/\nclass User {")
	assert.Contains(t, user, "#include <StandardDefines.h>\n#include <optional>\n")
	assert.Contains(t, user, "    optional<Address> address;\n\n    // Serialization method\n    Public StdString Serialize() const {\n")
	assert.Contains(t, user, `        nayan::validation::ValidateNotNull(doc, "name", validationErrors);`)
	assert.Contains(t, user, `        nayan::validation::ValidateNotBlank(doc, "name", validationErrors);`)
	assert.Contains(t, user, "        // Deserialize NotNull+NotBlank field: name (already validated)\n")
	assert.Contains(t, user, "    /* @NotNull */\n", "rule markers are left as written")
	assert.True(t, strings.HasSuffix(user, "    }\n};\n\n#endif // USER_H\n"))

	color := readFile(t, filepath.Join(dir, "src", "models", "Color.h"))
	assert.Contains(t, color, "#define COLOR_H\n#include <SerializationUtility.h>\n#include <algorithm>\n#include <cctype>\n")
	assert.Contains(t, color, "/*--@Serializable--*/\nenum class Color {")
	assert.Contains(t, color, "case Color::GREEN:")
	assert.True(t, strings.HasSuffix(color, "} // namespace nayan\n#endif // COLOR_H\n"))

	macros := readFile(t, filepath.Join(dir, "src", "validation", "Macros.h"))
	assert.NotContains(t, macros, "#include")
}

func TestProcessorRunIsIdempotent(t *testing.T) {
	dir := writeArchive(t, demoProject)
	files := scanProject(t, dir)

	first, _ := newTestProcessor(t, dir, nil)
	_, err := first.Run(context.Background(), files)
	require.NoError(t, err)

	before := map[string]string{}
	for _, file := range files {
		before[file] = readFile(t, file)
	}

	second, _ := newTestProcessor(t, dir, nil)
	result, err := second.Run(context.Background(), files)
	require.NoError(t, err)

	assert.Zero(t, result.Processed)
	assert.Empty(t, result.Outcomes)
	assert.Empty(t, result.FilesChanged)
	for _, file := range files {
		assert.Equal(t, before[file], readFile(t, file), file)
	}
}

func TestProcessorDryRun(t *testing.T) {
	dir := writeArchive(t, demoProject)
	files := scanProject(t, dir)
	userPath := filepath.Join(dir, "src", "models", "User.h")
	original := readFile(t, userPath)

	processor, out := newTestProcessor(t, dir, func(c *Config) { c.DryRun = true })
	result, err := processor.Run(context.Background(), files)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Processed)
	assert.Len(t, result.FilesChanged, 2)
	assert.Equal(t, original, readFile(t, userPath))
	assert.Contains(t, out.String(), "Would write")
	assert.Contains(t, out.String(), "Generated for User")
}

func TestProcessorAlreadyPresent(t *testing.T) {
	dir := writeArchive(t, `-- Point.h --
#pragma once
/* @Serializable */
struct Point {
    optional<int> x;
    Public StdString Serialize() const { return ""; }
    Public Static Point Deserialize(const StdString& input) { return Point(); }
};
`)
	processor, _ := newTestProcessor(t, dir, nil)

	result, err := processor.Run(context.Background(), []string{filepath.Join(dir, "Point.h")})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.AlreadyPresent)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, models.OutcomeAlreadyPresent, result.Outcomes[0].Outcome)

	content := readFile(t, filepath.Join(dir, "Point.h"))
	assert.Contains(t, content, "/*--@Serializable--*/")
	assert.Equal(t, 1, strings.Count(content, "Serialize()"))
	assert.NotContains(t, content, "#include <optional>")
}

func TestProcessorSkipsAndContinues(t *testing.T) {
	dir := writeArchive(t, `-- Mixed.h --
#ifndef MIXED_H
#define MIXED_H

/* @Serializable */
class Empty {
public:
    void run();
};

/* @Serializable */
enum Nothing {};

/* @Serializable */
class Good {
    optional<int> value;
};

#endif
`)
	processor, out := newTestProcessor(t, dir, nil)

	result, err := processor.Run(context.Background(), []string{filepath.Join(dir, "Mixed.h")})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 2, result.Skipped)
	assert.True(t, result.Errors.HasCode(errors.FieldExtractionEmptyCode))
	assert.Contains(t, out.String(), "skipped")

	content := readFile(t, filepath.Join(dir, "Mixed.h"))
	assert.Contains(t, content, "/* @Serializable */\nclass Empty {")
	assert.Contains(t, content, "/* @Serializable */\nenum Nothing {};")
	assert.Contains(t, content, "/*--@Serializable--*/\nclass Good {")

	for _, e := range result.Errors.ByCode(errors.FieldExtractionEmptyCode) {
		assert.Equal(t, filepath.Join(dir, "Mixed.h"), e.Location().File)
	}
}

// A class written on one line has no member lines at depth 1, so nothing is extracted.
func TestProcessorSingleLineClassIsSkipped(t *testing.T) {
	dir := writeArchive(t, `-- One.h --
#pragma once
/* @Serializable */
class Point { public: optional<int> x; optional<int> y; };
`)
	path := filepath.Join(dir, "One.h")
	before := readFile(t, path)
	processor, _ := newTestProcessor(t, dir, nil)

	result, err := processor.Run(context.Background(), []string{path})
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 1)
	outcome := result.Outcomes[0]
	assert.Equal(t, "Point", outcome.Name)
	assert.Equal(t, models.OutcomeSkipped, outcome.Outcome)
	assert.Equal(t, "no fields", outcome.Detail)
	assert.Zero(t, result.Failed)
	assert.True(t, result.Errors.HasCode(errors.FieldExtractionEmptyCode))

	assert.Empty(t, result.FilesChanged)
	assert.Equal(t, before, readFile(t, path))
}

func TestProcessorEntityAnnotation(t *testing.T) {
	dir := writeArchive(t, `-- Order.h --
#pragma once
/* @Entity */
class Order {
    optional<int> id;
};
/* @Serializable */
class Ignored {
    optional<int> id;
};
`)
	processor, _ := newTestProcessor(t, dir, func(c *Config) { c.ClassAnnotation = "_Entity" })

	result, err := processor.Run(context.Background(), []string{filepath.Join(dir, "Order.h")})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, "Order", result.Outcomes[0].Name)

	content := readFile(t, filepath.Join(dir, "Order.h"))
	assert.Contains(t, content, "/*--@Entity--*/")
	assert.Contains(t, content, "/* @Serializable */\nclass Ignored {")
}

func TestProcessorEnumWithoutGuardFails(t *testing.T) {
	dir := writeArchive(t, `-- Flag.h --
#pragma once
/* @Serializable */
enum class Flag { ON, OFF };
`)
	processor, _ := newTestProcessor(t, dir, nil)

	result, err := processor.Run(context.Background(), []string{filepath.Join(dir, "Flag.h")})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Empty(t, result.FilesChanged)
	assert.True(t, result.Errors.HasCode(errors.GenerationErrorCode))
}

func TestProcessorMissingFile(t *testing.T) {
	dir := t.TempDir()
	processor, _ := newTestProcessor(t, dir, nil)

	result, err := processor.Run(context.Background(), []string{filepath.Join(dir, "gone.h")})
	require.NoError(t, err)
	assert.True(t, result.Errors.HasCode(errors.MacroDiscoveryIOCode))
	assert.True(t, result.Errors.HasCode(errors.InjectionIOCode))
}

func TestProcessorEmptyFileSet(t *testing.T) {
	processor, _ := newTestProcessor(t, t.TempDir(), nil)
	_, err := processor.Run(context.Background(), nil)
	require.Error(t, err)
}

func TestProcessorCancelled(t *testing.T) {
	dir := writeArchive(t, demoProject)
	processor, _ := newTestProcessor(t, dir, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := processor.Run(ctx, scanProject(t, dir))
	assert.ErrorIs(t, err, context.Canceled)
}
