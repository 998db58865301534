package injector

import (
	"strings"

	"github.com/toyz/serialgen/internal/models"
)

// ClassIncludes returns the headers a generated class block depends on
func ClassIncludes(fields []models.FieldDescriptor) []string {
	for _, field := range fields {
		if field.Info().Optional {
			return []string{"<optional>"}
		}
	}
	return nil
}

// EnumIncludes returns the headers a generated enum block depends on
func EnumIncludes() []string {
	return []string{"<SerializationUtility.h>", "<algorithm>", "<cctype>"}
}

// HasInclude reports whether the header is already referenced as <x> or "x"
func HasInclude(lines []string, include string) bool {
	bare := strings.Trim(include, `<>"`)
	angled, quoted := "<"+bare+">", `"`+bare+`"`
	for _, line := range lines {
		if strings.Contains(line, angled) || strings.Contains(line, quoted) {
			return true
		}
	}
	return false
}

// EnsureIncludes adds each missing include after the last #include line. Without one it
// goes after the include guard define, then after #pragma once, then at the top.
// The second result is the number of lines inserted.
func EnsureIncludes(lines []string, includes ...string) ([]string, int) {
	added := 0
	for _, include := range includes {
		if HasInclude(lines, include) {
			continue
		}
		at := includePosition(lines)
		lines = insertLines(lines, at, []string{"#include " + include})
		added++
	}
	return lines, added
}

func includePosition(lines []string) int {
	lastInclude := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#include") {
			lastInclude = i
		}
	}
	if lastInclude >= 0 {
		return lastInclude + 1
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#define") && strings.Contains(trimmed, "_H") {
			return i + 1
		}
	}

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#pragma once") {
			return i + 1
		}
	}

	return 0
}
