// Package injector splices generated code into header line buffers. Every edit is guarded
// by a content check so running it twice leaves the buffer unchanged.
package injector

import (
	"strings"

	"github.com/toyz/serialgen/internal/models"
)

const defaultIndent = "    "

// HasClassMethods reports whether a class body already carries generated methods
func HasClassMethods(body []string) bool {
	text := strings.Join(body, "\n")
	return strings.Contains(text, "Serialize()") && strings.Contains(text, "Deserialize(")
}

// HasEnumCodec reports whether the file already specializes serialization for the enum
func HasEnumCodec(lines []string, enumName string) bool {
	needle := "Serialize<" + enumName + ">"
	for _, line := range lines {
		if strings.Contains(line, needle) {
			return true
		}
	}
	return false
}

// InjectClass inserts the method block before the closing line of the class. The block
// goes after the last line that is neither blank nor a comment, preceded by one blank
// line, and every non-blank line takes the indentation of the line it follows.
func InjectClass(lines []string, boundary models.Boundary, block string) ([]string, models.Outcome) {
	body := boundary.Slice(lines)
	if body == nil || boundary.Start == boundary.End {
		return lines, models.OutcomeFailed
	}
	if HasClassMethods(body) {
		return lines, models.OutcomeAlreadyPresent
	}

	closing := boundary.End - 1 // 0-indexed closing line
	insertAt := closing
	for i := closing - 1; i >= boundary.Start-1; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed != "" && !strings.HasPrefix(trimmed, "//") && !strings.HasPrefix(trimmed, "/*") {
			insertAt = i + 1
			break
		}
	}

	indent := defaultIndent
	if insertAt > 0 {
		if lead := leadingWhitespace(lines[insertAt-1]); lead != "" {
			indent = lead
		}
	}

	generated := []string{""}
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			generated = append(generated, "")
			continue
		}
		generated = append(generated, indent+line)
	}

	return insertLines(lines, insertAt, generated), models.OutcomeInjected
}

// InjectEnum inserts the specialization block before the last #endif of the file
func InjectEnum(lines []string, enumName, block string) ([]string, models.Outcome) {
	if HasEnumCodec(lines, enumName) {
		return lines, models.OutcomeAlreadyPresent
	}

	lastEndif := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#endif") {
			lastEndif = i
		}
	}
	if lastEndif < 0 {
		return lines, models.OutcomeFailed
	}

	generated := []string{""}
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			line = ""
		}
		generated = append(generated, line)
	}

	return insertLines(lines, lastEndif, generated), models.OutcomeInjected
}

func insertLines(lines []string, at int, inserted []string) []string {
	out := make([]string, 0, len(lines)+len(inserted))
	out = append(out, lines[:at]...)
	out = append(out, inserted...)
	out = append(out, lines[at:]...)
	return out
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
