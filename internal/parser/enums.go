package parser

import (
	"regexp"
	"strings"

	"github.com/toyz/serialgen/internal/models"
)

var enumItemName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)

// tokens that can leak into an enum body from preprocessor lines and are never values
var enumDenylist = map[string]bool{
	"if":      true,
	"endif":   true,
	"define":  true,
	"include": true,
	"pragma":  true,
}

// ExtractEnum returns the enumerator names declared inside an enum boundary, deduplicated in order
func ExtractEnum(lines []string, boundary models.Boundary, name string) models.EnumDescriptor {
	descriptor := models.EnumDescriptor{Name: name}

	region := boundary.Slice(lines)
	if region == nil {
		return descriptor
	}

	var kept []string
	for _, line := range region {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}

	body, ok := braceBody(stripComments(strings.Join(kept, "\n")))
	if !ok {
		return descriptor
	}

	seen := make(map[string]bool)
	for _, item := range splitTopLevel(body) {
		item = strings.TrimSpace(item)
		if eq := strings.Index(item, "="); eq >= 0 {
			item = strings.TrimSpace(item[:eq])
		}

		value := enumItemName.FindString(item)
		if value == "" || value == name || enumDenylist[value] || seen[value] {
			continue
		}
		seen[value] = true
		descriptor.Values = append(descriptor.Values, value)
	}

	return descriptor
}

// stripComments removes line and block comments
func stripComments(text string) string {
	var out strings.Builder
	inBlock := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inBlock {
			if c == '*' && i+1 < len(text) && text[i+1] == '/' {
				inBlock = false
				i++
			} else if c == '\n' {
				out.WriteByte(c)
			}
			continue
		}

		if c == '/' && i+1 < len(text) {
			switch text[i+1] {
			case '/':
				for i < len(text) && text[i] != '\n' {
					i++
				}
				if i < len(text) {
					out.WriteByte('\n')
				}
				continue
			case '*':
				inBlock = true
				i++
				continue
			}
		}
		out.WriteByte(c)
	}

	return out.String()
}

// braceBody returns the text between the first '{' and its matching '}'
func braceBody(text string) (string, bool) {
	open := strings.Index(text, "{")
	if open < 0 {
		return "", false
	}

	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[open+1 : i], true
			}
		}
	}
	return "", false
}

// splitTopLevel splits on commas that are not nested in parentheses or braces
func splitTopLevel(body string) []string {
	var parts []string
	depth := 0
	start := 0

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, body[start:])
}
