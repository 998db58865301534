package models

import (
	"regexp"
	"strings"
)

// TypeClass is the serialization category of a field's effective type
type TypeClass int

const (
	TypeNested TypeClass = iota
	TypePrimitive
	TypeString
)

// String returns the string representation of the type class
func (c TypeClass) String() string {
	switch c {
	case TypePrimitive:
		return "primitive"
	case TypeString:
		return "string"
	default:
		return "nested"
	}
}

// TypeInfo is derived from a field type string
type TypeInfo struct {
	Optional bool      // wrapped in optional<> or std::optional<>
	Inner    string    // effective type after unwrapping one optional level
	Class    TypeClass // classification of Inner
}

// primitiveConversions maps primitive type tokens to the type used for document conversion
var primitiveConversions = map[string]string{
	"int": "int", "Int": "int", "CInt": "int",
	"long": "long", "Long": "long", "CLong": "long",
	"float": "float", "Float": "float", "CFloat": "float",
	"double": "double", "Double": "double", "CDouble": "double",
	"bool": "bool", "Bool": "bool", "CBool": "bool",
	"char": "char", "Char": "char", "CChar": "char",
	"unsigned": "unsigned int", "UInt": "unsigned int", "CUInt": "unsigned int",
	"short": "short", "Short": "short", "CShort": "short",
}

var stringMarkers = []string{"stdstring", "cstdstring", "std::string", "string"}

var (
	optionalPattern = regexp.MustCompile(`^(?:std::)?optional<(.+)>$`)
	identPattern    = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// IsOptionalType reports whether the type itself is optional<> or std::optional<>.
// An optional nested in another template, as in vector<optional<int>>, does not count.
func IsOptionalType(fieldType string) bool {
	return optionalPattern.MatchString(strings.TrimSpace(fieldType))
}

// UnwrapOptional returns the inner type of an optional<> type, or the type itself
func UnwrapOptional(fieldType string) string {
	trimmed := strings.TrimSpace(fieldType)
	if m := optionalPattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// valueType strips every optional level. It reports false for template types such as
// containers, which are never strings or primitives.
func valueType(fieldType string) (string, bool) {
	t := strings.TrimSpace(fieldType)
	for {
		inner := UnwrapOptional(t)
		if inner == t {
			break
		}
		t = inner
	}
	return t, !strings.Contains(t, "<")
}

// IsStringType reports whether the effective type is a string type
func IsStringType(fieldType string) bool {
	base, ok := valueType(fieldType)
	if !ok {
		return false
	}
	lower := strings.ToLower(base)
	for _, marker := range stringMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsPrimitiveType reports whether any identifier token of the effective type is a known primitive
func IsPrimitiveType(fieldType string) bool {
	base, ok := valueType(fieldType)
	if !ok {
		return false
	}
	for _, token := range identPattern.FindAllString(base, -1) {
		if _, ok := primitiveConversions[token]; ok {
			return true
		}
	}
	return false
}

// ClassifyType derives the optional wrapping and classification of a type string.
// String is checked before primitive so the result is always exactly one class.
func ClassifyType(fieldType string) TypeInfo {
	trimmed := strings.TrimSpace(fieldType)
	info := TypeInfo{Inner: trimmed}
	if m := optionalPattern.FindStringSubmatch(trimmed); m != nil {
		info.Optional = true
		info.Inner = strings.TrimSpace(m[1])
	}

	switch {
	case IsStringType(fieldType):
		info.Class = TypeString
	case IsPrimitiveType(fieldType):
		info.Class = TypePrimitive
	default:
		info.Class = TypeNested
	}

	return info
}

// Conversion returns the type used to read a primitive value out of a parsed document.
// Single-token primitives map through the conversion table, anything else is used verbatim.
func (t TypeInfo) Conversion() string {
	if conv, ok := primitiveConversions[t.Inner]; ok {
		return conv
	}
	return t.Inner
}
