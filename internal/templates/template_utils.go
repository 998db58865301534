package templates

import "strings"

// ClassData is the view model of the class methods template
type ClassData struct {
	Name         string
	Serialized   []FieldData      // optional fields, in declaration order
	Validations  []ValidationData // one entry per binding, in rule order
	Deserialized []FieldData      // optional or validated fields, in declaration order
}

// FieldData describes how one field is written to and read from the document
type FieldData struct {
	Name           string
	Inner          string // effective type after unwrapping optional
	Conversion     string // primitive read type
	IsString       bool
	IsPrimitive    bool
	Validated      bool
	ValidationDesc string // bound rules joined with "+"
}

// ValidationData is one validation call in the validate method
type ValidationData struct {
	Rule       string
	Field      string
	Function   string // namespace-qualified function
	NestedType string // set when the field holds a nested object validated first
}

// EnumData is the view model of the enum codec template
type EnumData struct {
	Name    string
	Values  []string
	Default string
}

// QualifyFunction prefixes a validation function with defaultNamespace unless it already
// lives under the root namespace (the first segment of defaultNamespace).
func QualifyFunction(function, defaultNamespace string) string {
	function = strings.TrimSpace(function)
	if defaultNamespace == "" {
		return function
	}
	if !strings.HasSuffix(defaultNamespace, "::") {
		defaultNamespace += "::"
	}

	root := defaultNamespace
	if idx := strings.Index(defaultNamespace, "::"); idx >= 0 {
		root = defaultNamespace[:idx+2]
	}

	if strings.HasPrefix(function, root) {
		return function
	}
	return defaultNamespace + function
}
