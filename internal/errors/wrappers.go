package errors

import "fmt"

// Domain error constructors shared by the processing stages.

// StructureError reports a declaration that could not be located after its marker
type StructureError struct {
	*BaseError
	Kind string // "class" or "enum"
	Name string // declared name the marker pointed at
}

// NewStructureNotFoundError creates an error for a marker whose declaration has no body
func NewStructureNotFoundError(kind, name string, loc SourceLocation) *StructureError {
	base := Newf(StructureNotFoundCode, "%s '%s' declaration not found", kind, name).
		WithLocation(loc).
		WithContext("kind", kind).
		WithContext("name", name).
		WithSuggestions(
			fmt.Sprintf("Make sure the %s '%s' has a braced body after the marker", kind, name),
			"Forward declarations are ignored when searching for the declaration",
		)
	return &StructureError{BaseError: base, Kind: kind, Name: name}
}

// NewFieldExtractionEmptyError creates an error for a class with no extractable fields
func NewFieldExtractionEmptyError(className string, loc SourceLocation) *StructureError {
	base := Newf(FieldExtractionEmptyCode, "no fields found in class '%s'", className).
		WithLocation(loc).
		WithContext("kind", "class").
		WithContext("name", className).
		WithSuggestions(
			"Fields must be declared at the top level of the class body",
			"Each field needs a type, a name and a terminating ';' or initializer",
		)
	return &StructureError{BaseError: base, Kind: "class", Name: className}
}

// NewEmptyEnumError creates an error for an enum whose body yields no values
func NewEmptyEnumError(enumName string, loc SourceLocation) *StructureError {
	base := Newf(FieldExtractionEmptyCode, "no values found in enum '%s'", enumName).
		WithLocation(loc).
		WithContext("kind", "enum").
		WithContext("name", enumName)
	return &StructureError{BaseError: base, Kind: "enum", Name: enumName}
}

// WrapMacroDiscoveryError wraps a read failure while scanning for validation macros
func WrapMacroDiscoveryError(path string, cause error) *BaseError {
	return Wrap(MacroDiscoveryIOCode, fmt.Sprintf("failed to scan '%s' for validation macros", path), cause).
		WithLocation(SourceLocation{File: path}).
		WithContext("path", path)
}

// WrapInjectionError wraps a failure to read or write a header being rewritten
func WrapInjectionError(operation, path string, cause error) *BaseError {
	return Wrap(InjectionIOCode, fmt.Sprintf("failed to %s header '%s'", operation, path), cause).
		WithLocation(SourceLocation{File: path}).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName).
		WithContext("stage", operation)
}

// WrapGenerateError wraps an error raised while generating methods for a declaration
func WrapGenerateError(kind, name string, cause error) *BaseError {
	return Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s '%s'", kind, name), cause).
		WithContext("kind", kind).
		WithContext("name", name)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// NewConfigurationError creates a configuration error without an underlying cause
func NewConfigurationError(message string) *BaseError {
	return New(ConfigurationErrorCode, message)
}
