// Package generator turns extracted declarations into the C++ method and specialization
// blocks that get injected back into headers.
package generator

import (
	"strings"

	"github.com/toyz/serialgen/internal/errors"
	"github.com/toyz/serialgen/internal/models"
	"github.com/toyz/serialgen/internal/templates"
)

// DefaultValidationNamespace is prefixed to validation functions outside the root namespace
const DefaultValidationNamespace = "nayan::validation::"

// Options controls how generated code refers to validation functions
type Options struct {
	ValidationNamespace string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{ValidationNamespace: DefaultValidationNamespace}
}

// Generator renders class and enum blocks from the template registry
type Generator struct {
	templates *templates.TemplateRegistry
	opts      Options
}

// NewGenerator creates a generator with its own template registry
func NewGenerator(opts Options) *Generator {
	if opts.ValidationNamespace == "" {
		opts.ValidationNamespace = DefaultValidationNamespace
	}
	return &Generator{
		templates: templates.NewTemplateRegistry(),
		opts:      opts,
	}
}

// GenerateClass renders Serialize, ValidateFields and Deserialize for a class
func GenerateClass(name string, fields []models.FieldDescriptor, bindings *models.BindingSet, opts Options) (string, error) {
	return NewGenerator(opts).GenerateClass(name, fields, bindings)
}

// GenerateEnum renders the string conversion specializations for an enum
func GenerateEnum(name string, values []string) (string, error) {
	return NewGenerator(DefaultOptions()).GenerateEnum(name, values)
}

// GenerateClass renders the method block for one class
func (g *Generator) GenerateClass(name string, fields []models.FieldDescriptor, bindings *models.BindingSet) (string, error) {
	data := BuildClassData(name, fields, bindings, g.opts)

	code, err := g.templates.Execute(templates.ClassMethodsTemplate, data)
	if err != nil {
		return "", errors.WrapGenerateError("class", name, err)
	}
	return code, nil
}

// GenerateEnum renders the specialization block for one enum
func (g *Generator) GenerateEnum(name string, values []string) (string, error) {
	if len(values) == 0 {
		return "", errors.NewEmptyEnumError(name, errors.SourceLocation{})
	}

	code, err := g.templates.Execute(templates.EnumCodecTemplate, BuildEnumData(name, values))
	if err != nil {
		return "", errors.WrapGenerateError("enum", name, err)
	}
	return code, nil
}

// BuildClassData prepares the template view of a class.
// Serialize covers optional fields only. Deserialize also covers validated fields,
// which are assigned without a presence check because validation already ran.
func BuildClassData(name string, fields []models.FieldDescriptor, bindings *models.BindingSet, opts Options) templates.ClassData {
	if bindings == nil {
		bindings = models.NewBindingSet()
	}
	namespace := opts.ValidationNamespace
	if namespace == "" {
		namespace = DefaultValidationNamespace
	}

	data := templates.ClassData{Name: name}

	for _, field := range fields {
		info := field.Info()
		rules := bindings.RulesFor(field.Name)
		view := fieldData(field, info, rules)

		if info.Optional {
			data.Serialized = append(data.Serialized, view)
		}
		if info.Optional || view.Validated {
			data.Deserialized = append(data.Deserialized, view)
		}
	}

	for _, binding := range bindings.All() {
		validation := templates.ValidationData{
			Rule:     binding.Rule,
			Field:    binding.Field.Name,
			Function: templates.QualifyFunction(binding.Function, namespace),
		}
		if info := binding.Field.Info(); info.Class == models.TypeNested {
			validation.NestedType = info.Inner
		}
		data.Validations = append(data.Validations, validation)
	}

	return data
}

func fieldData(field models.FieldDescriptor, info models.TypeInfo, rules []string) templates.FieldData {
	return templates.FieldData{
		Name:           field.Name,
		Inner:          info.Inner,
		Conversion:     info.Conversion(),
		IsString:       info.Class == models.TypeString,
		IsPrimitive:    info.Class == models.TypePrimitive,
		Validated:      len(rules) > 0,
		ValidationDesc: strings.Join(rules, "+"),
	}
}

// BuildEnumData prepares the template view of an enum. Unknown input falls back to the
// first declared value.
func BuildEnumData(name string, values []string) templates.EnumData {
	data := templates.EnumData{
		Name:    name,
		Values:  values,
		Default: "UNKNOWN",
	}
	if len(values) > 0 {
		data.Default = values[0]
	}
	return data
}
