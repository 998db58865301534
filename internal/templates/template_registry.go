package templates

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/toyz/serialgen/internal/errors"
)

// Template names
const (
	ClassMethodsTemplate = "class-methods"
	EnumCodecTemplate    = "enum-codec"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
	parsed    map[string]*template.Template
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
		parsed:    make(map[string]*template.Template),
	}

	registry.registerClassTemplates()
	registry.registerEnumTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	text, exists := tr.templates[name]
	return text, exists
}

// Execute renders a registered template with data. Parsed templates are reused.
func (tr *TemplateRegistry) Execute(name string, data interface{}) (string, error) {
	tmpl, ok := tr.parsed[name]
	if !ok {
		text, exists := tr.Get(name)
		if !exists {
			return "", errors.WrapTemplateError(name, "find", errors.New(errors.TemplateErrorCode, "template not registered"))
		}

		var err error
		tmpl, err = template.New(name).Funcs(funcMap).Option("missingkey=error").Parse(text)
		if err != nil {
			return "", errors.WrapTemplateError(name, "parse", err)
		}
		tr.parsed[name] = tmpl
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}

var funcMap = template.FuncMap{
	"lower": strings.ToLower,
}

// Every action sits at the start of its own line and trims the newline before it.
// A blank line in front of an action is written as {{- "\n"}}.

// registerClassTemplates registers the serialize/validate/deserialize methods of a class
func (tr *TemplateRegistry) registerClassTemplates() {
	tr.templates[ClassMethodsTemplate] = `// Serialization method
Public StdString Serialize() const {
    // Create JSON document
    JsonDocument doc;
{{- "\n"}}
{{- if not .Serialized}}
    // No optional fields to serialize
{{- end}}
{{- range .Serialized}}
    // Serialize optional field: {{.Name}}
    if ({{.Name}}.has_value()) {
{{- if .IsString}}
        doc["{{.Name}}"] = {{.Name}}.value().c_str();
{{- else if .IsPrimitive}}
        doc["{{.Name}}"] = {{.Name}}.value();
{{- else}}
        // Serialize nested object or enum: {{.Name}}
        // SerializeValue returns a bare string for enums and a JSON object string for classes
        StdString {{.Name}}_json = nayan::serializer::SerializeValue({{.Name}}.value());
        JsonDocument {{.Name}}_doc;
        DeserializationError {{.Name}}_error = deserializeJson({{.Name}}_doc, {{.Name}}_json.c_str());
        if ({{.Name}}_error == DeserializationError::Ok && {{.Name}}_doc.is<JsonObject>()) {
            doc["{{.Name}}"] = {{.Name}}_doc.as<JsonObject>();
        } else {
            doc["{{.Name}}"] = {{.Name}}_json.c_str();
        }
{{- end}}
    } else {
        doc["{{.Name}}"] = nullptr;
    }
{{- end}}
{{- "\n"}}
    // Serialize to string
    StdString output;
    serializeJson(doc, output);

    return StdString(output.c_str());
}

// Validation method for all validation macros
#pragma GCC diagnostic push
#pragma GCC diagnostic ignored "-Wunused-parameter"
Public template<typename DocType>
Static StdString ValidateFields(DocType& doc) {
    StdString validationErrors;
{{- "\n"}}
{{- if not .Validations}}
    // No validation macros defined for this class
{{- end}}
{{- range .Validations}}
{{- if .NestedType}}
    // First validate nested object: {{.Field}}
    if (!doc["{{.Field}}"].isNull()) {
        JsonObject {{.Field}}_obj = doc["{{.Field}}"].template as<JsonObject>();
        JsonDocument {{.Field}}_doc;
        {{.Field}}_doc.set({{.Field}}_obj);
        StdString {{.Field}}_nested_errors = {{.NestedType}}::ValidateFields({{.Field}}_doc);
        if (!{{.Field}}_nested_errors.empty()) {
            if (!validationErrors.empty()) validationErrors += ",\n";
            validationErrors += "Validation errors in nested object '{{.Field}}': ";
            validationErrors += {{.Field}}_nested_errors;
        }
    }
{{- "\n"}}
{{- end}}
    // Validate {{.Rule}} field: {{.Field}}
    {{.Function}}(doc, "{{.Field}}", validationErrors);
{{- end}}
{{- "\n"}}
    return validationErrors;
}
#pragma GCC diagnostic pop

// Deserialization method
Public Static {{.Name}} Deserialize(const StdString& input) {
    // Create JSON document
    JsonDocument doc;

    // Deserialize JSON string
    DeserializationError error = deserializeJson(doc, input.c_str());

    if (error) {
        StdString errorMsg = "JSON parse error: ";
        errorMsg += error.c_str();
        throw std::runtime_error(errorMsg.c_str());
    }

    // Validate all fields with validation macros
    StdString validationErrors = ValidateFields(doc);
    if (!validationErrors.empty()) {
        throw std::runtime_error(validationErrors.c_str());
    }

    // Create object with default constructor
    {{.Name}} obj;

    // Assign values from JSON if present
{{- if not .Deserialized}}
    // No optional fields to deserialize
{{- end}}
{{- range .Deserialized}}
{{- if .Validated}}
    // Deserialize {{.ValidationDesc}} field: {{.Name}} (already validated)
{{- if .IsString}}
    obj.{{.Name}} = StdString(doc["{{.Name}}"].as<const char*>());
{{- else if .IsPrimitive}}
    obj.{{.Name}} = doc["{{.Name}}"].as<{{.Conversion}}>();
{{- else}}
    // Deserialize nested object or enum: {{.Name}}
    StdString {{.Name}}_json;
    serializeJson(doc["{{.Name}}"], {{.Name}}_json);
    obj.{{.Name}} = nayan::serializer::DeserializeValue<{{.Inner}}>({{.Name}}_json);
{{- end}}
{{- else}}
    // Deserialize optional field: {{.Name}}
    if (!doc["{{.Name}}"].isNull()) {
{{- if .IsString}}
        obj.{{.Name}} = StdString(doc["{{.Name}}"].as<const char*>());
{{- else if .IsPrimitive}}
        obj.{{.Name}} = doc["{{.Name}}"].as<{{.Conversion}}>();
{{- else}}
        // Deserialize nested object or enum: {{.Name}}
        StdString {{.Name}}_json;
        serializeJson(doc["{{.Name}}"], {{.Name}}_json);
        obj.{{.Name}} = nayan::serializer::DeserializeValue<{{.Inner}}>({{.Name}}_json);
{{- end}}
    }
{{- end}}
{{- end}}
{{- "\n"}}
    return obj;
}`
}

// registerEnumTemplates registers the enum string conversion specializations
func (tr *TemplateRegistry) registerEnumTemplates() {
	tr.templates[EnumCodecTemplate] = `namespace nayan {
namespace serializer {

    /**
     * Serialize {{.Name}} enum to JSON string
     */
    template<>
    inline StdString SerializationUtility::Serialize<{{.Name}}>(const {{.Name}}& value) {
        // Convert enum to string representation
        StdString enumStr;
        switch (value) {
{{- range .Values}}
            case {{$.Name}}::{{.}}:
                enumStr = "{{.}}";
                break;
{{- end}}
            default:
                enumStr = "UNKNOWN";
                break;
        }

        // Return enum as string (ArduinoJson will quote it when adding to JSON)
        return enumStr;
    }

    /**
     * Deserialize JSON string to {{.Name}} enum
     */
    template<>
    inline {{.Name}} SerializationUtility::Deserialize<{{.Name}}>(const StdString& input) {
        // Remove quotes if present
        StdString cleaned = input;
        if (cleaned.length() >= 2 && cleaned.front() == '\"' && cleaned.back() == '\"') {
            cleaned = cleaned.substr(1, cleaned.length() - 2);
        }

        // Try to parse as JSON first (handles quoted strings)
        JsonDocument doc;
        DeserializationError error = deserializeJson(doc, input.c_str());
        if (error == DeserializationError::Ok && doc.is<const char*>()) {
            cleaned = StdString(doc.as<const char*>());
        }

        // Case-insensitive comparison
        StdString lower = cleaned;
        std::transform(lower.begin(), lower.end(), lower.begin(), ::tolower);
{{- "\n"}}
{{- range .Values}}
        if (lower == "{{lower .}}" || cleaned == "{{.}}") {
            return {{$.Name}}::{{.}};
        }
{{- end}}
{{- "\n"}}
        // Default or unknown value
        return {{.Name}}::{{.Default}};
    }

} // namespace serializer
} // namespace nayan`
}
