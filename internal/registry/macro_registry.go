package registry

import (
	"strings"

	"github.com/toyz/serialgen/internal/models"
	"github.com/toyz/serialgen/internal/utils"
)

// stringOnlyKeywords mark validation functions that only apply to string fields
var stringOnlyKeywords = []string{"NotBlank", "NotEmpty", "String"}

// Override records a rule defined more than once; the later definition wins
type Override struct {
	Previous models.ValidationMacro
	Current  models.ValidationMacro
}

// MacroRegistry maps validation rule names to the functions that implement them.
// Rules keep the position of their first definition.
type MacroRegistry struct {
	rules     *utils.Registry[string, models.ValidationMacro]
	overrides []Override
}

// NewMacroRegistry creates an empty registry
func NewMacroRegistry() *MacroRegistry {
	return &MacroRegistry{
		rules: utils.NewRegistry[string, models.ValidationMacro](),
	}
}

// Register adds a macro definition, recording an override when the rule already exists
func (r *MacroRegistry) Register(macro models.ValidationMacro) {
	if previous, replaced := r.rules.Register(macro.Rule, macro); replaced {
		r.overrides = append(r.overrides, Override{Previous: previous, Current: macro})
	}
}

// Lookup returns the macro for a rule
func (r *MacroRegistry) Lookup(rule string) (models.ValidationMacro, bool) {
	return r.rules.Get(rule)
}

// Rules returns rule names in first-seen order
func (r *MacroRegistry) Rules() []string {
	return r.rules.List()
}

// Macros returns the effective macro of every rule in rule order
func (r *MacroRegistry) Macros() []models.ValidationMacro {
	return r.rules.Values()
}

// Len returns the number of distinct rules
func (r *MacroRegistry) Len() int {
	return r.rules.Size()
}

// Overrides returns duplicate definitions in discovery order
func (r *MacroRegistry) Overrides() []Override {
	return r.overrides
}

// IsStringOnly reports whether a validation function only applies to string fields
func IsStringOnly(function string) bool {
	for _, keyword := range stringOnlyKeywords {
		if strings.Contains(function, keyword) {
			return true
		}
	}
	return false
}
