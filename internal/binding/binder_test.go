package binding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/serialgen/internal/models"
	"github.com/toyz/serialgen/internal/parser"
	"github.com/toyz/serialgen/internal/registry"
)

func testRegistry() *registry.MacroRegistry {
	reg := registry.NewMacroRegistry()
	reg.Register(models.ValidationMacro{Rule: "NotNull", Function: "ValidationUtility::ValidateNotNull"})
	reg.Register(models.ValidationMacro{Rule: "NotBlank", Function: "ValidationUtility::ValidateNotBlank"})
	return reg
}

func bindSource(t *testing.T, source string, reg *registry.MacroRegistry) *models.BindingSet {
	t.Helper()
	lines := strings.Split(source, "\n")
	boundary, err := parser.Locate(lines, parser.DeclClass, "User")
	require.NoError(t, err)
	return Bind(lines, boundary, reg)
}

func TestBindGroupsByRuleOrder(t *testing.T) {
	set := bindSource(t, `class User {
public:
    /* @NotBlank */
    /* @NotNull */
    optional<StdString> name;
    /* @NotNull */
    optional<int> age;
    optional<int> free;
};`, testRegistry())

	assert.Equal(t, []string{"NotNull", "NotBlank"}, set.Rules())
	assert.Equal(t, []string{"name", "age"}, boundFields(set, "NotNull"))
	assert.Equal(t, []string{"name"}, boundFields(set, "NotBlank"))
	assert.Equal(t, []string{"NotNull", "NotBlank"}, set.RulesFor("name"))
	assert.Empty(t, set.RulesFor("free"))
	assert.Equal(t, "ValidationUtility::ValidateNotNull", set.All()[0].Function)
}

func TestBindStringOnlyDropsNonStrings(t *testing.T) {
	set := bindSource(t, `class User {
    /* @NotBlank */
    optional<int> age;
    /* @NotBlank */
    std::string email;
};`, testRegistry())

	assert.Equal(t, []string{"email"}, boundFields(set, "NotBlank"))
	assert.Equal(t, 1, set.Len())
}

func TestBindIgnoresNestedAndUnknownMarkers(t *testing.T) {
	set := bindSource(t, `class User {
    struct Inner {
        /* @NotNull */
        optional<int> hidden;
    };
    /* @Unknown */
    optional<int> a;
    /*--@NotNull--*/
    optional<int> b;
};`, testRegistry())

	assert.Zero(t, set.Len())
}

func TestBindWithoutRegistry(t *testing.T) {
	set := bindSource(t, "class User {\n    /* @NotNull */\n    optional<int> id;\n};", nil)
	assert.Zero(t, set.Len())

	set = bindSource(t, "class User {\n    /* @NotNull */\n    optional<int> id;\n};", registry.NewMacroRegistry())
	assert.Zero(t, set.Len())
}

// boundFields lists the fields bound to rule, in binding order
func boundFields(set *models.BindingSet, rule string) []string {
	var names []string
	for _, b := range set.All() {
		if b.Rule == rule {
			names = append(names, b.Field.Name)
		}
	}
	return names
}
