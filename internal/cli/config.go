package cli

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/toyz/serialgen/internal/errors"
	"github.com/toyz/serialgen/internal/generator"
	"github.com/toyz/serialgen/internal/registry"
	"github.com/toyz/serialgen/internal/utils"
)

// ConfigFileName is the project configuration file looked up in the project root
const ConfigFileName = ".serialgen.yaml"

// Environment variables read by LoadConfig
const (
	EnvSerializableMacro = "SERIALIZABLE_MACRO"
	EnvProjectDir        = "PROJECT_DIR"
	EnvCMakeProjectDir   = "CMAKE_PROJECT_DIR"
)

// Config holds the configuration for a processing run
type Config struct {
	// ProjectDir is the project root. Library roots are discovered below it.
	ProjectDir string `yaml:"-"`

	// Roots are the directories scanned for headers. Empty means the project root.
	// A trailing "/..." is accepted and ignored since scanning is always recursive.
	Roots []string `yaml:"roots"`

	// Extensions selects header files
	Extensions []string `yaml:"extensions"`

	// ClassAnnotation is Serializable, Entity or _Entity
	ClassAnnotation string `yaml:"annotation"`

	// ValidationNamespace is prefixed to validation functions outside the root namespace
	ValidationNamespace string `yaml:"validation_namespace"`

	// IncludeLibraries adds CMake FetchContent and PlatformIO library sources to the file set
	IncludeLibraries bool `yaml:"include_libraries"`

	// Exclude holds glob patterns of project files to skip. Library files are never excluded.
	Exclude []string `yaml:"exclude"`

	// Workers bounds parallel reads during validation rule discovery
	Workers int `yaml:"workers"`

	DryRun  bool `yaml:"-"`
	Verbose bool `yaml:"-"`
	Quiet   bool `yaml:"-"`

	// Source is the config file that was loaded, if any
	Source string `yaml:"-"`
}

// LoadOptions says where configuration comes from
type LoadOptions struct {
	ConfigPath string              // explicit config file, wins over the project file
	ProjectDir string              // explicit project directory
	Getenv     func(string) string // defaults to os.Getenv
}

// DefaultConfig returns the configuration used when nothing else is set
func DefaultConfig() Config {
	return Config{
		Extensions:          []string{".h", ".hpp"},
		ClassAnnotation:     "Serializable",
		ValidationNamespace: generator.DefaultValidationNamespace,
		IncludeLibraries:    true,
		Workers:             registry.DefaultWorkers,
	}
}

// LoadConfig layers defaults, the project file and environment variables.
// Command-line flags are applied by the caller afterwards, then Validate runs.
func LoadConfig(opts LoadOptions) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := DefaultConfig()

	explicitDir := opts.ProjectDir
	if explicitDir == "" {
		explicitDir = getenv(EnvProjectDir)
	}
	if explicitDir == "" {
		explicitDir = getenv(EnvCMakeProjectDir)
	}

	projectDir, err := NewProjectResolver().Resolve(explicitDir)
	if err != nil {
		return nil, err
	}
	cfg.ProjectDir = projectDir

	configPath := opts.ConfigPath
	required := configPath != ""
	if configPath == "" {
		configPath = filepath.Join(projectDir, ConfigFileName)
	}
	if err := cfg.loadFile(configPath, required); err != nil {
		return nil, err
	}

	// roots from the file are relative to the project
	for i, root := range cfg.Roots {
		if !filepath.IsAbs(root) {
			cfg.Roots[i] = filepath.Join(projectDir, root)
		}
	}

	if macro := getenv(EnvSerializableMacro); macro != "" {
		cfg.ClassAnnotation = macro
	}

	return &cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.WrapConfigurationError(path, "read", err).
			WithSuggestion("Check the --config path or remove the flag to use " + ConfigFileName)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.WrapConfigurationError(path, "parse", err).
			WithLocation(errors.SourceLocation{File: path}).
			WithSuggestion("Keys are roots, extensions, annotation, validation_namespace, include_libraries, exclude and workers")
	}

	c.Source = path
	return nil
}

// Validate checks the final configuration
func (c *Config) Validate() error {
	checks := []struct {
		run  func() error
		hint string
	}{
		{
			run:  func() error { return utils.NotEmpty("project_dir")(c.ProjectDir) },
			hint: "Pass --project or set " + EnvProjectDir,
		},
		{
			run:  func() error { return utils.IsOneOf("annotation", "Serializable", "Entity", "_Entity")(c.ClassAnnotation) },
			hint: "Set annotation (or " + EnvSerializableMacro + ") to Serializable, Entity or _Entity",
		},
		{
			run: func() error {
				return utils.NewValidatorChain(
					utils.NotEmpty("validation_namespace"),
					utils.IsQualifiedName("validation_namespace"),
				).Validate(c.ValidationNamespace)
			},
			hint: "Use a namespace such as " + generator.DefaultValidationNamespace,
		},
		{
			run: func() error {
				return utils.NewValidatorChain(
					utils.SliceNotEmpty[string]("extensions"),
					utils.ValidateEach("extensions", utils.HasPrefix("extension", ".")),
				).Validate(c.Extensions)
			},
			hint: "Extensions start with a dot, e.g. .h",
		},
		{
			run:  func() error { return utils.InRange("workers", 1, 64)(c.Workers) },
			hint: "Pick a worker count between 1 and 64",
		},
	}

	for _, check := range checks {
		if err := check.run(); err != nil {
			return errors.WrapConfigurationError("serialgen", "validate", err).
				WithSuggestion(check.hint)
		}
	}

	if c.Verbose && c.Quiet {
		return errors.NewConfigurationError("--verbose and --quiet cannot be combined")
	}

	return nil
}

// ClassMarkerName is the marker name that selects classes. Both Entity spellings map to @Entity.
func (c *Config) ClassMarkerName() string {
	switch c.ClassAnnotation {
	case "Entity", "_Entity":
		return "Entity"
	default:
		return "Serializable"
	}
}

// DiagnosticLevel maps the verbosity flags to a diagnostic level
func (c *Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}
