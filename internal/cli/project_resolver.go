package cli

import (
	"os"
	"path/filepath"

	"github.com/toyz/serialgen/internal/errors"
)

// ProjectResolver locates the root of a C/C++ project
type ProjectResolver struct {
	markers []string
	getwd   func() (string, error)
}

// NewProjectResolver creates a resolver that recognises CMake, PlatformIO and serialgen roots
func NewProjectResolver() *ProjectResolver {
	return &ProjectResolver{
		markers: []string{"CMakeLists.txt", "platformio.ini", ConfigFileName},
		getwd:   os.Getwd,
	}
}

// Resolve returns the absolute project root. An explicit directory is used as given;
// otherwise the nearest ancestor of the working directory holding a project marker wins,
// falling back to the working directory itself.
func (r *ProjectResolver) Resolve(explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", errors.WrapConfigurationError("project", "resolve", err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return "", errors.Newf(errors.ConfigurationErrorCode, "project directory '%s' does not exist", abs).
				WithContext("project_dir", abs).
				WithSuggestion("Check --project, " + EnvProjectDir + " and " + EnvCMakeProjectDir)
		}
		return abs, nil
	}

	cwd, err := r.getwd()
	if err != nil {
		return "", errors.WrapConfigurationError("project", "resolve", err)
	}

	if root, ok := r.FindRoot(cwd); ok {
		return root, nil
	}
	return cwd, nil
}

// FindRoot walks up from start to the first directory containing a project marker
func (r *ProjectResolver) FindRoot(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for {
		for _, marker := range r.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
