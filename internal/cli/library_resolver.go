package cli

import (
	"path/filepath"
	"strings"

	"github.com/toyz/serialgen/internal/utils/fileops"
)

// LibraryResolver finds third-party library sources fetched into a project
type LibraryResolver struct {
	fileOps *fileops.FileOps
}

// NewLibraryResolver creates a library resolver
func NewLibraryResolver(ops *fileops.FileOps) *LibraryResolver {
	if ops == nil {
		ops = fileops.NewFileOps()
	}
	return &LibraryResolver{fileOps: ops}
}

// Discover returns library roots below projectDir, deduplicated by absolute path:
//   - build/_deps/<name>-src (CMake FetchContent)
//   - build/_deps/<name> with a src/ child
//   - .pio/libdeps/<env>/<lib> with a src/ child (PlatformIO)
func (r *LibraryResolver) Discover(projectDir string) []string {
	if projectDir == "" {
		return nil
	}

	var libraries []string
	seen := make(map[string]bool)
	add := func(dir string) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		if !seen[abs] {
			seen[abs] = true
			libraries = append(libraries, abs)
		}
	}

	deps := filepath.Join(projectDir, "build", "_deps")
	for _, name := range r.subdirs(deps) {
		if strings.HasPrefix(name, ".") {
			continue
		}
		libDir := filepath.Join(deps, name)
		if strings.HasSuffix(name, "-src") || r.fileOps.IsDir(filepath.Join(libDir, "src")) {
			add(libDir)
		}
	}

	libdeps := filepath.Join(projectDir, ".pio", "libdeps")
	for _, env := range r.subdirs(libdeps) {
		envDir := filepath.Join(libdeps, env)
		for _, lib := range r.subdirs(envDir) {
			libDir := filepath.Join(envDir, lib)
			if r.fileOps.IsDir(filepath.Join(libDir, "src")) {
				add(libDir)
			}
		}
	}

	return libraries
}

func (r *LibraryResolver) subdirs(dir string) []string {
	if !r.fileOps.IsDir(dir) {
		return nil
	}
	entries, err := r.fileOps.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}
