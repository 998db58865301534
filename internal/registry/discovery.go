package registry

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/serialgen/internal/errors"
	"github.com/toyz/serialgen/internal/models"
)

// DefaultWorkers bounds concurrent file reads during discovery
const DefaultWorkers = 4

var macroPattern = regexp.MustCompile(`(?i)^[^/]*#define\s+(\w+)\s+/\*\s*Validation\s+Function\s*->\s*([^\*]+?)\s*\*/`)

// FileReader reads a file's content
type FileReader interface {
	ReadFile(path string) (string, error)
}

// Discoverer builds a MacroRegistry from validation macro definitions found in source files
type Discoverer struct {
	reader  FileReader
	workers int
}

// NewDiscoverer creates a discoverer reading through reader with at most workers concurrent reads
func NewDiscoverer(reader FileReader, workers int) *Discoverer {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Discoverer{reader: reader, workers: workers}
}

// Discover scans every file for macro definitions. Unreadable files are reported and skipped.
// Results are merged in file order so later definitions override earlier ones deterministically.
func (d *Discoverer) Discover(ctx context.Context, files []string) (*MacroRegistry, []error) {
	found := make([][]models.ValidationMacro, len(files))
	readErrs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			content, err := d.reader.ReadFile(path)
			if err != nil {
				readErrs[i] = errors.WrapMacroDiscoveryError(path, err)
				return nil
			}

			found[i] = ScanMacros(path, content)
			return nil
		})
	}

	var errs []error
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}

	registry := NewMacroRegistry()
	for i := range files {
		if readErrs[i] != nil {
			errs = append(errs, readErrs[i])
			continue
		}
		for _, macro := range found[i] {
			registry.Register(macro)
		}
	}

	return registry, errs
}

// ScanMacros returns the validation macro definitions in a file's content.
// Commented-out definitions are ignored.
func ScanMacros(path, content string) []models.ValidationMacro {
	var macros []models.ValidationMacro

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") {
			continue
		}

		define := strings.Index(line, "#define")
		if define < 0 {
			continue
		}
		if comment := strings.Index(line, "//"); comment >= 0 && comment < define {
			continue
		}

		m := macroPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		macros = append(macros, models.ValidationMacro{
			Rule:     m[1],
			Function: strings.TrimSpace(m[2]),
			Source:   path,
			Line:     i + 1,
		})
	}

	return macros
}
