package cli

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/serialgen/internal/utils"
)

// HeaderScanner collects the header files a run works on
type HeaderScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewHeaderScanner creates a new header scanner
func NewHeaderScanner() *HeaderScanner {
	return &HeaderScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// Scan walks every root and returns sorted absolute header paths, deduplicated across roots.
// Roots may end in "/..." as in Go package patterns. Missing roots are skipped.
func (s *HeaderScanner) Scan(roots, extensions, exclude []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, root := range roots {
		base, err := CleanRoot(root)
		if err != nil {
			return nil, err
		}

		found, err := s.fileProcessor.WalkFiles(base, utils.FileWalkOptions{
			FileFilter: utils.AllFileFilters(
				utils.HeaderFileFilter(extensions),
				utils.ExcludeFilter(base, exclude),
			),
			DirectoryFilter: utils.DefaultDirectoryFilter(),
			SkipErrors:      true,
		})
		if err != nil {
			return nil, err
		}

		for _, file := range found {
			if !seen[file] {
				seen[file] = true
				files = append(files, file)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// Collect builds the file set of a run. Project roots honour the exclude list, library
// roots do not.
func (s *HeaderScanner) Collect(cfg *Config, libraries []string) ([]string, error) {
	roots := cfg.Roots
	if len(roots) == 0 {
		roots = []string{cfg.ProjectDir}
	}

	files, err := s.Scan(roots, cfg.Extensions, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if len(libraries) == 0 {
		return files, nil
	}

	libraryFiles, err := s.Scan(libraries, cfg.Extensions, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(files))
	for _, file := range files {
		seen[file] = true
	}
	for _, file := range libraryFiles {
		if !seen[file] {
			files = append(files, file)
		}
	}

	sort.Strings(files)
	return files, nil
}

// CleanRoot strips a trailing "/..." and returns the absolute path
func CleanRoot(root string) (string, error) {
	base := strings.TrimSuffix(filepath.ToSlash(root), "/...")
	if base == "" || base == "..." {
		base = "."
	}
	return filepath.Abs(filepath.FromSlash(base))
}
