package utils

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FileProcessor walks source trees and selects the files to process
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be descended into
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// HeaderFileFilter accepts regular files whose extension is one of extensions (case-insensitive)
func HeaderFileFilter(extensions []string) FileFilter {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	return func(path string, info fs.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		return allowed[strings.ToLower(filepath.Ext(info.Name()))]
	}
}

// ExcludeFilter rejects files matching any glob pattern. Patterns are matched against the
// base name and against the slash-separated path relative to base.
func ExcludeFilter(base string, patterns []string) FileFilter {
	return func(path string, info fs.DirEntry) bool {
		rel, err := filepath.Rel(base, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		for _, pattern := range patterns {
			if ok, _ := filepath.Match(pattern, info.Name()); ok {
				return false
			}
			if ok, _ := filepath.Match(pattern, rel); ok {
				return false
			}
			if strings.HasSuffix(pattern, "/") && strings.HasPrefix(rel, pattern) {
				return false
			}
		}
		return true
	}
}

// AllFileFilters combines filters; a file passes only if every filter accepts it
func AllFileFilters(filters ...FileFilter) FileFilter {
	return func(path string, info fs.DirEntry) bool {
		for _, filter := range filters {
			if filter != nil && !filter(path, info) {
				return false
			}
		}
		return true
	}
}

// DefaultDirectoryFilter skips directories that hold build output, tooling state or vendored code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"build":        true,
		"dist":         true,
		"target":       true,
		"out":          true,
		"CMakeFiles":   true,
	}

	return func(path string, info fs.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// hidden directories cover .git, .pio, .vscode
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		if strings.HasPrefix(name, "cmake-build-") {
			return false
		}

		return !skipDirs[name]
	}
}

// WalkFiles walks a directory tree and returns the sorted paths accepted by the filters.
// The root itself is never rejected by the directory filter.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matchedFiles)
	return matchedFiles, nil
}
