package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	var rel []string
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestFileProcessor_WalkHeaders(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"include/user.h":          "",
		"include/color.HPP":       "",
		"src/main.cpp":            "",
		"build/_deps/gen.h":       "",
		".pio/libdeps/esp/x.h":    "",
		"cmake-build-debug/old.h": "",
		"lib/net/socket.hpp":      "",
		"README.md":               "",
	})

	fp := NewFileProcessor()
	files, err := fp.WalkFiles(root, FileWalkOptions{
		FileFilter:      HeaderFileFilter([]string{".h", ".hpp"}),
		DirectoryFilter: DefaultDirectoryFilter(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"include/color.HPP", "include/user.h", "lib/net/socket.hpp"}
	if got := relPaths(t, root, files); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestFileProcessor_RootIsNeverFiltered(t *testing.T) {
	root := filepath.Join(t.TempDir(), "build")
	writeTree(t, root, map[string]string{"a.h": ""})

	files, err := NewFileProcessor().WalkFiles(root, FileWalkOptions{
		FileFilter:      HeaderFileFilter([]string{".h"}),
		DirectoryFilter: DefaultDirectoryFilter(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected the root's header to be found, got %v", files)
	}
}

func TestExcludeFilter(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"include/user.h":       "",
		"include/generated.h":  "",
		"third_party/json.h":   "",
		"include/legacy/old.h": "",
	})

	filter := AllFileFilters(
		HeaderFileFilter([]string{".h"}),
		ExcludeFilter(root, []string{"generated.h", "third_party/", "include/legacy/*"}),
	)

	files, err := NewFileProcessor().WalkFiles(root, FileWalkOptions{FileFilter: filter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"include/user.h"}
	if got := relPaths(t, root, files); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestFileProcessor_MissingRoot(t *testing.T) {
	fp := NewFileProcessor()
	if _, err := fp.WalkFiles(filepath.Join(t.TempDir(), "missing"), FileWalkOptions{}); err == nil {
		t.Error("expected error for missing root")
	}

	files, err := fp.WalkFiles(filepath.Join(t.TempDir(), "missing"), FileWalkOptions{SkipErrors: true})
	if err != nil || len(files) != 0 {
		t.Errorf("expected no files and no error with SkipErrors, got %v, %v", files, err)
	}
}
