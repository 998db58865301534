package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// writeArchive expands a txtar archive into a fresh temp dir and returns its path
func writeArchive(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()

	for _, file := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, filepath.FromSlash(file.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, file.Data, 0o644))
	}

	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func noEnv(string) string { return "" }

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}
