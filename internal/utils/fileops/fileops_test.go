package fileops

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/serialgen/internal/errors"
)

func TestReadFileCachesUntilModified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.h")
	require.NoError(t, os.WriteFile(path, []byte("class User {};\n"), 0o644))

	fo := NewFileOps()
	content, err := fo.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class User {};\n", content)
	assert.Equal(t, 1, fo.Cache().Len())

	_, err = fo.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 1}, fo.Cache().Stats())

	require.NoError(t, fo.WriteFileAtomic(path, []byte("class User { int id; };\n")))
	assert.Equal(t, 0, fo.Cache().Len(), "write must invalidate the cache")

	content, err = fo.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class User { int id; };\n", content)
}

func TestReadFileNoticesOutsideEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.h")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0o644))

	fo := NewFileOps()
	_, err := fo.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a longer body\n"), 0o644))

	content, err := fo.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a longer body\n", content)
	assert.Zero(t, fo.Cache().Stats().Hits)
}

func TestReadFileMissing(t *testing.T) {
	_, err := NewFileOps().ReadFile(filepath.Join(t.TempDir(), "missing.h"))
	require.Error(t, err)

	var base *errors.BaseError
	require.True(t, stderrors.As(err, &base))
	assert.Equal(t, errors.FileSystemErrorCode, base.ErrorCode())
	assert.True(t, stderrors.Is(err, os.ErrNotExist))
}

func TestWriteFileAtomicPreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "color.h")
	require.NoError(t, os.WriteFile(path, []byte("enum Color {};\n"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, NewFileOps().WriteFileAtomic(path, []byte("enum Color { RED };\n")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files may be left behind")
}

func TestWriteFileAtomicCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.h")
	fo := NewFileOps()

	require.NoError(t, fo.WriteFileAtomic(path, []byte("#pragma once\n")))
	assert.False(t, fo.IsDir(path))

	content, err := fo.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#pragma once\n", content)
}

func TestWriteFileAtomicFollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "shared", "user.h")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("class User {};\n"), 0o600))

	link := filepath.Join(dir, "user.h")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	fo := NewFileOps()
	_, err := fo.ReadFile(link)
	require.NoError(t, err)

	require.NoError(t, fo.WriteFileAtomic(link, []byte("class User { int id; };\n")))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must stay a symlink")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "class User { int id; };\n", string(data))

	targetInfo, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), targetInfo.Mode().Perm())

	content, err := fo.ReadFile(link)
	require.NoError(t, err)
	assert.Equal(t, "class User { int id; };\n", content)

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file may be left behind")
}

func TestEmptyPaths(t *testing.T) {
	fo := NewFileOps()

	_, err := fo.ReadFile("")
	assert.Error(t, err)
	assert.Error(t, fo.WriteFileAtomic("", nil))
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))
	fo := NewFileOps()

	entries, err := fo.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "src", entries[0].Name())
	assert.True(t, fo.IsDir(filepath.Join(dir, "src")))

	_, err = fo.ReadDir(filepath.Join(dir, "missing"))
	var base *errors.BaseError
	require.True(t, stderrors.As(err, &base))
	assert.Equal(t, errors.FileSystemErrorCode, base.ErrorCode())
}
