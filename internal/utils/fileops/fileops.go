package fileops

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/toyz/serialgen/internal/errors"
)

// FileOps is the file access shared by one run: cached header reads, atomic
// rewrites and the directory probes used by root discovery
type FileOps struct {
	cache *HeaderCache
}

// NewFileOps creates a FileOps with an empty header cache
func NewFileOps() *FileOps {
	return &FileOps{cache: NewHeaderCache()}
}

// Cache returns the header cache
func (fo *FileOps) Cache() *HeaderCache {
	return fo.cache
}

// ReadFile returns a file's content, from the cache when the file is unchanged
func (fo *FileOps) ReadFile(filePath string) (string, error) {
	path, info, err := statPath("read", filePath)
	if err != nil {
		return "", err
	}

	if content, ok := fo.cache.lookup(path, info); ok {
		return content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapFileSystemError("read", path, err)
	}

	content := string(data)
	fo.cache.store(path, content, info)
	return content, nil
}

// WriteFileAtomic replaces a file's content by writing a uuid-named sibling and renaming it
// over the target. An existing file keeps its permission bits. A symlink is followed so
// the link survives and the file it points to gets the new content.
func (fo *FileOps) WriteFileAtomic(filePath string, content []byte) error {
	path, err := cleanPath("write", filePath)
	if err != nil {
		return err
	}

	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	} else if !os.IsNotExist(err) {
		return errors.WrapFileSystemError("resolve", path, err)
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.WrapFileSystemError("stat", target, err)
	}

	tmpPath := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	// WriteFile honours umask, so set the mode explicitly
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapFileSystemError("write", path, err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapFileSystemError("replace", target, err)
	}

	fo.cache.Forget(path)
	fo.cache.Forget(target)
	return nil
}

// ReadDir lists a directory that must exist
func (fo *FileOps) ReadDir(dirPath string) ([]os.DirEntry, error) {
	path, _, err := statPath("read directory", dirPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", path, err)
	}
	return entries, nil
}

// IsDir reports whether path exists and is a directory
func (fo *FileOps) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
