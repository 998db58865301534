package fileops

import (
	"os"
	"path/filepath"

	"github.com/toyz/serialgen/internal/errors"
)

// cleanPath rejects empty paths and returns the lexically cleaned form
func cleanPath(op, path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.FileSystemErrorCode, "file path cannot be empty").
			WithContext("operation", op)
	}
	return filepath.Clean(path), nil
}

// statPath cleans path and stats it, wrapping failures with the operation name
func statPath(op, path string) (string, os.FileInfo, error) {
	clean, err := cleanPath(op, path)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(clean)
	if err != nil {
		return clean, nil, errors.WrapFileSystemError(op, clean, err)
	}
	return clean, info, nil
}
