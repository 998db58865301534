package injector

import (
	"github.com/toyz/serialgen/internal/errors"
	"github.com/toyz/serialgen/internal/models"
)

// FileStore is the file access the editor needs
type FileStore interface {
	ReadFile(path string) (string, error)
	WriteFileAtomic(path string, content []byte) error
}

// Editor holds one header in memory while declarations are injected into it.
// The file is read once on open and written at most once on commit.
type Editor struct {
	store    FileStore
	file     *models.SourceFile
	original string
}

// Open reads a header into an editor
func Open(store FileStore, path string) (*Editor, error) {
	content, err := store.ReadFile(path)
	if err != nil {
		return nil, errors.WrapInjectionError("read", path, err)
	}
	file := models.NewSourceFile(path, content)
	return &Editor{
		store:    store,
		file:     file,
		original: file.Content(),
	}, nil
}

// Path returns the header path
func (e *Editor) Path() string {
	return e.file.Path
}

// Lines returns the current line buffer
func (e *Editor) Lines() []string {
	return e.file.Lines
}

// Apply replaces the line buffer with an edited version
func (e *Editor) Apply(lines []string) {
	e.file.Lines = lines
}

// Content returns the current file content
func (e *Editor) Content() string {
	return e.file.Content()
}

// Changed reports whether edits altered the buffer
func (e *Editor) Changed() bool {
	return e.file.Content() != e.original
}

// Commit writes the buffer back when it changed. With dryRun nothing is written but the
// result still says whether a write would have happened.
func (e *Editor) Commit(dryRun bool) (bool, error) {
	if !e.Changed() {
		return false, nil
	}
	if dryRun {
		return true, nil
	}
	if err := e.store.WriteFileAtomic(e.file.Path, []byte(e.file.Content())); err != nil {
		return false, errors.WrapInjectionError("write", e.file.Path, err)
	}
	e.original = e.file.Content()
	return true, nil
}
