package vcs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Worktree is the checkout surface: the user's files under the repository
// root. Paths are slash-separated and relative to the root; the repository's
// own data directory is invisible to it.
type Worktree struct {
	root string
}

// NewWorktree returns a Worktree rooted at root.
func NewWorktree(root string) *Worktree {
	return &Worktree{root: root}
}

func (w *Worktree) abs(path string) string {
	return filepath.Join(w.root, filepath.FromSlash(path))
}

// Read returns the content of the working file at path, or ErrNotFound.
func (w *Worktree) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(w.abs(path))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read working file %s: %w", path, err)
	}
	return data, nil
}

// Write replaces the working file at path, creating parent directories.
func (w *Worktree) Write(path string, data []byte) error {
	target := w.abs(path)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create dirs for %s: %w", path, err)
	}
	if err := SafeWrite(target, data, 0644); err != nil {
		return fmt.Errorf("write working file %s: %w", path, err)
	}
	return nil
}

// Delete removes the working file at path. A file already gone is fine.
func (w *Worktree) Delete(path string) error {
	if err := os.Remove(w.abs(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete working file %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a working file is present at path.
func (w *Worktree) Exists(path string) bool {
	info, err := os.Stat(w.abs(path))
	return err == nil && !info.IsDir()
}

// List returns every working file path, sorted.
func (w *Worktree) List() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(w.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == repoDirName && p != w.root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(w.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list working files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
