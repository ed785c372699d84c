package vcs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gocid "github.com/ipfs/go-cid"
)

// RefStore manages the mutable side of the repository: branch references
// (name → commit CID, one file per branch) and the HEAD file naming the
// current branch. Branch names containing "/" are encoded into flat
// filenames with a double underscore.
type RefStore struct {
	dir      string
	headPath string
}

// NewRefStore opens (creating if needed) a ref store with branch files
// under dir and the head pointer at headPath.
func NewRefStore(dir, headPath string) (*RefStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create refs dir: %w", err)
	}
	return &RefStore{dir: dir, headPath: headPath}, nil
}

func refFilename(name string) string {
	return strings.ReplaceAll(name, "/", "__")
}

func refNameFromFilename(name string) string {
	return strings.ReplaceAll(name, "__", "/")
}

// Set points branch name at commit c, creating the branch if new.
func (r *RefStore) Set(name string, c gocid.Cid) error {
	path := filepath.Join(r.dir, refFilename(name))
	if err := SafeWrite(path, []byte(FormatCID(c)+"\n"), 0644); err != nil {
		return fmt.Errorf("write ref %s: %w", name, err)
	}
	return nil
}

// Get resolves branch name to its tip commit.
func (r *RefStore) Get(name string) (gocid.Cid, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, refFilename(name)))
	if os.IsNotExist(err) {
		return gocid.Undef, fmt.Errorf("%s: %w", name, ErrUnknownBranch)
	}
	if err != nil {
		return gocid.Undef, fmt.Errorf("read ref %s: %w", name, err)
	}
	c, err := ParseCID(strings.TrimSpace(string(data)))
	if err != nil {
		return gocid.Undef, fmt.Errorf("ref %s: %w", name, err)
	}
	return c, nil
}

// Has reports whether branch name exists.
func (r *RefStore) Has(name string) bool {
	_, err := os.Stat(filepath.Join(r.dir, refFilename(name)))
	return err == nil
}

// Delete removes branch name. The commits it pointed at stay in the store.
func (r *RefStore) Delete(name string) error {
	if err := os.Remove(filepath.Join(r.dir, refFilename(name))); err != nil {
		return fmt.Errorf("delete ref %s: %w", name, err)
	}
	return nil
}

// List returns all branch names, sorted.
func (r *RefStore) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, refNameFromFilename(e.Name()))
	}
	sort.Strings(names)
	return names, nil
}

// Head returns the name of the current branch.
func (r *RefStore) Head() (string, error) {
	data, err := os.ReadFile(r.headPath)
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetHead makes name the current branch. Only branch-switching checkout
// moves HEAD; commits and resets move the branch ref underneath it.
func (r *RefStore) SetHead(name string) error {
	if err := SafeWrite(r.headPath, []byte(name+"\n"), 0644); err != nil {
		return fmt.Errorf("write HEAD: %w", err)
	}
	return nil
}

// HeadTip resolves HEAD to the current branch's tip commit.
func (r *RefStore) HeadTip() (gocid.Cid, error) {
	name, err := r.Head()
	if err != nil {
		return gocid.Undef, err
	}
	return r.Get(name)
}
