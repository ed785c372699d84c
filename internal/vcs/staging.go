package vcs

import (
	"encoding/json"
	"fmt"
	"os"

	gocid "github.com/ipfs/go-cid"
)

// Index is the staging area: pending additions and pending removals, each
// keyed by working-area path. A path appears in at most one of the two maps
// at a time. The index is persisted to a single file after every mutation so
// separate CLI invocations observe the same pending state, and is fully
// drained on a successful commit.
type Index struct {
	path string

	Additions map[string]string `json:"additions"` // path → blob CID
	Removals  map[string]string `json:"removals"`  // path → blob CID tracked at head
}

// LoadIndex reads the staging area persisted at path. A missing file is an
// empty index, not an error.
func LoadIndex(path string) (*Index, error) {
	ix := &Index{
		path:      path,
		Additions: map[string]string{},
		Removals:  map[string]string{},
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ix, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if err := json.Unmarshal(data, ix); err != nil {
		return nil, fmt.Errorf("unmarshal index: %w", err)
	}
	if ix.Additions == nil {
		ix.Additions = map[string]string{}
	}
	if ix.Removals == nil {
		ix.Removals = map[string]string{}
	}
	return ix, nil
}

func (ix *Index) save() error {
	data, err := canonicalJSON(ix)
	if err != nil {
		return fmt.Errorf("serialize index: %w", err)
	}
	if err := SafeWrite(ix.path, data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// IsEmpty reports whether nothing is staged.
func (ix *Index) IsEmpty() bool {
	return len(ix.Additions) == 0 && len(ix.Removals) == 0
}

// Clear drops all pending changes and persists the empty state.
func (ix *Index) Clear() error {
	ix.Additions = map[string]string{}
	ix.Removals = map[string]string{}
	return ix.save()
}

// StageAddition records path → blob as a pending addition, cancelling any
// pending removal of the same path. headFiles is the current head commit's
// file map: staging content the head already tracks at that path is a net
// no-op, so the path is dropped from the index instead of restaged.
func (ix *Index) StageAddition(path string, blob gocid.Cid, headFiles map[string]string) error {
	delete(ix.Removals, path)
	if headFiles[path] == FormatCID(blob) {
		delete(ix.Additions, path)
	} else {
		ix.Additions[path] = FormatCID(blob)
	}
	return ix.save()
}

// StageRemoval marks path for removal. A pending addition is simply
// unstaged (the working file is left alone). A path tracked by head is
// recorded in Removals and the caller must delete the working file, which
// the returned flag requests. A path that is neither fails with
// ErrNothingToRemove.
func (ix *Index) StageRemoval(path string, headFiles map[string]string) (deleteWorkingFile bool, err error) {
	if _, staged := ix.Additions[path]; staged {
		delete(ix.Additions, path)
		return false, ix.save()
	}
	if blob, tracked := headFiles[path]; tracked {
		ix.Removals[path] = blob
		return true, ix.save()
	}
	return false, fmt.Errorf("%s: %w", path, ErrNothingToRemove)
}

// Apply overlays the staged changes onto files — a copy of the parent
// commit's map — then clears the index. This is the only way a child
// commit's file map diverges from its parent's. Applying an empty index
// fails with ErrNothingStaged and changes nothing.
func (ix *Index) Apply(files map[string]string) error {
	if ix.IsEmpty() {
		return ErrNothingStaged
	}
	for path, blob := range ix.Additions {
		files[path] = blob
	}
	for path := range ix.Removals {
		delete(files, path)
	}
	return ix.Clear()
}
