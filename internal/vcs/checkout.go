package vcs

import (
	"fmt"
	"sort"

	gocid "github.com/ipfs/go-cid"
)

// CheckoutFile overwrites the working file at path with the version tracked
// by the given commit. The staging area is not touched.
func (r *Repository) CheckoutFile(commitID gocid.Cid, path string) error {
	c, err := r.Graph.Commit(commitID)
	if err != nil {
		return err
	}
	blob, ok := c.FileCID(path)
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrFileNotInCommit)
	}
	data, err := r.Store.Get(blob)
	if err != nil {
		return err
	}
	return r.Work.Write(path, data)
}

// CheckoutHeadFile restores path from the current head commit.
func (r *Repository) CheckoutHeadFile(path string) error {
	tip, err := r.Refs.HeadTip()
	if err != nil {
		return err
	}
	return r.CheckoutFile(tip, path)
}

// CheckoutBranch makes name the current branch and the working area an
// exact copy of its tip's snapshot. Fails before mutating anything if an
// untracked working file would be overwritten.
func (r *Repository) CheckoutBranch(name string) error {
	current, err := r.Refs.Head()
	if err != nil {
		return err
	}
	tip, err := r.Refs.Get(name)
	if err != nil {
		return err
	}
	if name == current {
		return fmt.Errorf("%s: %w", name, ErrAlreadyCurrent)
	}
	c, err := r.Graph.Commit(tip)
	if err != nil {
		return err
	}
	if err := r.checkUntracked(c.Files); err != nil {
		return err
	}
	if err := r.restoreSnapshot(c.Files); err != nil {
		return err
	}
	return r.Refs.SetHead(name)
}

// Reset sets the working area to the given commit's snapshot and moves the
// current branch's reference to it. HEAD stays on the same branch. The same
// untracked-file safety check as CheckoutBranch applies, against the target
// snapshot, before any mutation.
func (r *Repository) Reset(commitID gocid.Cid) error {
	c, err := r.Graph.Commit(commitID)
	if err != nil {
		return err
	}
	if err := r.checkUntracked(c.Files); err != nil {
		return err
	}
	if err := r.restoreSnapshot(c.Files); err != nil {
		return err
	}
	branch, err := r.Refs.Head()
	if err != nil {
		return err
	}
	return r.Refs.Set(branch, commitID)
}

// checkUntracked is the shared safety rule for checkout, reset, and merge:
// a working file blocks the operation iff it is neither a pending addition
// nor tracked by the current head commit, and the target snapshot would
// overwrite it. Evaluated before any mutation.
func (r *Repository) checkUntracked(target map[string]string) error {
	_, head, err := r.head()
	if err != nil {
		return err
	}
	working, err := r.Work.List()
	if err != nil {
		return err
	}
	for _, path := range working {
		if _, staged := r.Index.Additions[path]; staged {
			continue
		}
		if _, tracked := head.Files[path]; tracked {
			continue
		}
		if _, overwritten := target[path]; overwritten {
			return fmt.Errorf("%s: %w", path, ErrUntrackedFile)
		}
	}
	return nil
}

// restoreSnapshot replaces the working area with the given snapshot —
// deleting every file not in it, writing every file in it — and clears the
// staging area.
func (r *Repository) restoreSnapshot(files map[string]string) error {
	working, err := r.Work.List()
	if err != nil {
		return err
	}
	for _, path := range working {
		if _, keep := files[path]; !keep {
			if err := r.Work.Delete(path); err != nil {
				return err
			}
		}
	}

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		blob, err := ParseCID(files[path])
		if err != nil {
			return fmt.Errorf("snapshot entry %s: %w", path, err)
		}
		data, err := r.Store.Get(blob)
		if err != nil {
			return err
		}
		if err := r.Work.Write(path, data); err != nil {
			return err
		}
	}
	return r.Index.Clear()
}
