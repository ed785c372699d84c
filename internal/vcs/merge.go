package vcs

import (
	"fmt"
	"sort"

	gocid "github.com/ipfs/go-cid"
)

// Conflict markers, written in this literal order around the two sides of a
// conflicted file: head marker, head content, separator, other content, end
// marker.
const (
	conflictHead      = "<<<<<<< HEAD\n"
	conflictSeparator = "=======\n"
	conflictEnd       = ">>>>>>>\n"
)

// MergeOutcome says how a merge concluded.
type MergeOutcome int

const (
	// Merged means a new merge commit was created.
	Merged MergeOutcome = iota
	// FastForwarded means the current branch ref moved to the other tip;
	// no commit was created.
	FastForwarded
	// AlreadyAncestor means the other branch is an ancestor of head;
	// nothing changed.
	AlreadyAncestor
)

// MergeResult reports a completed merge. Conflicted is advisory: the merge
// commit exists either way, but conflicted paths carry conflict markers in
// the working area that need manual resolution.
type MergeResult struct {
	Outcome    MergeOutcome
	Commit     gocid.Cid // set only when Outcome is Merged
	Conflicted bool
}

// Merge merges otherBranch into the current branch with a three-way merge
// against their split point. Preconditions are checked up front, each a
// fatal abort with no side effects: the staging area must be empty, the
// branch must exist and differ from the current one, and no untracked
// working file may be overwritten by the other tip's snapshot.
func (r *Repository) Merge(otherBranch string) (*MergeResult, error) {
	if !r.Index.IsEmpty() {
		return nil, ErrUncommittedChanges
	}
	otherTip, err := r.Refs.Get(otherBranch)
	if err != nil {
		return nil, err
	}
	current, err := r.Refs.Head()
	if err != nil {
		return nil, err
	}
	if otherBranch == current {
		return nil, fmt.Errorf("%s: %w", otherBranch, ErrSelfMerge)
	}
	headTip, headCommit, err := r.head()
	if err != nil {
		return nil, err
	}
	other, err := r.Graph.Commit(otherTip)
	if err != nil {
		return nil, err
	}
	if err := r.checkUntracked(other.Files); err != nil {
		return nil, err
	}

	split, err := r.Graph.FindSplitPoint(headTip, otherTip)
	if err != nil {
		return nil, err
	}
	if split == otherTip {
		return &MergeResult{Outcome: AlreadyAncestor}, nil
	}
	if split == headTip {
		// The other branch is strictly ahead: adopt its tip outright.
		if err := r.restoreSnapshot(other.Files); err != nil {
			return nil, err
		}
		if err := r.Refs.Set(current, otherTip); err != nil {
			return nil, err
		}
		return &MergeResult{Outcome: FastForwarded}, nil
	}

	splitCommit, err := r.Graph.Commit(split)
	if err != nil {
		return nil, err
	}

	conflicted := false
	for _, path := range pathUnion(headCommit.Files, other.Files, splitCommit.Files) {
		// Empty string is the distinct "untracked" value; it never equals
		// a real blob CID.
		vHead := headCommit.Files[path]
		vOther := other.Files[path]
		vSplit := splitCommit.Files[path]

		switch {
		case vSplit == vHead && vSplit != vOther:
			// Changed only on the other side: take other's version.
			if vOther == "" {
				if err := r.Remove(path); err != nil {
					return nil, err
				}
				continue
			}
			blob, err := ParseCID(vOther)
			if err != nil {
				return nil, fmt.Errorf("snapshot entry %s: %w", path, err)
			}
			data, err := r.Store.Get(blob)
			if err != nil {
				return nil, err
			}
			if err := r.Work.Write(path, data); err != nil {
				return nil, err
			}
			if err := r.Index.StageAddition(path, blob, headCommit.Files); err != nil {
				return nil, err
			}

		case vSplit == vOther || vHead == vOther:
			// Head already carries the correct resolution, or both sides
			// made the identical change.

		default:
			// All three versions distinct: conflict.
			if err := r.writeConflict(path, vHead, vOther, headCommit.Files); err != nil {
				return nil, err
			}
			conflicted = true
		}
	}

	message := fmt.Sprintf("Merged %s into %s.", otherBranch, current)
	id, err := r.commitStaged(message, otherTip)
	if err != nil {
		return nil, err
	}
	return &MergeResult{Outcome: Merged, Commit: id, Conflicted: conflicted}, nil
}

// writeConflict synthesizes the conflicted working file for path from the
// head and other versions (either may be absent → empty) and stages it.
func (r *Repository) writeConflict(path, vHead, vOther string, headFiles map[string]string) error {
	headContent, err := r.blobContent(vHead)
	if err != nil {
		return err
	}
	otherContent, err := r.blobContent(vOther)
	if err != nil {
		return err
	}

	content := make([]byte, 0,
		len(conflictHead)+len(headContent)+len(conflictSeparator)+len(otherContent)+len(conflictEnd))
	content = append(content, conflictHead...)
	content = append(content, headContent...)
	content = append(content, conflictSeparator...)
	content = append(content, otherContent...)
	content = append(content, conflictEnd...)

	blob, err := r.Store.Put(content)
	if err != nil {
		return err
	}
	if err := r.Work.Write(path, content); err != nil {
		return err
	}
	return r.Index.StageAddition(path, blob, headFiles)
}

func (r *Repository) blobContent(ref string) ([]byte, error) {
	if ref == "" {
		return nil, nil
	}
	blob, err := ParseCID(ref)
	if err != nil {
		return nil, fmt.Errorf("blob ref %q: %w", ref, err)
	}
	return r.Store.Get(blob)
}

// pathUnion returns the sorted union of paths tracked by the given snapshots.
func pathUnion(snapshots ...map[string]string) []string {
	set := make(map[string]struct{})
	for _, files := range snapshots {
		for path := range files {
			set[path] = struct{}{}
		}
	}
	paths := make([]string, 0, len(set))
	for path := range set {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
