package vcs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gocid "github.com/ipfs/go-cid"

	"github.com/systemshift/lit/internal/config"
)

// repoDirName is the repository data directory under the working root.
const repoDirName = ".lit"

// Repository is the top-level facade over the version-control core. It owns
// the object store, the branch/HEAD references, the staging index, and the
// working-area surface, and exposes one method per user-facing operation.
// Operations are synchronous and single-threaded; callers serialize access.
type Repository struct {
	root string

	Store  *ObjectStore
	Refs   *RefStore
	Index  *Index
	Work   *Worktree
	Graph  *Graph
	Config *config.Config
}

// Init creates a repository at root: the data directory, the config file,
// the deterministic root commit, and the default branch pointing at it.
func Init(root string) (*Repository, error) {
	dir := filepath.Join(root, repoDirName)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%s: %w", root, ErrRepoExists)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create repo dir: %w", err)
	}

	cfg := config.Default()
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return nil, err
	}

	repo, err := Open(root)
	if err != nil {
		return nil, err
	}

	data, err := EncodeCommit(RootCommit())
	if err != nil {
		return nil, err
	}
	rootID, err := repo.Store.PutCommit(data)
	if err != nil {
		return nil, err
	}
	if err := repo.Refs.Set(cfg.DefaultBranch, rootID); err != nil {
		return nil, err
	}
	if err := repo.Refs.SetHead(cfg.DefaultBranch); err != nil {
		return nil, err
	}
	return repo, nil
}

// Open opens the repository rooted at root.
func Open(root string) (*Repository, error) {
	dir := filepath.Join(root, repoDirName)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNoRepo)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return nil, err
	}
	store, err := NewObjectStore(filepath.Join(dir, "objects"))
	if err != nil {
		return nil, err
	}
	refs, err := NewRefStore(filepath.Join(dir, "refs"), filepath.Join(dir, "HEAD"))
	if err != nil {
		return nil, err
	}
	index, err := LoadIndex(filepath.Join(dir, "index"))
	if err != nil {
		return nil, err
	}

	return &Repository{
		root:   root,
		Store:  store,
		Refs:   refs,
		Index:  index,
		Work:   NewWorktree(root),
		Graph:  NewGraph(store),
		Config: cfg,
	}, nil
}

// FindRoot walks upward from start to the nearest directory containing a
// repository, the way the CLI locates the repo from a subdirectory.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, repoDirName)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", start, ErrNoRepo)
		}
		dir = parent
	}
}

// Root returns the working-area root directory.
func (r *Repository) Root() string {
	return r.root
}

// head resolves HEAD to the current tip id and its commit.
func (r *Repository) head() (gocid.Cid, *Commit, error) {
	tip, err := r.Refs.HeadTip()
	if err != nil {
		return gocid.Undef, nil, err
	}
	c, err := r.Graph.Commit(tip)
	if err != nil {
		return gocid.Undef, nil, err
	}
	return tip, c, nil
}

// Add stages the working file at path for addition. The blob is stored
// immediately; staging content identical to what head already tracks is a
// net no-op and unstages the path instead.
func (r *Repository) Add(path string) error {
	data, err := r.Work.Read(path)
	if err != nil {
		return err
	}
	blob, err := r.Store.Put(data)
	if err != nil {
		return err
	}
	_, head, err := r.head()
	if err != nil {
		return err
	}
	return r.Index.StageAddition(path, blob, head.Files)
}

// Remove stages path for removal, deleting the working file when head
// tracks it. An unstaged, untracked path fails with ErrNothingToRemove.
func (r *Repository) Remove(path string) error {
	_, head, err := r.head()
	if err != nil {
		return err
	}
	deleteFile, err := r.Index.StageRemoval(path, head.Files)
	if err != nil {
		return err
	}
	if deleteFile {
		return r.Work.Delete(path)
	}
	return nil
}

// CommitStaged drains the staging area into a new commit on the current
// branch and returns its id.
func (r *Repository) CommitStaged(message string) (gocid.Cid, error) {
	return r.commitStaged(message, gocid.Undef)
}

func (r *Repository) commitStaged(message string, mergeParent gocid.Cid) (gocid.Cid, error) {
	tip, head, err := r.head()
	if err != nil {
		return gocid.Undef, err
	}
	c, err := NewChild(message, tip, head.Files)
	if err != nil {
		return gocid.Undef, err
	}
	if mergeParent.Defined() {
		c.MergeParent = FormatCID(mergeParent)
	}
	if err := r.Index.Apply(c.Files); err != nil {
		return gocid.Undef, err
	}
	data, err := EncodeCommit(c)
	if err != nil {
		return gocid.Undef, err
	}
	id, err := r.Store.PutCommit(data)
	if err != nil {
		return gocid.Undef, err
	}
	branch, err := r.Refs.Head()
	if err != nil {
		return gocid.Undef, err
	}
	if err := r.Refs.Set(branch, id); err != nil {
		return gocid.Undef, err
	}
	return id, nil
}

// LogEntry pairs a commit with its id for display.
type LogEntry struct {
	ID     gocid.Cid
	Commit *Commit
}

// Log returns the current branch's history: the primary-parent chain from
// head to the root, newest first.
func (r *Repository) Log() ([]LogEntry, error) {
	tip, err := r.Refs.HeadTip()
	if err != nil {
		return nil, err
	}
	var entries []LogEntry
	for id := range r.Graph.Ancestors(tip) {
		c, err := r.Graph.Commit(id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LogEntry{ID: id, Commit: c})
	}
	return entries, nil
}

// GlobalLog returns every commit in the object store, in store order.
// Commits are the dag-json entries; blobs are skipped by codec.
func (r *Repository) GlobalLog() ([]LogEntry, error) {
	ids, err := r.Store.List()
	if err != nil {
		return nil, err
	}
	var entries []LogEntry
	for _, id := range ids {
		if id.Type() != gocid.DagJSON {
			continue
		}
		c, err := r.Graph.Commit(id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LogEntry{ID: id, Commit: c})
	}
	return entries, nil
}

// Find returns the ids of all commits whose message matches exactly.
func (r *Repository) Find(message string) ([]gocid.Cid, error) {
	entries, err := r.GlobalLog()
	if err != nil {
		return nil, err
	}
	var ids []gocid.Cid
	for _, e := range entries {
		if e.Commit.Message == message {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no commit with message %q: %w", message, ErrNotFound)
	}
	return ids, nil
}

// ResolveCommitPrefix resolves a base32 prefix of a commit id. The prefix
// must match exactly one stored commit unless it is a full id.
func (r *Repository) ResolveCommitPrefix(prefix string) (gocid.Cid, error) {
	ids, err := r.Store.List()
	if err != nil {
		return gocid.Undef, err
	}
	match := gocid.Undef
	for _, id := range ids {
		if id.Type() != gocid.DagJSON {
			continue
		}
		name := FormatCID(id)
		if name == prefix {
			return id, nil
		}
		if strings.HasPrefix(name, prefix) {
			if match.Defined() {
				return gocid.Undef, fmt.Errorf("%s: %w", prefix, ErrAmbiguousPrefix)
			}
			match = id
		}
	}
	if !match.Defined() {
		return gocid.Undef, fmt.Errorf("no commit with id %s: %w", prefix, ErrNotFound)
	}
	return match, nil
}

// Status is a snapshot of the repository's pending state.
type Status struct {
	Branches  []string // all branches, sorted
	Current   string   // the branch HEAD names
	Staged    []string // paths pending addition, sorted
	Removed   []string // paths pending removal, sorted
	Untracked []string // working files neither staged nor tracked by head, sorted
}

// Status reports branches, staged changes, and untracked working files.
func (r *Repository) Status() (*Status, error) {
	branches, err := r.Refs.List()
	if err != nil {
		return nil, err
	}
	current, err := r.Refs.Head()
	if err != nil {
		return nil, err
	}
	_, head, err := r.head()
	if err != nil {
		return nil, err
	}
	working, err := r.Work.List()
	if err != nil {
		return nil, err
	}

	st := &Status{Branches: branches, Current: current}
	for path := range r.Index.Additions {
		st.Staged = append(st.Staged, path)
	}
	for path := range r.Index.Removals {
		st.Removed = append(st.Removed, path)
	}
	for _, path := range working {
		_, staged := r.Index.Additions[path]
		_, tracked := head.Files[path]
		if !staged && !tracked {
			st.Untracked = append(st.Untracked, path)
		}
	}
	sort.Strings(st.Staged)
	sort.Strings(st.Removed)
	return st, nil
}

// Branch creates a new branch at the current head without switching to it.
func (r *Repository) Branch(name string) error {
	if r.Refs.Has(name) {
		return fmt.Errorf("%s: %w", name, ErrBranchExists)
	}
	tip, err := r.Refs.HeadTip()
	if err != nil {
		return err
	}
	return r.Refs.Set(name, tip)
}

// RemoveBranch deletes a branch reference, never the current one.
func (r *Repository) RemoveBranch(name string) error {
	current, err := r.Refs.Head()
	if err != nil {
		return err
	}
	if name == current {
		return fmt.Errorf("%s: %w", name, ErrCannotDeleteCurrent)
	}
	if !r.Refs.Has(name) {
		return fmt.Errorf("%s: %w", name, ErrUnknownBranch)
	}
	return r.Refs.Delete(name)
}
