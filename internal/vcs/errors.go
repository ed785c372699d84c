package vcs

import "errors"

// Every failure mode of the core is a named condition. Callers match with
// errors.Is; wrapped context (path, branch, id) rides along via %w.
var (
	// ErrNotFound reports a missing blob, commit, or working file.
	ErrNotFound = errors.New("not found")

	// ErrNoRepo reports that no repository exists at or above the given path.
	ErrNoRepo = errors.New("not a lit repository")

	// ErrRepoExists reports an attempt to initialize over an existing repository.
	ErrRepoExists = errors.New("repository already exists")

	// ErrEmptyMessage rejects a blank commit message.
	ErrEmptyMessage = errors.New("commit message is empty")

	// ErrNothingStaged rejects a commit with an empty staging area.
	ErrNothingStaged = errors.New("no changes staged for commit")

	// ErrNothingToRemove rejects removing a path that is neither staged nor tracked.
	ErrNothingToRemove = errors.New("no reason to remove the file")

	// ErrUncommittedChanges rejects a merge while the staging area is non-empty.
	ErrUncommittedChanges = errors.New("uncommitted changes staged")

	// ErrSelfMerge rejects merging a branch into itself.
	ErrSelfMerge = errors.New("cannot merge a branch with itself")

	// ErrUnknownBranch reports a branch reference that does not exist.
	ErrUnknownBranch = errors.New("no such branch")

	// ErrBranchExists rejects creating a branch whose name is taken.
	ErrBranchExists = errors.New("branch already exists")

	// ErrCannotDeleteCurrent rejects deleting the branch HEAD points at.
	ErrCannotDeleteCurrent = errors.New("cannot remove the current branch")

	// ErrAlreadyCurrent rejects checking out the branch that is already current.
	ErrAlreadyCurrent = errors.New("already on that branch")

	// ErrUntrackedFile blocks checkout/reset/merge that would overwrite a
	// working file neither staged for addition nor tracked by head.
	ErrUntrackedFile = errors.New("untracked working file would be overwritten")

	// ErrFileNotInCommit reports a path absent from a commit's snapshot.
	ErrFileNotInCommit = errors.New("file does not exist in that commit")

	// ErrAmbiguousPrefix reports a commit id prefix matching more than one commit.
	ErrAmbiguousPrefix = errors.New("commit id prefix is ambiguous")
)
