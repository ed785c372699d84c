package vcs

import (
	"fmt"
	"iter"

	gocid "github.com/ipfs/go-cid"
)

// Graph answers ancestry queries over the commits in an ObjectStore. There
// is no persisted graph structure: history is recovered by following the
// parent pointers inside each commit, starting from any branch tip.
type Graph struct {
	store *ObjectStore
}

// NewGraph returns a Graph reading commits from store.
func NewGraph(store *ObjectStore) *Graph {
	return &Graph{store: store}
}

// Commit loads and decodes the commit named by id.
func (g *Graph) Commit(id gocid.Cid) (*Commit, error) {
	data, err := g.store.Get(id)
	if err != nil {
		return nil, err
	}
	c, err := DecodeCommit(data)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", FormatCID(id), err)
	}
	return c, nil
}

// Ancestors walks the primary-parent chain from id back to the root, id
// first. Merge parents are never followed. The walk is lazy: each commit is
// loaded only as the consumer advances, and it stops early if a commit
// cannot be read.
func (g *Graph) Ancestors(id gocid.Cid) iter.Seq[gocid.Cid] {
	return func(yield func(gocid.Cid) bool) {
		cur := id
		for cur.Defined() {
			if !yield(cur) {
				return
			}
			c, err := g.Commit(cur)
			if err != nil {
				return
			}
			parent, ok := c.ParentCID()
			if !ok {
				return
			}
			cur = parent
		}
	}
}

// Closure collects every commit reachable from id through parent and
// merge-parent links, id itself included.
func (g *Graph) Closure(id gocid.Cid) (map[gocid.Cid]struct{}, error) {
	seen := make(map[gocid.Cid]struct{})
	stack := []gocid.Cid{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		c, err := g.Commit(cur)
		if err != nil {
			return nil, err
		}
		if parent, ok := c.ParentCID(); ok {
			stack = append(stack, parent)
		}
		if mergeParent, ok := c.MergeParentCID(); ok {
			stack = append(stack, mergeParent)
		}
	}
	return seen, nil
}

// FindSplitPoint returns a latest common ancestor of tipA and tipB, the
// merge base. tipB's ancestry is closed over both parent links; tipA's side
// walks only its primary-parent chain, checking the primary parent before
// the merge parent at each step. The asymmetry favors the most recent
// shared commit on tipA's direct lineage: closer ancestors win because the
// walk moves outward from the tip. If tipA is itself in tipB's closure the
// split point is tipA (the fast-forward case).
func (g *Graph) FindSplitPoint(tipA, tipB gocid.Cid) (gocid.Cid, error) {
	closure, err := g.Closure(tipB)
	if err != nil {
		return gocid.Undef, err
	}
	if _, ok := closure[tipA]; ok {
		return tipA, nil
	}
	cur := tipA
	for cur.Defined() {
		c, err := g.Commit(cur)
		if err != nil {
			return gocid.Undef, err
		}
		parent, hasParent := c.ParentCID()
		if hasParent {
			if _, hit := closure[parent]; hit {
				return parent, nil
			}
		}
		if mergeParent, ok := c.MergeParentCID(); ok {
			if _, hit := closure[mergeParent]; hit {
				return mergeParent, nil
			}
		}
		if !hasParent {
			break
		}
		cur = parent
	}
	return gocid.Undef, fmt.Errorf("no common ancestor of %s and %s: %w",
		FormatCID(tipA), FormatCID(tipB), ErrNotFound)
}
