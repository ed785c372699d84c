package vcs

import (
	"testing"
	"time"

	gocid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeCommit builds a synthetic commit with chosen parents, bypassing the
// repository facade so tests can shape arbitrary histories.
func storeCommit(t *testing.T, store *ObjectStore, message string, parent, mergeParent gocid.Cid) gocid.Cid {
	t.Helper()
	c := &Commit{
		V:         1,
		Message:   message,
		Timestamp: time.Unix(0, 0).UTC(),
		Files:     map[string]string{},
	}
	if parent.Defined() {
		c.Parent = FormatCID(parent)
	}
	if mergeParent.Defined() {
		c.MergeParent = FormatCID(mergeParent)
	}
	data, err := EncodeCommit(c)
	require.NoError(t, err)
	id, err := store.PutCommit(data)
	require.NoError(t, err)
	return id
}

func collect(seq func(yield func(gocid.Cid) bool)) []gocid.Cid {
	var out []gocid.Cid
	seq(func(c gocid.Cid) bool {
		out = append(out, c)
		return true
	})
	return out
}

func TestAncestors_PrimaryChainOnly(t *testing.T) {
	store := newTestStore(t)
	graph := NewGraph(store)

	root := storeCommit(t, store, "root", gocid.Undef, gocid.Undef)
	side := storeCommit(t, store, "side", root, gocid.Undef)
	a := storeCommit(t, store, "a", root, gocid.Undef)
	b := storeCommit(t, store, "b (merge of side)", a, side)

	got := collect(graph.Ancestors(b))
	assert.Equal(t, []gocid.Cid{b, a, root}, got,
		"ancestors must follow only the primary parent, never the merge parent")
}

func TestAncestors_LazyStop(t *testing.T) {
	store := newTestStore(t)
	graph := NewGraph(store)

	root := storeCommit(t, store, "root", gocid.Undef, gocid.Undef)
	a := storeCommit(t, store, "a", root, gocid.Undef)

	var got []gocid.Cid
	for id := range graph.Ancestors(a) {
		got = append(got, id)
		break
	}
	assert.Equal(t, []gocid.Cid{a}, got)
}

func TestClosure_FollowsBothParentLinks(t *testing.T) {
	store := newTestStore(t)
	graph := NewGraph(store)

	root := storeCommit(t, store, "root", gocid.Undef, gocid.Undef)
	side := storeCommit(t, store, "side", root, gocid.Undef)
	a := storeCommit(t, store, "a", root, gocid.Undef)
	b := storeCommit(t, store, "b (merge of side)", a, side)

	closure, err := graph.Closure(b)
	require.NoError(t, err)

	for _, id := range []gocid.Cid{b, a, side, root} {
		assert.Contains(t, closure, id)
	}
	assert.Len(t, closure, 4)
}

func TestFindSplitPoint_HeadInOtherClosure(t *testing.T) {
	store := newTestStore(t)
	graph := NewGraph(store)

	root := storeCommit(t, store, "root", gocid.Undef, gocid.Undef)
	head := storeCommit(t, store, "head", root, gocid.Undef)
	other := storeCommit(t, store, "other ahead of head", head, gocid.Undef)

	split, err := graph.FindSplitPoint(head, other)
	require.NoError(t, err)
	assert.Equal(t, head, split, "the fast-forward case: head is in the other side's closure")
}

func TestFindSplitPoint_OtherIsAncestor(t *testing.T) {
	store := newTestStore(t)
	graph := NewGraph(store)

	root := storeCommit(t, store, "root", gocid.Undef, gocid.Undef)
	other := storeCommit(t, store, "other", root, gocid.Undef)
	head := storeCommit(t, store, "head ahead of other", other, gocid.Undef)

	split, err := graph.FindSplitPoint(head, other)
	require.NoError(t, err)
	assert.Equal(t, other, split)
}

func TestFindSplitPoint_DivergedBranches(t *testing.T) {
	store := newTestStore(t)
	graph := NewGraph(store)

	root := storeCommit(t, store, "root", gocid.Undef, gocid.Undef)
	base := storeCommit(t, store, "base", root, gocid.Undef)
	head := storeCommit(t, store, "head change", base, gocid.Undef)
	other := storeCommit(t, store, "other change", base, gocid.Undef)

	split, err := graph.FindSplitPoint(head, other)
	require.NoError(t, err)
	assert.Equal(t, base, split)
}

// Diamond history: head and other both descend from base through different
// intermediate merge commits, so base's two children are each reachable from
// both tips. The primary-parent-first rule must pick the head side's primary
// lineage (left) over its merge lineage (right).
func TestFindSplitPoint_DiamondPrimaryParentWins(t *testing.T) {
	store := newTestStore(t)
	graph := NewGraph(store)

	base := storeCommit(t, store, "base", gocid.Undef, gocid.Undef)
	left := storeCommit(t, store, "left", base, gocid.Undef)
	right := storeCommit(t, store, "right", base, gocid.Undef)
	mergeHead := storeCommit(t, store, "merge right into left", left, right)
	mergeOther := storeCommit(t, store, "merge left into right", right, left)
	head := storeCommit(t, store, "head tip", mergeHead, gocid.Undef)
	other := storeCommit(t, store, "other tip", mergeOther, gocid.Undef)

	split, err := graph.FindSplitPoint(head, other)
	require.NoError(t, err)
	assert.Equal(t, left, split,
		"walking head's primary chain, left is hit as a primary parent before right")
}

func TestFindSplitPoint_MergeParentHit(t *testing.T) {
	store := newTestStore(t)
	graph := NewGraph(store)

	base := storeCommit(t, store, "base", gocid.Undef, gocid.Undef)
	left := storeCommit(t, store, "left", base, gocid.Undef)
	right := storeCommit(t, store, "right", base, gocid.Undef)
	// Head merged right in; its primary parent left is NOT in other's
	// history, but its merge parent right is.
	head := storeCommit(t, store, "merge right into left", left, right)
	other := storeCommit(t, store, "other on right", right, gocid.Undef)

	split, err := graph.FindSplitPoint(head, other)
	require.NoError(t, err)
	assert.Equal(t, right, split)
}
