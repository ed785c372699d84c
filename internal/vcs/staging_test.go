package vcs

import (
	"path/filepath"
	"testing"

	gocid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := LoadIndex(filepath.Join(t.TempDir(), "index"))
	require.NoError(t, err)
	return ix
}

func testBlob(t *testing.T, content string) (c string) {
	t.Helper()
	id, err := computeCID(gocid.Raw, []byte(content))
	require.NoError(t, err)
	return FormatCID(id)
}

func TestStageAddition_ThenApply(t *testing.T) {
	ix := newTestIndex(t)
	blob := testBlob(t, "hello")
	blobCID, err := ParseCID(blob)
	require.NoError(t, err)

	require.NoError(t, ix.StageAddition("a.txt", blobCID, nil))

	files := map[string]string{}
	require.NoError(t, ix.Apply(files))
	assert.Equal(t, map[string]string{"a.txt": blob}, files)
	assert.True(t, ix.IsEmpty(), "a successful apply drains the staging area")
}

func TestStageAddition_NoOpRestage(t *testing.T) {
	ix := newTestIndex(t)
	blob := testBlob(t, "unchanged")
	blobCID, err := ParseCID(blob)
	require.NoError(t, err)

	headFiles := map[string]string{"a.txt": blob}
	require.NoError(t, ix.StageAddition("a.txt", blobCID, headFiles))

	assert.True(t, ix.IsEmpty(), "restaging content head already tracks is a net no-op")
}

func TestStageAddition_CancelsPendingRemoval(t *testing.T) {
	ix := newTestIndex(t)
	blob := testBlob(t, "v1")
	blobCID, err := ParseCID(blob)
	require.NoError(t, err)

	headFiles := map[string]string{"a.txt": blob}
	del, err := ix.StageRemoval("a.txt", headFiles)
	require.NoError(t, err)
	assert.True(t, del)

	// Re-adding the same content cancels the removal and, since head
	// already tracks it, leaves nothing staged at all.
	require.NoError(t, ix.StageAddition("a.txt", blobCID, headFiles))
	assert.True(t, ix.IsEmpty())
}

func TestStageRemoval_UnstagesPendingAddition(t *testing.T) {
	ix := newTestIndex(t)
	blobCID, err := ParseCID(testBlob(t, "new file"))
	require.NoError(t, err)

	require.NoError(t, ix.StageAddition("new.txt", blobCID, nil))
	del, err := ix.StageRemoval("new.txt", nil)
	require.NoError(t, err)

	assert.False(t, del, "unstaging an addition must not touch the working file")
	assert.True(t, ix.IsEmpty())
}

func TestStageRemoval_NothingToRemove(t *testing.T) {
	ix := newTestIndex(t)

	_, err := ix.StageRemoval("stranger.txt", map[string]string{"other.txt": "bafyother"})
	assert.ErrorIs(t, err, ErrNothingToRemove)
}

func TestApply_EmptyIndex(t *testing.T) {
	ix := newTestIndex(t)

	files := map[string]string{"kept.txt": "bafykept"}
	err := ix.Apply(files)
	assert.ErrorIs(t, err, ErrNothingStaged)
	assert.Equal(t, map[string]string{"kept.txt": "bafykept"}, files)
}

func TestApply_RemovalsDeleteTrackedPaths(t *testing.T) {
	ix := newTestIndex(t)

	headFiles := map[string]string{"doomed.txt": "bafydoomed", "kept.txt": "bafykept"}
	del, err := ix.StageRemoval("doomed.txt", headFiles)
	require.NoError(t, err)
	assert.True(t, del)

	files := map[string]string{"doomed.txt": "bafydoomed", "kept.txt": "bafykept"}
	require.NoError(t, ix.Apply(files))
	assert.Equal(t, map[string]string{"kept.txt": "bafykept"}, files)
}

func TestIndex_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")
	ix, err := LoadIndex(path)
	require.NoError(t, err)

	blobCID, err := ParseCID(testBlob(t, "persisted"))
	require.NoError(t, err)
	require.NoError(t, ix.StageAddition("a.txt", blobCID, nil))

	reloaded, err := LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, ix.Additions, reloaded.Additions)
	assert.False(t, reloaded.IsEmpty())
}
