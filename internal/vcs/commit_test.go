package vcs

import (
	"testing"

	gocid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommit_DeterministicAcrossRepositories(t *testing.T) {
	repoA, err := Init(t.TempDir())
	require.NoError(t, err)
	repoB, err := Init(t.TempDir())
	require.NoError(t, err)

	tipA, err := repoA.Refs.HeadTip()
	require.NoError(t, err)
	tipB, err := repoB.Refs.HeadTip()
	require.NoError(t, err)

	assert.Equal(t, tipA, tipB, "fresh repositories must share an identical root commit id")
}

func TestNewChild_CopiesParentFiles(t *testing.T) {
	parentFiles := map[string]string{"a.txt": "bafyblob"}

	c, err := NewChild("change a", gocid.Undef, parentFiles)
	require.NoError(t, err)

	c.Files["a.txt"] = "bafyother"
	c.Files["b.txt"] = "bafynew"
	assert.Equal(t, map[string]string{"a.txt": "bafyblob"}, parentFiles)
}

func TestNewChild_EmptyMessage(t *testing.T) {
	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := NewChild(message, gocid.Undef, nil)
		assert.ErrorIs(t, err, ErrEmptyMessage, "message %q", message)
	}
}

func TestEncodeCommit_Deterministic(t *testing.T) {
	root := RootCommit()

	first, err := EncodeCommit(root)
	require.NoError(t, err)
	second, err := EncodeCommit(RootCommit())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncodeDecodeCommit(t *testing.T) {
	c := &Commit{
		V:         1,
		Message:   "snapshot",
		Timestamp: RootCommit().Timestamp,
		Parent:    "bafyparent",
		Files:     map[string]string{"z.txt": "bafyz", "a.txt": "bafya"},
	}

	data, err := EncodeCommit(c)
	require.NoError(t, err)
	got, err := DecodeCommit(data)
	require.NoError(t, err)

	assert.Equal(t, c.Message, got.Message)
	assert.Equal(t, c.Parent, got.Parent)
	assert.Equal(t, c.Files, got.Files)
	assert.True(t, c.Timestamp.Equal(got.Timestamp))
}

func TestCanonicalJSON_SortedKeys(t *testing.T) {
	data, err := canonicalJSON(map[string]interface{}{
		"zebra": 1,
		"apple": map[string]interface{}{"y": 2, "x": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"apple":{"x":3,"y":2},"zebra":1}`, string(data))
}
