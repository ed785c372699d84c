package vcs

import (
	"testing"

	gocid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ObjectStore {
	t.Helper()
	store, err := NewObjectStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestPut_ContentAddressed(t *testing.T) {
	store := newTestStore(t)

	a1, err := store.Put([]byte("same bytes"))
	require.NoError(t, err)
	a2, err := store.Put([]byte("same bytes"))
	require.NoError(t, err)
	b, err := store.Put([]byte("other bytes"))
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
}

func TestPut_IdempotentSingleEntry(t *testing.T) {
	store := newTestStore(t)

	c, err := store.Put([]byte("hello"))
	require.NoError(t, err)
	_, err = store.Put([]byte("hello"))
	require.NoError(t, err)

	assert.True(t, store.Has(c))
	cids, err := store.List()
	require.NoError(t, err)
	assert.Len(t, cids, 1)
}

func TestGet_RoundTripThroughCompression(t *testing.T) {
	store := newTestStore(t)

	content := []byte("payloads are xz-compressed at rest but identity is the raw bytes")
	c, err := store.Put(content)
	require.NoError(t, err)

	got, err := store.Get(c)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestGet_Missing(t *testing.T) {
	store := newTestStore(t)

	missing, err := computeCID(gocid.Raw, []byte("never stored"))
	require.NoError(t, err)

	_, err = store.Get(missing)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, store.Has(missing))
}

func TestPutCommit_CodecDistinguishesBlobs(t *testing.T) {
	store := newTestStore(t)

	data := []byte(`{"v":1}`)
	blob, err := store.Put(data)
	require.NoError(t, err)
	commit, err := store.PutCommit(data)
	require.NoError(t, err)

	assert.NotEqual(t, blob, commit)
	assert.Equal(t, uint64(gocid.Raw), blob.Type())
	assert.Equal(t, uint64(gocid.DagJSON), commit.Type())
}

func TestFormatParseCID(t *testing.T) {
	store := newTestStore(t)

	c, err := store.Put([]byte("round trip"))
	require.NoError(t, err)

	parsed, err := ParseCID(FormatCID(c))
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	_, err = ParseCID("not a cid")
	assert.Error(t, err)
}
