package vcs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gocid "github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/ulikunitz/xz"
)

// ObjectStore holds CID-addressed immutable objects, one file per object.
// There is no update or delete: content is write-once and append-only.
//
// Blobs are stored under the raw codec and commits under dag-json, so the
// CID alone says which kind of object it names when enumerating the store.
// Payloads are xz-compressed at rest; hashes are always computed over the
// uncompressed bytes, so compression never changes an object's identity.
type ObjectStore struct {
	dir string
}

// NewObjectStore opens (creating if needed) an object store rooted at dir.
func NewObjectStore(dir string) (*ObjectStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create objects dir: %w", err)
	}
	return &ObjectStore{dir: dir}, nil
}

func computeCID(codec uint64, data []byte) (gocid.Cid, error) {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return gocid.Undef, fmt.Errorf("multihash: %w", err)
	}
	return gocid.NewCidV1(codec, mh), nil
}

// FormatCID renders a CID as its base32 multibase string, the form used for
// object filenames, ref file contents, and user-visible commit ids.
func FormatCID(c gocid.Cid) string {
	encoded, _ := multibase.Encode(multibase.Base32, c.Bytes())
	return encoded
}

// ParseCID is the inverse of FormatCID.
func ParseCID(s string) (gocid.Cid, error) {
	_, raw, err := multibase.Decode(s)
	if err != nil {
		return gocid.Undef, fmt.Errorf("decode cid %q: %w", s, err)
	}
	return gocid.Cast(raw)
}

// Put stores data as a blob if absent and returns its CID. Re-storing
// identical bytes is a no-op.
func (s *ObjectStore) Put(data []byte) (gocid.Cid, error) {
	return s.put(gocid.Raw, data)
}

// PutCommit stores a serialized commit under the dag-json codec.
func (s *ObjectStore) PutCommit(data []byte) (gocid.Cid, error) {
	return s.put(gocid.DagJSON, data)
}

func (s *ObjectStore) put(codec uint64, data []byte) (gocid.Cid, error) {
	c, err := computeCID(codec, data)
	if err != nil {
		return gocid.Undef, err
	}
	path := filepath.Join(s.dir, FormatCID(c))
	if _, err := os.Stat(path); err == nil {
		return c, nil // write-once: identical content already present
	}
	packed, err := compress(data)
	if err != nil {
		return gocid.Undef, err
	}
	if err := SafeWrite(path, packed, 0644); err != nil {
		return gocid.Undef, fmt.Errorf("write object: %w", err)
	}
	return c, nil
}

// Get returns the uncompressed bytes of the object named by c.
func (s *ObjectStore) Get(c gocid.Cid) ([]byte, error) {
	packed, err := os.ReadFile(filepath.Join(s.dir, FormatCID(c)))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("object %s: %w", FormatCID(c), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", FormatCID(c), err)
	}
	return decompress(packed)
}

// Has reports whether the object named by c is stored.
func (s *ObjectStore) Has(c gocid.Cid) bool {
	_, err := os.Stat(filepath.Join(s.dir, FormatCID(c)))
	return err == nil
}

// List returns the CID of every stored object, in directory order. Entries
// whose names do not parse as CIDs (stray files) are skipped.
func (s *ObjectStore) List() ([]gocid.Cid, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	cids := make([]gocid.Cid, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		c, err := ParseCID(e.Name())
		if err != nil {
			continue
		}
		cids = append(cids, c)
	}
	return cids, nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("xz writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("xz compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("xz close: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(packed []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(packed))
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xz decompress: %w", err)
	}
	return data, nil
}
