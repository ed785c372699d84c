package vcs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	gocid "github.com/ipfs/go-cid"
)

// rootMessage is the message of the commit every repository starts from.
const rootMessage = "initial commit"

// Commit is an immutable history node. Files maps working-area paths to
// blob CIDs (base32, sorted on serialization). Parent and MergeParent are
// base32 commit CIDs; empty means none — only the root commit has no Parent
// and only merge commits have a MergeParent.
//
// A commit's id is the dag-json CID of its canonical JSON encoding, so two
// commits with identical message, parents, timestamp, and file map share an
// id. The root commit exploits this: it pins the Unix epoch as its
// timestamp so every fresh repository's root commit is bit-identical.
type Commit struct {
	V           int               `json:"v"`
	Message     string            `json:"message"`
	Timestamp   time.Time         `json:"timestamp"`
	Parent      string            `json:"parent,omitempty"`
	MergeParent string            `json:"mergeParent,omitempty"`
	Files       map[string]string `json:"files"`
}

// RootCommit returns the fixed-epoch commit a fresh repository starts from.
func RootCommit() *Commit {
	return &Commit{
		V:         1,
		Message:   rootMessage,
		Timestamp: time.Unix(0, 0).UTC(),
		Files:     map[string]string{},
	}
}

// NewChild starts a commit from parent. The file map begins as a copy of
// the parent's; only a staging-area Apply may change it before the commit
// is finalized. Timestamps are truncated to whole seconds so an id never
// depends on sub-second clock noise.
func NewChild(message string, parent gocid.Cid, parentFiles map[string]string) (*Commit, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	files := make(map[string]string, len(parentFiles))
	for p, b := range parentFiles {
		files[p] = b
	}
	return &Commit{
		V:         1,
		Message:   message,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Parent:    FormatCID(parent),
		Files:     files,
	}, nil
}

// ParentCID returns the primary parent, if any.
func (c *Commit) ParentCID() (gocid.Cid, bool) {
	return parseOptionalCID(c.Parent)
}

// MergeParentCID returns the merge parent, if any.
func (c *Commit) MergeParentCID() (gocid.Cid, bool) {
	return parseOptionalCID(c.MergeParent)
}

// FileCID returns the blob CID tracked at path, if the commit tracks it.
func (c *Commit) FileCID(path string) (gocid.Cid, bool) {
	return parseOptionalCID(c.Files[path])
}

func parseOptionalCID(s string) (gocid.Cid, bool) {
	if s == "" {
		return gocid.Undef, false
	}
	parsed, err := ParseCID(s)
	if err != nil {
		return gocid.Undef, false
	}
	return parsed, true
}

// EncodeCommit serializes c canonically; the commit's id is the dag-json
// CID of exactly these bytes.
func EncodeCommit(c *Commit) ([]byte, error) {
	data, err := canonicalJSON(c)
	if err != nil {
		return nil, fmt.Errorf("serialize commit: %w", err)
	}
	return data, nil
}

// DecodeCommit is the inverse of EncodeCommit.
func DecodeCommit(data []byte) (*Commit, error) {
	var c Commit
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal commit: %w", err)
	}
	if c.Files == nil {
		c.Files = map[string]string{}
	}
	return &c, nil
}

// canonicalJSON produces a deterministic JSON encoding with sorted object
// keys, independent of struct field order or map iteration order.
func canonicalJSON(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeCanonical(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v interface{}) error {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyBytes, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(keyBytes)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []interface{}:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
}
