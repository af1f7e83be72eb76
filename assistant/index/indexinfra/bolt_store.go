package indexinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Abraxas-365/resumegpt/assistant/document"
	"github.com/Abraxas-365/resumegpt/assistant/index"
	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const indexFileName = "index.db"

var (
	bucketMeta    = []byte("meta")
	bucketChunks  = []byte("chunks")
	bucketVectors = []byte("vectors")
	keyIndex      = []byte("index")
)

// BoltStore keeps one bbolt file per session under dir
type BoltStore struct {
	dir string
}

var _ index.Store = (*BoltStore)(nil)

func NewBoltStore(dir string) (*BoltStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create vector store dir %s: %w", dir, err)
	}
	return &BoltStore{dir: dir}, nil
}

func (s *BoltStore) path(id kernel.SessionID) string {
	return filepath.Join(s.dir, id.String(), indexFileName)
}

// Save writes the index to a fresh file and renames it over the previous one,
// so a concurrent Load sees either the old or the new index
func (s *BoltStore) Save(ctx context.Context, idx *index.Index) error {
	if !validSessionID(idx.SessionID) {
		return fmt.Errorf("invalid session id %q", idx.SessionID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	final := s.path(idx.SessionID)
	if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := final + ".tmp-" + uuid.NewString()

	if err := writeBolt(tmp, idx); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace index file: %w", err)
	}
	return nil
}

func writeBolt(path string, idx *index.Index) error {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		chunks, err := tx.CreateBucketIfNotExists(bucketChunks)
		if err != nil {
			return err
		}
		vectors, err := tx.CreateBucketIfNotExists(bucketVectors)
		if err != nil {
			return err
		}

		header, err := json.Marshal(idx)
		if err != nil {
			return err
		}
		if err := meta.Put(keyIndex, header); err != nil {
			return err
		}

		for _, e := range idx.Entries {
			key := seqKey(e.Chunk.Seq)
			raw, err := json.Marshal(e.Chunk)
			if err != nil {
				return err
			}
			if err := chunks.Put(key, raw); err != nil {
				return err
			}
			if err := vectors.Put(key, encodeVector(e.Vector)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("write index: %w", err)
	}

	// commits are fsynced, Close releases the file lock before the rename
	return db.Close()
}

func (s *BoltStore) Load(ctx context.Context, id kernel.SessionID) (*index.Index, error) {
	if !validSessionID(id) {
		return nil, index.ErrIndexNotFound().WithDetail("session_id", id)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.path(id)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, index.ErrIndexNotFound().WithDetail("session_id", id)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	var idx index.Index
	err = db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		chunks := tx.Bucket(bucketChunks)
		vectors := tx.Bucket(bucketVectors)
		if meta == nil || chunks == nil || vectors == nil {
			return errors.New("index file is missing buckets")
		}

		if err := json.Unmarshal(meta.Get(keyIndex), &idx); err != nil {
			return fmt.Errorf("decode index header: %w", err)
		}

		return chunks.ForEach(func(k, v []byte) error {
			var c document.Chunk
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("decode chunk: %w", err)
			}
			vec, err := decodeVector(vectors.Get(k))
			if err != nil {
				return fmt.Errorf("decode vector for chunk %s: %w", c.ID, err)
			}
			idx.Entries = append(idx.Entries, index.Entry{Chunk: c, Vector: vec})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return &idx, nil
}

func (s *BoltStore) Delete(_ context.Context, id kernel.SessionID) error {
	if !validSessionID(id) {
		return nil
	}
	return os.RemoveAll(filepath.Dir(s.path(id)))
}

func (s *BoltStore) Close() error { return nil }
