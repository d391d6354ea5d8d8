package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const runBucket = "runs"

// boltStore implements a Store backed by BoltDB. Keys are big-endian unix
// nanos so a reverse cursor walk yields runs newest-first.
type boltStore struct {
	db      *bolt.DB
	maxRuns int
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{
		db:      db,
		maxRuns: opts.MaxRuns,
	}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// RecordRun appends a run entry and prunes the oldest entries beyond the
// retention cap.
func (b *boltStore) RecordRun(rec RunRecord) error {
	if b == nil || b.db == nil {
		return nil
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(runBucket))
		if bucket == nil {
			return fmt.Errorf("run bucket missing")
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, uint64(rec.RanAt.UnixNano()))
		if err := bucket.Put(key, payload); err != nil {
			return err
		}

		return pruneOldest(bucket, b.maxRuns)
	})
}

// LastRun returns the most recent run entry, if any.
func (b *boltStore) LastRun() (RunRecord, bool, error) {
	if b == nil || b.db == nil {
		return RunRecord{}, false, nil
	}

	var (
		rec   RunRecord
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(runBucket))
		if bucket == nil {
			return fmt.Errorf("run bucket missing")
		}

		_, value := bucket.Cursor().Last()
		if value == nil {
			return nil
		}
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("unmarshal run record: %w", err)
		}
		found = true
		return nil
	})
	return rec, found, err
}

// pruneOldest drops entries beyond max, oldest first. Counts via cursor walk
// since bucket stats lag uncommitted writes.
func pruneOldest(bucket *bolt.Bucket, max int) error {
	count := 0
	cursor := bucket.Cursor()
	for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
		count++
	}
	if count <= max {
		return nil
	}

	for k, _ := cursor.First(); k != nil && count > max; k, _ = cursor.Next() {
		if err := cursor.Delete(); err != nil {
			return err
		}
		count--
	}
	return nil
}
