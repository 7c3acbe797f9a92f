// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package histstore persists the shell's command history in a bbolt
// database. Commands are stored under monotonically increasing
// sequence numbers (big-endian uint64 keys), so iteration order is
// submission order and appends never rewrite existing entries.
package histstore

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// bucketCommands holds one entry per submitted command line, keyed by
// sequence number.
const bucketCommands = "commands"

// openTimeout bounds how long Open waits for the file lock. A second
// stacks process holding the database open would otherwise block
// startup indefinitely.
const openTimeout = time.Second

// Store is a persistent command history backed by a single bbolt file.
// Safe for concurrent use; bbolt serializes writers internally.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the history database at the given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening history database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCommands))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history database %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file.
func (store *Store) Close() error {
	return store.db.Close()
}

// Add appends a command line to the history and returns its sequence
// number.
func (store *Store) Add(line string) (int, error) {
	var seq uint64
	err := store.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketCommands))
		var err error
		seq, err = bucket.NextSequence()
		if err != nil {
			return err
		}
		return bucket.Put(marshalSeq(seq), []byte(line))
	})
	if err != nil {
		return 0, fmt.Errorf("appending history entry: %w", err)
	}
	return int(seq), nil
}

// Recent returns up to limit of the most recent command lines, oldest
// first, ready to preload a new session's history.
func (store *Store) Recent(limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}

	var lines []string
	err := store.db.View(func(tx *bolt.Tx) error {
		cursor := tx.Bucket([]byte(bucketCommands)).Cursor()
		for key, value := cursor.Last(); key != nil && len(lines) < limit; key, value = cursor.Prev() {
			lines = append(lines, string(value))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	// The cursor walked newest-to-oldest; flip to submission order.
	for left, right := 0, len(lines)-1; left < right; left, right = left+1, right-1 {
		lines[left], lines[right] = lines[right], lines[left]
	}
	return lines, nil
}

// NextSeq returns the sequence number the next Add will use.
func (store *Store) NextSeq() (int, error) {
	var seq uint64
	err := store.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketCommands)).Sequence() + 1
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("reading history sequence: %w", err)
	}
	return int(seq), nil
}

func marshalSeq(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
