// Package store caches fetched datasets in a bbolt database so a language can
// still be loaded when its source is unreachable.
//
// Records are kept MessagePack-encoded in the "records" bucket, keyed by the
// source they were fetched from; the "meta" bucket holds a JSON summary per source.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	bolt "go.etcd.io/bbolt"

	"github.com/bastiangx/traductor/internal/logger"
	"github.com/bastiangx/traductor/internal/utils"
	"github.com/bastiangx/traductor/pkg/dictionary"
)

var (
	bucketRecords = []byte("records")
	bucketMeta    = []byte("meta")
)

// Entry summarizes one cached dataset.
type Entry struct {
	Source  string    `json:"source"`
	Records int       `json:"records"`
	Bytes   int       `json:"bytes"`
	SavedAt time.Time `json:"saved_at"`
}

// Store is the bbolt-backed dataset cache.
type Store struct {
	db   *bolt.DB
	path string
	log  *log.Logger
}

// NewStore opens (or creates) the cache database at path.
func NewStore(path string) (*Store, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketRecords, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Store{db: db, path: path, log: logger.New("store")}, nil
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRecords replaces the cached copy of source.
func (s *Store) SaveRecords(source string, records []dictionary.Record) error {
	var buf bytes.Buffer
	if err := dictionary.EncodeMsgpack(&buf, records); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	meta, err := json.Marshal(Entry{
		Source:  source,
		Records: len(records),
		Bytes:   buf.Len(),
		SavedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketRecords).Put([]byte(source), buf.Bytes()); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put([]byte(source), meta)
	})
	if err != nil {
		return err
	}
	s.log.Debugf("Cached %s: %d records, %s bytes", source, len(records), utils.FormatWithCommas(buf.Len()))
	return nil
}

// Records returns the cached records of source. ok is false when nothing is cached.
func (s *Store) Records(source string) ([]dictionary.Record, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// copy out: bbolt slices are only valid within the transaction
		if v := tx.Bucket(bucketRecords).Get([]byte(source)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, false, err
	}

	records, err := dictionary.Decode(bytes.NewReader(data), dictionary.FormatMsgpack)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached %s: %w", source, err)
	}
	return records, true, nil
}

// List returns every cached dataset ordered by source.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMeta).ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				s.log.Warnf("Skipping unreadable cache entry %s: %v", k, err)
				return nil
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Source < entries[j].Source })
	return entries, nil
}

// Delete removes the cached copy of source. Deleting a missing source is not an error.
func (s *Store) Delete(source string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketRecords).Delete([]byte(source)); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Delete([]byte(source))
	})
}

// Clear removes every cached dataset and returns how many were dropped.
func (s *Store) Clear() (int, error) {
	n := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketMeta).Stats().KeyN
		for _, name := range [][]byte{bucketRecords, bucketMeta} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
	return n, err
}
