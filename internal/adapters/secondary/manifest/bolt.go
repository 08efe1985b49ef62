package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

var bucketBuilds = []byte("builds")

// BoltStore keeps build records in a bbolt database, one key per document id
type BoltStore struct {
	db *bolt.DB
}

// Open opens (creating if needed) the manifest database at path
func Open(path string) (*BoltStore, error) {
	if path == "" {
		return nil, errors.New("manifest: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("manifest: creating directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("manifest: opening %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBuilds)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("manifest: initializing buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Put stores the record, replacing any previous one for the same id
func (s *BoltStore) Put(ctx context.Context, record entities.BuildRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.ID == "" {
		return errors.New("manifest: record id cannot be empty")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("manifest: encoding %s: %w", record.ID, err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBuilds).Put([]byte(record.ID), data)
	})
}

// Get returns the record for id, or nil when none exists
func (s *BoltStore) Get(ctx context.Context, id string) (*entities.BuildRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record *entities.BuildRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketBuilds).Get([]byte(id))
		if data == nil {
			return nil
		}
		record = &entities.BuildRecord{}
		return json.Unmarshal(data, record)
	})
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", id, err)
	}
	return record, nil
}

// List returns every record ordered by id
func (s *BoltStore) List(ctx context.Context) ([]entities.BuildRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []entities.BuildRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBuilds).ForEach(func(k, v []byte) error {
			var r entities.BuildRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("decoding %s: %w", k, err)
			}
			records = append(records, r)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("manifest: listing: %w", err)
	}
	return records, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ensure BoltStore implements ports.ManifestStore
var _ ports.ManifestStore = (*BoltStore)(nil)
