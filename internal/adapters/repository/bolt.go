package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/pkg/metrics"
)

const defaultBucket = "incentivo"

// Keys inside the bucket. Each value is one JSON document.
var (
	keyEmployees = []byte("incentivo_employees")
	keyTasks     = []byte("incentivo_tasks")
	keyNotes     = []byte("incentivo_notes")
)

// BoltStore persists state in a bbolt database file.
type BoltStore struct {
	mu     sync.RWMutex
	db     *bolt.DB
	bucket []byte
}

// OpenBolt opens (or creates) the database at path.
func OpenBolt(path string, opts ...Option) (*BoltStore, error) {
	o := boltOptions{timeout: defaultOpenTimeout, bucket: defaultBucket}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: o.timeout})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}

	s := &BoltStore{db: db, bucket: []byte(o.bucket)}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create bucket: %w", ErrOpen, err)
	}
	return s, nil
}

func (s *BoltStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	out := []model.Employee{}
	err := s.read(ctx, opListEmployees, keyEmployees, &out)
	if err != nil {
		return nil, err
	}
	return nonNilEmployees(out), nil
}

func (s *BoltStore) SaveEmployees(ctx context.Context, employees []model.Employee) error {
	return s.write(ctx, opSaveEmployees, keyEmployees, nonNilEmployees(employees))
}

func (s *BoltStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	out := []model.Task{}
	err := s.read(ctx, opListTasks, keyTasks, &out)
	if err != nil {
		return nil, err
	}
	return nonNilTasks(out), nil
}

func (s *BoltStore) SaveTasks(ctx context.Context, tasks []model.Task) error {
	return s.write(ctx, opSaveTasks, keyTasks, nonNilTasks(tasks))
}

func (s *BoltStore) Notes(ctx context.Context) (string, error) {
	var notes string
	if err := s.read(ctx, opNotes, keyNotes, &notes); err != nil {
		return "", err
	}
	return notes, nil
}

func (s *BoltStore) SaveNotes(ctx context.Context, notes string) error {
	return s.write(ctx, opSaveNotes, keyNotes, notes)
}

// Close closes the database file.
func (s *BoltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// read decodes the value at key into dst. A missing key leaves dst untouched.
func (s *BoltStore) read(ctx context.Context, op string, key []byte, dst any) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(op, time.Since(start), err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(s.bucket).Get(key)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
		}
		return nil
	})
}

func (s *BoltStore) write(ctx context.Context, op string, key []byte, v any) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(op, time.Since(start), err) }()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(key, data)
	})
}
