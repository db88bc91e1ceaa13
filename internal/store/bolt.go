package store

import (
	"context"
	"fmt"
	"time"

	"github.com/lox/pokerequity/internal/matchup"
	bolt "go.etcd.io/bbolt"
)

var matchupsBucket = []byte("matchups")

// BoltStore keeps records in a bbolt file, one bucket keyed by matchup ID
// with a fixed 24 byte big-endian value.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(matchupsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Has(ctx context.Context, m matchup.SortedHeadsUp) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(matchupsBucket).Get([]byte(m.ID())) != nil
		return nil
	})
	return found, err
}

func (s *BoltStore) Get(ctx context.Context, m matchup.SortedHeadsUp) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	var rec Record
	err := s.db.View(func(tx *bolt.Tx) error {
		key := []byte(m.ID())
		v := tx.Bucket(matchupsBucket).Get(key)
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, m.ID())
		}
		var err error
		rec, err = decodeRecord(key, v)
		return err
	})
	return rec, err
}

func (s *BoltStore) Put(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(matchupsBucket).Put([]byte(r.Matchup.ID()), r.encode())
	})
}

func (s *BoltStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(matchupsBucket).Stats().KeyN
		return nil
	})
	return n, err
}

// ForEach calls fn for every stored record in key order.
func (s *BoltStore) ForEach(ctx context.Context, fn func(Record) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(matchupsBucket).ForEach(func(k, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := decodeRecord(k, v)
			if err != nil {
				return err
			}
			return fn(rec)
		})
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
