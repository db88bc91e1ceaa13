// Package store persists enumerated matchup results keyed by the matchup
// identifier.
package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/lox/pokerequity/internal/matchup"
)

var (
	// ErrNotFound is returned by Get for matchups with no stored result.
	ErrNotFound = errors.New("matchup not stored")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store closed")
)

// Record is the enumerated outcome of one matchup.
type Record struct {
	Matchup    matchup.SortedHeadsUp
	HigherWins uint64
	LowerWins  uint64
	Ties       uint64
}

// Total returns the number of boards counted.
func (r Record) Total() uint64 {
	return r.HigherWins + r.LowerWins + r.Ties
}

const recordSize = 24

func (r Record) encode() []byte {
	buf := make([]byte, recordSize)
	binary.BigEndian.PutUint64(buf[0:], r.HigherWins)
	binary.BigEndian.PutUint64(buf[8:], r.LowerWins)
	binary.BigEndian.PutUint64(buf[16:], r.Ties)
	return buf
}

func decodeRecord(key, value []byte) (Record, error) {
	if len(value) != recordSize {
		return Record{}, fmt.Errorf("record %q has %d bytes, want %d", key, len(value), recordSize)
	}
	m, err := matchup.Parse(string(key))
	if err != nil {
		return Record{}, fmt.Errorf("record key %q: %w", key, err)
	}
	return Record{
		Matchup:    m,
		HigherWins: binary.BigEndian.Uint64(value[0:]),
		LowerWins:  binary.BigEndian.Uint64(value[8:]),
		Ties:       binary.BigEndian.Uint64(value[16:]),
	}, nil
}

// Store is the persistence collaborator of the batch runner.
type Store interface {
	Has(ctx context.Context, m matchup.SortedHeadsUp) (bool, error)
	Get(ctx context.Context, m matchup.SortedHeadsUp) (Record, error)
	Put(ctx context.Context, r Record) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// MemoryStore keeps records in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	closed  bool
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Has(_ context.Context, m matchup.SortedHeadsUp) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, ErrClosed
	}
	_, ok := s.records[m.ID()]
	return ok, nil
}

func (s *MemoryStore) Get(_ context.Context, m matchup.SortedHeadsUp) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Record{}, ErrClosed
	}
	r, ok := s.records[m.ID()]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, m.ID())
	}
	return r, nil
}

func (s *MemoryStore) Put(_ context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.records[r.Matchup.ID()] = r
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	return len(s.records), nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
