// Package rankcache maps card sets to their precomputed hand values. A
// cache is built once, frozen behind a minimal perfect hash and then only
// read, so any number of goroutines may share it without locking.
package rankcache

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/lox/pokerequity/poker"
	"github.com/opencoff/go-chd"
)

var (
	// ErrMiss is returned when the cache was not built for a card set.
	ErrMiss = errors.New("rank cache miss")
	// ErrInvalidEntry is returned for entries that cannot be cached.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// hashLoad is the CHD load factor used when freezing.
const hashLoad = 0.9

// Entry is one cached card set: its key, the winning five cards and their
// value. Key and Best use the poker.Bard encoding.
type Entry struct {
	Key   poker.Bard
	Best  poker.Bard
	Value poker.HandRankValue
}

// Validate checks the entry's internal consistency.
func (e Entry) Validate() error {
	n := e.Key.Count()
	switch {
	case !e.Key.Valid() || (n != 5 && n != 7):
		return fmt.Errorf("%w: key %s holds %d cards", ErrInvalidEntry, e.Key, n)
	case e.Best.Count() != 5 || e.Best&^e.Key != 0:
		return fmt.Errorf("%w: best %s is not five cards of %s", ErrInvalidEntry, e.Best, e.Key)
	case !e.Value.Valid():
		return fmt.Errorf("%w: value %d out of range", ErrInvalidEntry, e.Value)
	}
	return nil
}

// Builder collects entries before freezing. It is not safe for
// concurrent use.
type Builder struct {
	entries map[poker.Bard]Entry
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[poker.Bard]Entry)}
}

// Add inserts an entry. Adding the same key twice keeps the later entry.
func (b *Builder) Add(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	b.entries[e.Key] = e
	return nil
}

// Len returns the number of distinct keys added so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Freeze builds the perfect hash and returns the immutable cache.
func (b *Builder) Freeze() (*Cache, error) {
	c := &Cache{size: len(b.entries)}
	for k := range b.entries {
		c.bySize[k.Count()]++
	}
	if len(b.entries) == 0 {
		return c, nil
	}

	hb, err := chd.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create hash builder: %w", err)
	}
	keys := make([]poker.Bard, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := hb.Add(uint64(k)); err != nil {
			return nil, fmt.Errorf("failed to add key %d: %w", k, err)
		}
	}
	mph, err := hb.Freeze(hashLoad)
	if err != nil {
		return nil, fmt.Errorf("failed to freeze hash: %w", err)
	}

	slots := make([]uint64, len(keys))
	var top uint64
	for i, k := range keys {
		slots[i] = mph.Find(uint64(k))
		top = max(top, slots[i])
	}
	c.mph = mph
	c.entries = make([]Entry, top+1)
	for i, k := range keys {
		if c.entries[slots[i]].Key != 0 {
			return nil, fmt.Errorf("hash collision between %d and %d", c.entries[slots[i]].Key, k)
		}
		c.entries[slots[i]] = b.entries[k]
	}
	return c, nil
}

// Cache is a frozen, read-only mapping from card set to Entry.
type Cache struct {
	mph     *chd.Chd
	entries []Entry
	size    int
	bySize  [8]int
}

// Len returns the number of cached card sets.
func (c *Cache) Len() int {
	return c.size
}

// Holds returns the number of cached sets of n cards.
func (c *Cache) Holds(n int) int {
	if n < 0 || n >= len(c.bySize) {
		return 0
	}
	return c.bySize[n]
}

// Lookup returns the entry for key with one hash lookup.
func (c *Cache) Lookup(key poker.Bard) (Entry, bool) {
	if c.mph == nil || key == 0 {
		return Entry{}, false
	}
	i := c.mph.Find(uint64(key))
	if i >= uint64(len(c.entries)) || c.entries[i].Key != key {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Get is Lookup returning ErrMiss for absent keys.
func (c *Cache) Get(key poker.Bard) (Entry, error) {
	e, ok := c.Lookup(key)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrMiss, key)
	}
	return e, nil
}

// Entries returns every entry ordered by key.
func (c *Cache) Entries() []Entry {
	out := make([]Entry, 0, c.size)
	for _, e := range c.entries {
		if e.Key != 0 {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b Entry) int { return cmp.Compare(a.Key, b.Key) })
	return out
}
