package rankcache

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lox/pokerequity/internal/fileutil"
	"github.com/lox/pokerequity/poker"
)

// ErrFormat is returned when persisted cache data cannot be read back.
var ErrFormat = errors.New("malformed rank cache data")

var csvHeader = []string{"bard", "best", "value"}

// Persist writes the cache as CSV with header bard,best,value; each
// column is an unsigned decimal. Rows are ordered by key.
func (c *Cache) Persist(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, 3)
	for _, e := range c.Entries() {
		row[0] = strconv.FormatUint(uint64(e.Key), 10)
		row[1] = strconv.FormatUint(uint64(e.Best), 10)
		row[2] = strconv.FormatUint(uint64(e.Value), 10)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads a cache written by Persist.
func Load(r io.Reader) (*Cache, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrFormat, err)
	}
	for i, h := range csvHeader {
		if header[i] != h {
			return nil, fmt.Errorf("%w: unexpected header %q", ErrFormat, header)
		}
	}

	b := NewBuilder()
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
		e, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
		}
		if err := b.Add(e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return b.Freeze()
}

func parseRow(rec []string) (Entry, error) {
	key, err := strconv.ParseUint(rec[0], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("bard: %w", err)
	}
	best, err := strconv.ParseUint(rec[1], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("best: %w", err)
	}
	value, err := strconv.ParseUint(rec[2], 10, 16)
	if err != nil {
		return Entry{}, fmt.Errorf("value: %w", err)
	}
	return Entry{Key: poker.Bard(key), Best: poker.Bard(best), Value: poker.HandRankValue(value)}, nil
}

// SaveFile persists the cache to path atomically.
func (c *Cache) SaveFile(path string) error {
	return fileutil.WriteAtomic(path, 0o644, c.Persist)
}

// LoadFile loads a cache from path.
func LoadFile(path string) (*Cache, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rank cache: %w", err)
	}
	defer f.Close()
	return Load(f)
}
