package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lox/pokerequity/internal/matchup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	bs, err := OpenBolt(filepath.Join(t.TempDir(), "matchups.db"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"bolt":   bs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := matchup.MustParse("6♠ 6♥ 5♦ 5♣")
	other := matchup.MustParse("As Ks Qh Qd")
	rec := Record{Matchup: m, HigherWins: 1365284, LowerWins: 314904, Ties: 32116}

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			has, err := s.Has(ctx, m)
			require.NoError(t, err)
			assert.False(t, has)

			_, err = s.Get(ctx, m)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, rec))
			has, err = s.Has(ctx, m)
			require.NoError(t, err)
			assert.True(t, has)

			got, err := s.Get(ctx, m)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
			assert.Equal(t, uint64(1712304), got.Total())

			has, err = s.Has(ctx, other)
			require.NoError(t, err)
			assert.False(t, has)

			// Overwrite keeps one row per matchup.
			rec2 := rec
			rec2.Ties = 1
			require.NoError(t, s.Put(ctx, rec2))
			n, err := s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestBoltPersistsAcrossOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "matchups.db")
	m := matchup.MustParse("Ah Kh Qc Qd")

	s, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, Record{Matchup: m, HigherWins: 7, LowerWins: 8, Ties: 9}))
	require.NoError(t, s.Close())

	s, err = OpenBolt(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, Record{Matchup: m, HigherWins: 7, LowerWins: 8, Ties: 9}, got)

	var seen []string
	require.NoError(t, s.ForEach(ctx, func(r Record) error {
		seen = append(seen, r.Matchup.ID())
		return nil
	}))
	assert.Equal(t, []string{"AhKh|QdQc"}, seen)
}

func TestRecordEncoding(t *testing.T) {
	t.Parallel()
	m := matchup.MustParse("As Ks Qh Qd")
	rec := Record{Matchup: m, HigherWins: 1 << 40, LowerWins: 2, Ties: 3}
	buf := rec.encode()
	require.Len(t, buf, recordSize)
	assert.Equal(t, byte(1), buf[2], "big-endian high bytes first")

	got, err := decodeRecord([]byte(m.ID()), buf)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = decodeRecord([]byte(m.ID()), buf[:8])
	assert.Error(t, err)
	_, err = decodeRecord([]byte("garbage"), buf)
	assert.Error(t, err)
}

func TestClosedMemoryStore(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	require.NoError(t, s.Close())
	_, err := s.Has(context.Background(), matchup.MustParse("As Ks Qh Qd"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Put(context.Background(), Record{}), ErrClosed)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := OpenBolt(filepath.Join(t.TempDir(), "matchups.db"))
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Has(ctx, matchup.MustParse("As Ks Qh Qd"))
	assert.ErrorIs(t, err, context.Canceled)
}
