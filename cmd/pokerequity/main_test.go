package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGlobalsDefaults(t *testing.T) {
	t.Parallel()
	g, err := loadGlobals(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "matchups.db", g.Config.Store.Path)
	assert.Equal(t, log.InfoLevel, g.Logger.GetLevel())
}

func TestLoadGlobalsFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pokerequity.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
log {
  level  = "debug"
  format = "json"
}
`), 0o644))

	g, err := loadGlobals(path)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, g.Logger.GetLevel())
}

func TestLoadGlobalsRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pokerequity.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
log {
  format = "xml"
}
`), 0o644))

	_, err := loadGlobals(path)
	assert.ErrorContains(t, err, "invalid log format")
}

func TestBatchInput(t *testing.T) {
	t.Parallel()
	c := BatchCmd{Matchups: []string{"QhQd|AsKs", "2c2d|3c3d"}}
	seq, err := c.input()
	require.NoError(t, err)

	var ids []string
	for m := range seq {
		ids = append(ids, m.ID())
	}
	assert.Equal(t, []string{"AsKs|QhQd", "3d3c|2d2c"}, ids)

	c.Matchups = []string{"AsKs|AsQd"}
	_, err = c.input()
	assert.Error(t, err)
}

func TestBatchInputDefaultsToUniverse(t *testing.T) {
	t.Parallel()
	seq, err := (&BatchCmd{}).input()
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 10 {
			break
		}
	}
	assert.Equal(t, 10, n)
}
