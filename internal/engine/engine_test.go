package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chemchu/guslee/internal/config"
	gerrors "github.com/Chemchu/guslee/internal/errors"
)

// newTestEngine builds an engine over a temp garden. mutate tweaks the
// config before construction.
func newTestEngine(t *testing.T, files map[string]string, mutate func(*config.Config)) *Engine {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := config.DefaultConfig()
	cfg.Garden.Dir = root
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	e, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func gardenFixture() map[string]string {
	return map[string]string{
		"welcome.md": "---\ntitle: Welcome\ntopic: meta\n---\nhello and welcome to the garden\n",
		"hello.md":   "---\ntitle: Hello\n---\nhello appears in this body only\n",
		"dublin.md":  "---\ntitle: Dublin Walks\ntags: [ireland]\ndate: \"2024-05-01\"\n---\nwalking around [the welcome page](welcome.md)\n",
	}
}

func TestNew_MissingRootFails(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Garden.Dir = filepath.Join(t.TempDir(), "absent")

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, gerrors.IsFatal(err))
}

func TestMustNew_PanicsOnMissingRoot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Garden.Dir = filepath.Join(t.TempDir(), "absent")

	assert.Panics(t, func() {
		MustNew(context.Background(), cfg)
	})
}

func TestGetDocument_RoundTripsFrontMatter(t *testing.T) {
	e := newTestEngine(t, gardenFixture(), nil)

	doc, err := e.GetDocument("dublin.md")
	require.NoError(t, err)
	assert.Equal(t, "Dublin Walks", doc.Metadata.Title)
	assert.Equal(t, []string{"ireland"}, doc.Metadata.Tags)
	assert.Equal(t, "2024-05-01", doc.Metadata.Date)
	assert.Equal(t, "dublin.md", doc.FilePath)
	assert.Equal(t, "dublin.md", doc.FileName)
}

func TestGetDocument_UnknownPathIsNotFound(t *testing.T) {
	e := newTestEngine(t, gardenFixture(), nil)

	_, err := e.GetDocument("missing.md")
	require.Error(t, err)
	assert.True(t, gerrors.IsNotFound(err))
}

func TestSearchOrdered_PreservesOrderAndDropsMissing(t *testing.T) {
	e := newTestEngine(t, gardenFixture(), nil)

	result := e.SearchOrdered([]string{"hello.md", "ghost.md", "welcome.md"})
	require.Len(t, result.MatchingFiles, 2)
	assert.Equal(t, "hello.md", result.MatchingFiles[0].FilePath)
	assert.Equal(t, "welcome.md", result.MatchingFiles[1].FilePath)
}

func TestAllDocuments_CuratedFirstThenRemaining(t *testing.T) {
	e := newTestEngine(t, gardenFixture(), func(cfg *config.Config) {
		cfg.Garden.DefaultDocuments = []string{"hello.md", "missing.md", "welcome.md"}
	})

	result := e.AllDocuments()
	require.Len(t, result.MatchingFiles, 3)
	assert.Equal(t, "hello.md", result.MatchingFiles[0].FilePath)
	assert.Equal(t, "welcome.md", result.MatchingFiles[1].FilePath)
	assert.Equal(t, "dublin.md", result.MatchingFiles[2].FilePath)
}

func TestStats(t *testing.T) {
	e := newTestEngine(t, gardenFixture(), nil)

	stats := e.Stats()
	assert.Equal(t, 3, stats.Documents)
	assert.Equal(t, 1, stats.Edges) // dublin.md -> welcome.md
	assert.Equal(t, 0, stats.CacheEntries)
	assert.EqualValues(t, 0, stats.SearchesExecuted)
}

func TestMatchingFile_TitleFallsBackToFileName(t *testing.T) {
	e := newTestEngine(t, map[string]string{
		"untitled.md": "no front matter at all\n",
	}, nil)

	result := e.SearchOrdered([]string{"untitled.md"})
	require.Len(t, result.MatchingFiles, 1)
	assert.Equal(t, "untitled", result.MatchingFiles[0].Title)
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		expect int
	}{
		{"nil uses default", nil, 100},
		{"int", 25, 25},
		{"int64", int64(7), 7},
		{"whole float (json number)", float64(12), 12},
		{"fractional float falls back", 12.5, 100},
		{"numeric string", "33", 33},
		{"padded numeric string", " 33 ", 33},
		{"word string falls back", "ten", 100},
		{"zero falls back", 0, 100},
		{"negative falls back", -5, 100},
		{"bool falls back", true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, normalizeLimit(tt.input, 100))
		})
	}
}
