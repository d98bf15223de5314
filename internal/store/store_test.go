package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chemchu/guslee/internal/config"
	"github.com/Chemchu/guslee/internal/garden"
)

func testDoc(filePath, title, body string) *garden.Document {
	return &garden.Document{
		FileName: filePath,
		FilePath: filePath,
		Metadata: garden.Metadata{Title: title},
		Content:  body,
	}
}

// eachStore runs fn against every backend so both implementations are held
// to the same contract.
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()

	backends := map[string]func() (Store, error){
		"bleve":  func() (Store, error) { return NewBleveStore(2.0, 1.0) },
		"sqlite": func() (Store, error) { return NewSQLiteStore(2.0, 1.0) },
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			s, err := newStore()
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			fn(t, s)
		})
	}
}

func TestSearch_TitleMatchOutranksBodyMatch(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		docs := []*garden.Document{
			testDoc("a.md", "Hello from Dublin", "nothing relevant here"),
			testDoc("b.md", "Unrelated title", "hello appears only in the body text"),
		}
		require.NoError(t, s.IndexDocuments(ctx, docs))

		hits, err := s.Search(ctx, "hello", 10)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "a.md", hits[0].FilePath)
		assert.Greater(t, hits[0].Score, hits[1].Score)
	})
}

func TestSearch_PrefixMatches(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.IndexDocuments(ctx, []*garden.Document{
			testDoc("garden_styling.md", "Garden Styling", "styling the garden"),
		}))

		hits, err := s.Search(ctx, "gard", 10)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "garden_styling.md", hits[0].FilePath)
	})
}

func TestSearch_WholeWordLongerThanMaxGram(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.IndexDocuments(ctx, []*garden.Document{
			testDoc("i18n.md", "Internationalization Notes",
				"notes about internationalization in practice"),
		}))

		// 20 runes, well past the prefix expansion window; the exact
		// whole-word query must still hit.
		hits, err := s.Search(ctx, "internationalization", 10)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "i18n.md", hits[0].FilePath)
	})
}

func TestSearch_CaseInsensitive(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.IndexDocuments(ctx, []*garden.Document{
			testDoc("a.md", "Kilbarrack", "a place"),
		}))

		hits, err := s.Search(ctx, "KILBARRACK", 10)
		require.NoError(t, err)
		require.Len(t, hits, 1)
	})
}

func TestSearch_RespectsLimit(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		docs := []*garden.Document{
			testDoc("a.md", "walk one", "walking"),
			testDoc("b.md", "walk two", "walking"),
			testDoc("c.md", "walk three", "walking"),
		}
		require.NoError(t, s.IndexDocuments(ctx, docs))

		hits, err := s.Search(ctx, "walk", 2)
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	})
}

func TestSearch_EmptyQueryReturnsNoHits(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.IndexDocuments(ctx, []*garden.Document{
			testDoc("a.md", "Anything", "body"),
		}))

		for _, q := range []string{"", "   ", "()"} {
			hits, err := s.Search(ctx, q, 10)
			require.NoError(t, err)
			assert.Empty(t, hits, "query %q", q)
		}
	})
}

func TestSearch_OperatorLookingInputDoesNotFail(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.IndexDocuments(ctx, []*garden.Document{
			testDoc("a.md", "Anything", "body"),
		}))

		for _, q := range []string{`hello AND (`, `"unclosed`, `NEAR/3 nope`} {
			_, err := s.Search(ctx, q, 10)
			assert.NoError(t, err, "query %q", q)
		}
	})
}

func TestSearch_ZeroHitsIsEmptyNotNilError(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.IndexDocuments(ctx, []*garden.Document{
			testDoc("a.md", "Anything", "body"),
		}))

		hits, err := s.Search(ctx, "zzzzxyzzy", 10)
		require.NoError(t, err)
		assert.NotNil(t, hits)
		assert.Empty(t, hits)
	})
}

func TestEdges_InsertionOrderAndTraversal(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		edges := []garden.Edge{
			{Source: "c.md", Target: "b.md", Relation: garden.RelationMentions},
			{Source: "c.md", Target: "a.md", Relation: garden.RelationMentions},
			{Source: "a.md", Target: "b.md", Relation: garden.RelationMentions},
		}
		require.NoError(t, s.AddEdges(ctx, edges))

		fromC, err := s.EdgesFrom(ctx, "c.md")
		require.NoError(t, err)
		require.Len(t, fromC, 2)
		assert.Equal(t, "b.md", fromC[0].Target)
		assert.Equal(t, "a.md", fromC[1].Target)

		fromUnknown, err := s.EdgesFrom(ctx, "zzz.md")
		require.NoError(t, err)
		assert.Empty(t, fromUnknown)

		all, err := s.AllEdges(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestDocCount(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		count, err := s.DocCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		require.NoError(t, s.IndexDocuments(ctx, []*garden.Document{
			testDoc("a.md", "A", "body"),
			testDoc("b.md", "B", "body"),
		}))

		count, err = s.DocCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestRawQuery_BleveUnsupported(t *testing.T) {
	s, err := NewBleveStore(2.0, 1.0)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.RawQuery(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrRawQueryUnsupported)
}

func TestRawQuery_SQLiteReturnsJSONRows(t *testing.T) {
	s, err := NewSQLiteStore(2.0, 1.0)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.IndexDocuments(ctx, []*garden.Document{
		testDoc("b.md", "Beta", "body"),
		testDoc("a.md", "Alpha", "body"),
	}))

	data, err := s.RawQuery(ctx, `SELECT file_path, title FROM documents ORDER BY file_path`)
	require.NoError(t, err)

	var rows []struct {
		FilePath string `json:"file_path"`
		Title    string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "a.md", rows[0].FilePath)
	assert.Equal(t, "Alpha", rows[0].Title)
}

func TestRawQuery_SQLiteBadSQLFails(t *testing.T) {
	s, err := NewSQLiteStore(2.0, 1.0)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.RawQuery(context.Background(), "SELECT FROM nothing WHERE")
	assert.Error(t, err)
}

func TestNew_SelectsBackendFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	s, err := New(cfg)
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, (*BleveStore)(nil), s)

	cfg.Search.Backend = config.BackendSQLite
	s2, err := New(cfg)
	require.NoError(t, err)
	defer s2.Close()
	assert.IsType(t, (*SQLiteStore)(nil), s2)
}

func TestBuildMatchExpression(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"hello", `"hello"*`},
		{"Hello World", `"hello"* OR "world"*`},
		{"c'est la vie", `"c"* OR "est"* OR "la"* OR "vie"*`},
		{"", ""},
		{"()", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expect, buildMatchExpression(tt.input))
		})
	}
}
