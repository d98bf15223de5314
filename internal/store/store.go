// Package store provides the index backends for the content engine.
//
// A Store combines two capabilities: ranked full-text lookup over the
// title and body fields, and directed-edge storage for the mentions
// graph. Two interchangeable implementations exist: BleveStore (embedded,
// in-process, the default and the one used in tests) and SQLiteStore
// (FTS5, with a real SQL surface for raw queries). The backend is chosen
// once at construction time and never swapped afterwards.
//
// Stores are build-once, read-many: IndexDocuments and AddEdges run
// exactly once during ingestion, before any concurrent reader exists.
package store

import (
	"context"
	"errors"

	"github.com/Chemchu/guslee/internal/config"
	"github.com/Chemchu/guslee/internal/garden"
)

// ErrRawQueryUnsupported is returned by backends without a query language.
var ErrRawQueryUnsupported = errors.New("store: raw queries are not supported by this backend")

// Hit is a single ranked search match. Score is the combined weighted
// title/body relevance and is always non-negative.
type Hit struct {
	FilePath string
	Score    float64
}

// Store is the capability set required by the engine: ranked full-text
// lookup plus directed-edge storage and traversal.
type Store interface {
	// IndexDocuments adds documents to the text index.
	IndexDocuments(ctx context.Context, docs []*garden.Document) error

	// AddEdges records directed mentions edges.
	AddEdges(ctx context.Context, edges []garden.Edge) error

	// Search returns up to limit documents matching query, ordered by
	// combined weighted score descending.
	Search(ctx context.Context, query string, limit int) ([]Hit, error)

	// EdgesFrom returns the edges whose source is the given document
	// path, in insertion order.
	EdgesFrom(ctx context.Context, source string) ([]garden.Edge, error)

	// AllEdges returns every edge in insertion order.
	AllEdges(ctx context.Context) ([]garden.Edge, error)

	// RawQuery executes a backend-native read query and returns the
	// result rows as a JSON array. Backends without a query language
	// return ErrRawQueryUnsupported.
	RawQuery(ctx context.Context, query string) ([]byte, error)

	// DocCount returns the number of indexed documents.
	DocCount(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// New creates the store selected by cfg.Search.Backend.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Search.Backend {
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.Search.TitleWeight, cfg.Search.BodyWeight)
	default:
		return NewBleveStore(cfg.Search.TitleWeight, cfg.Search.BodyWeight)
	}
}
