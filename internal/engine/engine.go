// Package engine is the content index and relationship engine.
//
// An Engine ingests a document tree exactly once at construction, builds
// the ranked text index and the mentions graph, and then serves concurrent
// read-only queries for its whole lifetime. The document store, index and
// edge set are immutable after construction; the LRU result cache is the
// only mutable state on the query path.
package engine

import (
	"context"
	"log/slog"
	"path"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Chemchu/guslee/internal/config"
	gerrors "github.com/Chemchu/guslee/internal/errors"
	"github.com/Chemchu/guslee/internal/garden"
	"github.com/Chemchu/guslee/internal/store"
)

// Engine is constructed once at startup and shared by reference across
// all request handlers.
type Engine struct {
	cfg   *config.Config
	store store.Store

	// docs and order never change after New returns.
	docs  map[string]*garden.Document
	order []string

	cache *lru.Cache[string, SearchResult]

	// searchesExecuted counts ranked index queries (cache misses); cache
	// hits do not increment it.
	searchesExecuted atomic.Int64

	edgeCount int
}

// New builds an engine from the configured content tree. Ingestion runs
// synchronously; when New returns, the engine is ready for concurrent use.
// An unreadable content root is the only fatal condition.
func New(ctx context.Context, cfg *config.Config) (*Engine, error) {
	docs, err := garden.LoadTree(ctx, cfg.Garden.Dir, cfg.Garden.Extension)
	if err != nil {
		return nil, err
	}

	st, err := store.New(cfg)
	if err != nil {
		return nil, gerrors.IndexUnavailable("failed to create index backend", err)
	}

	if err := st.IndexDocuments(ctx, docs); err != nil {
		_ = st.Close()
		return nil, gerrors.IndexUnavailable("failed to index documents", err)
	}

	edges := garden.ExtractEdges(docs, cfg.Garden.Extension)
	if err := st.AddEdges(ctx, edges); err != nil {
		_ = st.Close()
		return nil, gerrors.IndexUnavailable("failed to store edges", err)
	}

	cache, err := lru.New[string, SearchResult](cfg.Search.CacheSize)
	if err != nil {
		_ = st.Close()
		return nil, gerrors.New(gerrors.ErrCodeInternal, "failed to create result cache", err)
	}

	e := &Engine{
		cfg:       cfg,
		store:     st,
		docs:      make(map[string]*garden.Document, len(docs)),
		order:     make([]string, 0, len(docs)),
		cache:     cache,
		edgeCount: len(edges),
	}
	for _, doc := range docs {
		e.docs[doc.FilePath] = doc
		e.order = append(e.order, doc.FilePath)
	}

	slog.Info("engine_ready",
		slog.String("backend", cfg.Search.Backend),
		slog.Int("documents", len(docs)),
		slog.Int("edges", len(edges)))

	return e, nil
}

// MustNew is New for process startup: any construction failure is fatal
// and panics. Call it exactly once.
func MustNew(ctx context.Context, cfg *config.Config) *Engine {
	e, err := New(ctx, cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Close releases the index backend.
func (e *Engine) Close() error {
	return e.store.Close()
}

// GetDocument returns the document at filePath, or a not-found error.
func (e *Engine) GetDocument(filePath string) (*garden.Document, error) {
	doc, ok := e.docs[filePath]
	if !ok {
		return nil, gerrors.NotFound(filePath)
	}
	return doc, nil
}

// SearchOrdered resolves an ordered list of file paths to their current
// documents, preserving input order and silently dropping paths that do
// not exist.
func (e *Engine) SearchOrdered(filePaths []string) SearchResult {
	files := make([]MatchingFile, 0, len(filePaths))
	for _, fp := range filePaths {
		if doc, ok := e.docs[fp]; ok {
			files = append(files, toMatchingFile(doc))
		}
	}
	return SearchResult{MatchingFiles: files}
}

// AllDocuments returns the curated default documents first, in curated
// order, followed by every remaining document in ingestion order.
func (e *Engine) AllDocuments() SearchResult {
	result := e.SearchOrdered(e.cfg.Garden.DefaultDocuments)

	inDefaults := make(map[string]struct{}, len(e.cfg.Garden.DefaultDocuments))
	for _, fp := range e.cfg.Garden.DefaultDocuments {
		inDefaults[fp] = struct{}{}
	}
	for _, fp := range e.order {
		if _, ok := inDefaults[fp]; ok {
			continue
		}
		result.MatchingFiles = append(result.MatchingFiles, toMatchingFile(e.docs[fp]))
	}
	return result
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Documents:        len(e.docs),
		Edges:            e.edgeCount,
		CacheEntries:     e.cache.Len(),
		SearchesExecuted: e.searchesExecuted.Load(),
	}
}

// toMatchingFile projects a document into a result entry. Documents
// without a title fall back to their file name so listings never render
// blank links.
func toMatchingFile(doc *garden.Document) MatchingFile {
	title := doc.Metadata.Title
	if title == "" {
		title = strippedName(doc.FileName)
	}
	return MatchingFile{
		Title:    title,
		FileName: doc.FileName,
		FilePath: doc.FilePath,
		Topic:    doc.Metadata.Topic,
	}
}

// strippedName returns the file name without its extension.
func strippedName(fileName string) string {
	ext := path.Ext(fileName)
	return fileName[:len(fileName)-len(ext)]
}
