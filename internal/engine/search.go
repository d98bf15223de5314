package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// wildcardQuery is treated the same as an empty query.
const wildcardQuery = "*"

// defaultsMarker distinguishes cache keys of the default-documents path
// from ranked queries that happen to share the normalized text.
const defaultsMarker = "-defaults"

// Search is the cached, ranked query entry point.
//
// The query is lowercased before anything else, so logically identical
// queries share a cache slot. Degenerate queries (empty, wildcard,
// shorter than the configured minimum) skip ranking entirely and return
// the curated default documents. A failing index query degrades to an
// empty result; Search never returns an error.
//
// Concurrent misses on the same key are not coalesced: both callers
// compute and both write. That is acceptable because computation is a
// pure function of the immutable index, so last-write-wins stores the
// same value.
func (e *Engine) Search(ctx context.Context, params QueryParams) SearchResult {
	query := strings.ToLower(strings.TrimSpace(params.Query))
	limit := normalizeLimit(params.Limit, e.cfg.Search.DefaultLimit)

	if e.isDegenerate(query) {
		key := fmt.Sprintf("%s|%d%s", query, limit, defaultsMarker)
		if cached, ok := e.cache.Get(key); ok {
			return cached
		}
		result := e.SearchOrdered(e.cfg.Garden.DefaultDocuments)
		e.cache.Add(key, result)
		return result
	}

	key := fmt.Sprintf("%s|%d", query, limit)
	if cached, ok := e.cache.Get(key); ok {
		return cached
	}

	result := e.rankedSearch(ctx, query, limit)
	e.cache.Add(key, result)
	return result
}

// isDegenerate reports whether the normalized query should take the
// default-documents path instead of a ranked search.
func (e *Engine) isDegenerate(query string) bool {
	return query == "" ||
		query == wildcardQuery ||
		utf8.RuneCountInString(query) < e.cfg.Search.MinQueryLength
}

// rankedSearch runs the weighted title/body query against the index and
// projects the hits. Index failures are absorbed into an empty result.
func (e *Engine) rankedSearch(ctx context.Context, query string, limit int) SearchResult {
	e.searchesExecuted.Add(1)

	hits, err := e.store.Search(ctx, query, limit)
	if err != nil {
		slog.Warn("search_failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return SearchResult{MatchingFiles: []MatchingFile{}}
	}

	files := make([]MatchingFile, 0, len(hits))
	for _, hit := range hits {
		doc, ok := e.docs[hit.FilePath]
		if !ok {
			// The index never references a path absent from the store;
			// a miss here means the two went out of sync.
			slog.Warn("hit_without_document", slog.String("file_path", hit.FilePath))
			continue
		}
		files = append(files, toMatchingFile(doc))
	}
	return SearchResult{MatchingFiles: files}
}
