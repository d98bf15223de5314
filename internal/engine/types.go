package engine

import (
	"strconv"
	"strings"
)

// QueryParams are the caller-supplied search parameters, typically decoded
// from a query string. Limit deliberately accepts any type: numbers are
// used as-is, everything else (strings that fail to parse, bools, nil)
// falls back to the configured default limit.
type QueryParams struct {
	Query string `json:"query"`
	Limit any    `json:"limit"`
}

// MatchingFile is one search result entry: a projection of a matched
// document for listing views.
type MatchingFile struct {
	Title    string `json:"title"`
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	Topic    string `json:"topic,omitempty"`
}

// SearchResult is an ordered sequence of matches; the order encodes rank.
type SearchResult struct {
	MatchingFiles []MatchingFile `json:"matching_files"`
}

// GraphNode is a node in a visualization-ready relation graph.
type GraphNode struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	FilePath string `json:"file_path"`
}

// GraphEdge connects two graph nodes by ID.
type GraphEdge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// GraphData is a small, request-scoped graph built on demand; it is never
// persisted.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Stats exposes engine counters for status views and tests.
type Stats struct {
	Documents        int   `json:"documents"`
	Edges            int   `json:"edges"`
	CacheEntries     int   `json:"cache_entries"`
	SearchesExecuted int64 `json:"searches_executed"`
}

// normalizeLimit resolves the loosely typed limit value. Any value that
// is not a usable positive integer falls back to def.
func normalizeLimit(v any, def int) int {
	switch n := v.(type) {
	case nil:
		return def
	case int:
		if n > 0 {
			return n
		}
	case int32:
		if n > 0 {
			return int(n)
		}
	case int64:
		if n > 0 {
			return int(n)
		}
	case float64:
		if n > 0 && n == float64(int(n)) {
			return int(n)
		}
	case float32:
		return normalizeLimit(float64(n), def)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
