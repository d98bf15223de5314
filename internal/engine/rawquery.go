package engine

import (
	"context"
	"encoding/json"
	"log/slog"
)

// RawQuery executes a backend-native read query and unmarshals the result
// into T. Any failure (a backend without a query language, bad query
// syntax, rows that do not fit T) yields T's zero value, never an error.
//
// This is the escape hatch for best-effort listing views outside the
// ranked-search contract, such as a chronological feed. Callers must
// treat an empty result as "nothing found"; there is no distinguishable
// failure signal.
func RawQuery[T any](ctx context.Context, e *Engine, query string) T {
	var out T

	data, err := e.store.RawQuery(ctx, query)
	if err != nil {
		slog.Warn("raw_query_failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		return out
	}

	if err := json.Unmarshal(data, &out); err != nil {
		slog.Warn("raw_query_decode_failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		var zero T
		return zero
	}
	return out
}
