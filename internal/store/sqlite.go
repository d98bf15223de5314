package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/Chemchu/guslee/internal/garden"
)

// SQLiteStore implements Store on SQLite FTS5. It is the external-store
// variant: ranking runs in the database via bm25() with per-column
// weights, edges live in a real table, and RawQuery exposes a SQL surface
// for the escape hatch. The database is in-memory; it is rebuilt from the
// content tree at startup like the Bleve variant.
type SQLiteStore struct {
	mu          sync.RWMutex
	db          *sql.DB
	titleWeight float64
	bodyWeight  float64
	closed      bool
}

// fts5TermRegex extracts the alphanumeric terms fed to the MATCH clause.
var fts5TermRegex = regexp.MustCompile(`[\p{L}\p{N}]+`)

// NewSQLiteStore creates an in-memory SQLite FTS5 store.
func NewSQLiteStore(titleWeight, bodyWeight float64) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps every statement on the same in-memory
	// database; additional pool connections would each see an empty one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:          db,
		titleWeight: titleWeight,
		bodyWeight:  bodyWeight,
	}

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// initSchema creates the document, FTS5 and edge tables.
func (s *SQLiteStore) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			file_path   TEXT PRIMARY KEY,
			file_name   TEXT NOT NULL,
			title       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			topic       TEXT NOT NULL DEFAULT '',
			date        TEXT NOT NULL DEFAULT '',
			source_url  TEXT NOT NULL DEFAULT '',
			is_draft    INTEGER NOT NULL DEFAULT 0,
			tags        TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS docs_fts USING fts5(
			title,
			body,
			file_path UNINDEXED,
			tokenize = 'unicode61 remove_diacritics 2'
		)`,
		`CREATE TABLE IF NOT EXISTS edges (
			source   TEXT NOT NULL,
			target   TEXT NOT NULL,
			relation TEXT NOT NULL DEFAULT 'mentions',
			PRIMARY KEY (source, target)
		)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// IndexDocuments inserts documents into the metadata and FTS tables.
func (s *SQLiteStore) IndexDocuments(ctx context.Context, docs []*garden.Document) error {
	if len(docs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("store is closed")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	docStmt, err := tx.PrepareContext(ctx, `INSERT INTO documents
		(file_path, file_name, title, description, topic, date, source_url, is_draft, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer docStmt.Close()

	ftsStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO docs_fts (title, body, file_path) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, doc := range docs {
		tags, err := json.Marshal(doc.Metadata.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags for %s: %w", doc.FilePath, err)
		}

		if _, err := docStmt.ExecContext(ctx,
			doc.FilePath, doc.FileName,
			doc.Metadata.Title, doc.Metadata.Description, doc.Metadata.Topic,
			doc.Metadata.Date, doc.Metadata.SourceURL, doc.Metadata.IsDraft,
			string(tags),
		); err != nil {
			return fmt.Errorf("failed to insert document %s: %w", doc.FilePath, err)
		}

		if _, err := ftsStmt.ExecContext(ctx,
			doc.Metadata.Title, doc.Content, doc.FilePath,
		); err != nil {
			return fmt.Errorf("failed to index document %s: %w", doc.FilePath, err)
		}
	}

	return tx.Commit()
}

// AddEdges inserts mentions edges.
func (s *SQLiteStore) AddEdges(ctx context.Context, edges []garden.Edge) error {
	if len(edges) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("store is closed")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO edges (source, target, relation) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range edges {
		if _, err := stmt.ExecContext(ctx, e.Source, e.Target, e.Relation); err != nil {
			return fmt.Errorf("failed to insert edge %s -> %s: %w", e.Source, e.Target, err)
		}
	}

	return tx.Commit()
}

// Search ranks documents with bm25() using the configured column weights.
// Terms are matched as prefixes so partial words still hit.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, fmt.Errorf("store is closed")
	}

	match := buildMatchExpression(query)
	if match == "" || limit <= 0 {
		return []Hit{}, nil
	}

	// bm25() returns better matches as more negative values; negate so
	// scores are non-negative and descending.
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_path, -bm25(docs_fts, ?, ?) AS score
		 FROM docs_fts
		 WHERE docs_fts MATCH ?
		 ORDER BY score DESC
		 LIMIT ?`,
		s.titleWeight, s.bodyWeight, match, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.FilePath, &h.Score); err != nil {
			return nil, fmt.Errorf("failed to scan hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if hits == nil {
		hits = []Hit{}
	}
	return hits, nil
}

// buildMatchExpression converts free text into an FTS5 MATCH expression:
// each term quoted and prefix-expanded, terms OR-ed together. Quoting
// keeps FTS5 operators in user input (AND, NEAR, parentheses) inert.
func buildMatchExpression(query string) string {
	terms := fts5TermRegex.FindAllString(strings.ToLower(query), -1)
	if len(terms) == 0 {
		return ""
	}
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts = append(parts, fmt.Sprintf(`"%s"*`, term))
	}
	return strings.Join(parts, " OR ")
}

// EdgesFrom returns edges originating at source, in insertion order.
func (s *SQLiteStore) EdgesFrom(ctx context.Context, source string) ([]garden.Edge, error) {
	return s.queryEdges(ctx,
		`SELECT source, target, relation FROM edges WHERE source = ? ORDER BY rowid`, source)
}

// AllEdges returns every edge in insertion order.
func (s *SQLiteStore) AllEdges(ctx context.Context) ([]garden.Edge, error) {
	return s.queryEdges(ctx,
		`SELECT source, target, relation FROM edges ORDER BY rowid`)
}

func (s *SQLiteStore) queryEdges(ctx context.Context, query string, args ...any) ([]garden.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, fmt.Errorf("store is closed")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("edge query failed: %w", err)
	}
	defer rows.Close()

	var edges []garden.Edge
	for rows.Next() {
		var e garden.Edge
		if err := rows.Scan(&e.Source, &e.Target, &e.Relation); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// RawQuery executes an arbitrary read query and returns the rows as a
// JSON array of column-keyed objects. Callers treat any failure as an
// empty result, so errors here carry context but no recovery obligation.
func (s *SQLiteStore) RawQuery(ctx context.Context, query string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, fmt.Errorf("store is closed")
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("raw query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("raw query failed: %w", err)
	}

	out := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("raw query failed: %w", err)
	}

	return json.Marshal(out)
}

// DocCount returns the number of indexed documents.
func (s *SQLiteStore) DocCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, fmt.Errorf("store is closed")
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Verify interface implementation at compile time.
var _ Store = (*SQLiteStore)(nil)
