package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/token/edgengram"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/Chemchu/guslee/internal/garden"
)

const (
	// prefixFilterName is the edge n-gram filter used at index time so
	// partial-word queries still match.
	prefixFilterName = "garden_prefix"

	// indexAnalyzerName lowercases, ASCII-folds and prefix-expands tokens.
	indexAnalyzerName = "garden_index"

	// queryAnalyzerName is the index analyzer minus the prefix expansion;
	// expanding the query side too would match unrelated prefixes.
	queryAnalyzerName = "garden_query"
)

// Gram bounds are float64 values: bleve parses analyzer config numbers
// out of an any-typed map as float64.
const (
	prefixMinGram = 2.0
	prefixMaxGram = 12.0
)

// BleveStore is the embedded in-process index variant. The whole index
// lives in memory and is rebuilt from the content tree at startup.
// Edges are kept in plain slices since Bleve has no graph capability.
type BleveStore struct {
	mu            sync.RWMutex
	index         bleve.Index
	titleWeight   float64
	bodyWeight    float64
	edges         []garden.Edge
	edgesBySource map[string][]garden.Edge
	docCount      int
	closed        bool
}

// bleveDocument is the shape handed to Bleve for indexing.
type bleveDocument struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewBleveStore creates an in-memory Bleve index with the title field
// weighted by titleWeight and the body field by bodyWeight.
func NewBleveStore(titleWeight, bodyWeight float64) (*BleveStore, error) {
	indexMapping, err := newIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("failed to create index mapping: %w", err)
	}

	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory index: %w", err)
	}

	return &BleveStore{
		index:         idx,
		titleWeight:   titleWeight,
		bodyWeight:    bodyWeight,
		edgesBySource: make(map[string][]garden.Edge),
	}, nil
}

// newIndexMapping builds the Bleve mapping: title and body text fields,
// each indexed as a prefix-expanded variant (lowercase + ASCII folding +
// edge n-grams) plus an exact variant without the n-gram expansion.
func newIndexMapping() (*mapping.IndexMappingImpl, error) {
	m := bleve.NewIndexMapping()

	if err := m.AddCustomTokenFilter(prefixFilterName, map[string]interface{}{
		"type": edgengram.Name,
		"min":  prefixMinGram,
		"max":  prefixMaxGram,
	}); err != nil {
		return nil, fmt.Errorf("failed to add prefix filter: %w", err)
	}

	if err := m.AddCustomAnalyzer(indexAnalyzerName, map[string]interface{}{
		"type":          custom.Name,
		"char_filters":  []string{asciifolding.Name},
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name, prefixFilterName},
	}); err != nil {
		return nil, fmt.Errorf("failed to add index analyzer: %w", err)
	}

	if err := m.AddCustomAnalyzer(queryAnalyzerName, map[string]interface{}{
		"type":          custom.Name,
		"char_filters":  []string{asciifolding.Name},
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	}); err != nil {
		return nil, fmt.Errorf("failed to add query analyzer: %w", err)
	}

	docMapping := bleve.NewDocumentMapping()

	// Each text field is indexed twice: a prefix-expanded variant for
	// partial-word matching and an exact variant keeping the whole token.
	// The n-gram filter emits nothing longer than maxGram, so without the
	// exact variant a term of more than maxGram runes could never match.
	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = indexAnalyzerName

	titleExactField := bleve.NewTextFieldMapping()
	titleExactField.Name = "title_exact"
	titleExactField.Analyzer = queryAnalyzerName
	titleExactField.Store = false
	docMapping.AddFieldMappingsAt("title", titleField, titleExactField)

	bodyField := bleve.NewTextFieldMapping()
	bodyField.Analyzer = indexAnalyzerName
	bodyField.Store = false

	bodyExactField := bleve.NewTextFieldMapping()
	bodyExactField.Name = "body_exact"
	bodyExactField.Analyzer = queryAnalyzerName
	bodyExactField.Store = false
	docMapping.AddFieldMappingsAt("body", bodyField, bodyExactField)

	m.DefaultMapping = docMapping
	m.DefaultAnalyzer = indexAnalyzerName

	return m, nil
}

// IndexDocuments adds documents to the index in one batch.
func (s *BleveStore) IndexDocuments(ctx context.Context, docs []*garden.Document) error {
	if len(docs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("store is closed")
	}

	batch := s.index.NewBatch()
	for _, doc := range docs {
		bdoc := bleveDocument{Title: doc.Metadata.Title, Body: doc.Content}
		if err := batch.Index(doc.FilePath, bdoc); err != nil {
			return fmt.Errorf("failed to index document %s: %w", doc.FilePath, err)
		}
	}

	if err := s.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}

	s.docCount += len(docs)
	return nil
}

// AddEdges records mentions edges in memory.
func (s *BleveStore) AddEdges(ctx context.Context, edges []garden.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("store is closed")
	}

	for _, e := range edges {
		s.edges = append(s.edges, e)
		s.edgesBySource[e.Source] = append(s.edgesBySource[e.Source], e)
	}
	return nil
}

// Search runs a weighted disjunction query over the title and body fields.
func (s *BleveStore) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, fmt.Errorf("store is closed")
	}
	if strings.TrimSpace(query) == "" || limit <= 0 {
		return []Hit{}, nil
	}

	titleQuery := bleve.NewMatchQuery(query)
	titleQuery.SetField("title")
	titleQuery.SetBoost(s.titleWeight)
	titleQuery.Analyzer = queryAnalyzerName

	titleExactQuery := bleve.NewMatchQuery(query)
	titleExactQuery.SetField("title_exact")
	titleExactQuery.SetBoost(s.titleWeight)
	titleExactQuery.Analyzer = queryAnalyzerName

	bodyQuery := bleve.NewMatchQuery(query)
	bodyQuery.SetField("body")
	bodyQuery.SetBoost(s.bodyWeight)
	bodyQuery.Analyzer = queryAnalyzerName

	bodyExactQuery := bleve.NewMatchQuery(query)
	bodyExactQuery.SetField("body_exact")
	bodyExactQuery.SetBoost(s.bodyWeight)
	bodyExactQuery.Analyzer = queryAnalyzerName

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(
		titleQuery, titleExactQuery, bodyQuery, bodyExactQuery))
	req.Size = limit

	result, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, Hit{FilePath: hit.ID, Score: hit.Score})
	}
	return hits, nil
}

// EdgesFrom returns the edges originating at source, in insertion order.
func (s *BleveStore) EdgesFrom(ctx context.Context, source string) ([]garden.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := s.edgesBySource[source]
	out := make([]garden.Edge, len(edges))
	copy(out, edges)
	return out, nil
}

// AllEdges returns every recorded edge in insertion order.
func (s *BleveStore) AllEdges(ctx context.Context) ([]garden.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]garden.Edge, len(s.edges))
	copy(out, s.edges)
	return out, nil
}

// RawQuery is unsupported: Bleve has no generic query language.
func (s *BleveStore) RawQuery(ctx context.Context, query string) ([]byte, error) {
	return nil, ErrRawQueryUnsupported
}

// DocCount returns the number of indexed documents.
func (s *BleveStore) DocCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docCount, nil
}

// Close closes the underlying index.
func (s *BleveStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.index.Close()
}

// Verify interface implementation at compile time.
var _ Store = (*BleveStore)(nil)
