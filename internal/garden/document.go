// Package garden loads a tree of markdown documents into memory.
//
// Documents are read exactly once at startup. After LoadTree returns, the
// returned documents are never mutated and are safe to share across
// goroutines without locking.
package garden

// Metadata is the parsed YAML front matter of a document.
type Metadata struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags"`
	Date        string   `yaml:"date" json:"date"`
	Topic       string   `yaml:"topic,omitempty" json:"topic,omitempty"`
	SourceURL   string   `yaml:"source_url" json:"source_url"`
	IsDraft     bool     `yaml:"is_draft" json:"is_draft"`
}

// Document is one ingested file. FilePath is relative to the content root
// and acts as the primary key everywhere else in the engine.
type Document struct {
	FileName string   `json:"file_name"`
	FilePath string   `json:"file_path"`
	Metadata Metadata `json:"metadata"`
	Content  string   `json:"content"`
}

// Edge is a directed "mentions" relation between two documents, derived
// from the source document's body at ingestion time. Both endpoints are
// guaranteed to exist in the document set that produced the edge.
type Edge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

// RelationMentions is the only relation kind emitted by the link extractor.
const RelationMentions = "mentions"
