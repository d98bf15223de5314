package garden

import (
	"path"
	"regexp"
	"strings"
)

// inlineLinkRegex matches markdown inline links of the shape [label](target).
var inlineLinkRegex = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)

// schemeRegex matches absolute network references (https://..., mailto:...).
var schemeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// ExtractEdges scans every document body for inline links to other known
// documents and returns the resulting directed "mentions" edges.
//
// Targets with a URI scheme are external and skipped. Remaining targets
// are normalized to a document path (fragment stripped, extension
// appended when absent); targets that do not resolve to a loaded document
// are dropped. Self-links are dropped too, and a source mentions a given
// target at most once.
func ExtractEdges(docs []*Document, extension string) []Edge {
	known := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		known[doc.FilePath] = struct{}{}
	}

	var edges []Edge
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, match := range inlineLinkRegex.FindAllStringSubmatch(doc.Content, -1) {
			target, ok := normalizeTarget(match[1], extension)
			if !ok {
				continue
			}
			if target == doc.FilePath {
				continue
			}
			if _, exists := known[target]; !exists {
				continue
			}
			if _, dup := seen[target]; dup {
				continue
			}
			seen[target] = struct{}{}
			edges = append(edges, Edge{
				Source:   doc.FilePath,
				Target:   target,
				Relation: RelationMentions,
			})
		}
	}
	return edges
}

// normalizeTarget turns a raw link target into a candidate document path.
// Returns ok=false for targets that cannot reference a document.
func normalizeTarget(target, extension string) (string, bool) {
	if target == "" || schemeRegex.MatchString(target) {
		return "", false
	}

	// In-page anchors reference the current document, not another one.
	if strings.HasPrefix(target, "#") {
		return "", false
	}
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}

	target = strings.TrimPrefix(target, "/")
	target = path.Clean(target)
	if target == "." || target == ".." || strings.HasPrefix(target, "../") {
		return "", false
	}

	if extension != "" && path.Ext(target) == "" {
		target += extension
	}
	return target, true
}
