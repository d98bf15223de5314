package engine

import (
	"context"
	"log/slog"
)

// Related returns the single-hop relation graph for the document at
// filePath: the focal document as node 1, every document it mentions as a
// node from 2 upwards in edge order, and one edge per related node
// pointing back at node 1. Returns a not-found error for unknown paths.
//
// Edges in the returned graph mean "is related to the focal document",
// regardless of mention direction; this is a deliberate simplification
// for single-hop visualization, not a graph traversal.
func (e *Engine) Related(ctx context.Context, filePath string) (GraphData, error) {
	focal, err := e.GetDocument(filePath)
	if err != nil {
		return GraphData{}, err
	}

	graph := GraphData{
		Nodes: []GraphNode{{
			ID:       1,
			Label:    toMatchingFile(focal).Title,
			FilePath: focal.FilePath,
		}},
		Edges: []GraphEdge{},
	}

	edges, err := e.store.EdgesFrom(ctx, filePath)
	if err != nil {
		// Degrade to the focal node alone; the view still renders.
		slog.Warn("edge_lookup_failed",
			slog.String("file_path", filePath),
			slog.String("error", err.Error()))
		return graph, nil
	}

	nextID := 2
	for _, edge := range edges {
		target, ok := e.docs[edge.Target]
		if !ok {
			continue
		}
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:       nextID,
			Label:    toMatchingFile(target).Title,
			FilePath: target.FilePath,
		})
		graph.Edges = append(graph.Edges, GraphEdge{Source: nextID, Target: 1})
		nextID++
	}

	return graph, nil
}

// OverallGraph returns the whole-garden view: every document as a node
// (IDs follow ingestion order) and every mentions edge between them.
func (e *Engine) OverallGraph(ctx context.Context) GraphData {
	graph := GraphData{
		Nodes: make([]GraphNode, 0, len(e.order)),
		Edges: []GraphEdge{},
	}

	idByPath := make(map[string]int, len(e.order))
	for i, fp := range e.order {
		id := i + 1
		idByPath[fp] = id
		graph.Nodes = append(graph.Nodes, GraphNode{
			ID:       id,
			Label:    toMatchingFile(e.docs[fp]).Title,
			FilePath: fp,
		})
	}

	edges, err := e.store.AllEdges(ctx)
	if err != nil {
		slog.Warn("edge_lookup_failed", slog.String("error", err.Error()))
		return graph
	}
	for _, edge := range edges {
		src, okSrc := idByPath[edge.Source]
		dst, okDst := idByPath[edge.Target]
		if !okSrc || !okDst {
			continue
		}
		graph.Edges = append(graph.Edges, GraphEdge{Source: src, Target: dst})
	}

	return graph
}
