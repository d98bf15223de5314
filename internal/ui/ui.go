// Package ui renders engine results for the terminal.
//
// Output is styled when stdout is a color terminal and plain otherwise
// (or when NO_COLOR is set), so command output stays pipeable.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/Chemchu/guslee/internal/engine"
)

// Renderer writes engine results to an output stream.
type Renderer struct {
	out    io.Writer
	styles Styles
}

// NewRenderer creates a renderer for out, choosing styled or plain output.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, styles: stylesFor(out)}
}

// stylesFor picks styles based on the output stream and NO_COLOR.
func stylesFor(out io.Writer) Styles {
	if os.Getenv("NO_COLOR") != "" {
		return NoColorStyles()
	}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return DefaultStyles()
	}
	return NoColorStyles()
}

// SearchResult renders a ranked (or default) result list.
func (r *Renderer) SearchResult(result engine.SearchResult) {
	if len(result.MatchingFiles) == 0 {
		fmt.Fprintln(r.out, r.styles.Dim.Render("no matching documents"))
		return
	}

	for i, mf := range result.MatchingFiles {
		line := fmt.Sprintf("%2d. %s  %s",
			i+1,
			r.styles.Title.Render(mf.Title),
			r.styles.Path.Render(mf.FilePath))
		if mf.Topic != "" {
			line += "  " + r.styles.Topic.Render("["+mf.Topic+"]")
		}
		fmt.Fprintln(r.out, line)
	}
}

// Graph renders a relation graph as an indented adjacency listing.
func (r *Renderer) Graph(graph engine.GraphData) {
	if len(graph.Nodes) == 0 {
		fmt.Fprintln(r.out, r.styles.Dim.Render("empty graph"))
		return
	}

	fmt.Fprintln(r.out, r.styles.Header.Render(graph.Nodes[0].Label)+
		"  "+r.styles.Path.Render(graph.Nodes[0].FilePath))
	for _, node := range graph.Nodes[1:] {
		fmt.Fprintf(r.out, "  %s %s  %s\n",
			r.styles.Dim.Render("<-"),
			r.styles.Title.Render(node.Label),
			r.styles.Path.Render(node.FilePath))
	}
}

// Stats renders engine counters as label/value rows.
func (r *Renderer) Stats(stats engine.Stats) {
	rows := []struct {
		label string
		value string
	}{
		{"documents", fmt.Sprintf("%d", stats.Documents)},
		{"edges", fmt.Sprintf("%d", stats.Edges)},
		{"cache entries", fmt.Sprintf("%d", stats.CacheEntries)},
		{"searches executed", fmt.Sprintf("%d", stats.SearchesExecuted)},
	}

	width := 0
	for _, row := range rows {
		if len(row.label) > width {
			width = len(row.label)
		}
	}
	for _, row := range rows {
		padding := strings.Repeat(" ", width-len(row.label))
		fmt.Fprintf(r.out, "%s%s  %s\n",
			r.styles.Label.Render(row.label), padding, row.value)
	}
}

// Error renders a user-facing error line.
func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.out, r.styles.Error.Render(msg))
}
