// Package render turns parse results and failures into terminal text.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexcodex/nodelang/framework/nodelang"
)

// Options control presentation. Color is passed explicitly by the caller;
// nothing in this package reads global state.
type Options struct {
	Color bool
}

// Renderer formats graphs and diagnostics.
type Renderer struct {
	opts Options
}

// New builds a renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.opts.Color {
		return text
	}
	return s.Render(text)
}

// Error formats err. Parse failures get their kind, line and source window;
// any other error is printed as-is.
func (r *Renderer) Error(err error) string {
	if err == nil {
		return ""
	}
	var perr *nodelang.Error
	if !errors.As(err, &perr) {
		return r.style(errorHeaderStyle, err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(r.style(errorHeaderStyle, headline(perr.Kind)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", r.style(labelStyle, "<message>"), perr.Message)
	if perr.Line > 0 {
		fmt.Fprintf(&b, "%s %d\n", r.style(labelStyle, "<line>"), perr.Line)
	}
	if len(perr.Context) > 0 {
		b.WriteString(r.style(labelStyle, "<context>"))
		b.WriteString("\n")
		b.WriteString(r.Context(perr.Context))
	}
	return b.String()
}

func headline(kind nodelang.Kind) string {
	switch kind {
	case nodelang.KindDuplicateNode:
		return "Duplicate node"
	case nodelang.KindUnknownNode:
		return "Unknown node"
	default:
		return "Invalid syntax"
	}
}

// Context formats a source window as `|n| text` rows. The current row is
// prefixed with '>' and underlined when colour is on.
func (r *Renderer) Context(lines []nodelang.ContextLine) string {
	width := 0
	for _, l := range lines {
		width = max(width, len(fmt.Sprint(l.Number)))
	}
	var b strings.Builder
	for _, l := range lines {
		marker := " "
		text := l.Text
		if l.Current {
			marker = ">"
			text = r.style(currentLineStyle, text)
		}
		gutter := r.style(gutterStyle, fmt.Sprintf("|%*d|", width, l.Number))
		fmt.Fprintf(&b, "%s %s %s\n", marker, gutter, text)
	}
	return b.String()
}

// Summary is the one-line report printed after a successful parse.
func (r *Renderer) Summary(source string, g *nodelang.Graph) string {
	nodes, children, labels, refs := 0, 0, 0, 0
	g.Nodes().Walk(func(n *nodelang.Node, depth int) bool {
		if depth == 0 {
			nodes++
		} else {
			children++
		}
		for _, label := range n.Outgoing().Labels() {
			labels++
			dests, _ := n.Outgoing().Get(label)
			refs += len(dests)
		}
		return true
	})
	return fmt.Sprintf("%s %s: %d nodes, %d elaborations, %d relations, %d destinations\n",
		r.style(okStyle, "ok"), source, nodes, children, labels, refs)
}
