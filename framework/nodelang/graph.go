package nodelang

import (
	"errors"
	"strings"
)

// DefaultContextLines is the number of lines shown on each side of a failing line.
const DefaultContextLines = 3

// Graph parses notation text and owns the resulting top-level nodes.
type Graph struct {
	nodes        *Registry
	contextLines int
	parsed       bool
}

// Option configures a Graph.
type Option func(*Graph)

// WithContextLines sets how many lines before and after a failing line are
// attached to its Error. Negative values are treated as zero.
func WithContextLines(n int) Option {
	return func(g *Graph) {
		if n < 0 {
			n = 0
		}
		g.contextLines = n
	}
}

// New constructs an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:        NewRegistry(),
		contextLines: DefaultContextLines,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Parse builds a fresh graph from text.
func Parse(text string, opts ...Option) (*Graph, error) {
	g := New(opts...)
	if err := g.Parse(text); err != nil {
		return nil, err
	}
	return g, nil
}

// Nodes returns the top-level registry.
func (g *Graph) Nodes() *Registry {
	return g.nodes
}

// Find resolves a reference to a top-level node. Nodes nested under
// another node's children are not reachable through Find.
func (g *Graph) Find(id string) (*Node, error) {
	return g.nodes.Get(id)
}

// sourceLine is a non-blank, trimmed line with its 1-based position in the text.
type sourceLine struct {
	number int
	text   string
}

func splitLines(text string) []sourceLine {
	raw := strings.Split(text, "\n")
	lines := make([]sourceLine, 0, len(raw))
	for i, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, sourceLine{number: i + 1, text: l})
	}
	return lines
}

// Parse processes text line by line and stops at the first failure, which
// is returned as an *Error. The graph is left partially built on failure
// and should be discarded.
func (g *Graph) Parse(text string) error {
	if g.parsed {
		return ErrAlreadyParsed
	}
	g.parsed = true

	lines := splitLines(text)
	for idx, line := range lines {
		if err := g.parseLine(line); err != nil {
			var perr *Error
			if !errors.As(err, &perr) {
				return err
			}
			perr.Line = line.number
			perr.Context = window(lines, idx, g.contextLines)
			return perr
		}
	}
	return nil
}

func (g *Graph) parseLine(line sourceLine) error {
	switch Classify(line.text) {
	case LineComment:
		return nil
	case LineDefinition:
		return g.definition(line.text, line.number)
	case LineElaboration:
		return g.elaboration(line.text, line.number)
	case LineConnection:
		return g.connection(line.text, line.number)
	default:
		return newError(KindSyntax, "line is not a comment, definition, elaboration or connection")
	}
}

// window returns up to size lines on each side of lines[idx], clipped at
// the boundaries, with lines[idx] marked current.
func window(lines []sourceLine, idx, size int) []ContextLine {
	start := max(0, idx-size)
	end := min(len(lines), idx+size+1)
	out := make([]ContextLine, 0, end-start)
	for j := start; j < end; j++ {
		out = append(out, ContextLine{
			Number:  lines[j].number,
			Text:    lines[j].text,
			Current: j == idx,
		})
	}
	return out
}
