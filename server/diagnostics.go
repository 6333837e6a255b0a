package server

import (
	"errors"
	"strings"
	"unicode/utf16"

	"go.lsp.dev/protocol"

	"github.com/lexcodex/nodelang/framework/nodelang"
)

const diagnosticSource = "nodelang"

// analysis is the outcome of parsing one document version.
type analysis struct {
	graph *nodelang.Graph
	err   error
}

func analyze(text string, contextLines int) analysis {
	g, err := nodelang.Parse(text, nodelang.WithContextLines(contextLines))
	return analysis{graph: g, err: err}
}

// Diagnostics converts a parse failure into LSP diagnostics. A successful
// parse yields an empty, non-nil slice so clients clear stale markers.
func Diagnostics(text string, err error) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	if err == nil {
		return diags
	}
	var perr *nodelang.Error
	if !errors.As(err, &perr) {
		return append(diags, protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityError,
			Source:   diagnosticSource,
			Message:  err.Error(),
		})
	}
	return append(diags, protocol.Diagnostic{
		Range:    lineRange(text, perr.Line),
		Severity: protocol.DiagnosticSeverityError,
		Code:     perr.Kind.String(),
		Source:   diagnosticSource,
		Message:  perr.Message,
	})
}

// DocumentSymbols exposes top-level nodes as classes and their elaborations
// as fields. Relations are listed in the symbol detail.
func DocumentSymbols(text string, g *nodelang.Graph) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	if g == nil {
		return symbols
	}
	for _, node := range g.Nodes().All() {
		symbols = append(symbols, nodeSymbol(text, node, protocol.SymbolKindClass))
	}
	return symbols
}

func nodeSymbol(text string, node *nodelang.Node, kind protocol.SymbolKind) protocol.DocumentSymbol {
	rng := lineRange(text, node.Line)
	sym := protocol.DocumentSymbol{
		Name:           node.ID,
		Detail:         symbolDetail(node),
		Kind:           kind,
		Range:          rng,
		SelectionRange: rng,
	}
	for _, child := range node.Children().All() {
		sym.Children = append(sym.Children, nodeSymbol(text, child, protocol.SymbolKindField))
	}
	return sym
}

func symbolDetail(node *nodelang.Node) string {
	detail := node.Content
	if node.Name != node.ID {
		detail = node.Name + ": " + detail
	}
	labels := node.Outgoing().Labels()
	if len(labels) > 0 {
		detail += " [" + strings.Join(labels, ", ") + "]"
	}
	return detail
}

// lineRange spans the whole of the 1-based source line. Characters are
// counted in UTF-16 code units.
func lineRange(text string, line int) protocol.Range {
	if line <= 0 {
		return protocol.Range{}
	}
	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return protocol.Range{
			Start: protocol.Position{Line: uint32(line - 1)},
			End:   protocol.Position{Line: uint32(line - 1)},
		}
	}
	raw := strings.TrimRight(lines[line-1], "\r")
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line - 1), Character: 0},
		End:   protocol.Position{Line: uint32(line - 1), Character: uint32(len(utf16.Encode([]rune(raw))))},
	}
}
