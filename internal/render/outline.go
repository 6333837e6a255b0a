package render

import (
	"fmt"
	"strings"

	"github.com/lexcodex/nodelang/framework/nodelang"
)

// Outline lists every top-level node with its content, elaborations and
// connections. Free-text destinations are tagged so they can be told apart
// from declared nodes.
func (r *Renderer) Outline(g *nodelang.Graph) string {
	var b strings.Builder
	for i, node := range g.Nodes().All() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n",
			r.style(nodeNameStyle, node.Name),
			r.style(nodeIDStyle, "("+node.ID+")"))
		fmt.Fprintf(&b, "  Content: %s\n", node.Content)
		r.writeChildren(&b, node.Children(), 1)
		r.writeConnections(&b, node, "  ")
	}
	return b.String()
}

func (r *Renderer) writeChildren(b *strings.Builder, children *nodelang.Registry, depth int) {
	if children.Len() == 0 {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s\n", indent, r.style(sectionStyle, "Children:"))
	for _, child := range children.All() {
		fmt.Fprintf(b, "%s  • %s: %s\n", indent, child.Name, child.Content)
		r.writeChildren(b, child.Children(), depth+2)
		r.writeConnections(b, child, indent+"    ")
	}
}

func (r *Renderer) writeConnections(b *strings.Builder, node *nodelang.Node, indent string) {
	edges := node.Outgoing()
	if edges.Len() == 0 {
		return
	}
	fmt.Fprintf(b, "%s%s\n", indent, r.style(sectionStyle, "Connections:"))
	for _, label := range edges.Labels() {
		dests, _ := edges.Get(label)
		for _, ref := range dests {
			target := fmt.Sprintf("%s (%s)", ref.Node.Name, ref.Node.ID)
			if ref.IsStandIn() {
				target = r.style(standInStyle, ref.Node.Name+" [free text]")
			}
			fmt.Fprintf(b, "%s  • %s → %s\n", indent, r.style(relationStyle, label), target)
		}
	}
}
