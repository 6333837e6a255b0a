package nodelang

// Node is one concept or event declared in the source.
type Node struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	// Line is the 1-based source line that declared the node.
	Line int `json:"line"`

	children *Registry
	outgoing *Edges
}

// NewNode builds a node with empty child and edge tables.
func NewNode(id, name, content string) *Node {
	return &Node{
		ID:       id,
		Name:     name,
		Content:  content,
		children: NewRegistry(),
		outgoing: NewEdges(),
	}
}

// Children returns the registry of elaborations nested under the node.
func (n *Node) Children() *Registry {
	return n.children
}

// Outgoing returns the node's labelled connections.
func (n *Node) Outgoing() *Edges {
	return n.outgoing
}

// ReferenceKind tells registry-backed endpoints from free-text stand-ins.
type ReferenceKind string

const (
	ReferenceRegistered ReferenceKind = "registered"
	ReferenceFreeText   ReferenceKind = "free_text"
)

// Reference is a non-owning connection endpoint.
type Reference struct {
	Kind ReferenceKind `json:"kind"`
	Node *Node         `json:"node"`
}

// IsStandIn reports whether the endpoint was synthesized from unresolved text.
func (r Reference) IsStandIn() bool {
	return r.Kind == ReferenceFreeText
}

func registered(n *Node) Reference {
	return Reference{Kind: ReferenceRegistered, Node: n}
}

// standIn synthesizes an endpoint that belongs to no registry.
func standIn(text string, line int) Reference {
	n := NewNode(text, text, text)
	n.Line = line
	return Reference{Kind: ReferenceFreeText, Node: n}
}
