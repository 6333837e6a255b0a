package nodelang

import "errors"

// Registry owns the nodes of one scope, keyed by id.
type Registry struct {
	nodes map[string]*Node
	order []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]*Node)}
}

// Add inserts node. An existing node with the same id is left untouched and
// a DuplicateNode error is returned.
func (r *Registry) Add(node *Node) error {
	if node == nil {
		return errors.New("registry: nil node")
	}
	if _, ok := r.nodes[node.ID]; ok {
		return newError(KindDuplicateNode, "redefinition of node %q", node.ID)
	}
	r.nodes[node.ID] = node
	r.order = append(r.order, node.ID)
	return nil
}

// Get returns the node registered under id.
func (r *Registry) Get(id string) (*Node, error) {
	node, ok := r.nodes[id]
	if !ok {
		return nil, newError(KindUnknownNode, "nonexistent node %q", id)
	}
	return node, nil
}

// Has reports whether id is registered in this scope.
func (r *Registry) Has(id string) bool {
	_, ok := r.nodes[id]
	return ok
}

// All returns the nodes in insertion order.
func (r *Registry) All() []*Node {
	out := make([]*Node, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.nodes[id])
	}
	return out
}

// Len returns the number of nodes in this scope.
func (r *Registry) Len() int {
	return len(r.order)
}

// Walk visits every node of the scope and its descendants breadth first.
// depth is 0 for nodes of this registry. Returning false stops the walk.
func (r *Registry) Walk(visit func(node *Node, depth int) bool) {
	type item struct {
		node  *Node
		depth int
	}
	frontier := make([]item, 0, r.Len())
	for _, n := range r.All() {
		frontier = append(frontier, item{node: n})
	}
	for len(frontier) > 0 {
		next := frontier[0]
		frontier = frontier[1:]
		if !visit(next.node, next.depth) {
			return
		}
		for _, child := range next.node.Children().All() {
			frontier = append(frontier, item{node: child, depth: next.depth + 1})
		}
	}
}
