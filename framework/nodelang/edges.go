package nodelang

// Edges maps a relation label to its ordered destinations.
type Edges struct {
	dests  map[string][]Reference
	labels []string
}

// NewEdges constructs an empty edge table.
func NewEdges() *Edges {
	return &Edges{dests: make(map[string][]Reference)}
}

// Add appends refs to label, creating the label when it is new.
func (e *Edges) Add(label string, refs ...Reference) {
	existing, ok := e.dests[label]
	if !ok {
		e.labels = append(e.labels, label)
		existing = []Reference{}
	}
	e.dests[label] = append(existing, refs...)
}

// Get returns a copy of the destinations declared under label.
func (e *Edges) Get(label string) ([]Reference, bool) {
	refs, ok := e.dests[label]
	if !ok {
		return nil, false
	}
	return append([]Reference{}, refs...), true
}

// Labels returns relation labels in first-declared order.
func (e *Edges) Labels() []string {
	return append([]string(nil), e.labels...)
}

// Len returns the number of distinct labels.
func (e *Edges) Len() int {
	return len(e.labels)
}
