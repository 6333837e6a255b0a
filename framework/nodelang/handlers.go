package nodelang

import "strings"

// definition handles `name [(alias)] : content`.
func (g *Graph) definition(line string, lineNo int) error {
	left, right, _ := strings.Cut(line, ":")
	left = strings.TrimSpace(left)
	name, alias := splitAlias(left)
	id := alias
	if id == "" {
		id = name
	}
	node := NewNode(id, name, strings.TrimSpace(right))
	node.Line = lineNo
	return g.nodes.Add(node)
}

// splitAlias separates a trailing parenthesised alias from a definition's
// left-hand side. The opening paren is the last '(' before the final ')'.
func splitAlias(left string) (name, alias string) {
	if !strings.HasSuffix(left, ")") {
		return left, ""
	}
	open := strings.LastIndex(left[:len(left)-1], "(")
	if open < 0 {
		return left, ""
	}
	return strings.TrimSpace(left[:open]), strings.TrimSpace(left[open+1 : len(left)-1])
}

// elaboration handles `parent < [(alias)] content`.
func (g *Graph) elaboration(line string, lineNo int) error {
	left, right, _ := strings.Cut(line, "<")
	parent, err := g.Find(strings.TrimSpace(left))
	if err != nil {
		return err
	}
	right = strings.TrimSpace(right)
	alias, content := "", right
	if strings.HasPrefix(right, "(") {
		if end := strings.Index(right, ")"); end > 0 {
			alias = strings.TrimSpace(right[1:end])
			content = strings.TrimSpace(right[end+1:])
		}
	}
	if alias == "" {
		alias = content
	}
	child := NewNode(alias, alias, content)
	child.Line = lineNo
	return parent.Children().Add(child)
}

// connection handles `origin <label> dest [& dest ...]`.
func (g *Graph) connection(line string, lineNo int) error {
	lt := strings.Index(line, "<")
	gt := strings.Index(line, ">")
	origin, err := g.Find(strings.TrimSpace(line[:lt]))
	if err != nil {
		return err
	}
	label := strings.TrimSpace(line[lt+1 : gt])

	var refs []Reference
	for _, token := range strings.Split(line[gt+1:], "&") {
		token = strings.TrimSpace(token)
		if node, err := g.Find(token); err == nil {
			refs = append(refs, registered(node))
			continue
		}
		refs = append(refs, standIn(token, lineNo))
	}
	origin.Outgoing().Add(label, refs...)
	return nil
}
