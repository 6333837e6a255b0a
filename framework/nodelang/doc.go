// Package nodelang parses a line-oriented notation for causal graphs.
//
// Each non-blank line is one of:
//
//	# comment
//	name (alias) : content          definition of a top-level node
//	parent < (alias) content        elaboration nested under parent
//	origin <relation> a & b         connection from origin to a and b
//
// Parsing is fail-fast: the first bad line aborts the parse and is reported
// as an *Error carrying the surrounding source lines.
package nodelang
