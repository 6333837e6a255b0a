package nodelang

import "strings"

// LineKind is the syntactic category of one source line.
type LineKind string

const (
	LineComment     LineKind = "comment"
	LineDefinition  LineKind = "definition"
	LineElaboration LineKind = "elaboration"
	LineConnection  LineKind = "connection"
	LineMalformed   LineKind = "malformed"
)

// Classify decides the category of a trimmed, non-empty line.
//
// A ':' anywhere makes the line a definition, even when '<' and '>' are
// also present.
func Classify(line string) LineKind {
	if strings.HasPrefix(line, "#") {
		return LineComment
	}
	if strings.Contains(line, ":") {
		return LineDefinition
	}
	lt := strings.Index(line, "<")
	gt := strings.Index(line, ">")
	switch {
	case lt >= 0 && (gt < 0 || gt < lt):
		return LineElaboration
	case lt >= 0 && lt < gt:
		return LineConnection
	default:
		return LineMalformed
	}
}
