package nodelang

import (
	"errors"
	"fmt"
	"strings"
)

// Kind enumerates the failures a parse can end with.
type Kind int

const (
	KindDuplicateNode Kind = iota + 1
	KindUnknownNode
	KindSyntax
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrDuplicateNode = errors.New("duplicate node")
	ErrUnknownNode   = errors.New("unknown node")
	ErrSyntax        = errors.New("invalid syntax")

	// ErrAlreadyParsed is returned when Parse is called twice on one Graph.
	ErrAlreadyParsed = errors.New("graph already parsed")
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateNode:
		return "DuplicateNode"
	case KindUnknownNode:
		return "UnknownNode"
	case KindSyntax:
		return "SyntaxError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindDuplicateNode:
		return ErrDuplicateNode
	case KindUnknownNode:
		return ErrUnknownNode
	case KindSyntax:
		return ErrSyntax
	}
	return nil
}

// Error is a parse failure. Line and Context are zero until the Graph
// attaches the position of the line being processed.
type Error struct {
	Kind    Kind          `json:"kind"`
	Message string        `json:"message"`
	Line    int           `json:"line"`
	Context []ContextLine `json:"context,omitempty"`
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap exposes the kind sentinel so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// ContextLine is one row of the source window attached to an Error.
type ContextLine struct {
	Number  int    `json:"number"`
	Text    string `json:"text"`
	Current bool   `json:"current"`
}
