package types

import "strconv"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindUsage  ErrKind = iota // structural misuse (non-section op, removing root)
	ErrKindFormat                // unknown or unregistered format name
	ErrKindIO                    // source unreadable / target unwritable
	ErrKindParse                 // malformed input text
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrNotSection indicates a children-bearing operation on a non-section node.
	ErrNotSection = &Error{Kind: ErrKindUsage, Msg: "node is not a section"}
	// ErrRemoveRoot indicates an attempt to detach the tree root.
	ErrRemoveRoot = &Error{Kind: ErrKindUsage, Msg: "cannot remove the root section"}
	// ErrNotChild indicates a Before/After placement target that is not a child
	// of the receiving section.
	ErrNotChild = &Error{Kind: ErrKindUsage, Msg: "placement target is not a child of this section"}
	// ErrUnknownFormat indicates a format name with no registered driver.
	ErrUnknownFormat = &Error{Kind: ErrKindFormat, Msg: "unknown configuration format"}
)

// -----------------------------------------------------------------------------
// Parse errors (positioned, per source)
// -----------------------------------------------------------------------------

// ParseError reports the first unrecoverable syntax error of a parse call,
// positioned by source identifier and physical line number. Nodes attached
// before the failing line are left in place; parsing performs no rollback.
type ParseError struct {
	Source string // path or caller-supplied source id
	Line   int    // 1-based physical line, 0 when unknown
	Msg    string
	Err    error // optional underlying cause
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := e.Source
	if s == "" {
		s = "<input>"
	}
	out := s + ":" + strconv.Itoa(e.Line) + ": " + e.Msg
	if e.Err != nil {
		out += ": " + e.Err.Error()
	}
	return out
}

func (e *ParseError) Unwrap() error { return e.Err }

// -----------------------------------------------------------------------------
// Node kinds
// -----------------------------------------------------------------------------

// ItemKind enumerates the closed set of node kinds the tree can hold.
// KindAny is the zero value and is only meaningful inside match filters;
// constructed nodes always carry one of the four concrete kinds.
type ItemKind uint8

const (
	KindAny       ItemKind = iota // filter wildcard, never stored on a node
	KindSection                   // container with ordered children
	KindDirective                 // name/value leaf, optionally with attributes
	KindComment                   // preserved comment text
	KindBlank                     // preserved blank line
)

// String implements the Stringer interface for ItemKind.
func (k ItemKind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindSection:
		return "section"
	case KindDirective:
		return "directive"
	case KindComment:
		return "comment"
	case KindBlank:
		return "blank"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}
