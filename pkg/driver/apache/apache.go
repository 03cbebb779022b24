// Package apache implements the bracketed-block grammar: `<Name args>` and
// `</Name>` wrap nested sections, directives are bare `name value` lines,
// `#` marks comments, and a trailing backslash joins continuation lines with
// a space. Close markers must match the innermost open section
// (case-insensitively); whether an unclosed section at end of input is an
// error is selectable per driver.
package apache

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/joshuapare/confkit/internal/scan"
	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

// Grammar tokens.
const (
	OpenBracket   = "<"
	CloseBracket  = ">"
	ClosePrefix   = "</"
	CommentMarker = "#"
	Continuation  = "\\"

	DefaultIndent     = "    "
	DefaultLineEnding = "\n"
)

// Options configure the bracketed-block grammar.
type Options struct {
	// StrictClose makes a section left open at end of input a parse error.
	// The default mirrors the format's traditional leniency.
	StrictClose bool
	// Indent is the per-depth indentation unit on render. Default four
	// spaces.
	Indent string
	// LineEnding terminates every rendered line. Default "\n".
	LineEnding string
}

// Driver parses and renders bracketed-block configuration text.
type Driver struct {
	opts Options
}

// New builds a driver with the given options, fixed for its lifetime.
func New(opts Options) *Driver {
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	if opts.LineEnding == "" {
		opts.LineEnding = DefaultLineEnding
	}
	return &Driver{opts: opts}
}

// Parse appends the block structure of src to root, tracking open sections
// on an explicit stack seeded with root. Nodes created before a failure stay
// attached.
func (d *Driver) Parse(src []byte, source string, root *tree.Node) error {
	ls := scan.NewLineScanner(bytes.NewReader(src), scan.LineOptions{
		Comment:      CommentMarker,
		Continuation: Continuation,
		JoinSep:      " ",
	})
	stack := []*tree.Node{root}
	for ls.Scan() {
		line := ls.Text()
		trim := strings.TrimSpace(line)
		cur := stack[len(stack)-1]
		switch {
		case trim == "":
			if _, err := cur.CreateBlank(tree.Bottom()); err != nil {
				return err
			}
		case strings.HasPrefix(trim, CommentMarker):
			text := strings.TrimSpace(strings.TrimPrefix(trim, CommentMarker))
			if _, err := cur.CreateComment(text, tree.Bottom()); err != nil {
				return err
			}
		case strings.HasPrefix(trim, ClosePrefix):
			if !strings.HasSuffix(trim, CloseBracket) {
				return &types.ParseError{Source: source, Line: ls.Line(), Msg: fmt.Sprintf("malformed close marker: %q", trim)}
			}
			name := strings.TrimSpace(trim[len(ClosePrefix) : len(trim)-len(CloseBracket)])
			if len(stack) == 1 || !strings.EqualFold(name, cur.Name) {
				return &types.ParseError{
					Source: source,
					Line:   ls.Line(),
					Msg:    fmt.Sprintf("close marker %q does not match open section %q", name, openName(stack)),
				}
			}
			stack = stack[:len(stack)-1]
		case strings.HasPrefix(trim, OpenBracket):
			if !strings.HasSuffix(trim, CloseBracket) {
				return &types.ParseError{Source: source, Line: ls.Line(), Msg: fmt.Sprintf("malformed section marker: %q", trim)}
			}
			fields := strings.Fields(trim[len(OpenBracket) : len(trim)-len(CloseBracket)])
			if len(fields) == 0 {
				return &types.ParseError{Source: source, Line: ls.Line(), Msg: "empty section marker"}
			}
			var attrs tree.Attrs
			for _, arg := range fields[1:] {
				attrs = append(attrs, tree.Attr{Key: arg})
			}
			sec, err := cur.CreateSection(fields[0], attrs, tree.Bottom())
			if err != nil {
				return err
			}
			stack = append(stack, sec)
		default:
			var name, content string
			if i := strings.IndexAny(trim, " \t"); i >= 0 {
				name, content = trim[:i], strings.TrimSpace(trim[i:])
			} else {
				name = trim
			}
			if _, err := cur.CreateDirective(name, content, nil, tree.Bottom()); err != nil {
				return err
			}
		}
	}
	if err := ls.Err(); err != nil {
		return &types.ParseError{Source: source, Line: ls.Line(), Msg: "failed to read source", Err: err}
	}
	if d.opts.StrictClose && len(stack) > 1 {
		return &types.ParseError{
			Source: source,
			Line:   ls.Line(),
			Msg:    fmt.Sprintf("section %q left open at end of input", stack[len(stack)-1].Name),
		}
	}
	return nil
}

func openName(stack []*tree.Node) string {
	if len(stack) == 1 {
		return "<none>"
	}
	return stack[len(stack)-1].Name
}

// Render produces bracketed-block text for n, indenting one unit per
// section depth. Unrecognized kinds render as nothing.
func (d *Driver) Render(n *tree.Node) string {
	var buf bytes.Buffer
	d.render(&buf, n, 0)
	return buf.String()
}

func (d *Driver) render(buf *bytes.Buffer, n *tree.Node, depth int) {
	indent := strings.Repeat(d.opts.Indent, depth)
	switch n.Kind {
	case types.KindSection:
		if n.IsRoot() {
			for _, c := range n.Children {
				d.render(buf, c, depth)
			}
			return
		}
		buf.WriteString(indent)
		buf.WriteString(OpenBracket)
		buf.WriteString(n.Name)
		for _, a := range n.Attrs {
			buf.WriteByte(' ')
			buf.WriteString(a.Key)
			if a.Value != "" {
				buf.WriteString("=" + a.Value)
			}
		}
		buf.WriteString(CloseBracket)
		buf.WriteString(d.opts.LineEnding)
		for _, c := range n.Children {
			d.render(buf, c, depth+1)
		}
		buf.WriteString(indent)
		buf.WriteString(ClosePrefix)
		buf.WriteString(n.Name)
		buf.WriteString(CloseBracket)
		buf.WriteString(d.opts.LineEnding)
	case types.KindDirective:
		buf.WriteString(indent)
		buf.WriteString(n.Name)
		if n.Content != "" {
			buf.WriteByte(' ')
			buf.WriteString(n.Content)
		}
		buf.WriteString(d.opts.LineEnding)
	case types.KindComment:
		buf.WriteString(indent)
		buf.WriteString(CommentMarker)
		if n.Content != "" {
			buf.WriteByte(' ')
			buf.WriteString(n.Content)
		}
		buf.WriteString(d.opts.LineEnding)
	case types.KindBlank:
		buf.WriteString(d.opts.LineEnding)
	default:
	}
}
