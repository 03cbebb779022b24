// Package plain implements the flat key/value configuration grammar: one
// directive per logical line, a configurable separator and comment marker,
// and an optional continuation marker that joins physical lines without a
// separator. The format has no section syntax; sections render as their
// flattened children.
package plain

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/joshuapare/confkit/internal/scan"
	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

// Grammar defaults.
const (
	DefaultComment    = "#"
	DefaultSeparator  = ":"
	DefaultLineEnding = "\n"
)

// Options configure the plain grammar. Zero fields take the documented
// defaults; a zero Continuation leaves joining disabled.
type Options struct {
	// Comment is the comment-line marker. Default "#".
	Comment string
	// Separator splits a directive name from its value. Default ":".
	Separator string
	// Continuation joins a physical line with the next when it ends the
	// line; fragments are joined without a separator. Empty disables it.
	Continuation string
	// LineEnding terminates every rendered line. Default "\n".
	LineEnding string
}

// Driver parses and renders plain key/value configuration text.
type Driver struct {
	opts Options
}

// New builds a driver with the given options. The options are fixed for the
// driver's lifetime.
func New(opts Options) *Driver {
	if opts.Comment == "" {
		opts.Comment = DefaultComment
	}
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	if opts.LineEnding == "" {
		opts.LineEnding = DefaultLineEnding
	}
	return &Driver{opts: opts}
}

// Parse appends one node per logical line of src to root. It stops at the
// first line that is neither blank, comment nor directive; nodes created
// before the failure stay attached.
func (d *Driver) Parse(src []byte, source string, root *tree.Node) error {
	ls := scan.NewLineScanner(bytes.NewReader(src), scan.LineOptions{
		Comment:      d.opts.Comment,
		Continuation: d.opts.Continuation,
		JoinSep:      "",
	})
	for ls.Scan() {
		line := ls.Text()
		switch {
		case scan.IsBlank(line):
			if _, err := root.CreateBlank(tree.Bottom()); err != nil {
				return err
			}
		case d.isComment(line):
			text := strings.TrimSpace(strings.TrimPrefix(strings.TrimLeft(line, " \t"), d.opts.Comment))
			if _, err := root.CreateComment(text, tree.Bottom()); err != nil {
				return err
			}
		default:
			name, value, ok := strings.Cut(line, d.opts.Separator)
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return &types.ParseError{
					Source: source,
					Line:   ls.Line(),
					Msg:    fmt.Sprintf("line matches no blank, comment or directive pattern: %q", strings.TrimSpace(line)),
				}
			}
			if _, err := root.CreateDirective(name, strings.TrimSpace(value), nil, tree.Bottom()); err != nil {
				return err
			}
		}
	}
	if err := ls.Err(); err != nil {
		return &types.ParseError{Source: source, Line: ls.Line(), Msg: "failed to read source", Err: err}
	}
	return nil
}

// Render produces the plain text for n. Sections flatten into their
// children; unrecognized kinds render as nothing.
func (d *Driver) Render(n *tree.Node) string {
	var buf bytes.Buffer
	d.render(&buf, n)
	return buf.String()
}

func (d *Driver) render(buf *bytes.Buffer, n *tree.Node) {
	switch n.Kind {
	case types.KindSection:
		for _, c := range n.Children {
			d.render(buf, c)
		}
	case types.KindDirective:
		buf.WriteString(n.Name)
		buf.WriteString(d.opts.Separator)
		if n.Content != "" {
			buf.WriteByte(' ')
			buf.WriteString(n.Content)
		}
		buf.WriteString(d.opts.LineEnding)
	case types.KindComment:
		buf.WriteString(d.opts.Comment)
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

func (d *Driver) isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), d.opts.Comment)
}
