// Package ini implements the ini-file grammar in two variants selected at
// construction. The strict variant drops comments and blank lines on parse
// and splits values naively on commas. The commented variant preserves `;`
// comments and blanks, tokenizes values with full quote/escape handling,
// fans list values out into duplicate directives, and re-joins those
// duplicates into one comma-separated line on render.
package ini

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
	SectionOpen   = "["
	SectionClose  = "]"
	Separator     = "="
	CommentMarker = ";"

	DefaultLineEnding = "\n"
)

// Options configure the ini grammar.
type Options struct {
	// KeepComments selects the comment-preserving variant: `;` comments and
	// blank lines become nodes, and values pass through the quoted/comma
	// tokenizer. When false, comments and blanks are dropped and values are
	// split on every comma with no quote handling.
	KeepComments bool
	// LineEnding terminates every rendered line. Default "\n".
	LineEnding string
}

// Driver parses and renders ini configuration text.
type Driver struct {
	opts Options
}

// New builds a driver with the given options, fixed for its lifetime.
func New(opts Options) *Driver {
	if opts.LineEnding == "" {
		opts.LineEnding = DefaultLineEnding
	}
	return &Driver{opts: opts}
}

// Parse appends sections and directives from src to root. Section headers
// always open a new section under root; ini nesting is a single level.
// Nodes created before a failure stay attached.
func (d *Driver) Parse(src []byte, source string, root *tree.Node) error {
	ls := scan.NewLineScanner(bytes.NewReader(src), scan.LineOptions{Comment: CommentMarker})
	cur := root
	for ls.Scan() {
		line := ls.Text()
		trim := strings.TrimSpace(line)
		switch {
		case trim == "":
			if !d.opts.KeepComments {
				continue
			}
			if _, err := cur.CreateBlank(tree.Bottom()); err != nil {
				return err
			}
		case strings.HasPrefix(trim, CommentMarker):
			if !d.opts.KeepComments {
				continue
			}
			text := strings.TrimSpace(strings.TrimPrefix(trim, CommentMarker))
			if _, err := cur.CreateComment(text, tree.Bottom()); err != nil {
				return err
			}
		case strings.HasPrefix(trim, SectionOpen) && strings.HasSuffix(trim, SectionClose):
			name := strings.TrimSpace(trim[len(SectionOpen) : len(trim)-len(SectionClose)])
			if name == "" {
				return &types.ParseError{Source: source, Line: ls.Line(), Msg: "empty section name"}
			}
			sec, err := root.CreateSection(name, nil, tree.Bottom())
			if err != nil {
				return err
			}
			cur = sec
		default:
			name, value, ok := strings.Cut(line, Separator)
			name = strings.TrimSpace(name)
			if !ok || name == "" {
				return &types.ParseError{
					Source: source,
					Line:   ls.Line(),
					Msg:    fmt.Sprintf("malformed ini line: %q", trim),
				}
			}
			if err := d.parseValue(cur, name, value, source, ls.Line()); err != nil {
				return err
			}
		}
	}
	if err := ls.Err(); err != nil {
		return &types.ParseError{Source: source, Line: ls.Line(), Msg: "failed to read source", Err: err}
	}
	return nil
}

// parseValue attaches the directives (and, in the commented variant, any
// trailing comment) encoded by one name=value line.
func (d *Driver) parseValue(cur *tree.Node, name, value, source string, line int) error {
	if !d.opts.KeepComments {
		for _, piece := range strings.Split(value, ",") {
			if _, err := cur.CreateDirective(name, strings.TrimSpace(piece), nil, tree.Bottom()); err != nil {
				return err
			}
		}
		return nil
	}

	segs, err := scan.SplitValue(value)
	if err != nil {
		return &types.ParseError{Source: source, Line: line, Msg: "malformed value", Err: err}
	}
	for _, seg := range segs {
		switch seg.Kind {
		case scan.SegValue:
			if _, err := cur.CreateDirective(name, seg.Text, nil, tree.Bottom()); err != nil {
				return err
			}
		case scan.SegComment:
			text := strings.TrimSpace(strings.TrimPrefix(seg.Text, CommentMarker))
			if _, err := cur.CreateComment(text, tree.Bottom()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Render produces ini text for n. In the commented variant, sibling
// directives sharing a name render once, comma-joined at the first
// occurrence's position; the joined set is tracked per render call, never
// across calls. Nested sections flatten to consecutive headers.
func (d *Driver) Render(n *tree.Node) string {
	var buf bytes.Buffer
	d.render(&buf, n, make(map[*tree.Node]struct{}))
	return buf.String()
}

func (d *Driver) render(buf *bytes.Buffer, n *tree.Node, joined map[*tree.Node]struct{}) {
	switch n.Kind {
	case types.KindSection:
		if !n.IsRoot() {
			buf.WriteString(SectionOpen)
			buf.WriteString(n.Name)
			buf.WriteString(SectionClose)
			buf.WriteString(d.opts.LineEnding)
		}
		for _, c := range n.Children {
			if d.opts.KeepComments && c.Kind == types.KindDirective {
				if _, done := joined[c]; done {
					continue
				}
				d.renderJoined(buf, n, c, joined)
				continue
			}
			d.render(buf, c, joined)
		}
	case types.KindDirective:
		buf.WriteString(n.Name)
		buf.WriteString(" " + Separator + " ")
		buf.WriteString(d.quoteIfNeeded(n.Content))
		buf.WriteString(d.opts.LineEnding)
	case types.KindComment:
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

// renderJoined writes first and every later same-name sibling directive of
// parent as a single comma-joined line, marking them consumed in joined.
func (d *Driver) renderJoined(buf *bytes.Buffer, parent, first *tree.Node, joined map[*tree.Node]struct{}) {
	var contents []string
	for _, c := range parent.Children {
		if c.Kind == types.KindDirective && c.Name == first.Name {
			contents = append(contents, d.quoteIfNeeded(c.Content))
			joined[c] = struct{}{}
		}
	}
	buf.WriteString(first.Name)
	buf.WriteString(" " + Separator + " ")
	buf.WriteString(strings.Join(contents, ", "))
	buf.WriteString(d.opts.LineEnding)
}

func (d *Driver) quoteIfNeeded(content string) string {
	if d.opts.KeepComments && scan.NeedsQuote(content) {
		return scan.Quote(content)
	}
	return content
}
