// Package xmlconf implements the markup-format driver. Structural parsing
// and tag building are delegated to the encoding/xml token codec: elements
// with element children become sections, text-only elements become
// directives, markup attributes map onto node attributes in document order,
// and XML comments are preserved between elements. A comment inside a
// text-only element is hoisted to just before that element. Inter-element
// whitespace is treated as markup formatting rather than content and is not
// represented in the tree.
package xmlconf

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

// Defaults.
const (
	DefaultRootTag    = "config"
	DefaultIndent     = "  "
	DefaultLineEnding = "\n"
)

// Options configure the markup driver.
type Options struct {
	// RootTag names the wrapper element a whole-document render emits
	// around the root's children. Parsing accepts any wrapper name.
	// Default "config".
	RootTag string
	// OmitAttrs drops node attributes on render instead of emitting them as
	// markup attributes.
	OmitAttrs bool
	// Indent is the per-depth indentation unit on render. Default two
	// spaces.
	Indent string
	// LineEnding terminates the rendered document. Default "\n".
	LineEnding string
}

// Driver parses and renders XML configuration documents.
type Driver struct {
	opts Options
}

// New builds a driver with the given options, fixed for its lifetime.
func New(opts Options) *Driver {
	if opts.RootTag == "" {
		opts.RootTag = DefaultRootTag
	}
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	if opts.LineEnding == "" {
		opts.LineEnding = DefaultLineEnding
	}
	return &Driver{opts: opts}
}

// frame tracks one open element while the token stream is consumed.
type frame struct {
	node       *tree.Node
	text       strings.Builder
	childElems int
}

// Parse consumes the XML token stream of src, treating the document element
// as the wrapper for root. Elements attach as sections first and collapse
// to directives when they close without element children, which keeps
// sibling order intact while the element's shape is still unknown.
func (d *Driver) Parse(src []byte, source string, root *tree.Node) error {
	dec := xml.NewDecoder(bytes.NewReader(src))
	stack := []*frame{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return parseError(source, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				// Document element: the wrapper around root's children.
				stack = append(stack, &frame{node: root})
				continue
			}
			top := stack[len(stack)-1]
			top.childElems++
			var attrs tree.Attrs
			for _, a := range t.Attr {
				attrs = append(attrs, tree.Attr{Key: a.Name.Local, Value: a.Value})
			}
			sec, err := top.node.CreateSection(t.Name.Local, attrs, tree.Bottom())
			if err != nil {
				return err
			}
			stack = append(stack, &frame{node: sec})
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.node == root {
				continue
			}
			if f.childElems == 0 {
				// A directive holds no children; comments inside a
				// scalar element hoist to just before it.
				for _, c := range append([]*tree.Node(nil), f.node.Children...) {
					if err := f.node.Parent.Attach(c, tree.Before(f.node)); err != nil {
						return err
					}
				}
				f.node.Kind = types.KindDirective
				f.node.Content = strings.TrimSpace(f.text.String())
				f.node.Children = nil
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.Comment:
			target := root
			if len(stack) > 0 {
				target = stack[len(stack)-1].node
			}
			if target.Kind != types.KindSection {
				continue
			}
			if _, err := target.CreateComment(strings.TrimSpace(string(t)), tree.Bottom()); err != nil {
				return err
			}
		default:
			// ProcInst, DOCTYPE and other prolog tokens carry no structure.
		}
	}
	return nil
}

func parseError(source string, err error) error {
	var syn *xml.SyntaxError
	line := 0
	if errors.As(err, &syn) {
		line = syn.Line
	}
	return &types.ParseError{Source: source, Line: line, Msg: "malformed markup", Err: err}
}

// Render produces the XML text for n via the token encoder. Rendering the
// root wraps its children in the configured RootTag element; any other node
// renders as its own element tree. Blank nodes have no markup form and
// render as nothing.
func (d *Driver) Render(n *tree.Node) string {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", d.opts.Indent)
	d.encode(enc, &buf, n, 0)
	enc.Flush()
	buf.WriteString(d.opts.LineEnding)
	return buf.String()
}

func (d *Driver) encode(enc *xml.Encoder, buf *bytes.Buffer, n *tree.Node, depth int) {
	switch n.Kind {
	case types.KindSection:
		name := n.Name
		if n.IsRoot() {
			name = d.opts.RootTag
		}
		start := xml.StartElement{Name: xml.Name{Local: name}, Attr: d.encodeAttrs(n.Attrs)}
		enc.EncodeToken(start)
		for _, c := range n.Children {
			d.encode(enc, buf, c, depth+1)
		}
		// A section holding only comments gets no line break from the
		// encoder before its closing tag.
		if commentsOnly(n.Children) {
			d.breakLine(enc, buf, depth)
		}
		enc.EncodeToken(xml.EndElement{Name: start.Name})
	case types.KindDirective:
		start := xml.StartElement{Name: xml.Name{Local: n.Name}, Attr: d.encodeAttrs(n.Attrs)}
		enc.EncodeToken(start)
		if n.Content != "" {
			enc.EncodeToken(xml.CharData(n.Content))
		}
		enc.EncodeToken(xml.EndElement{Name: start.Name})
	case types.KindComment:
		// The encoder writes comment tokens without indentation.
		if depth > 0 {
			d.breakLine(enc, buf, depth)
		}
		// "--" cannot appear inside a markup comment.
		text := strings.ReplaceAll(n.Content, "--", "- -")
		enc.EncodeToken(xml.Comment(" " + text + " "))
	case types.KindBlank:
	default:
	}
}

// breakLine starts an indented line in the raw output, flushing the encoder
// first so the bytes land in order.
func (d *Driver) breakLine(enc *xml.Encoder, buf *bytes.Buffer, depth int) {
	enc.Flush()
	buf.WriteString("\n")
	buf.WriteString(strings.Repeat(d.opts.Indent, depth))
}

// commentsOnly reports whether children render some markup but no element.
func commentsOnly(children []*tree.Node) bool {
	sawComment := false
	for _, c := range children {
		switch c.Kind {
		case types.KindSection, types.KindDirective:
			return false
		case types.KindComment:
			sawComment = true
		}
	}
	return sawComment
}

func (d *Driver) encodeAttrs(attrs tree.Attrs) []xml.Attr {
	if d.opts.OmitAttrs || len(attrs) == 0 {
		return nil
	}
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, xml.Attr{Name: xml.Name{Local: a.Key}, Value: a.Value})
	}
	return out
}

// WriteFile renders n as a standalone document, prepending the XML
// declaration header, and writes the byte string in one truncating call.
func (d *Driver) WriteFile(fs afero.Fs, path string, n *tree.Node) error {
	return afero.WriteFile(fs, path, []byte(xml.Header+d.Render(n)), 0o644)
}
