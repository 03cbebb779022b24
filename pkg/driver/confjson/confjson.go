// Package confjson implements the JSON-family driver. Input may carry
// line comments and trailing commas, which are stripped before decoding;
// the remaining document is walked in source order. Objects become
// sections, scalars become directives, and arrays fan out into repeated
// children under the element name. An object holding a "#" key decodes as
// a directive, with "@" supplying its attributes, mirroring the map
// export shape.
//
// Values are untyped text in the tree, so rendering re-detects scalar
// spellings: content reading as a JSON number, true, false or null is
// emitted bare, everything else as a quoted string. Comment nodes render
// as line comments, which the next parse removes again.
package confjson

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"

	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

// Reserved object keys, matching the map export convention.
const (
	ContentKey    = "#"
	AttributesKey = "@"
)

// Defaults.
const (
	DefaultIndent     = "  "
	DefaultLineEnding = "\n"
)

// Options configure the JSON driver.
type Options struct {
	// Indent is the per-depth indentation unit on render. Default two
	// spaces.
	Indent string
	// LineEnding terminates every rendered line. Default "\n".
	LineEnding string
}

// Driver parses and renders JSON configuration documents.
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

// Parse decodes src into children of root. The top-level value must be an
// object. Comments and trailing commas are tolerated and discarded.
func (d *Driver) Parse(src []byte, source string, root *tree.Node) error {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil
	}
	clean := jsonc.ToJSON(src)
	if !gjson.ValidBytes(clean) {
		return &types.ParseError{Source: source, Msg: "invalid document syntax"}
	}
	doc := gjson.ParseBytes(clean)
	if !doc.IsObject() {
		return &types.ParseError{Source: source, Msg: "top-level value must be an object"}
	}
	return walkObject(doc, root)
}

func walkObject(obj gjson.Result, parent *tree.Node) error {
	var werr error
	obj.ForEach(func(key, value gjson.Result) bool {
		werr = addValue(parent, key.String(), value)
		return werr == nil
	})
	return werr
}

// addValue attaches one decoded value under parent. Arrays recurse per
// element so repeated names stay adjacent in source order.
func addValue(parent *tree.Node, name string, value gjson.Result) error {
	switch {
	case value.IsArray():
		var werr error
		value.ForEach(func(_, elem gjson.Result) bool {
			werr = addValue(parent, name, elem)
			return werr == nil
		})
		return werr
	case value.IsObject():
		content, attrs, directive := splitSpecial(value)
		if directive {
			_, err := parent.CreateDirective(name, content, attrs, tree.Bottom())
			return err
		}
		sec, err := parent.CreateSection(name, attrs, tree.Bottom())
		if err != nil {
			return err
		}
		var werr error
		value.ForEach(func(key, child gjson.Result) bool {
			if key.String() == AttributesKey {
				return true
			}
			werr = addValue(sec, key.String(), child)
			return werr == nil
		})
		return werr
	default:
		_, err := parent.CreateDirective(name, scalarText(value), nil, tree.Bottom())
		return err
	}
}

// splitSpecial extracts the reserved keys from an object. Presence of "#"
// marks the object as a directive wrapper rather than a section.
func splitSpecial(obj gjson.Result) (content string, attrs tree.Attrs, directive bool) {
	obj.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case ContentKey:
			content = scalarText(value)
			directive = true
		case AttributesKey:
			value.ForEach(func(ak, av gjson.Result) bool {
				attrs = append(attrs, tree.Attr{Key: ak.String(), Value: scalarText(av)})
				return true
			})
		}
		return true
	})
	return content, attrs, directive
}

func scalarText(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return value.String()
	case gjson.Null:
		return ""
	default:
		// Numbers and booleans keep their literal spelling.
		return value.Raw
	}
}

// Render produces JSON text for n. Rendering the root emits the whole
// document object; any other section renders as an object, a directive as
// a single member line. Same-name siblings collapse into an array at the
// first occurrence, and comment nodes become line comments.
func (d *Driver) Render(n *tree.Node) string {
	var buf bytes.Buffer
	switch n.Kind {
	case types.KindSection:
		d.writeObject(&buf, n, 0)
	case types.KindDirective:
		buf.WriteString(jsonKey(n.Name) + ": " + d.directiveValue(n))
	case types.KindComment:
		buf.WriteString("// " + n.Content)
	}
	buf.WriteString(d.opts.LineEnding)
	return buf.String()
}

// writeObject emits the members of sec as a brace-delimited object.
// grouped tracks siblings already folded into an earlier array, scoped to
// this render invocation.
func (d *Driver) writeObject(buf *bytes.Buffer, sec *tree.Node, depth int) {
	if len(sec.Children) == 0 && len(sec.Attrs) == 0 {
		buf.WriteString("{}")
		return
	}
	type item struct {
		node  *tree.Node
		group []*tree.Node // nil for comments and blanks
	}
	grouped := map[*tree.Node]struct{}{}
	items := make([]item, 0, len(sec.Children))
	lastNamed := -1
	for _, c := range sec.Children {
		switch c.Kind {
		case types.KindSection, types.KindDirective:
			if _, done := grouped[c]; done {
				continue
			}
			items = append(items, item{node: c, group: nameGroup(sec, c, grouped)})
			lastNamed = len(items) - 1
		case types.KindComment, types.KindBlank:
			items = append(items, item{node: c})
		}
	}

	buf.WriteString("{")
	buf.WriteString(d.opts.LineEnding)
	inner := strings.Repeat(d.opts.Indent, depth+1)

	if len(sec.Attrs) > 0 {
		buf.WriteString(inner + jsonKey(AttributesKey) + ": " + d.attrsValue(sec.Attrs))
		if lastNamed >= 0 {
			buf.WriteString(",")
		}
		buf.WriteString(d.opts.LineEnding)
	}
	for i, it := range items {
		switch it.node.Kind {
		case types.KindComment:
			buf.WriteString(inner + "// " + it.node.Content)
		case types.KindBlank:
		default:
			buf.WriteString(inner + jsonKey(it.node.Name) + ": ")
			d.writeGroup(buf, it.group, depth+1)
			if i < lastNamed {
				buf.WriteString(",")
			}
		}
		buf.WriteString(d.opts.LineEnding)
	}
	buf.WriteString(strings.Repeat(d.opts.Indent, depth) + "}")
}

// nameGroup collects all siblings sharing first's name, marking the later
// ones so the iteration skips them.
func nameGroup(sec *tree.Node, first *tree.Node, grouped map[*tree.Node]struct{}) []*tree.Node {
	var group []*tree.Node
	for _, c := range sec.Children {
		if (c.Kind == types.KindSection || c.Kind == types.KindDirective) && c.Name == first.Name {
			group = append(group, c)
			grouped[c] = struct{}{}
		}
	}
	return group
}

func (d *Driver) writeGroup(buf *bytes.Buffer, group []*tree.Node, depth int) {
	if len(group) == 1 {
		d.writeValue(buf, group[0], depth)
		return
	}
	multiline := false
	for _, m := range group {
		if m.Kind == types.KindSection {
			multiline = true
		}
	}
	buf.WriteString("[")
	inner := strings.Repeat(d.opts.Indent, depth+1)
	for i, m := range group {
		if multiline {
			buf.WriteString(d.opts.LineEnding + inner)
		} else if i > 0 {
			buf.WriteString(" ")
		}
		d.writeValue(buf, m, depth+1)
		if i < len(group)-1 {
			buf.WriteString(",")
		}
	}
	if multiline {
		buf.WriteString(d.opts.LineEnding + strings.Repeat(d.opts.Indent, depth))
	}
	buf.WriteString("]")
}

func (d *Driver) writeValue(buf *bytes.Buffer, n *tree.Node, depth int) {
	if n.Kind == types.KindSection {
		d.writeObject(buf, n, depth)
		return
	}
	buf.WriteString(d.directiveValue(n))
}

// directiveValue renders a directive's value, wrapping it in the "#"/"@"
// object shape when attributes are present.
func (d *Driver) directiveValue(n *tree.Node) string {
	if len(n.Attrs) == 0 {
		return scalarJSON(n.Content)
	}
	return "{" + jsonKey(ContentKey) + ": " + scalarJSON(n.Content) +
		", " + jsonKey(AttributesKey) + ": " + d.attrsValue(n.Attrs) + "}"
}

func (d *Driver) attrsValue(attrs tree.Attrs) string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, a := range attrs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(jsonKey(a.Key) + ": " + scalarJSON(a.Value))
	}
	sb.WriteString("}")
	return sb.String()
}

// scalarJSON picks the JSON spelling for untyped content. Exact boolean
// and null spellings, and anything that validates as a bare number, emit
// raw; everything else is a quoted string.
func scalarJSON(s string) string {
	switch s {
	case "true", "false", "null":
		return s
	}
	if s != "" && (s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) && gjson.Valid(s) {
		return s
	}
	return jsonKey(s)
}

func jsonKey(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
