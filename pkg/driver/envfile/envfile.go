// Package envfile implements the environment-definition driver. Each line
// is one NAME=value definition, a "#" comment or a blank; the format is
// flat, so parsing only ever produces directives, comments and blanks, and
// rendering a section flattens its children.
//
// Value syntax is delegated to joho/godotenv in both directions: each
// definition line is unquoted by its parser, and rendered definitions use
// its writer quoting (double quotes with escaped specials, bare integers).
// The format's usual lenient forms, "export" prefixes, ":" separators and
// inline comments after unquoted values, are accepted on parse and
// normalized away on render. Dollar references are expanded by the parser,
// as the format defines.
package envfile

import (
	"bytes"
	"strings"

	"github.com/joho/godotenv"

	"github.com/joshuapare/confkit/internal/scan"
	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

// CommentMarker starts a comment line.
const CommentMarker = "#"

// DefaultLineEnding terminates rendered lines.
const DefaultLineEnding = "\n"

// Options configure the environment-definition driver.
type Options struct {
	// LineEnding terminates every rendered line. Default "\n".
	LineEnding string
}

// Driver parses and renders environment-definition documents.
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

// Parse appends one node per line to root: blanks, comments, or directives
// decoded from NAME=value definitions.
func (d *Driver) Parse(src []byte, source string, root *tree.Node) error {
	sc := scan.NewLineScanner(bytes.NewReader(src), scan.LineOptions{Comment: CommentMarker})
	for sc.Scan() {
		line := sc.Text()
		trim := strings.TrimSpace(line)
		switch {
		case trim == "":
			if _, err := root.CreateBlank(tree.Bottom()); err != nil {
				return err
			}
		case strings.HasPrefix(trim, CommentMarker):
			text := strings.TrimSpace(strings.TrimPrefix(trim, CommentMarker))
			if _, err := root.CreateComment(text, tree.Bottom()); err != nil {
				return err
			}
		default:
			env, err := godotenv.Unmarshal(line)
			if err != nil {
				return &types.ParseError{Source: source, Line: sc.Line(), Msg: "malformed definition", Err: err}
			}
			if len(env) != 1 {
				return &types.ParseError{Source: source, Line: sc.Line(), Msg: "malformed definition"}
			}
			for name, value := range env {
				if _, err := root.CreateDirective(name, value, nil, tree.Bottom()); err != nil {
					return err
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return &types.ParseError{Source: source, Msg: "read failed", Err: err}
	}
	return nil
}

// Render produces the definition text for n. Sections flatten into their
// children, matching the format's flat shape.
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
		buf.WriteString(definition(n.Name, n.Content))
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

// definition formats one NAME=value line with the codec's own quoting.
func definition(name, value string) string {
	line, err := godotenv.Marshal(map[string]string{name: value})
	if err != nil {
		return name + "=" + value
	}
	return line
}
