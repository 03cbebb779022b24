package conf

import (
	"github.com/spf13/afero"

	"github.com/joshuapare/confkit/pkg/tree"
)

// Driver converts between a configuration text format and the node tree.
// Implementations live under pkg/driver and are constructed once with
// their option struct; they hold no per-call state.
type Driver interface {
	// Parse decodes src into children of root. source is the input's name
	// for error positions. The first syntax error stops the parse and is
	// returned as a *types.ParseError; nodes already attached stay attached.
	Parse(src []byte, source string, root *tree.Node) error

	// Render produces the textual form of n and its subtree. Rendering
	// never fails; node kinds a format cannot express render as nothing.
	Render(n *tree.Node) string
}

// FileWriter is an optional driver capability for formats that add
// file-level framing, such as a markup declaration header, when a tree is
// written as a standalone file.
type FileWriter interface {
	WriteFile(fs afero.Fs, path string, n *tree.Node) error
}

// Factory builds a fresh driver with that format's default options.
type Factory func() Driver
