package conf

import (
	"github.com/spf13/afero"

	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

// DocumentOptions configure a Document.
type DocumentOptions struct {
	// FS is the filesystem the document reads and writes through.
	// Default is the host filesystem.
	FS afero.Fs

	// Registry resolves format names. Default is DefaultRegistry().
	Registry *Registry
}

// Document binds a configuration tree to the source and format it was
// parsed from, so the text can be edited structurally and written back.
// A Document is not safe for concurrent mutation; callers serialize
// writers.
type Document struct {
	fs  afero.Fs
	reg *Registry

	root   *tree.Node
	source string
	format string
	drv    Driver
}

// New builds an empty document. The zero options select the host
// filesystem and the default registry.
func New(opts DocumentOptions) *Document {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry()
	}
	return &Document{fs: opts.FS, reg: opts.Registry, root: tree.NewRoot()}
}

// Root returns the document's root node.
func (d *Document) Root() *tree.Node { return d.root }

// Source returns the name of the last parsed input, usually a path.
func (d *Document) Source() string { return d.source }

// Format returns the format name of the last parse, or "" when the
// driver was supplied directly.
func (d *Document) Format() string { return d.format }

// Registry returns the registry the document resolves format names with.
func (d *Document) Registry() *Registry { return d.reg }

// ParseFile reads path through the document's filesystem and parses it as
// the named format. The path is remembered as the document's source.
func (d *Document) ParseFile(path, format string) error {
	drv, err := d.reg.Lookup(format)
	if err != nil {
		return err
	}
	src, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: "read " + path, Err: err}
	}
	return d.parse(drv, src, path, format)
}

// ParseBytes parses src as the named format. source names the input for
// error positions.
func (d *Document) ParseBytes(src []byte, source, format string) error {
	drv, err := d.reg.Lookup(format)
	if err != nil {
		return err
	}
	return d.parse(drv, src, source, format)
}

// ParseWith parses src with an explicitly constructed driver, bypassing
// the registry.
func (d *Document) ParseWith(drv Driver, src []byte, source string) error {
	return d.parse(drv, src, source, "")
}

// parse replaces the document's tree and bindings, then runs the driver.
// On a parse error the fresh root keeps the nodes attached before the
// failure; nothing is rolled back.
func (d *Document) parse(drv Driver, src []byte, source, format string) error {
	norm, err := normalizeInput(src)
	if err != nil {
		return err
	}
	d.root = tree.NewRoot()
	d.source = source
	d.format = format
	d.drv = drv
	return drv.Parse(norm, source, d.root)
}

// Render produces the document in the format it was parsed from.
func (d *Document) Render() (string, error) {
	if d.drv == nil {
		return "", &types.Error{Kind: types.ErrKindUsage, Msg: "document has no bound format"}
	}
	return d.drv.Render(d.root), nil
}

// RenderAs produces the document in another registered format.
func (d *Document) RenderAs(format string) (string, error) {
	drv, err := d.reg.Lookup(format)
	if err != nil {
		return "", err
	}
	return drv.Render(d.root), nil
}

// RenderWith produces the document with an explicitly constructed driver.
func (d *Document) RenderWith(drv Driver) string {
	return drv.Render(d.root)
}

// WriteFile writes the document to path in the format it was parsed from.
func (d *Document) WriteFile(path string) error {
	if d.drv == nil {
		return &types.Error{Kind: types.ErrKindUsage, Msg: "document has no bound format"}
	}
	return d.write(d.drv, path)
}

// WriteFileAs writes the document to path in another registered format.
func (d *Document) WriteFileAs(path, format string) error {
	drv, err := d.reg.Lookup(format)
	if err != nil {
		return err
	}
	return d.write(drv, path)
}

// Save writes the document back to the path it was parsed from.
func (d *Document) Save() error {
	if d.source == "" {
		return &types.Error{Kind: types.ErrKindUsage, Msg: "document has no source path"}
	}
	return d.WriteFile(d.source)
}

// write hands the whole tree to the driver's file capability when it has
// one, otherwise performs a single truncating write of the rendered text.
func (d *Document) write(drv Driver, path string) error {
	var err error
	if fw, ok := drv.(FileWriter); ok {
		err = fw.WriteFile(d.fs, path, d.root)
	} else {
		err = afero.WriteFile(d.fs, path, []byte(drv.Render(d.root)), 0o644)
	}
	if err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: "write " + path, Err: err}
	}
	return nil
}
