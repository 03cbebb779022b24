package conf

import (
	"fmt"
	"sort"

	"github.com/joshuapare/confkit/pkg/driver/apache"
	"github.com/joshuapare/confkit/pkg/driver/confjson"
	"github.com/joshuapare/confkit/pkg/driver/envfile"
	"github.com/joshuapare/confkit/pkg/driver/ini"
	"github.com/joshuapare/confkit/pkg/driver/plain"
	"github.com/joshuapare/confkit/pkg/driver/xmlconf"
	"github.com/joshuapare/confkit/pkg/types"
)

// Format names registered by DefaultRegistry.
const (
	FormatPlain        = "plain"
	FormatINI          = "ini"
	FormatINICommented = "ini-commented"
	FormatApache       = "apache"
	FormatXML          = "xml"
	FormatJSON         = "json"
	FormatEnv          = "env"
)

// Registry maps format names to driver factories. A Registry is plain
// data handed to the documents that use it; there is no package-global
// instance and no locking, so register everything before sharing one
// across goroutines.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a format name to a factory, replacing any previous
// binding. The zero Registry is ready to use.
func (r *Registry) Register(format string, f Factory) {
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[format] = f
}

// Lookup builds a driver for the named format. Unknown names report
// types.ErrUnknownFormat.
func (r *Registry) Lookup(format string) (Driver, error) {
	f, ok := r.factories[format]
	if !ok {
		return nil, fmt.Errorf("%q: %w", format, types.ErrUnknownFormat)
	}
	return f(), nil
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with every built-in driver under its
// conventional name, each with default options.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(FormatPlain, func() Driver { return plain.New(plain.Options{}) })
	r.Register(FormatINI, func() Driver { return ini.New(ini.Options{}) })
	r.Register(FormatINICommented, func() Driver { return ini.New(ini.Options{KeepComments: true}) })
	r.Register(FormatApache, func() Driver { return apache.New(apache.Options{}) })
	r.Register(FormatXML, func() Driver { return xmlconf.New(xmlconf.Options{}) })
	r.Register(FormatJSON, func() Driver { return confjson.New(confjson.Options{}) })
	r.Register(FormatEnv, func() Driver { return envfile.New(envfile.Options{}) })
	return r
}
