package apache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

const fixture = `# primary vhost
<VirtualHost *:80>
    ServerName example.com
    <Directory /var/www>
        Require all granted
    </Directory>
</VirtualHost>
`

func TestParseNestedSections(t *testing.T) {
	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(fixture), "vhost.conf", root))

	require.Len(t, root.Children, 2)
	require.Equal(t, types.KindComment, root.Children[0].Kind)
	require.Equal(t, "primary vhost", root.Children[0].Content)

	vhost := root.Children[1]
	require.Equal(t, types.KindSection, vhost.Kind)
	require.Equal(t, "VirtualHost", vhost.Name)
	require.Equal(t, tree.Attrs{{Key: "*:80"}}, vhost.Attrs)
	require.Len(t, vhost.Children, 2)

	require.Equal(t, "ServerName", vhost.Children[0].Name)
	require.Equal(t, "example.com", vhost.Children[0].Content)

	dir := vhost.Children[1]
	require.Equal(t, "Directory", dir.Name)
	require.Equal(t, tree.Attrs{{Key: "/var/www"}}, dir.Attrs)
	require.Len(t, dir.Children, 1)
	require.Equal(t, "Require", dir.Children[0].Name)
	require.Equal(t, "all granted", dir.Children[0].Content)
}

func TestRenderRoundTrip(t *testing.T) {
	root := tree.NewRoot()
	d := New(Options{})
	require.NoError(t, d.Parse([]byte(fixture), "vhost.conf", root))
	require.Equal(t, fixture, d.Render(root))
}

func TestParseContinuation(t *testing.T) {
	input := "ServerAlias one.example.com \\\n    two.example.com\n"
	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(input), "alias.conf", root))

	require.Len(t, root.Children, 1)
	require.Equal(t, "one.example.com two.example.com", root.Children[0].Content)
}

func TestParseCloseCaseInsensitive(t *testing.T) {
	input := "<IfModule mod_ssl.c>\nSSLEngine on\n</ifmodule>\n"
	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(input), "ssl.conf", root))
	require.Equal(t, "IfModule", root.Children[0].Name)
}

func TestParseMismatchedClose(t *testing.T) {
	input := "<Directory /srv>\n</Location>\n"
	root := tree.NewRoot()
	err := New(Options{}).Parse([]byte(input), "bad.conf", root)

	var perr *types.ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, 2, perr.Line)
	require.Contains(t, perr.Msg, "Location")
	require.Contains(t, perr.Msg, "Directory")
}

func TestParseCloseWithoutOpen(t *testing.T) {
	root := tree.NewRoot()
	err := New(Options{}).Parse([]byte("</Directory>\n"), "bad.conf", root)

	var perr *types.ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, 1, perr.Line)
}

func TestUnclosedSectionStrictness(t *testing.T) {
	input := "<Directory /srv>\nOptions None\n"

	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(input), "open.conf", root),
		"leniency is the default")
	require.Equal(t, "Directory", root.Children[0].Name)

	strict := tree.NewRoot()
	err := New(Options{StrictClose: true}).Parse([]byte(input), "open.conf", strict)
	var perr *types.ParseError
	require.True(t, errors.As(err, &perr))
	require.Contains(t, perr.Msg, "Directory")
	require.Equal(t, 2, perr.Line)
}

func TestRenderDirectiveOnlyName(t *testing.T) {
	root := tree.NewRoot()
	root.CreateDirective("ClearModuleList", "", nil, tree.Bottom())
	require.Equal(t, "ClearModuleList\n", New(Options{}).Render(root))
}

func TestRenderCustomIndent(t *testing.T) {
	root := tree.NewRoot()
	sec, _ := root.CreateSection("Block", nil, tree.Bottom())
	sec.CreateDirective("Key", "v", nil, tree.Bottom())

	d := New(Options{Indent: "\t"})
	require.Equal(t, "<Block>\n\tKey v\n</Block>\n", d.Render(root))
}
