package plain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

func TestParseBasic(t *testing.T) {
	input := "# main settings\nhost: example.com\n\nport: 8080\n"

	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(input), "app.conf", root))

	require.Len(t, root.Children, 4)
	require.Equal(t, types.KindComment, root.Children[0].Kind)
	require.Equal(t, "main settings", root.Children[0].Content)
	require.Equal(t, types.KindDirective, root.Children[1].Kind)
	require.Equal(t, "host", root.Children[1].Name)
	require.Equal(t, "example.com", root.Children[1].Content)
	require.Equal(t, types.KindBlank, root.Children[2].Kind)
	require.Equal(t, "8080", root.Children[3].Content)
}

func TestParseCustomSeparator(t *testing.T) {
	root := tree.NewRoot()
	d := New(Options{Separator: "=", Comment: ";"})
	require.NoError(t, d.Parse([]byte("; note\nname = value\n"), "custom.conf", root))

	require.Len(t, root.Children, 2)
	require.Equal(t, "note", root.Children[0].Content)
	require.Equal(t, "name", root.Children[1].Name)
	require.Equal(t, "value", root.Children[1].Content)
}

func TestParseContinuation(t *testing.T) {
	input := "key: first+\nsecond\n"
	root := tree.NewRoot()
	d := New(Options{Continuation: "+"})
	require.NoError(t, d.Parse([]byte(input), "joined.conf", root))

	require.Len(t, root.Children, 1)
	require.Equal(t, "firstsecond", root.Children[0].Content)
}

func TestParseError(t *testing.T) {
	input := "host: ok\nthis line has no separator\nport: 80\n"
	root := tree.NewRoot()
	err := New(Options{}).Parse([]byte(input), "bad.conf", root)
	require.Error(t, err)

	var perr *types.ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "bad.conf", perr.Source)
	require.Equal(t, 2, perr.Line)

	// The first line parsed before the failure stays attached.
	require.Len(t, root.Children, 1)
	require.Equal(t, "host", root.Children[0].Name)
}

func TestRenderRoundTrip(t *testing.T) {
	input := "# main settings\nhost: example.com\n\nport: 8080\n"
	root := tree.NewRoot()
	d := New(Options{})
	require.NoError(t, d.Parse([]byte(input), "app.conf", root))
	require.Equal(t, input, d.Render(root))
}

func TestRenderKinds(t *testing.T) {
	d := New(Options{})
	root := tree.NewRoot()
	dir, err := root.CreateDirective("empty", "", nil, tree.Bottom())
	require.NoError(t, err)
	require.Equal(t, "empty:\n", d.Render(dir))

	com, err := root.CreateComment("", tree.Bottom())
	require.NoError(t, err)
	require.Equal(t, "#\n", d.Render(com))

	blank, err := root.CreateBlank(tree.Bottom())
	require.NoError(t, err)
	require.Equal(t, "\n", d.Render(blank))
}

func TestRenderFlattensSections(t *testing.T) {
	root := tree.NewRoot()
	sec, err := root.CreateSection("group", nil, tree.Bottom())
	require.NoError(t, err)
	_, err = sec.CreateDirective("inner", "1", nil, tree.Bottom())
	require.NoError(t, err)

	require.Equal(t, "inner: 1\n", New(Options{}).Render(root))
}
