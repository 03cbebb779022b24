package confjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

const fixture = `{
  "database": {
    "host": "db.example.com",
    "port": 5432
  },
  "hosts": ["a", "b"],
  "debug": true
}
`

func TestParseShapes(t *testing.T) {
	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(fixture), "app.json", root))

	require.Len(t, root.Children, 4)

	db := root.Children[0]
	require.Equal(t, types.KindSection, db.Kind)
	require.Equal(t, "database", db.Name)
	require.Len(t, db.Children, 2)
	require.Equal(t, "db.example.com", db.Children[0].Content)
	require.Equal(t, "5432", db.Children[1].Content)

	require.Equal(t, "hosts", root.Children[1].Name)
	require.Equal(t, "a", root.Children[1].Content)
	require.Equal(t, "hosts", root.Children[2].Name)
	require.Equal(t, "b", root.Children[2].Content)

	require.Equal(t, "true", root.Children[3].Content)
}

func TestParseTolerantSyntax(t *testing.T) {
	src := "{\n  // cluster\n  \"port\": 80,\n}"
	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(src), "", root))

	// Line comments and trailing commas are stripped, not preserved.
	require.Len(t, root.Children, 1)
	require.Equal(t, "port", root.Children[0].Name)
	require.Equal(t, "80", root.Children[0].Content)
}

func TestParseDirectiveWrapper(t *testing.T) {
	src := `{"host": {"#": "a", "@": {"zone": "eu"}}}`
	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(src), "", root))

	h := root.Children[0]
	require.Equal(t, types.KindDirective, h.Kind)
	require.Equal(t, "a", h.Content)
	require.Equal(t, tree.Attrs{{Key: "zone", Value: "eu"}}, h.Attrs)
}

func TestParseSectionAttrs(t *testing.T) {
	src := `{"db": {"@": {"engine": "postgres"}, "port": 1}}`
	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(src), "", root))

	db := root.Children[0]
	require.Equal(t, types.KindSection, db.Kind)
	require.Equal(t, tree.Attrs{{Key: "engine", Value: "postgres"}}, db.Attrs)
	require.Len(t, db.Children, 1)
	require.Equal(t, "port", db.Children[0].Name)
}

func TestParseArrayOfObjects(t *testing.T) {
	src := `{"server": [{"host": "a"}, {"host": "b"}]}`
	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(src), "", root))

	require.Len(t, root.Children, 2)
	for _, c := range root.Children {
		require.Equal(t, types.KindSection, c.Kind)
		require.Equal(t, "server", c.Name)
	}
	require.Equal(t, "a", root.Children[0].Children[0].Content)
	require.Equal(t, "b", root.Children[1].Children[0].Content)
}

func TestRoundTrip(t *testing.T) {
	root := tree.NewRoot()
	d := New(Options{})
	require.NoError(t, d.Parse([]byte(fixture), "", root))
	require.Equal(t, fixture, d.Render(root))
}

func TestRenderCommentsAndBlanks(t *testing.T) {
	root := tree.NewRoot()
	_, err := root.CreateComment("primary cluster", tree.Bottom())
	require.NoError(t, err)
	_, err = root.CreateDirective("port", "80", nil, tree.Bottom())
	require.NoError(t, err)
	_, err = root.CreateBlank(tree.Bottom())
	require.NoError(t, err)

	got := New(Options{}).Render(root)
	require.Equal(t, "{\n  // primary cluster\n  \"port\": 80\n\n}\n", got)

	// Rendered output stays parseable even with the extra lines.
	again := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte(got), "", again))
	require.Len(t, again.Children, 1)
}

func TestRenderSectionGroupMultiline(t *testing.T) {
	root := tree.NewRoot()
	for _, h := range []string{"a", "b"} {
		sec, err := root.CreateSection("server", nil, tree.Bottom())
		require.NoError(t, err)
		_, err = sec.CreateDirective("host", h, nil, tree.Bottom())
		require.NoError(t, err)
	}

	want := "{\n" +
		"  \"server\": [\n" +
		"    {\n      \"host\": \"a\"\n    },\n" +
		"    {\n      \"host\": \"b\"\n    }\n" +
		"  ]\n" +
		"}\n"
	require.Equal(t, want, New(Options{}).Render(root))
}

func TestRenderScalarSpelling(t *testing.T) {
	cases := []struct {
		content string
		want    string
	}{
		{"5432", "5432"},
		{"-1.5", "-1.5"},
		{"1e5", "1e5"},
		{"true", "true"},
		{"null", "null"},
		{"007", `"007"`},
		{"1.2.3", `"1.2.3"`},
		{"", `""`},
		{`say "hi"`, `"say \"hi\""`},
	}
	for _, tc := range cases {
		n := &tree.Node{Kind: types.KindDirective, Name: "v", Content: tc.content}
		require.Equal(t, "\"v\": "+tc.want+"\n", New(Options{}).Render(n), "content %q", tc.content)
	}
}

func TestParseErrors(t *testing.T) {
	d := New(Options{})

	err := d.Parse([]byte("{bad"), "x.json", tree.NewRoot())
	var perr *types.ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "x.json", perr.Source)

	err = d.Parse([]byte("[1, 2]"), "", tree.NewRoot())
	require.True(t, errors.As(err, &perr))
	require.Contains(t, perr.Msg, "object")
}

func TestParseEmptyInput(t *testing.T) {
	root := tree.NewRoot()
	require.NoError(t, New(Options{}).Parse([]byte("  \n"), "", root))
	require.Empty(t, root.Children)
}
