package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

var (
	treeFormat string
	treeDepth  int
	treeAttrs  bool
)

var (
	sectionColor   = color.New(color.FgCyan, color.Bold)
	directiveColor = color.New(color.FgGreen)
	commentColor   = color.New(color.Faint)
	attrColor      = color.New(color.FgYellow)
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().StringVar(&treeFormat, "format", "", "Input format (default: by extension)")
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeAttrs, "attrs", false, "Show node attributes")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Display the structural tree of a file",
		Long: `The tree command prints the parsed structure: sections, directives and
comments, indented by nesting depth.

Example:
  confctl tree app.ini
  confctl tree httpd.conf --format apache --attrs
  confctl tree app.xml --depth 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	path := args[0]
	format := detectFormat(path, treeFormat)

	printVerbose("Parsing %s as %s\n", path, format)

	doc := newDocument()
	if err := doc.ParseFile(path, format); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if jsonOut {
		return printJSON(doc.Root().ToMap(true))
	}

	printTree(os.Stdout, doc.Root(), 0)
	return nil
}

func printTree(w io.Writer, n *tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case types.KindSection:
		childDepth := depth
		if !n.IsRoot() {
			fmt.Fprintf(w, "%s%s%s\n", indent, sectionColor.Sprint(n.Name), attrSuffix(n))
			childDepth = depth + 1
		}
		if treeDepth > 0 && childDepth >= treeDepth {
			return
		}
		for _, c := range n.Children {
			printTree(w, c, childDepth)
		}
	case types.KindDirective:
		fmt.Fprintf(w, "%s%s = %s%s\n", indent, directiveColor.Sprint(n.Name), n.Content, attrSuffix(n))
	case types.KindComment:
		fmt.Fprintf(w, "%s%s\n", indent, commentColor.Sprint("# "+n.Content))
	case types.KindBlank:
	}
}

func attrSuffix(n *tree.Node) string {
	if !treeAttrs || len(n.Attrs) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(n.Attrs))
	for _, a := range n.Attrs {
		if a.Value == "" {
			pairs = append(pairs, a.Key)
			continue
		}
		pairs = append(pairs, a.Key+"="+a.Value)
	}
	return " " + attrColor.Sprintf("[%s]", strings.Join(pairs, " "))
}
