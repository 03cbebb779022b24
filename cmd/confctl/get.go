package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/confkit/pkg/tree"
	"github.com/joshuapare/confkit/pkg/types"
)

var getFormat string

func init() {
	cmd := newGetCmd()
	cmd.Flags().StringVar(&getFormat, "format", "", "Input format (default: by extension)")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <name> [name...]",
		Short: "Look up a value by its section path",
		Long: `The get command descends the parsed tree one name per argument and
prints what the path lands on: a directive prints its content, a section
prints its rendered body.

Example:
  confctl get app.ini db host
  confctl get app.xml server listen --format xml
  confctl get app.ini db --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	path := args[0]
	format := detectFormat(path, getFormat)

	printVerbose("Parsing %s as %s\n", path, format)

	doc := newDocument()
	if err := doc.ParseFile(path, format); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	steps := make([]tree.PathStep, 0, len(args)-1)
	for _, name := range args[1:] {
		steps = append(steps, tree.Step(name))
	}
	n, err := doc.Root().SearchPath(steps...)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if n == nil {
		return fmt.Errorf("path not found: %s", strings.Join(args[1:], " "))
	}

	if jsonOut {
		return printJSON(n.ToMap(true))
	}

	switch n.Kind {
	case types.KindDirective:
		fmt.Println(n.Content)
	case types.KindSection:
		drv, err := doc.Registry().Lookup(format)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, drv.Render(n))
	}
	return nil
}
