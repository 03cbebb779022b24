package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/confkit/pkg/tree"
)

var (
	setFormat string
	setCreate bool
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setFormat, "format", "", "File format (default: by extension)")
	cmd.Flags().BoolVar(&setCreate, "create", false, "Create missing sections along the path")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> [section...] <name> <value>",
		Short: "Set a directive and write the file back",
		Long: `The set command updates the last directive with the given name inside
the addressed section, or appends a new one, then writes the file back
in its own format.

Example:
  confctl set app.ini db port 5433
  confctl set app.xml server listen 8080
  confctl set app.ini cache redis url tcp://6379 --create`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	path := args[0]
	name, value := args[len(args)-2], args[len(args)-1]
	sections := args[1 : len(args)-2]
	format := detectFormat(path, setFormat)

	printVerbose("Parsing %s as %s\n", path, format)

	doc := newDocument()
	if err := doc.ParseFile(path, format); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cur := doc.Root()
	for _, sec := range sections {
		next, err := cur.SearchPath(tree.Step(sec))
		if err != nil {
			return fmt.Errorf("failed to resolve section %q: %w", sec, err)
		}
		if next == nil {
			if !setCreate {
				return fmt.Errorf("section not found: %s (use --create to add it)", sec)
			}
			next, err = cur.CreateSection(sec, nil, tree.Bottom())
			if err != nil {
				return fmt.Errorf("failed to create section %q: %w", sec, err)
			}
		}
		cur = next
	}

	if _, err := cur.SetDirective(name, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}

	if err := doc.Save(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":    path,
			"name":    name,
			"value":   value,
			"success": true,
		})
	}

	printInfo("Set %s = %s in %s\n", name, value, path)
	return nil
}
