package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/confkit/internal/logging"
)

var (
	convertFrom string
	convertTo   string
)

func init() {
	cmd := newConvertCmd()
	cmd.Flags().StringVar(&convertFrom, "from", "", "Input format (default: by extension)")
	cmd.Flags().StringVar(&convertTo, "to", "", "Output format (default: by extension)")
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a configuration file to another format",
		Long: `The convert command parses the input file and writes it out in another
format. Structure survives the conversion; comments and blank lines are
kept where the target format can express them.

Example:
  confctl convert app.ini app.xml
  confctl convert httpd.conf site.json --from apache
  confctl convert app.json flags.txt --to plain`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
	return cmd
}

func runConvert(args []string) error {
	inPath, outPath := args[0], args[1]
	from := detectFormat(inPath, convertFrom)
	to := detectFormat(outPath, convertTo)

	printVerbose("Parsing %s as %s\n", inPath, from)

	doc := newDocument()
	if err := doc.ParseFile(inPath, from); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	logging.Debug().Str("from", from).Str("to", to).Msg("converting document")

	if err := doc.WriteFileAs(outPath, to); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"input":   inPath,
			"output":  outPath,
			"from":    from,
			"to":      to,
			"success": true,
		})
	}

	printInfo("Converted %s (%s) -> %s (%s)\n", inPath, from, outPath, to)
	return nil
}
