package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/confkit/pkg/conf"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the registered formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormats()
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats() error {
	names := conf.DefaultRegistry().Formats()
	if jsonOut {
		return printJSON(names)
	}
	for _, name := range names {
		marker := "  "
		if name == settings.DefaultFormat {
			marker = "* "
		}
		printInfo("%s%s\n", marker, name)
	}
	if settings.DefaultFormat != "" {
		printInfo("\n* default format from settings\n")
	}
	return nil
}
