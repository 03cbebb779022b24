package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joshuapare/confkit/internal/logging"
	"github.com/joshuapare/confkit/pkg/conf"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool

	settings Settings
)

var rootCmd = &cobra.Command{
	Use:   "confctl",
	Short: "Inspect and rewrite structured configuration files",
	Long: `confctl parses configuration files into a structural tree and lets you
look up values, edit directives in place and convert between formats
while keeping comments, blank lines and ordering where the target
format can express them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings = loadSettings()

		level := logging.ParseLevel(settings.LogLevel)
		if verbose {
			level = logging.DebugLevel
		}
		if quiet {
			level = logging.ErrorLevel
		}
		logging.Init(logging.Config{Level: level, Pretty: !jsonOut})

		if noColor || settings.NoColor {
			color.NoColor = true
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// extension-to-format table for detectFormat.
var formatByExt = map[string]string{
	".ini":  conf.FormatINICommented,
	".xml":  conf.FormatXML,
	".json": conf.FormatJSON,
	".env":  conf.FormatEnv,
	".conf": conf.FormatApache,
}

// detectFormat resolves the format for path: an explicit flag wins, then
// the file extension, then the settings default, then plain.
func detectFormat(path, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if f, ok := formatByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	if settings.DefaultFormat != "" {
		return settings.DefaultFormat
	}
	return conf.FormatPlain
}

// newDocument builds a document on the host filesystem.
func newDocument() *conf.Document {
	return conf.New(conf.DocumentOptions{})
}
