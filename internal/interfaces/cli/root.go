// Package cli implements the molscope command line: the text-only variant
// of the viewer, operating on local files and the bundled example library.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/molscope/molscope/internal/config"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	OutputFormat string
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "molscope",
		Short:   "molscope — PDB structure summarizer and viewer backend",
		Long:    "molscope parses PDB structure files and reports atom, residue, and chain\ncounts plus geometry metadata, from the command line or as an HTTP service.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")

	cmd.AddCommand(
		newSummarizeCommand(opts),
		newInfoCommand(opts),
		newExamplesCommand(opts),
	)

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig resolves the effective configuration: the file named by
// --config when given, otherwise environment variables over defaults.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}
	return config.LoadFromEnv()
}

// printResult renders v as indented JSON when --output=json, otherwise via
// the text function.
func printResult(opts *RootOptions, v interface{}, text func() string) error {
	if opts.OutputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	fmt.Println(text())
	return nil
}
