// Package cli implements the ps2kit command line: initializing and writing a
// ProgSnap2 event store, exporting it as a CSV dataset, and querying or
// subsetting exported datasets.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ps2kit/ps2kit/internal/config"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is resolved in PersistentPreRunE, before any subcommand runs.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the ps2kit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ps2kit",
		Short: "ProgSnap2 event logging and dataset tools",
		Long: "ps2kit logs programming-process events to a SQLite store with " +
			"content-deduplicated code snapshots, exports the store as a " +
			"ProgSnap2 CSV dataset, and queries or subsets exported datasets.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.ConfigPath != "" {
				cfg, err := config.Load(opts.ConfigPath)
				if err != nil {
					return err
				}
				opts.Config = cfg
			} else {
				opts.Config = config.Default()
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewLogCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewSubsetCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// databasePath resolves the store path: flag value when given, config
// otherwise.
func (o *RootOptions) databasePath(flag string) string {
	if flag != "" {
		return flag
	}
	return o.Config.Database
}

// datasetPath resolves the dataset directory: flag value when given, config
// otherwise.
func (o *RootOptions) datasetPath(flag string) string {
	if flag != "" {
		return flag
	}
	return o.Config.Dataset
}
