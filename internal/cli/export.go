package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ps2kit/ps2kit/internal/export"
	"github.com/ps2kit/ps2kit/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string
	Out      string
	Force    bool
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the store as a CSV dataset directory",
		Long: `Write the event store out as a ProgSnap2 dataset directory:
MainTable.csv, DatasetMetadata.csv, CodeStates/CodeStates.csv, and the link
tables under LinkTables/. The dataset is staged and renamed into place, so a
failed export leaves nothing at the target.

Examples:
  ps2kit export --db ./study.db --out ./dataset
  ps2kit export --db ./study.db --out ./dataset --force`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite event store")
	cmd.Flags().StringVar(&opts.Out, "out", "", "target dataset directory")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "replace the target directory if it exists")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	target := opts.datasetPath(opts.Out)

	st, err := store.Open(opts.databasePath(opts.Database))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	if opts.Force {
		if err := os.RemoveAll(target); err != nil {
			return WrapExitError(ExitCommandError, "failed to remove existing dataset", err)
		}
	}

	if err := export.Export(ctx, st, target); err != nil {
		return WrapExitError(ExitCommandError, "export failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return formatter.Success(map[string]string{"dataset": target})
}
