package cli

import (
	"github.com/spf13/cobra"

	"github.com/ps2kit/ps2kit/internal/store"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Database string
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create or open the event store",
		Long: `Create the SQLite event store, its tables, and the metadata stamp.

Safe to run repeatedly: an existing store is left untouched.

Examples:
  ps2kit init --db ./study.db
  ps2kit init --config ps2kit.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite event store")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	path := opts.databasePath(opts.Database)

	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize store", err)
	}
	defer st.Close()

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return formatter.Success(map[string]string{"database": path})
}
