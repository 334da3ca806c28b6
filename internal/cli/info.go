package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ps2kit/ps2kit/internal/dataset"
	"github.com/ps2kit/ps2kit/internal/ps2"
)

// InfoOptions holds flags for the info command.
type InfoOptions struct {
	*RootOptions
	Dataset string
}

// InfoResult summarizes a dataset.
type InfoResult struct {
	Version         string   `json:"version,omitempty"`
	EventOrderScope string   `json:"event_order_scope"`
	Events          int      `json:"events"`
	Subjects        int      `json:"subjects"`
	Problems        int      `json:"problems"`
	LinkTables      []string `json:"link_tables,omitempty"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InfoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Summarize a dataset",
		Long: `Print a summary of a dataset directory: schema version, ordering scope,
event/subject/problem counts, and the available link tables.

Examples:
  ps2kit info --dataset ./dataset
  ps2kit info --dataset ./dataset --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dataset, "dataset", "", "dataset directory")

	return cmd
}

func runInfo(opts *InfoOptions, cmd *cobra.Command) error {
	d := dataset.New(opts.datasetPath(opts.Dataset))

	main, err := d.MainTable()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load main table", err)
	}
	subjects, err := d.SubjectIDs()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list subjects", err)
	}
	problems, err := d.ProblemIDs()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list problems", err)
	}

	version, _, err := d.MetadataProperty(ps2.PropVersion)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read metadata", err)
	}
	scope, _, err := d.MetadataProperty(ps2.PropEventOrderScope)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read metadata", err)
	}

	// A dataset may legitimately have no link tables directory at all.
	linkTables, err := d.ListLinkTables()
	if err != nil {
		linkTables = nil
	}

	result := InfoResult{
		Version:         version,
		EventOrderScope: scope,
		Events:          len(main.Rows),
		Subjects:        len(subjects),
		Problems:        len(problems),
		LinkTables:      linkTables,
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Version:           %s\n", result.Version)
	fmt.Fprintf(out, "Event order scope: %s\n", result.EventOrderScope)
	fmt.Fprintf(out, "Events:            %d\n", result.Events)
	fmt.Fprintf(out, "Subjects:          %d\n", result.Subjects)
	fmt.Fprintf(out, "Problems:          %d\n", result.Problems)
	if len(result.LinkTables) > 0 {
		fmt.Fprintf(out, "Link tables:       %v\n", result.LinkTables)
	}
	return nil
}
