package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ps2kit/ps2kit/internal/dataset"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Dataset   string
	SubjectID string
	ProblemID string
}

// TraceResult holds the ordered code snapshots for a subject/problem pair.
type TraceResult struct {
	SubjectID string   `json:"subject_id"`
	ProblemID string   `json:"problem_id"`
	Snapshots []string `json:"snapshots"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the code trace for a subject/problem pair",
		Long: `Reconstruct the ordered sequence of code snapshots a subject produced
while working on a problem, with duplicate snapshots collapsed to their first
occurrence.

Examples:
  ps2kit trace --dataset ./dataset --subject S1 --problem P1
  ps2kit trace --dataset ./dataset --subject S1 --problem P1 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dataset, "dataset", "", "dataset directory")
	cmd.Flags().StringVar(&opts.SubjectID, "subject", "", "subject ID (required)")
	_ = cmd.MarkFlagRequired("subject")
	cmd.Flags().StringVar(&opts.ProblemID, "problem", "", "problem ID (required)")
	_ = cmd.MarkFlagRequired("problem")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	d := dataset.New(opts.datasetPath(opts.Dataset))

	snapshots, err := d.Trace(opts.SubjectID, opts.ProblemID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build trace", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	if opts.Format == "json" {
		return formatter.Success(TraceResult{
			SubjectID: opts.SubjectID,
			ProblemID: opts.ProblemID,
			Snapshots: snapshots,
		})
	}

	if len(snapshots) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No code snapshots for subject %s on problem %s\n",
			opts.SubjectID, opts.ProblemID)
		return NewExitError(ExitFailure, "empty trace")
	}

	for i, code := range snapshots {
		fmt.Fprintf(cmd.OutOrStdout(), "--- snapshot %d ---\n%s\n", i+1, code)
	}
	return nil
}
