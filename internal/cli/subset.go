package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ps2kit/ps2kit/internal/dataset"
	"github.com/ps2kit/ps2kit/internal/ps2"
)

// SubsetOptions holds flags for the subset command.
type SubsetOptions struct {
	*RootOptions
	Dataset    string
	Out        string
	MinScore   float64
	SubjectID  string
	ProblemID  string
	LinkTables bool
}

// NewSubsetCommand creates the subset command.
func NewSubsetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SubsetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "subset",
		Short: "Write a filtered copy of a dataset",
		Long: `Copy a dataset keeping only the main-table rows that pass the given
filters. The copy contains exactly the code snapshots the surviving rows
reference, the metadata unchanged, and link tables reduced to the surviving
rows' ID tuples.

Examples:
  ps2kit subset --dataset ./dataset --out ./passing --min-score 0.5
  ps2kit subset --dataset ./dataset --out ./s1 --subject S1 --link-tables=false`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubset(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dataset, "dataset", "", "source dataset directory")
	cmd.Flags().StringVar(&opts.Out, "out", "", "target dataset directory (required)")
	_ = cmd.MarkFlagRequired("out")
	cmd.Flags().Float64Var(&opts.MinScore, "min-score", 0, "keep rows with Score strictly above this value")
	cmd.Flags().StringVar(&opts.SubjectID, "subject", "", "keep rows for this subject")
	cmd.Flags().StringVar(&opts.ProblemID, "problem", "", "keep rows for this problem")
	cmd.Flags().BoolVar(&opts.LinkTables, "link-tables", true, "copy filtered link tables")

	return cmd
}

func runSubset(opts *SubsetOptions, cmd *cobra.Command) error {
	d := dataset.New(opts.datasetPath(opts.Dataset))

	filterScore := cmd.Flags().Changed("min-score")
	filter := func(t *dataset.Table) *dataset.Table {
		scoreIdx, hasScore := t.ColumnIndex(ps2.ColScore)
		subjectIdx, hasSubject := t.ColumnIndex(ps2.ColSubjectID)
		problemIdx, hasProblem := t.ColumnIndex(ps2.ColProblemID)

		return t.Filter(func(row []string) bool {
			if filterScore && hasScore {
				score, err := strconv.ParseFloat(row[scoreIdx], 64)
				if err != nil || score <= opts.MinScore {
					return false
				}
			}
			if opts.SubjectID != "" && hasSubject && row[subjectIdx] != opts.SubjectID {
				return false
			}
			if opts.ProblemID != "" && hasProblem && row[problemIdx] != opts.ProblemID {
				return false
			}
			return true
		})
	}

	if err := d.SaveSubset(opts.Out, filter, opts.LinkTables); err != nil {
		return WrapExitError(ExitCommandError, "failed to save subset", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return formatter.Success(map[string]string{"dataset": opts.Out})
}
