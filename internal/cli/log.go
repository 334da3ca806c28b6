package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ps2kit/ps2kit/internal/ps2"
	"github.com/ps2kit/ps2kit/internal/store"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Database        string
	EventType       string
	SubjectID       string
	ProblemID       string
	AssignmentID    string
	Score           float64
	Code            string
	CodeFile        string
	ClientTimestamp string
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append one event to the store",
		Long: `Append a single event to the main table. Code passed via --code or
--code-file is deduplicated against the snapshot store by content; two events
with identical code share one CodeStateID.

The event type is an open vocabulary; standard ProgSnap2 tags such as
Submit, File.Edit, or Run.Program are not validated so tools can extend them.

Examples:
  ps2kit log --db ./study.db --type Submit --subject S1 --problem P1 --code 'print(1)' --score 1
  ps2kit log --db ./study.db --type File.Edit --subject S1 --code-file solution.py`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite event store")
	cmd.Flags().StringVar(&opts.EventType, "type", "", "event type tag (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&opts.SubjectID, "subject", "", "subject ID")
	cmd.Flags().StringVar(&opts.ProblemID, "problem", "", "problem ID")
	cmd.Flags().StringVar(&opts.AssignmentID, "assignment", "", "assignment ID")
	cmd.Flags().Float64Var(&opts.Score, "score", 0, "score for the event")
	cmd.Flags().StringVar(&opts.Code, "code", "", "code snapshot text")
	cmd.Flags().StringVar(&opts.CodeFile, "code-file", "", "file to read the code snapshot from")
	cmd.Flags().StringVar(&opts.ClientTimestamp, "client-timestamp", "", "client timestamp (defaults to now, RFC 3339)")

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := store.Open(opts.databasePath(opts.Database))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	ev := ps2.Event{}
	if opts.SubjectID != "" {
		ev.SubjectID = ps2.String(opts.SubjectID)
	}
	if opts.ProblemID != "" {
		ev.ProblemID = ps2.String(opts.ProblemID)
	}
	if opts.AssignmentID != "" {
		ev.AssignmentID = ps2.String(opts.AssignmentID)
	}
	if cmd.Flags().Changed("score") {
		ev.Score = ps2.Float(opts.Score)
	}

	switch {
	case opts.CodeFile != "":
		code, err := os.ReadFile(opts.CodeFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read code file", err)
		}
		ev.CodeState = ps2.String(string(code))
	case cmd.Flags().Changed("code"):
		ev.CodeState = ps2.String(opts.Code)
	}

	clientTS := opts.ClientTimestamp
	if clientTS == "" {
		clientTS = time.Now().UTC().Format(time.RFC3339)
	}
	ev.ClientTimestamp = ps2.String(clientTS)
	ev.ServerTimestamp = ps2.String(time.Now().UTC().Format(time.RFC3339))

	if err := st.LogEvent(ctx, opts.EventType, ev); err != nil {
		return WrapExitError(ExitCommandError, "failed to log event", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	formatter.VerboseLog("logged %s event", opts.EventType)
	return formatter.Success(map[string]string{"event_type": opts.EventType})
}
