package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"reelsift/internal/export"
	"reelsift/internal/journal"
	"reelsift/internal/logging"
	"reelsift/internal/review"
	"reelsift/internal/sift"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var startFlag string
	var endFlag string
	var tagFlag string
	var script bool

	cmd := &cobra.Command{
		Use:   "review <history.csv>",
		Short: "Interactively sift a viewing history into a Letterboxd import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if tagFlag != "" {
				cfg.Letterboxd.Tag = tagFlag
			}

			if !script && !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("stdin is not a terminal; pass --script to feed answers from a pipe")
			}

			window, err := sift.ParseWindow(startFlag, endFlag)
			if err != nil {
				return err
			}

			lock, err := sift.AcquireLock(cfg.Paths.OutputDir)
			if err != nil {
				return err
			}
			defer func() {
				_ = lock.Release()
			}()

			sessionID := uuid.NewString()
			logger = logger.With(logging.String(logging.FieldSessionID, sessionID))

			var observer review.Observer
			if cfg.Review.Journal {
				store, err := journal.Open(cfg.Paths.LogDir)
				if err != nil {
					return fmt.Errorf("open decision journal: %w", err)
				}
				defer func() {
					_ = store.Close()
				}()
				observer = journal.NewRecorder(store, sessionID, logger)
			}

			pipeline := sift.New(cfg, logger)
			prepared, err := pipeline.Prepare(args[0], window)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if prepared.Load.Malformed > 0 {
				fmt.Fprintf(out, "[warn] %d malformed rows skipped\n", prepared.Load.Malformed)
			}
			fmt.Fprintf(out, "%d records in window: %d show groups, %d film candidates\n",
				len(prepared.Load.Records), len(prepared.Groups.Groups), len(prepared.Groups.Films))

			presenter := newPrompter(out, cfg.Review.ListLimit)
			runner := review.NewRunner(prepared.State, cmd.InOrStdin(), presenter, observer, logger)
			outcome, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			files, err := pipeline.Export(outcome, window)
			if err != nil {
				return err
			}

			printSessionSummary(out, outcome, files)
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Earliest watch date to keep (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Latest watch date to keep (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&tagFlag, "tag", "", "Tag written into every import row (overrides config)")
	cmd.Flags().BoolVar(&script, "script", false, "Read answers from non-terminal stdin")
	return cmd
}

func printSessionSummary(out io.Writer, outcome review.Outcome, files export.Files) {
	approved := len(outcome.Approved())
	rows := [][]string{
		{"Confirmed TV groups", strconv.Itoa(len(outcome.ConfirmedTV))},
		{"Film decisions", strconv.Itoa(len(outcome.Films))},
		{"Approved for import", strconv.Itoa(approved)},
		{"Undecided groups", strconv.Itoa(len(outcome.UndecidedGroups))},
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Result", "Count"}, rows, 2))
	fmt.Fprintf(out, "Prelist:      %s\n", files.Prelist)
	fmt.Fprintf(out, "Discarded TV: %s\n", files.DiscardedTV)
	fmt.Fprintf(out, "Import:       %s (%d rows)\n", files.Import, files.ImportRows)
}
