package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelsift/internal/sift"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var startFlag string
	var endFlag string

	cmd := &cobra.Command{
		Use:   "scan <history.csv>",
		Short: "Summarize how a viewing history would classify, without writing files",
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

			window, err := sift.ParseWindow(startFlag, endFlag)
			if err != nil {
				return err
			}

			prepared, err := sift.New(cfg, logger).Prepare(args[0], window)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if prepared.Load.Malformed > 0 {
				fmt.Fprintf(out, "[warn] %d malformed rows skipped\n", prepared.Load.Malformed)
			}

			rows := make([][]string, 0, len(prepared.Groups.Groups))
			for _, group := range prepared.Groups.Groups {
				first := ""
				last := ""
				if n := len(group.Episodes); n > 0 {
					first = group.Episodes[0].Record.WatchedDate()
					last = group.Episodes[n-1].Record.WatchedDate()
				}
				rows = append(rows, []string{
					group.Key,
					strconv.Itoa(len(group.Episodes)),
					first,
					last,
				})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable([]string{"Show", "Episodes", "First", "Last"}, rows, 2))
			}

			fmt.Fprintf(out, "%d records in window: %d show groups, %d film candidates, %d out of window\n",
				len(prepared.Load.Records),
				len(prepared.Groups.Groups),
				len(prepared.Groups.Films),
				prepared.Load.OutOfWindow,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Earliest watch date to keep (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Latest watch date to keep (YYYY-MM-DD, inclusive)")
	return cmd
}
