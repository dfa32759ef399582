package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"recast/internal/history"
	"recast/internal/recode"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool
	var forPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past processing results",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var results []recode.Result
			if forPath != "" {
				abs, err := filepath.Abs(forPath)
				if err != nil {
					return fmt.Errorf("resolve path: %w", err)
				}
				results, err = store.ForPath(cmd.Context(), abs)
				if err != nil {
					return err
				}
			} else {
				results, err = store.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No history recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(results))
			for _, res := range results {
				rows = append(rows, []string{
					res.FinishedAt.Local().Format(time.DateTime),
					string(res.Status),
					res.VideoAction,
					res.AudioAction,
					res.SubtitleAction,
					filepath.Base(res.Path),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"FINISHED", "STATUS", "VIDEO", "AUDIO", "SUBS", "FILE"},
				rows, nil))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit full result records as JSON")
	cmd.Flags().StringVarP(&forPath, "path", "p", "", "Show history for a single file")

	cmd.AddCommand(newHistoryStatsCommand(ctx))
	return cmd
}

func newHistoryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate processing counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			counts, err := store.Counts(cmd.Context())
			if err != nil {
				return err
			}

			statuses := make([]string, 0, len(counts))
			for status := range counts {
				statuses = append(statuses, string(status))
			}
			sort.Strings(statuses)

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				rows = append(rows, []string{status, fmt.Sprintf("%d", counts[recode.Status(status)])})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"STATUS", "COUNT"},
				rows,
				[]columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errors.New("history is disabled; set history.enabled in the configuration")
	}
	return history.Open(cfg.History.Path)
}
