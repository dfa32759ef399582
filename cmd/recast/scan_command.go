package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"recast/internal/recode"
	"recast/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var allFiles bool

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Report which library files need processing",
		Long: "Scan probes every media file under the given path (default: the\n" +
			"configured Plex library root) and reports, without touching anything,\n" +
			"which files would be recoded, which subtitles would be extracted, and\n" +
			"which Dolby Vision files would get an HDR10 sidecar.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			root := cfg.Plex.Root
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				root, err = filepath.Abs(args[0])
				if err != nil {
					return fmt.Errorf("resolve path: %w", err)
				}
			}
			if strings.TrimSpace(root) == "" {
				return errors.New("no path given and plex.root is not configured")
			}

			processor := recode.NewProcessor(cfg, ctx.ensureLogger(), recode.Options{DryRun: true})
			entries, err := scan.Run(cmd.Context(), processor, root, ctx.ensureLogger())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, scanReport(entries))
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				if !allFiles && !entry.NeedsWork() && entry.Err == nil {
					continue
				}
				rows = append(rows, []string{relTo(root, entry.Path), scan.Reasons(entry)})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable([]string{"FILE", "STATUS"}, rows, nil))
			}

			summary := scan.Summarize(entries)
			fmt.Fprintf(out, "Scanned %d file(s): %d compatible, %d need work, %d error(s)\n",
				summary.Total, summary.Compatible, summary.NeedWork, summary.Errors)
			if summary.NeedWork > 0 {
				fmt.Fprintf(out, "  video recode: %d  audio recode: %d  subtitle extract: %d  dovi profile 8: %d\n",
					summary.VideoRecode, summary.AudioRecode, summary.SubtitleExtract, summary.DoViProfile8)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the scan report as JSON")
	cmd.Flags().BoolVarP(&allFiles, "all", "a", false, "List compatible files too, not just those needing work")
	return cmd
}

type scanReportEntry struct {
	Path    string  `json:"path"`
	Status  string  `json:"status"`
	Error   string  `json:"error,omitempty"`
	Video   bool    `json:"video_recode"`
	Audio   bool    `json:"audio_recode"`
	Subs    bool    `json:"subtitle_extract"`
	DoViP8  bool    `json:"dovi_profile8"`
	Seconds float64 `json:"duration_seconds,omitempty"`
}

func scanReport(entries []scan.Entry) []scanReportEntry {
	report := make([]scanReportEntry, 0, len(entries))
	for _, e := range entries {
		item := scanReportEntry{
			Path:    e.Path,
			Status:  scan.Reasons(e),
			Video:   e.Plan.VideoTranscode,
			Audio:   e.Plan.AudioWork,
			Subs:    e.Plan.StripSubtitles,
			DoViP8:  e.Plan.HDR10Sidecar,
			Seconds: e.Info.Duration,
		}
		if e.Err != nil {
			item.Error = e.Err.Error()
		}
		report = append(report, item)
	}
	return report
}

// relTo shortens path for display when it sits under root.
func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
