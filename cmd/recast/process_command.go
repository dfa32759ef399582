package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"recast/internal/history"
	"recast/internal/lockfile"
	"recast/internal/logging"
	"recast/internal/recode"
	"recast/internal/runlog"
	"recast/internal/scan"
	"recast/internal/services/plex"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var softwareOnly bool
	var noPlexScan bool

	cmd := &cobra.Command{
		Use:   "process [path...]",
		Short: "Recode files in place for Direct Play",
		Long: "Process probes each file, transcodes incompatible video and audio,\n" +
			"extracts subtitles to sidecar files, writes HDR10 sidecars for Dolby\n" +
			"Vision profile 8 sources, and atomically replaces the original once the\n" +
			"output validates. Without arguments the configured Plex library root is\n" +
			"processed. Only one instance runs at a time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			roots, err := resolveRoots(args, cfg.Plex.Root)
			if err != nil {
				return err
			}

			lock := lockfile.New(cfg.Paths.LockFile)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer lock.Release()

			logger := ctx.ensureLogger()
			session := newProcessSession(cmd, ctx, logger, noPlexScan)
			defer session.close()

			processor := recode.NewProcessor(cfg, logger, recode.Options{
				DryRun:       dryRun,
				SoftwareOnly: softwareOnly,
			})

			var failures int
			for _, root := range roots {
				files, err := scan.Collect(root)
				if err != nil {
					return err
				}
				for _, path := range files {
					if err := cmd.Context().Err(); err != nil {
						return err
					}
					res := processor.Process(cmd.Context(), path)
					session.record(cmd.Context(), res)
					if res.Status == recode.StatusFailed {
						failures++
					}
				}
			}

			session.summary(cmd.OutOrStdout())
			if failures > 0 {
				return fmt.Errorf("%d file(s) failed; see the run log in %s", failures, cfg.Paths.LogDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report what would be done without changing anything")
	cmd.Flags().BoolVar(&softwareOnly, "software-only", false, "Skip VAAPI and encode on the CPU directly")
	cmd.Flags().BoolVar(&noPlexScan, "no-plex-scan", false, "Do not trigger Plex scans for changed files")
	return cmd
}

func resolveRoots(args []string, fallback string) ([]string, error) {
	if len(args) == 0 {
		if strings.TrimSpace(fallback) == "" {
			return nil, errors.New("no path given and plex.root is not configured")
		}
		return []string{fallback}, nil
	}
	roots := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", arg, err)
		}
		roots = append(roots, abs)
	}
	return roots, nil
}

// processSession bundles the per-run sinks: run log, history store, Plex scan
// trigger, and terminal status lines. Sink failures are logged, never fatal.
type processSession struct {
	cmd      *cobra.Command
	logger   *slog.Logger
	runlog   *runlog.Writer
	store    *history.Store
	scanner  *plex.Scanner
	colorize bool

	counts map[recode.Status]int
}

func newProcessSession(cmd *cobra.Command, ctx *commandContext, logger *slog.Logger, noPlexScan bool) *processSession {
	cfg := ctx.configValue()

	s := &processSession{
		cmd:      cmd,
		logger:   logging.NewComponentLogger(logger, "session"),
		runlog:   runlog.New(cfg.Paths.LogDir),
		colorize: shouldColorize(cmd.OutOrStdout()),
		counts:   make(map[recode.Status]int),
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			s.logger.Warn("history store unavailable", logging.Error(err))
		} else {
			s.store = store
		}
	}

	if !noPlexScan {
		scanner, err := plex.NewScanner(cfg, logger)
		if err != nil {
			if !errors.Is(err, plex.ErrNoToken) {
				s.logger.Warn("plex scanner unavailable", logging.Error(err))
			}
		} else {
			s.scanner = scanner
		}
	}

	return s
}

func (s *processSession) record(ctx context.Context, res recode.Result) {
	s.counts[res.Status]++

	if err := s.runlog.Append(res); err != nil {
		s.logger.Warn("run log append failed", logging.Error(err))
	}
	if s.store != nil {
		if err := s.store.Record(ctx, res); err != nil {
			s.logger.Warn("history record failed", logging.Error(err))
		}
	}
	if s.scanner != nil && res.Status == recode.StatusRecoded {
		target := res.Output
		if target == "" {
			target = res.Path
		}
		if err := s.scanner.ScanPath(ctx, target); err != nil {
			s.logger.Warn("plex scan trigger failed", logging.Error(err))
		}
	}

	s.printLine(res)
}

func (s *processSession) printLine(res recode.Result) {
	kind := statusInfo
	message := ""
	switch res.Status {
	case recode.StatusRecoded:
		kind = statusOK
		message = fmt.Sprintf("recoded (video=%s audio=%s subs=%s dovi=%s)",
			res.VideoAction, res.AudioAction, res.SubtitleAction, res.DoViAction)
		if res.SoftwareFallback {
			message += " via software fallback"
		}
	case recode.StatusUnchanged:
		kind = statusOK
		message = "already direct-playable"
	case recode.StatusDryRun:
		kind = statusWarn
		message = fmt.Sprintf("would process (video=%s audio=%s subs=%s dovi=%s)",
			res.VideoAction, res.AudioAction, res.SubtitleAction, res.DoViAction)
	case recode.StatusFailed:
		kind = statusError
		message = res.Error
	}
	fmt.Fprintln(s.cmd.OutOrStdout(), renderStatusLine(filepath.Base(res.Path), kind, message, s.colorize))
}

func (s *processSession) summary(out io.Writer) {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	fmt.Fprintf(out, "\nProcessed %d file(s): %d recoded, %d unchanged, %d would process, %d failed\n",
		total,
		s.counts[recode.StatusRecoded],
		s.counts[recode.StatusUnchanged],
		s.counts[recode.StatusDryRun],
		s.counts[recode.StatusFailed])
	fmt.Fprintf(out, "Run log: %s\n", s.runlog.Path())
}

func (s *processSession) close() {
	if s.store != nil {
		s.store.Close()
	}
}
