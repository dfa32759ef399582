package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"recast/internal/lockfile"
	"recast/internal/recode"
	"recast/internal/scan"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var softwareOnly bool
	var noPlexScan bool
	var library string
	var subdir string

	cmd := &cobra.Command{
		Use:   "import <path...>",
		Short: "Process files into the Plex library, leaving sources untouched",
		Long: "Import runs the same pipeline as process but in copy mode: the source\n" +
			"file is never modified, and the processed (or plain-copied) result lands\n" +
			"in the Plex library under the chosen library directory.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Plex.Root) == "" {
				return errors.New("plex.root is not configured")
			}

			lib := strings.TrimSpace(library)
			if lib == "" {
				lib = cfg.Plex.DefaultLibrary
			}
			destDir := filepath.Join(cfg.Plex.Root, lib)
			if sub := strings.TrimSpace(subdir); sub != "" {
				destDir = filepath.Join(destDir, sub)
			}

			roots, err := resolveRoots(args, "")
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
					res := processor.Import(cmd.Context(), path, destDir)
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
	cmd.Flags().BoolVar(&noPlexScan, "no-plex-scan", false, "Do not trigger Plex scans for imported files")
	cmd.Flags().StringVarP(&library, "library", "l", "", "Library directory under plex.root (default from config)")
	cmd.Flags().StringVar(&subdir, "into", "", "Subdirectory inside the library to import into")
	return cmd
}
