package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recast/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tools and devices",
		Long: "Deps verifies that the configured ffmpeg, ffprobe, and OCR binaries are\n" +
			"on PATH, that the VAAPI render device is accessible, and that the\n" +
			"library and log directories are writable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses := deps.CheckBinaries(deps.Required(cfg))
			statuses = append(statuses, deps.CheckVAAPIDevice(cfg.Transcode.VAAPIDevice))
			statuses = append(statuses, deps.CheckDirectory("library root", cfg.Plex.Root))
			statuses = append(statuses, deps.CheckDirectory("log directory", cfg.Paths.LogDir))

			missing := 0
			for _, status := range statuses {
				kind := statusOK
				message := status.Detail
				if !status.Available {
					if status.Optional {
						kind = statusWarn
					} else {
						kind = statusError
						missing++
					}
				}
				if message == "" && status.Available {
					message = "available"
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}

			if missing > 0 {
				return fmt.Errorf("%d required dependencies missing", missing)
			}
			fmt.Fprintln(out, strings.Repeat("-", 40))
			fmt.Fprintln(out, "All required dependencies available")
			return nil
		},
	}
}
