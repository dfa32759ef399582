package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"recast/internal/services/plex"
)

func newPlexCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plex",
		Short: "Inspect and trigger Plex library scans",
	}

	cmd.AddCommand(newPlexSectionsCommand(ctx))
	cmd.AddCommand(newPlexScanCommand(ctx))

	return cmd
}

func newPlexSectionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List Plex library sections and their locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner, err := plexScanner(ctx)
			if err != nil {
				return err
			}

			sections, err := scanner.Sections(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(sections))
			for _, section := range sections {
				rows = append(rows, []string{
					section.Key,
					section.Type,
					section.Title,
					strings.Join(section.Locations, ", "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"KEY", "TYPE", "TITLE", "LOCATIONS"},
				rows, nil))
			return nil
		},
	}
}

func newPlexScanCommand(ctx *commandContext) *cobra.Command {
	var sectionKey string

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Trigger a Plex library scan",
		Long: "With a path argument, triggers a partial scan of the section containing\n" +
			"that path. With --section, refreshes the whole section.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner, err := plexScanner(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if key := strings.TrimSpace(sectionKey); key != "" {
				if err := scanner.ScanSection(cmd.Context(), key); err != nil {
					return err
				}
				fmt.Fprintf(out, "Triggered full scan of section %s\n", key)
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("provide a path to scan or --section <key>")
			}
			target, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if err := scanner.ScanPath(cmd.Context(), target); err != nil {
				return err
			}
			fmt.Fprintf(out, "Triggered partial scan for %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sectionKey, "section", "s", "", "Section key to refresh in full")
	return cmd
}

func plexScanner(ctx *commandContext) (*plex.Scanner, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return plex.NewScanner(cfg, ctx.ensureLogger())
}
