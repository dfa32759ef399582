package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"recast/internal/classify"
	"recast/internal/logging"
	"recast/internal/media"
	"recast/internal/plan"
)

// Planner probes one file and derives its plan. Satisfied by
// *recode.Processor.
type Planner interface {
	Plan(ctx context.Context, path string) (media.Info, plan.Plan, error)
}

// Entry is the scan report for one file.
type Entry struct {
	Path string
	Info media.Info
	Plan plan.Plan
	Err  error
}

// NeedsWork reports whether the file requires any processing.
func (e Entry) NeedsWork() bool {
	return e.Err == nil && !e.Plan.Empty()
}

// Collect gathers media files under root in stable order. Root may also be a
// single file. Samples and recast working artifacts are skipped.
func Collect(root string) ([]string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !fi.IsDir() {
		if candidate(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if candidate(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func candidate(path string) bool {
	return media.IsMediaFile(path) && !media.IsSample(path) && !media.IsArtifact(path)
}

// Run probes every collected file under root into a report entry. Probe
// failures are recorded per entry and do not stop the scan.
func Run(ctx context.Context, planner Planner, root string, logger *slog.Logger) ([]Entry, error) {
	log := logging.NewComponentLogger(logger, "scan")
	files, err := Collect(root)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(files))
	for _, path := range files {
		if ctx.Err() != nil {
			return entries, ctx.Err()
		}
		log.Info("probing", logging.String("path", path))
		info, built, err := planner.Plan(ctx, path)
		if err != nil {
			log.Warn("probe failed", logging.String("path", path), logging.Error(err))
		}
		entries = append(entries, Entry{Path: path, Info: info, Plan: built, Err: err})
	}
	return entries, nil
}

// Summary aggregates a scan across a library.
type Summary struct {
	Total           int
	Compatible      int
	NeedWork        int
	VideoRecode     int
	AudioRecode     int
	SubtitleExtract int
	DoViProfile8    int
	Errors          int
}

// Summarize folds scan entries into totals.
func Summarize(entries []Entry) Summary {
	var s Summary
	s.Total = len(entries)
	for _, e := range entries {
		if e.Err != nil {
			s.Errors++
			continue
		}
		if e.Plan.Empty() {
			s.Compatible++
			continue
		}
		s.NeedWork++
		if e.Plan.VideoTranscode {
			s.VideoRecode++
		}
		if e.Plan.AudioWork {
			s.AudioRecode++
		}
		if e.Plan.StripSubtitles {
			s.SubtitleExtract++
		}
		if e.Plan.HDR10Sidecar {
			s.DoViProfile8++
		}
	}
	return s
}

// Reasons renders the short scan annotation for one entry, e.g.
// "RECODE SUBS(2txt+1img) DOVI-P8".
func Reasons(e Entry) string {
	if e.Err != nil {
		return "ERROR"
	}
	if e.Plan.Empty() {
		return "OK"
	}
	var parts []string
	if e.Plan.VideoTranscode || e.Plan.AudioWork {
		parts = append(parts, "RECODE")
	}
	if e.Plan.StripSubtitles {
		var text, image int
		for _, d := range e.Plan.Decisions {
			switch d.Action {
			case classify.ActionExtract:
				text++
			case classify.ActionOCR:
				image++
			}
		}
		switch {
		case text > 0 && image > 0:
			parts = append(parts, fmt.Sprintf("SUBS(%dtxt+%dimg)", text, image))
		case text > 0:
			parts = append(parts, fmt.Sprintf("SUBS(%dtxt)", text))
		case image > 0:
			parts = append(parts, fmt.Sprintf("SUBS(%dimg)", image))
		default:
			parts = append(parts, "SUBS")
		}
	}
	if e.Plan.HDR10Sidecar {
		parts = append(parts, "DOVI-P8")
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}
