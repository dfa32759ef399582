package subtitles

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"recast/internal/classify"
	"recast/internal/logging"
	"recast/internal/services"
)

var commandContext = exec.CommandContext

// TrackResult records the outcome for one extracted subtitle track.
type TrackResult struct {
	TrackIndex int    `json:"track_index"`
	Language   string `json:"language"`
	Codec      string `json:"codec"`
	Type       string `json:"type"`
	Output     string `json:"output"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`

	OCRPerformed bool   `json:"ocr_performed"`
	OCRSuccess   bool   `json:"ocr_success,omitempty"`
	OCRMessage   string `json:"ocr_message,omitempty"`
	SupKept      bool   `json:"sup_kept,omitempty"`
}

// Extractor pulls subtitle tracks out of a container with ffmpeg.
type Extractor struct {
	logger *slog.Logger
	ffmpeg string
	ocr    *OCR
}

// NewExtractor constructs an extractor. ocr may be nil to skip OCR of image
// tracks, leaving the raw .sup sidecar in place.
func NewExtractor(logger *slog.Logger, ffmpegBinary string, ocr *OCR) *Extractor {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Extractor{
		logger: logging.NewComponentLogger(logger, "subtitles"),
		ffmpeg: ffmpegBinary,
		ocr:    ocr,
	}
}

// Extract writes one sidecar per extract/ocr decision, next to base. Per-track
// failures are recorded in the results and do not abort remaining tracks.
func (e *Extractor) Extract(ctx context.Context, source, base string, decisions []classify.Decision) []TrackResult {
	var results []TrackResult
	langCounts := make(map[string]int)

	for _, d := range decisions {
		if d.Kind != classify.KindSubtitle || d.Subtitle == nil {
			continue
		}
		if d.Action != classify.ActionExtract && d.Action != classify.ActionOCR {
			continue
		}

		track := d.Subtitle
		image := d.Action == classify.ActionOCR
		lang := sidecarLanguage(track.Language)
		langCounts[lang]++

		ext, codecOut := trackFormat(track.Codec, image)
		output := sidecarName(base, track, lang, langCounts[lang], ext)

		result := TrackResult{
			TrackIndex: track.Index,
			Language:   lang,
			Codec:      track.Codec,
			Type:       "text",
			Output:     output,
		}
		if image {
			result.Type = "image"
		}

		if err := e.runFFmpeg(ctx, source, track.Index, codecOut, output); err != nil {
			result.Error = err.Error()
			e.logger.Warn("subtitle extraction failed",
				logging.Int("track", track.Index), logging.Error(err))
			results = append(results, result)
			continue
		}
		result.Success = true
		e.logger.Info("extracted subtitle",
			logging.Int("track", track.Index), logging.String("output", output))

		if image && e.ocr != nil {
			results = append(results, e.runOCR(ctx, result))
			continue
		}
		results = append(results, result)
	}
	return results
}

func (e *Extractor) runFFmpeg(ctx context.Context, source string, index int, codecOut, output string) error {
	args := []string{
		"-y", "-v", "error",
		"-i", source,
		"-map", fmt.Sprintf("0:%d", index),
		"-c:s", codecOut,
		output,
	}
	cmd := commandContext(ctx, e.ffmpeg, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return services.Wrap(services.ErrExternalTool, "subtitles", "extract",
			strings.TrimSpace(stderr.String()), err)
	}
	return nil
}

// runOCR converts an extracted .sup to SRT. On success the .sup is removed;
// on any failure, timeout included, the .sup stays behind as the sidecar.
func (e *Extractor) runOCR(ctx context.Context, result TrackResult) TrackResult {
	result.OCRPerformed = true
	supPath := result.Output

	srtPath, err := e.ocr.Rip(ctx, supPath, result.Language)
	if err != nil {
		result.OCRMessage = err.Error()
		result.SupKept = true
		e.logger.Warn("ocr failed, keeping sup",
			logging.Int("track", result.TrackIndex), logging.Error(err))
		return result
	}

	result.OCRSuccess = true
	result.Output = srtPath
	if err := os.Remove(supPath); err != nil {
		result.SupKept = true
		e.logger.Warn("could not remove sup after ocr", logging.Error(err))
	}
	e.logger.Info("ocr complete",
		logging.Int("track", result.TrackIndex), logging.String("output", srtPath))
	return result
}
