package hdr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"recast/internal/logging"
	"recast/internal/services"
)

var commandContext = exec.CommandContext

// SidecarSuffix names the companion file: <stem>.HDR10.mkv next to the source.
const SidecarSuffix = ".HDR10.mkv"

// minSizeRatio guards against truncated sidecars. A stream copy that only
// drops RPU metadata must land very close to the input size.
const minSizeRatio = 0.9

// SidecarPath returns where the HDR10 companion for path would live, next to
// the source.
func SidecarPath(path string) string {
	return SidecarPathIn(filepath.Dir(path), path)
}

// SidecarPathIn returns where the HDR10 companion for source would live when
// placed inside dir.
func SidecarPathIn(dir, source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+SidecarSuffix)
}

// Writer creates HDR10 sidecar files with ffmpeg.
type Writer struct {
	logger *slog.Logger
	ffmpeg string
}

// NewWriter constructs a sidecar writer.
func NewWriter(logger *slog.Logger, ffmpegBinary string) *Writer {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Writer{
		logger: logging.NewComponentLogger(logger, "hdr"),
		ffmpeg: ffmpegBinary,
	}
}

// Create writes the HDR10 companion for source into dir (the source's own
// directory when dir is empty) and returns its path. An already-present
// sidecar is left untouched. The sidecar is built under a temporary name and
// renamed into place only after the size check passes.
func (w *Writer) Create(ctx context.Context, source, dir string) (string, error) {
	if dir == "" {
		dir = filepath.Dir(source)
	}
	output := SidecarPathIn(dir, source)
	if _, err := os.Stat(output); err == nil {
		w.logger.Info("hdr10 sidecar already exists", logging.String("path", output))
		return output, nil
	}

	input, err := os.Stat(source)
	if err != nil {
		return "", services.Wrap(services.ErrEncode, "hdr10", "stat", "source missing", err)
	}

	temp := strings.TrimSuffix(output, ".mkv") + ".tmp.mkv"
	args := []string{
		"-y", "-v", "error",
		"-i", source,
		"-map", "0:v:0",
		"-map", "0:a",
		"-map", "0:s?",
		"-c:v", "copy",
		"-bsf:v", "filter_units=remove_types=62",
		"-c:a", "copy",
		"-c:s", "copy",
		temp,
	}

	cmd := commandContext(ctx, w.ffmpeg, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(temp)
		return "", services.Wrap(services.ErrEncode, "hdr10", "ffmpeg",
			strings.TrimSpace(stderr.String()), err)
	}

	fi, err := os.Stat(temp)
	if err != nil {
		return "", services.Wrap(services.ErrEncode, "hdr10", "ffmpeg", "output not created", err)
	}
	if float64(fi.Size()) < float64(input.Size())*minSizeRatio {
		os.Remove(temp)
		return "", services.Wrap(services.ErrValidation, "hdr10", "size check",
			fmt.Sprintf("sidecar %d bytes vs source %d", fi.Size(), input.Size()), nil)
	}

	if err := os.Rename(temp, output); err != nil {
		os.Remove(temp)
		return "", services.Wrap(services.ErrEncode, "hdr10", "rename", "", err)
	}
	w.logger.Info("created hdr10 sidecar", logging.String("path", output))
	return output, nil
}
