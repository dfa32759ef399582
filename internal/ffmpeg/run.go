package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"recast/internal/services"
)

var commandContext = exec.CommandContext

// Runner executes ffmpeg with captured stderr.
type Runner struct {
	binary string
}

// NewRunner constructs a Runner for the given ffmpeg binary.
func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Runner{binary: binary}
}

// Run executes one ffmpeg invocation and returns its captured stderr. On a
// non-zero exit the returned error is tagged services.ErrHardwareAccel when
// stderr identifies a broken VAAPI path, services.ErrEncode otherwise.
func (r *Runner) Run(ctx context.Context, args []string) (string, error) {
	cmd := commandContext(ctx, r.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := stderr.String()
	if err == nil {
		return output, nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return output, services.Wrap(services.ErrExternalTool, "transcode", "ffmpeg", "binary not found", err)
	}
	if IsHardwareFailure(output) {
		return output, services.Wrap(services.ErrHardwareAccel, "transcode", "ffmpeg", tail(output), err)
	}
	return output, services.Wrap(services.ErrEncode, "transcode", "ffmpeg", tail(output), err)
}

// tail keeps the last stderr line for the error message; full output stays
// with the caller for logging.
func tail(output string) string {
	trimmed := bytes.TrimSpace([]byte(output))
	if len(trimmed) == 0 {
		return "ffmpeg exited with error"
	}
	if idx := bytes.LastIndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = bytes.TrimSpace(trimmed[idx+1:])
	}
	const max = 200
	if len(trimmed) > max {
		trimmed = trimmed[:max]
	}
	return string(trimmed)
}
