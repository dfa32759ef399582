package subtitles

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"recast/internal/language"
	"recast/internal/services"
)

// minSRTBytes rejects OCR runs that technically succeeded but produced an
// essentially empty file.
const minSRTBytes = 100

// OCR converts image-based subtitle sidecars to SRT with pgsrip.
type OCR struct {
	binary  string
	timeout time.Duration
}

// NewOCR constructs an OCR runner. A zero timeout disables the wall-clock
// limit.
func NewOCR(binary string, timeout time.Duration) *OCR {
	if binary == "" {
		binary = "pgsrip"
	}
	return &OCR{binary: binary, timeout: timeout}
}

// Rip OCRs the given .sup into an SRT next to it and returns the SRT path.
// Exceeding the wall-clock limit yields services.ErrOCRTimeout; any partial
// SRT output is removed so the .sup remains the authoritative sidecar.
func (o *OCR) Rip(ctx context.Context, supPath, lang string) (string, error) {
	if _, err := os.Stat(supPath); err != nil {
		return "", services.Wrap(services.ErrOCR, "ocr", "stat", "sup file missing", err)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	srtPath := strings.TrimSuffix(supPath, filepath.Ext(supPath)) + ".srt"
	// Languages without tesseract training data are OCRed as English rather
	// than handing pgsrip an empty language.
	if !language.Known(lang) {
		lang = "en"
	}
	args := []string{"--force", "--language", language.Tesseract(lang), supPath}
	cmd := commandContext(ctx, o.binary, args...) //nolint:gosec
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		os.Remove(srtPath)
		return "", services.Wrap(services.ErrOCRTimeout, "ocr", "pgsrip",
			fmt.Sprintf("exceeded %s", o.timeout), ctx.Err())
	}
	if err != nil {
		os.Remove(srtPath)
		return "", services.Wrap(services.ErrOCR, "ocr", "pgsrip",
			strings.TrimSpace(output.String()), err)
	}

	fi, err := os.Stat(srtPath)
	if err != nil {
		return "", services.Wrap(services.ErrOCR, "ocr", "pgsrip", "no srt produced", err)
	}
	if fi.Size() < minSRTBytes {
		os.Remove(srtPath)
		return "", services.Wrap(services.ErrOCR, "ocr", "pgsrip",
			fmt.Sprintf("srt too small (%d bytes)", fi.Size()), nil)
	}
	return srtPath, nil
}
