package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProbe marks an unreadable or corrupt source file. Fatal for the file;
	// no plan is built.
	ErrProbe = errors.New("probe error")
	// ErrClassification marks stream metadata the classifier could not
	// recognize. Downgraded to a conservative transcode decision, never
	// surfaced to the caller as a failure.
	ErrClassification = errors.New("classification error")
	// ErrHardwareAccel marks a transcode failure attributable to the hardware
	// acceleration path. Triggers the software retry.
	ErrHardwareAccel = errors.New("hardware acceleration failure")
	// ErrEncode marks a generic transcode failure. Fatal for the file's video
	// action; no retry.
	ErrEncode = errors.New("encode failure")
	// ErrOCRTimeout marks an OCR invocation that exceeded its wall-clock
	// deadline. Non-fatal; the extracted image stream remains as fallback.
	ErrOCRTimeout = errors.New("ocr timeout")
	// ErrOCR marks any other OCR failure. Non-fatal, same fallback.
	ErrOCR = errors.New("ocr failure")
	// ErrValidation marks a produced output that failed verification. Fatal;
	// triggers rollback of all produced outputs.
	ErrValidation = errors.New("validation failure")
	// ErrExternalTool marks infrastructure failures launching a collaborator
	// binary (not found, not executable).
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
