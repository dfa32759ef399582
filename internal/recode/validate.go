package recode

import (
	"context"
	"fmt"
	"math"
	"os"

	"recast/internal/media"
	"recast/internal/media/ffprobe"
	"recast/internal/services"
)

var inspectOutput = ffprobe.Inspect

// Validator checks a produced container before it replaces anything.
type Validator struct {
	ffprobe string

	// DurationTolerance is the maximum relative drift between input and
	// output duration.
	DurationTolerance float64

	// MinSizeRatio is the minimum output size as a fraction of the input.
	MinSizeRatio float64
}

// NewValidator constructs a Validator with the given thresholds.
func NewValidator(ffprobeBinary string, durationTolerance, minSizeRatio float64) *Validator {
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	if durationTolerance <= 0 {
		durationTolerance = 0.01
	}
	if minSizeRatio <= 0 {
		minSizeRatio = 0.1
	}
	return &Validator{
		ffprobe:           ffprobeBinary,
		DurationTolerance: durationTolerance,
		MinSizeRatio:      minSizeRatio,
	}
}

// Validate verifies output against the probed input: the file exists, is not
// suspiciously small, keeps the input duration, and still carries a video
// stream plus audio when the input had any.
func (v *Validator) Validate(ctx context.Context, input media.Info, output string) error {
	fi, err := os.Stat(output)
	if err != nil {
		return services.Wrap(services.ErrValidation, "validate", "stat", "output file does not exist", err)
	}
	if input.SizeBytes > 0 && float64(fi.Size()) < float64(input.SizeBytes)*v.MinSizeRatio {
		return services.Wrap(services.ErrValidation, "validate", "size",
			fmt.Sprintf("output too small: %d vs %d", fi.Size(), input.SizeBytes), nil)
	}

	probe, err := inspectOutput(ctx, v.ffprobe, output)
	if err != nil {
		return services.Wrap(services.ErrValidation, "validate", "probe", "output not readable", err)
	}

	if input.Duration > 0 {
		outDur := probe.DurationSeconds()
		if outDur > 0 {
			drift := math.Abs(outDur-input.Duration) / input.Duration
			if drift > v.DurationTolerance {
				return services.Wrap(services.ErrValidation, "validate", "duration",
					fmt.Sprintf("duration mismatch: %.1fs vs %.1fs", input.Duration, outDur), nil)
			}
		}
	}

	if probe.VideoStreamCount() == 0 {
		return services.Wrap(services.ErrValidation, "validate", "streams", "output missing video stream", nil)
	}
	if len(input.Audio) > 0 && probe.AudioStreamCount() == 0 {
		return services.Wrap(services.ErrValidation, "validate", "streams", "output missing audio stream", nil)
	}
	return nil
}
