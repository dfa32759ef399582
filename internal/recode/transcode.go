package recode

import (
	"context"
	"errors"
	"os"

	"recast/internal/ffmpeg"
	"recast/internal/plan"
	"recast/internal/services"
)

// containerRunner runs one ffmpeg invocation. Satisfied by *ffmpeg.Runner.
type containerRunner interface {
	Run(ctx context.Context, args []string) (string, error)
}

// passOutcome reports how the container pass finished.
type passOutcome struct {
	HardwareUsed     bool
	SoftwareFallback bool
}

// runContainerPass executes the ffmpeg pass for p, trying the hardware path
// first when the plan asks for it. Only a recognizable hardware-path failure
// triggers the software retry; any other error is final. A failed hardware
// attempt's partial output is removed before retrying.
func runContainerPass(ctx context.Context, runner containerRunner, p plan.Plan, input, output string, opts ffmpeg.Options) (passOutcome, error) {
	if p.TryHardware {
		args := ffmpeg.BuildArgs(ffmpeg.Request{Input: input, Output: output, Plan: p, Hardware: true}, opts)
		_, err := runner.Run(ctx, args)
		if err == nil {
			return passOutcome{HardwareUsed: true}, nil
		}
		if !errors.Is(err, services.ErrHardwareAccel) {
			os.Remove(output)
			return passOutcome{}, err
		}
		os.Remove(output)

		args = ffmpeg.BuildArgs(ffmpeg.Request{Input: input, Output: output, Plan: p, Hardware: false}, opts)
		if _, err := runner.Run(ctx, args); err != nil {
			os.Remove(output)
			return passOutcome{SoftwareFallback: true}, err
		}
		return passOutcome{SoftwareFallback: true}, nil
	}

	args := ffmpeg.BuildArgs(ffmpeg.Request{Input: input, Output: output, Plan: p, Hardware: false}, opts)
	if _, err := runner.Run(ctx, args); err != nil {
		os.Remove(output)
		return passOutcome{}, err
	}
	return passOutcome{}, nil
}
