package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"recast/internal/services"
)

func TestIsHardwareFailure(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   bool
	}{
		{"format setup", "Failed setup for format vaapi: hwaccel initialisation returned error.", true},
		{"filter conversion", "Impossible to convert between the formats supported by the filter", true},
		{"filter reinit", "Error reinitializing filters!", true},
		{"frame injection", "Failed to inject frame into filter network", true},
		{"plain encode error", "x265 [error]: failed to open encoder", false},
		{"empty", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsHardwareFailure(tc.stderr); got != tc.want {
				t.Fatalf("IsHardwareFailure(%q) = %v, want %v", tc.stderr, got, tc.want)
			}
		})
	}
}

func stubCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFMPEG_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestRunnerSuccess(t *testing.T) {
	stubCommand(t, "success")
	runner := NewRunner("ffmpeg")
	if _, err := runner.Run(context.Background(), []string{"-i", "in.mkv", "out.mkv"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestRunnerHardwareFailureTagged(t *testing.T) {
	stubCommand(t, "vaapi")
	runner := NewRunner("ffmpeg")
	stderr, err := runner.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrHardwareAccel) {
		t.Fatalf("expected hardware marker, got %v", err)
	}
	if stderr == "" {
		t.Fatal("expected captured stderr")
	}
}

func TestRunnerEncodeFailureTagged(t *testing.T) {
	stubCommand(t, "failure")
	runner := NewRunner("ffmpeg")
	_, err := runner.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("expected encode marker, got %v", err)
	}
	if errors.Is(err, services.ErrHardwareAccel) {
		t.Fatal("generic failure must not be treated as a hardware failure")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "vaapi":
		fmt.Fprintln(os.Stderr, "Failed setup for format vaapi: hwaccel initialisation returned error.")
		os.Exit(1)
	case "failure":
		fmt.Fprintln(os.Stderr, "Conversion failed!")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
