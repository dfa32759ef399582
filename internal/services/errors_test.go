package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapTagsMarkerAndPreservesCause(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := Wrap(ErrEncode, "executor", "video transcode", "software path failed", cause)

	if !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	want := "encode failure: executor: video transcode: software path failed: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "executor", "", "", nil)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool fallback, got %v", err)
	}
}
