package lockfile

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recast.lock")
	l := New(path)
	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
}

func TestAcquireCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "recast", "recast.lock")
	l := New(path)
	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	t.Cleanup(func() { l.Release() })
}

func TestSecondAcquireFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recast.lock")
	first := New(path)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire returned error: %v", err)
	}
	t.Cleanup(func() { first.Release() })

	second := New(path)
	err := second.Acquire()
	if err == nil {
		second.Release()
		t.Fatal("expected second acquire to fail")
	}
	if !errors.Is(err, ErrHeld) {
		t.Fatalf("expected ErrHeld, got %v", err)
	}
}

func TestReacquireAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recast.lock")
	l := New(path)
	if err := l.Acquire(); err != nil {
		t.Fatal(err)
	}
	if err := l.Release(); err != nil {
		t.Fatal(err)
	}
	if err := l.Acquire(); err != nil {
		t.Fatalf("reacquire returned error: %v", err)
	}
	l.Release()
}
