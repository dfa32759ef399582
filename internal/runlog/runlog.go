package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Writer appends records to daily log files under a fixed directory.
type Writer struct {
	dir string

	mu  sync.Mutex
	now func() time.Time
}

// New constructs a Writer rooted at dir. The directory is created on first
// append.
func New(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Append serializes record as one JSON line in today's log file.
func (w *Writer) Append(record any) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	path := w.currentPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write run record: %w", err)
	}
	return nil
}

// Path returns today's log file location without creating it.
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentPath()
}

func (w *Writer) currentPath() string {
	name := fmt.Sprintf("recast-%s.jsonl", w.now().Format("2006-01-02"))
	return filepath.Join(w.dir, name)
}
