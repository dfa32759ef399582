package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"recast/internal/recode"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(id, path string, status recode.Status, finished time.Time) recode.Result {
	return recode.Result{
		ID:          id,
		Path:        path,
		Status:      status,
		StartedAt:   finished.Add(-time.Minute),
		FinishedAt:  finished,
		VideoAction: "recode: incompatible codec: vc1",
		AudioAction: "copy",
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, status := range []recode.Status{recode.StatusRecoded, recode.StatusUnchanged, recode.StatusFailed} {
		res := sampleResult(
			string(rune('a'+i)),
			"/media/movie"+string(rune('0'+i))+".mkv",
			status,
			base.Add(time.Duration(i)*time.Hour),
		)
		if err := store.Record(ctx, res); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recent))
	}
	if recent[0].Status != recode.StatusFailed {
		t.Fatalf("expected newest first, got %s", recent[0].Status)
	}
	if recent[0].VideoAction != "recode: incompatible codec: vc1" {
		t.Fatalf("detail round trip failed: %+v", recent[0])
	}
}

func TestForPath(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := store.Record(ctx, sampleResult("one", "/media/a.mkv", recode.StatusFailed, base)); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(ctx, sampleResult("two", "/media/a.mkv", recode.StatusRecoded, base.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(ctx, sampleResult("three", "/media/b.mkv", recode.StatusRecoded, base)); err != nil {
		t.Fatal(err)
	}

	results, err := store.ForPath(ctx, "/media/a.mkv")
	if err != nil {
		t.Fatalf("ForPath returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "two" {
		t.Fatalf("expected newest first, got %s", results[0].ID)
	}
}

func TestCounts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, status := range []recode.Status{recode.StatusRecoded, recode.StatusRecoded, recode.StatusFailed} {
		if err := store.Record(ctx, sampleResult(string(rune('a'+i)), "/m.mkv", status, base)); err != nil {
			t.Fatal(err)
		}
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts returned error: %v", err)
	}
	if counts[recode.StatusRecoded] != 2 || counts[recode.StatusFailed] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Record(context.Background(), sampleResult("a", "/m.mkv", recode.StatusRecoded, time.Now().UTC())); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()

	results, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected persisted result, got %d", len(results))
	}
}
