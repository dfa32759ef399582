package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recast/internal/history"
	"recast/internal/recode"
)

func seedHistory(t *testing.T, env *cliTestEnv) {
	t.Helper()

	store, err := history.Open(filepath.Join(env.baseDir, "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	defer store.Close()

	now := time.Now().UTC()
	records := []recode.Result{
		{
			ID: "rec-1", Path: "/library/movies/Alpha.mkv", Status: recode.StatusRecoded,
			StartedAt: now.Add(-2 * time.Minute), FinishedAt: now.Add(-time.Minute),
			VideoAction: "transcode", AudioAction: "copy", SubtitleAction: "extract", DoViAction: "none",
		},
		{
			ID: "rec-2", Path: "/library/movies/Beta.mkv", Status: recode.StatusUnchanged,
			StartedAt: now, FinishedAt: now,
			VideoAction: "copy", AudioAction: "copy", SubtitleAction: "none", DoViAction: "none",
		},
	}
	for _, res := range records {
		if err := store.Record(context.Background(), res); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
}

func TestHistoryListsRecentResults(t *testing.T) {
	env := setupCLITestEnv(t)
	seedHistory(t, env)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Alpha.mkv")
	requireContains(t, out, "Beta.mkv")
	requireContains(t, out, "recoded")
}

func TestHistoryFiltersByPath(t *testing.T) {
	env := setupCLITestEnv(t)
	seedHistory(t, env)

	out, _, err := runCLI(t, []string{"history", "--path", "/library/movies/Alpha.mkv"}, env.configPath)
	if err != nil {
		t.Fatalf("history --path: %v", err)
	}
	requireContains(t, out, "Alpha.mkv")
	if strings.Contains(out, "Beta.mkv") {
		t.Fatalf("expected only Alpha entries, got:\n%s", out)
	}
}

func TestHistoryStatsCountsStatuses(t *testing.T) {
	env := setupCLITestEnv(t)
	seedHistory(t, env)

	out, _, err := runCLI(t, []string{"history", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("history stats: %v", err)
	}
	requireContains(t, out, "recoded")
	requireContains(t, out, "unchanged")
}

func TestHistoryDisabledReportsError(t *testing.T) {
	env := setupCLITestEnv(t, withHistoryDisabled())

	if _, _, err := runCLI(t, []string{"history"}, env.configPath); err == nil {
		t.Fatal("expected error when history is disabled")
	}
}
