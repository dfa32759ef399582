package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	libraryDir string
	logDir     string

	plexURL        string
	plexToken      string
	historyEnabled bool
}

type cliEnvOption func(*cliTestEnv)

func withPlexServer(url, token string) cliEnvOption {
	return func(e *cliTestEnv) {
		e.plexURL = url
		e.plexToken = token
	}
}

func withHistoryDisabled() cliEnvOption {
	return func(e *cliTestEnv) {
		e.historyEnabled = false
	}
}

func setupCLITestEnv(t *testing.T, opts ...cliEnvOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:        base,
		configPath:     filepath.Join(base, "config.toml"),
		libraryDir:     filepath.Join(base, "library"),
		logDir:         filepath.Join(base, "logs"),
		historyEnabled: true,
	}
	for _, opt := range opts {
		opt(env)
	}

	if err := os.MkdirAll(env.libraryDir, 0o755); err != nil {
		t.Fatalf("mkdir library: %v", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[paths]\nlog_dir = %q\nlock_file = %q\n\n",
		env.logDir, filepath.Join(base, "recast.lock"))
	fmt.Fprintf(&sb, "[plex]\nroot = %q\nowner_user = \"\"\nowner_group = \"\"\n", env.libraryDir)
	if env.plexURL != "" {
		fmt.Fprintf(&sb, "url = %q\n", env.plexURL)
	}
	if env.plexToken != "" {
		fmt.Fprintf(&sb, "token = %q\n", env.plexToken)
	}
	fmt.Fprintf(&sb, "\n[history]\nenabled = %t\npath = %q\n",
		env.historyEnabled, filepath.Join(base, "history.db"))

	if err := os.WriteFile(env.configPath, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
