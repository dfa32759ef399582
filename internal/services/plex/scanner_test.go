package plex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"recast/internal/config"
	"recast/internal/logging"
)

const sectionsJSON = `{
  "MediaContainer": {
    "Directory": [
      {"key": "1", "title": "Movies", "type": "movie", "Location": [{"path": "/mnt/plex/movies"}]},
      {"key": "2", "title": "TV Shows", "type": "show", "Location": [{"path": "/mnt/plex/tv"}, {"path": "/mnt/plex/tv-extra"}]},
      {"key": "3", "title": "4K Movies", "type": "movie", "Location": [{"path": "/mnt/plex/movies/4k"}]}
    ]
  }
}`

func testScanner(t *testing.T, handler http.Handler) (*Scanner, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Plex.Token = "test-token"
	scanner, err := NewScanner(&cfg, logging.NewNop(), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	return scanner, server
}

func TestSectionsParsesDirectoryListing(t *testing.T) {
	scanner, _ := testScanner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/library/sections" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Plex-Token"); got != "test-token" {
			t.Fatalf("expected token header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sectionsJSON))
	}))

	sections, err := scanner.Sections(context.Background())
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[1].Key != "2" || len(sections[1].Locations) != 2 {
		t.Fatalf("unexpected second section: %+v", sections[1])
	}
}

func TestSectionForPrefersLongestPrefix(t *testing.T) {
	scanner, _ := testScanner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sectionsJSON))
	}))

	tests := []struct {
		name    string
		target  string
		wantKey string
		wantErr bool
	}{
		{name: "movie file", target: "/mnt/plex/movies/Some.Movie.mkv", wantKey: "1"},
		{name: "nested 4k wins over movies", target: "/mnt/plex/movies/4k/Film.mkv", wantKey: "3"},
		{name: "exact location match", target: "/mnt/plex/tv", wantKey: "2"},
		{name: "secondary location", target: "/mnt/plex/tv-extra/Show/S01E01.mkv", wantKey: "2"},
		{name: "sibling dir is not a prefix", target: "/mnt/plex/tv-other/file.mkv", wantErr: true},
		{name: "outside all sections", target: "/tmp/file.mkv", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			section, err := scanner.SectionFor(context.Background(), tc.target)
			if tc.wantErr {
				if !errors.Is(err, ErrNoSection) {
					t.Fatalf("expected ErrNoSection, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SectionFor: %v", err)
			}
			if section.Key != tc.wantKey {
				t.Fatalf("expected section %s, got %s (%s)", tc.wantKey, section.Key, section.Title)
			}
		})
	}
}

func TestScanPathTriggersPartialRefresh(t *testing.T) {
	var refreshQuery string
	scanner, _ := testScanner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/library/sections":
			_, _ = w.Write([]byte(sectionsJSON))
		case "/library/sections/1/refresh":
			refreshQuery = r.URL.Query().Get("path")
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))

	target := "/mnt/plex/movies/My Movie (2024)/My Movie.mkv"
	if err := scanner.ScanPath(context.Background(), target); err != nil {
		t.Fatalf("ScanPath: %v", err)
	}
	if refreshQuery != target {
		t.Fatalf("expected refresh path %q, got %q", target, refreshQuery)
	}
}

func TestScanSectionValidatesKey(t *testing.T) {
	refreshed := false
	scanner, _ := testScanner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/library/sections":
			_, _ = w.Write([]byte(sectionsJSON))
		case "/library/sections/2/refresh":
			refreshed = true
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))

	if err := scanner.ScanSection(context.Background(), "2"); err != nil {
		t.Fatalf("ScanSection: %v", err)
	}
	if !refreshed {
		t.Fatal("expected refresh request")
	}
	if err := scanner.ScanSection(context.Background(), "99"); !errors.Is(err, ErrNoSection) {
		t.Fatalf("expected ErrNoSection for unknown key, got %v", err)
	}
}

func TestScanPathReportsHTTPFailure(t *testing.T) {
	scanner, _ := testScanner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/library/sections" {
			_, _ = w.Write([]byte(sectionsJSON))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	if err := scanner.ScanPath(context.Background(), "/mnt/plex/movies/file.mkv"); err == nil {
		t.Fatal("expected error from unauthorized refresh")
	}
}

func TestNewScannerRequiresToken(t *testing.T) {
	cfg := config.Default()
	cfg.Plex.Token = ""
	cfg.Plex.PrefsPath = filepath.Join(t.TempDir(), "missing.xml")
	if _, err := NewScanner(&cfg, logging.NewNop()); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestTokenFromPreferences(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Preferences.xml")
	xml := `<?xml version="1.0" encoding="utf-8"?>` + "\n" +
		`<Preferences MachineIdentifier="abc" PlexOnlineToken="prefs-token" FriendlyName="server"/>`
	if err := os.WriteFile(path, []byte(xml), 0o600); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	if got := tokenFromPreferences(path); got != "prefs-token" {
		t.Fatalf("expected prefs-token, got %q", got)
	}
	if got := tokenFromPreferences(filepath.Join(dir, "absent.xml")); got != "" {
		t.Fatalf("expected empty token for missing file, got %q", got)
	}
}
