package plex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"recast/internal/config"
	"recast/internal/logging"
)

var (
	// ErrNoToken is returned when no authentication token could be resolved
	// from configuration or Preferences.xml.
	ErrNoToken = errors.New("no plex token available")
	// ErrNoSection is returned when no library section location is a prefix
	// of the requested path.
	ErrNoSection = errors.New("no plex section matches path")
)

const requestTimeout = 10 * time.Second

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Section describes a Plex library section and its filesystem locations.
type Section struct {
	Key       string
	Title     string
	Type      string
	Locations []string
}

// Scanner triggers library scans against a Plex Media Server.
type Scanner struct {
	baseURL  string
	token    string
	client   HTTPDoer
	logger   *slog.Logger
	sections []Section
}

// ScannerOption customises Scanner construction.
type ScannerOption func(*Scanner)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client HTTPDoer) ScannerOption {
	return func(s *Scanner) {
		s.client = client
	}
}

// WithBaseURL overrides the server URL (used in tests).
func WithBaseURL(baseURL string) ScannerOption {
	return func(s *Scanner) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewScanner builds a Scanner from configuration. The token is taken from
// config (which already consults the environment); when absent, the
// PlexOnlineToken attribute of Preferences.xml is used as a fallback.
func NewScanner(cfg *config.Config, logger *slog.Logger, opts ...ScannerOption) (*Scanner, error) {
	token := strings.TrimSpace(cfg.Plex.Token)
	if token == "" {
		token = tokenFromPreferences(cfg.Plex.PrefsPath)
	}
	if token == "" {
		return nil, ErrNoToken
	}

	s := &Scanner{
		baseURL: strings.TrimRight(cfg.Plex.URL, "/"),
		token:   token,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logging.NewComponentLogger(logger, "plex"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// mediaContainer mirrors the subset of the /library/sections JSON payload the
// scanner needs.
type mediaContainer struct {
	MediaContainer struct {
		Directory []struct {
			Key      string `json:"key"`
			Title    string `json:"title"`
			Type     string `json:"type"`
			Location []struct {
				Path string `json:"path"`
			} `json:"Location"`
		} `json:"Directory"`
	} `json:"MediaContainer"`
}

// Sections lists the server's library sections. Results are cached for the
// lifetime of the Scanner.
func (s *Scanner) Sections(ctx context.Context) ([]Section, error) {
	if s.sections != nil {
		return s.sections, nil
	}

	body, err := s.get(ctx, "/library/sections")
	if err != nil {
		return nil, err
	}

	var payload mediaContainer
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("decode sections response: %w", err)
		}
	}

	sections := make([]Section, 0, len(payload.MediaContainer.Directory))
	for _, dir := range payload.MediaContainer.Directory {
		section := Section{Key: dir.Key, Title: dir.Title, Type: dir.Type}
		for _, loc := range dir.Location {
			section.Locations = append(section.Locations, loc.Path)
		}
		sections = append(sections, section)
	}
	s.sections = sections
	return sections, nil
}

// SectionFor returns the section whose location is the longest prefix of
// target, or ErrNoSection.
func (s *Scanner) SectionFor(ctx context.Context, target string) (Section, error) {
	sections, err := s.Sections(ctx)
	if err != nil {
		return Section{}, err
	}

	target = filepath.Clean(target)
	var best Section
	bestLen := -1
	for _, section := range sections {
		for _, loc := range section.Locations {
			if target != loc && !strings.HasPrefix(target, loc+"/") {
				continue
			}
			if len(loc) > bestLen {
				bestLen = len(loc)
				best = section
			}
		}
	}
	if bestLen < 0 {
		return Section{}, fmt.Errorf("%w: %s", ErrNoSection, target)
	}
	return best, nil
}

// ScanPath triggers a partial scan of the section containing target, limited
// to the target path itself.
func (s *Scanner) ScanPath(ctx context.Context, target string) error {
	section, err := s.SectionFor(ctx, target)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/library/sections/%s/refresh?path=%s", section.Key, url.QueryEscape(filepath.Clean(target)))
	if _, err := s.get(ctx, path); err != nil {
		return fmt.Errorf("partial scan of %q: %w", section.Title, err)
	}
	s.logger.Info("triggered partial scan",
		slog.String("section", section.Title),
		slog.String("key", section.Key),
		slog.String("path", target))
	return nil
}

// ScanSection triggers a full refresh of the section with the given key.
func (s *Scanner) ScanSection(ctx context.Context, key string) error {
	sections, err := s.Sections(ctx)
	if err != nil {
		return err
	}

	var section *Section
	for i := range sections {
		if sections[i].Key == key {
			section = &sections[i]
			break
		}
	}
	if section == nil {
		return fmt.Errorf("%w: section key %s", ErrNoSection, key)
	}

	if _, err := s.get(ctx, "/library/sections/"+key+"/refresh"); err != nil {
		return fmt.Errorf("full scan of %q: %w", section.Title, err)
	}
	s.logger.Info("triggered full scan",
		slog.String("section", section.Title),
		slog.String("key", key))
	return nil
}

func (s *Scanner) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("plex unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("plex api status %d for %s", resp.StatusCode, strippedPath(path))
	}
	return body, nil
}

// strippedPath drops the query string so error messages never echo tokens or
// encoded paths.
func strippedPath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		return path[:idx]
	}
	return path
}
