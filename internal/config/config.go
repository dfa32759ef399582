package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and lock file configuration.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	LockFile string `toml:"lock_file"`
}

// Transcode contains settings for the external ffmpeg invocation.
type Transcode struct {
	FFmpegBinary   string `toml:"ffmpeg_binary"`
	FFprobeBinary  string `toml:"ffprobe_binary"`
	VAAPIDevice    string `toml:"vaapi_device"`
	VAAPIQP        int    `toml:"vaapi_qp"`
	CRF            int    `toml:"crf"`
	Preset         string `toml:"preset"`
	PreferHardware bool   `toml:"prefer_hardware"`
}

// OCR contains settings for the external subtitle OCR tool.
type OCR struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Validation contains output verification tolerances.
type Validation struct {
	// DurationTolerance is the maximum relative drift between source and
	// output container durations (0.01 = 1%).
	DurationTolerance float64 `toml:"duration_tolerance"`
	// MinSizeRatio is the minimum output/source size ratio below which the
	// output is treated as truncated.
	MinSizeRatio float64 `toml:"min_size_ratio"`
}

// Plex contains library destination and scan trigger configuration.
type Plex struct {
	URL            string `toml:"url"`
	Token          string `toml:"token"`
	PrefsPath      string `toml:"prefs_path"`
	Root           string `toml:"root"`
	DefaultLibrary string `toml:"default_library"`
	OwnerUser      string `toml:"owner_user"`
	OwnerGroup     string `toml:"owner_group"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// History contains configuration for the processing-history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for recast.
//
// Configuration sections by subsystem:
//   - Paths: log directory and the in-place advisory lock file
//   - Transcode: ffmpeg/ffprobe binaries, VAAPI device, quality settings
//   - OCR: subtitle OCR binary and wall-clock timeout
//   - Validation: output duration/size tolerances
//   - Plex: library root, ownership, scan trigger credentials
//   - Logging: log format and level
//   - History: SQLite processing-history store
type Config struct {
	Paths      Paths      `toml:"paths"`
	Transcode  Transcode  `toml:"transcode"`
	OCR        OCR        `toml:"ocr"`
	Validation Validation `toml:"validation"`
	Plex       Plex       `toml:"plex"`
	Logging    Logging    `toml:"logging"`
	History    History    `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/recast/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. The boolean reports whether a
// file was actually found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("recast.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories recast needs at runtime.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, filepath.Dir(c.Paths.LockFile)}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// OCRTimeoutSeconds returns the OCR timeout, falling back to the default
// when unset.
func (c *Config) OCRTimeoutSeconds() int {
	if c.OCR.TimeoutSeconds > 0 {
		return c.OCR.TimeoutSeconds
	}
	return defaultOCRTimeoutSeconds
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
