package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTranscode(); err != nil {
		return err
	}
	c.normalizeOCR()
	c.normalizeValidation()
	if err := c.normalizePlex(); err != nil {
		return err
	}
	c.normalizeLogging()
	return c.normalizeHistory()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = defaultLockFile
	}
	if c.Paths.LockFile, err = expandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscode() error {
	c.Transcode.FFmpegBinary = strings.TrimSpace(c.Transcode.FFmpegBinary)
	if c.Transcode.FFmpegBinary == "" {
		c.Transcode.FFmpegBinary = defaultFFmpegBinary
	}
	c.Transcode.FFprobeBinary = strings.TrimSpace(c.Transcode.FFprobeBinary)
	if c.Transcode.FFprobeBinary == "" {
		c.Transcode.FFprobeBinary = defaultFFprobeBinary
	}
	if device, ok := os.LookupEnv("RECAST_VAAPI_DEVICE"); ok && strings.TrimSpace(device) != "" {
		c.Transcode.VAAPIDevice = strings.TrimSpace(device)
	}
	if strings.TrimSpace(c.Transcode.VAAPIDevice) == "" {
		c.Transcode.VAAPIDevice = defaultVAAPIDevice
	}
	if c.Transcode.VAAPIQP <= 0 {
		c.Transcode.VAAPIQP = defaultVAAPIQP
	}
	if c.Transcode.CRF <= 0 {
		c.Transcode.CRF = defaultCRF
	}
	c.Transcode.Preset = strings.TrimSpace(c.Transcode.Preset)
	if c.Transcode.Preset == "" {
		c.Transcode.Preset = defaultPreset
	}
	return nil
}

func (c *Config) normalizeOCR() {
	c.OCR.Binary = strings.TrimSpace(c.OCR.Binary)
	if c.OCR.Binary == "" {
		c.OCR.Binary = defaultOCRBinary
	}
	if c.OCR.TimeoutSeconds <= 0 {
		c.OCR.TimeoutSeconds = defaultOCRTimeoutSeconds
	}
}

func (c *Config) normalizeValidation() {
	if c.Validation.DurationTolerance <= 0 {
		c.Validation.DurationTolerance = defaultDurationTolerance
	}
	if c.Validation.MinSizeRatio <= 0 {
		c.Validation.MinSizeRatio = defaultMinSizeRatio
	}
}

func (c *Config) normalizePlex() error {
	if c.Plex.Token == "" {
		for _, name := range []string{"RECAST_PLEX_TOKEN", "PLEX_TOKEN"} {
			if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
				c.Plex.Token = strings.TrimSpace(value)
				break
			}
		}
	}
	c.Plex.URL = strings.TrimRight(strings.TrimSpace(c.Plex.URL), "/")
	if c.Plex.URL == "" {
		c.Plex.URL = defaultPlexURL
	}
	var err error
	if strings.TrimSpace(c.Plex.Root) == "" {
		c.Plex.Root = defaultPlexRoot
	}
	if c.Plex.Root, err = expandPath(c.Plex.Root); err != nil {
		return fmt.Errorf("plex.root: %w", err)
	}
	c.Plex.DefaultLibrary = strings.TrimSpace(c.Plex.DefaultLibrary)
	if c.Plex.DefaultLibrary == "" {
		c.Plex.DefaultLibrary = defaultPlexLibrary
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}
