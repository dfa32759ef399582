package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateValidation(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTranscode() error {
	if c.Transcode.FFmpegBinary == "" {
		return errors.New("transcode.ffmpeg_binary must be set")
	}
	if c.Transcode.FFprobeBinary == "" {
		return errors.New("transcode.ffprobe_binary must be set")
	}
	if c.Transcode.VAAPIQP < 1 || c.Transcode.VAAPIQP > 52 {
		return fmt.Errorf("transcode.vaapi_qp must be between 1 and 52, got %d", c.Transcode.VAAPIQP)
	}
	if c.Transcode.CRF < 0 || c.Transcode.CRF > 51 {
		return fmt.Errorf("transcode.crf must be between 0 and 51, got %d", c.Transcode.CRF)
	}
	return nil
}

func (c *Config) validateValidation() error {
	if c.Validation.DurationTolerance <= 0 || c.Validation.DurationTolerance >= 1 {
		return errors.New("validation.duration_tolerance must be between 0 and 1")
	}
	if c.Validation.MinSizeRatio <= 0 || c.Validation.MinSizeRatio >= 1 {
		return errors.New("validation.min_size_ratio must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
