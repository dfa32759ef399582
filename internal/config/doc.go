// Package config loads, normalizes, and validates recast configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RECAST_PLEX_TOKEN. The Config type centralizes every knob the CLI needs:
// tool binaries, the VAAPI device node, validation tolerances, lock and log
// locations, and Plex credentials.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
