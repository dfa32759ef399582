// Package plan turns per-track classification decisions into a file-level
// transcode plan: what ffmpeg pass is needed, whether subtitles must be
// stripped from the container, whether a Dolby Vision profile 8 file gets an
// HDR10 sidecar, and whether hardware encoding should be attempted first.
package plan
