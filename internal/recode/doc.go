// Package recode orchestrates the full pipeline for one media file: probe,
// classify, plan, subtitle extraction, HDR10 sidecar creation, the ffmpeg
// container pass with hardware-to-software fallback, output validation, and
// the atomic commit. Every processed file yields exactly one Result.
package recode
