// Package subtitles extracts subtitle tracks to sidecar files next to the
// media file and converts image-based tracks to SRT through OCR. Extraction
// and OCR failures are recorded per track and never fail the whole file.
package subtitles
