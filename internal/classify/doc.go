// Package classify decides per-stream compatibility against device rules.
//
// Classify is a pure function of the probed snapshot and the capability
// rules: no I/O, no hidden state. Tracks whose metadata cannot be recognized
// are conservatively marked for transcode (or drop, for subtitles) instead of
// failing the file.
package classify
