// Package media probes containers and models the resulting stream snapshot.
//
// Info is an immutable per-file snapshot built once by Probe; re-probing a
// produced output builds a fresh Info rather than mutating the original.
// HDR and Dolby Vision detection happens here so downstream components only
// look at typed fields, never raw ffprobe JSON.
package media
