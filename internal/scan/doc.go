// Package scan walks a library tree, collects processable media files, and
// probes each one into a per-file report. Sample files and recast's own
// working artifacts are excluded so a scan never feeds prior output back into
// the pipeline.
package scan
