// Package runlog appends per-file result records to a daily JSONL file, one
// JSON object per line. The log is the audit trail for every processed file;
// it is append-only and safe for concurrent writers in one process.
package runlog
