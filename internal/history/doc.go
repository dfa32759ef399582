// Package history persists per-file result records in a local SQLite
// database. It answers "what happened to this file" and powers the history
// command; processing works fine with the store disabled.
package history
