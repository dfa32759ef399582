// Package lockfile serializes in-place processing runs with an advisory file
// lock. Only one recast process may mutate a library at a time; a held lock
// makes a second invocation fail fast instead of racing the first.
package lockfile
