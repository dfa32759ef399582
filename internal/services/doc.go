// Package services defines the error taxonomy shared by pipeline components
// and hosts clients for external collaborators (Plex) in subpackages.
//
// Errors are tagged with sentinel markers (ErrProbe, ErrHardwareAccel, ...)
// via Wrap so callers can classify failures with errors.Is without parsing
// message text. The markers drive the executor's fallback decisions and the
// final Result Record status.
package services
