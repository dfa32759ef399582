package recode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"recast/internal/fileutil"
)

// ArtifactSuffix names the working output written next to the source while a
// container pass runs. Scans skip these so a crashed run never feeds its own
// leftovers back in.
const ArtifactSuffix = ".recast.mkv"

// artifactPath returns the working output location for source.
func artifactPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ArtifactSuffix
}

// finalPath returns where the committed file lives. The container is always
// Matroska, so a processed .avi comes back as .mkv.
func finalPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".mkv"
}

// commitInPlace swaps the produced output over the original: the original is
// renamed aside as a backup, the output takes its place, and only then is the
// backup deleted. A failed swap restores the original.
func commitInPlace(source, output string, owner, group string) (string, error) {
	final := finalPath(source)
	backup := source + ".bak"

	if err := os.Rename(source, backup); err != nil {
		os.Remove(output)
		return "", fmt.Errorf("stash original: %w", err)
	}
	if err := os.Rename(output, final); err != nil {
		if restoreErr := os.Rename(backup, source); restoreErr != nil {
			return "", fmt.Errorf("promote output: %w (restore also failed: %v)", err, restoreErr)
		}
		os.Remove(output)
		return "", fmt.Errorf("promote output: %w", err)
	}

	// Ownership is advisory; the swap already succeeded.
	_ = fileutil.SetOwner(final, owner, group)

	if err := os.Remove(backup); err != nil {
		return final, fmt.Errorf("remove backup: %w", err)
	}
	return final, nil
}

// commitImport promotes a staged output to its destination in the library.
func commitImport(staged, dest string, owner, group string) error {
	if err := fileutil.MoveFile(staged, dest); err != nil {
		os.Remove(staged)
		return fmt.Errorf("promote staged output: %w", err)
	}
	_ = fileutil.SetOwner(dest, owner, group)
	return nil
}
