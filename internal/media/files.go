package media

import (
	"path/filepath"
	"strings"
)

// Extensions lists the container extensions recast will consider.
var Extensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".avi":  {},
	".m4v":  {},
	".mov":  {},
	".wmv":  {},
	".ts":   {},
	".m2ts": {},
}

// IsMediaFile reports whether the path carries a known media extension.
func IsMediaFile(path string) bool {
	_, ok := Extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsSample reports whether the file is a sample clip that should be skipped.
// Sample files are typically truncated and fail duration validation.
func IsSample(path string) bool {
	if strings.Contains(strings.ToLower(filepath.Base(path)), "sample") {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.EqualFold(part, "sample") {
			return true
		}
	}
	return false
}

// IsArtifact reports whether the file is an intermediate or sidecar output
// produced by a previous run (working copies and HDR10 sidecars).
func IsArtifact(path string) bool {
	name := filepath.Base(path)
	return strings.Contains(name, ".recast.") || strings.Contains(name, ".HDR10.")
}
