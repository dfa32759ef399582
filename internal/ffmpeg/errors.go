package ffmpeg

import "strings"

// Substrings ffmpeg emits when the VAAPI decode or filter path breaks at
// init time. Anything else on a hardware attempt is a genuine encode error
// and must not trigger the software retry.
var hardwareFailureMarkers = []string{
	"failed setup for format vaapi",
	"hwaccel initialisation returned error",
	"impossible to convert between the formats",
	"error reinitializing filters",
	"failed to inject frame into filter network",
}

// IsHardwareFailure reports whether stderr output identifies a failure of the
// hardware acceleration path rather than of the encode itself.
func IsHardwareFailure(stderr string) bool {
	lowered := strings.ToLower(stderr)
	for _, marker := range hardwareFailureMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
