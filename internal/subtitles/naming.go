package subtitles

import (
	"path/filepath"
	"strconv"
	"strings"

	"recast/internal/language"
	"recast/internal/media"
)

// sdhMarkers in the track title mark hearing-impaired subtitles.
var sdhMarkers = []string{"sdh", "cc", "hearing"}

// sidecarName builds the Plex-style sidecar file name for one subtitle track:
// stem.lang[.N][.forced][.sdh].ext. count is the 1-based occurrence of this
// language among extracted tracks; the first occurrence carries no number.
func sidecarName(base string, track *media.SubtitleTrack, lang string, count int, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	parts := []string{stem, lang}
	if count > 1 {
		parts = append(parts, strconv.Itoa(count))
	}
	if track.Forced {
		parts = append(parts, "forced")
	}
	if title := strings.ToLower(track.Title); title != "" {
		for _, marker := range sdhMarkers {
			if strings.Contains(title, marker) {
				parts = append(parts, "sdh")
				break
			}
		}
	}
	return filepath.Join(filepath.Dir(base), strings.Join(parts, ".")+ext)
}

// sidecarLanguage maps the track's three-letter tag to the two-letter sidecar
// label. Untagged tracks are labelled English so players pick them up.
func sidecarLanguage(tag string) string {
	lang := language.ToISO1(tag)
	if lang == "" || lang == "un" {
		return "en"
	}
	return lang
}

// trackFormat resolves the extraction container and the ffmpeg subtitle codec
// for one track. Image tracks always come out as raw .sup for later OCR; text
// tracks keep their format where the container supports it and are converted
// to SRT otherwise.
func trackFormat(codec string, image bool) (ext, codecOut string) {
	if image {
		return ".sup", "copy"
	}
	switch codec {
	case "ass", "ssa":
		return ".ass", "copy"
	case "subrip", "srt":
		return ".srt", "copy"
	default:
		return ".srt", "srt"
	}
}
