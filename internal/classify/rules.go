package classify

// Rules captures what the playback device can decode natively. Derived from
// the Plex Direct Play support matrix for fixed-function console clients.
type Rules struct {
	// VideoCodecs the device decodes without transcoding.
	VideoCodecs map[string]struct{}
	// UndecodableAudioCodecs force a re-encode even at stereo.
	UndecodableAudioCodecs map[string]struct{}
	// MaxAudioChannels above which audio is downmixed.
	MaxAudioChannels int
	// TextSubtitleCodecs can be extracted to sidecars as-is.
	TextSubtitleCodecs map[string]struct{}
	// ImageSubtitleCodecs need OCR to become text sidecars.
	ImageSubtitleCodecs map[string]struct{}
	// VAAPIIncompatibleCodecs cannot be decoded by the VAAPI driver and
	// disqualify the hardware path up front.
	VAAPIIncompatibleCodecs map[string]struct{}
	// EnglishOnlySubtitles limits sidecar extraction to English and
	// unknown-language streams.
	EnglishOnlySubtitles bool
}

// DefaultRules returns the capability rules for the target device.
func DefaultRules() Rules {
	return Rules{
		VideoCodecs:            set("h264", "hevc", "vp9"),
		UndecodableAudioCodecs: set("dts", "truehd"),
		MaxAudioChannels:       2,
		TextSubtitleCodecs: set(
			"subrip", "srt", "ass", "ssa", "mov_text", "webvtt", "text", "sami",
		),
		ImageSubtitleCodecs: set(
			"hdmv_pgs_subtitle", "dvd_subtitle", "dvb_subtitle", "pgs", "vobsub",
		),
		// The VAAPI driver cannot decode MPEG-4 ASP (XviD/DivX); attempting it
		// fails hwaccel initialisation.
		VAAPIIncompatibleCodecs: set("mpeg4", "msmpeg4v1", "msmpeg4v2", "msmpeg4v3"),
		EnglishOnlySubtitles:    true,
	}
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func contains(m map[string]struct{}, key string) bool {
	_, ok := m[key]
	return ok
}
