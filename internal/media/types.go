package media

// VideoTrack describes the primary video stream of a container.
type VideoTrack struct {
	Index              int
	Codec              string
	Width              int
	Height             int
	BitDepth           int
	HDR                bool
	HDRType            string
	DolbyVisionProfile int
}

// AudioTrack describes one audio stream.
type AudioTrack struct {
	Index    int
	Codec    string
	Channels int
	Language string
}

// SubtitleTrack describes one subtitle stream.
type SubtitleTrack struct {
	Index    int
	Codec    string
	Language string
	Title    string
	Default  bool
	Forced   bool
}

// Info is an immutable snapshot of one probed media file.
type Info struct {
	Path      string
	Duration  float64
	SizeBytes int64
	Video     *VideoTrack
	Audio     []AudioTrack
	Subtitles []SubtitleTrack
}

// DolbyVisionProfile returns the detected Dolby Vision profile, or 0 when the
// file carries none.
func (i Info) DolbyVisionProfile() int {
	if i.Video == nil {
		return 0
	}
	return i.Video.DolbyVisionProfile
}

// HasDolbyVisionProfile8 reports whether the file carries the DoVi Profile 8
// enhancement layer that crashes incompatible players.
func (i Info) HasDolbyVisionProfile8() bool {
	return i.DolbyVisionProfile() == 8
}
