package plan

import (
	"recast/internal/classify"
)

// Signals carries the file-level inputs that are not per-track decisions.
type Signals struct {
	// DolbyVisionProfile8 is true when the probe found a profile 8 Dolby
	// Vision video stream, which triggers the HDR10 sidecar.
	DolbyVisionProfile8 bool

	// PreferHardware requests VAAPI encoding where the video stream is
	// eligible for it. The executor may still fall back to software.
	PreferHardware bool
}

// Plan is the full set of work for one file. A zero Plan means the file
// already plays directly and must not be touched.
type Plan struct {
	Decisions []classify.Decision

	// VideoTranscode is true when the video stream needs re-encoding.
	VideoTranscode bool

	// AudioWork is true when at least one audio stream is transcoded or
	// downmixed.
	AudioWork bool

	// StripSubtitles is true when the container carries extractable subtitle
	// tracks. The container pass then runs with subtitles excluded even if
	// video and audio are copied through.
	StripSubtitles bool

	// HDR10Sidecar requests a Dolby-Vision-free companion file. Sidecar
	// creation is independent of the container pass and never blocks it.
	HDR10Sidecar bool

	// TryHardware is advisory: attempt VAAPI first, fall back to software on
	// a recognizable hardware failure. It is only set when VideoTranscode is.
	TryHardware bool
}

// Empty reports whether the plan requires no work at all: every track is
// copied or ignored and no file-level flag is set.
func (p Plan) Empty() bool {
	return !p.VideoTranscode && !p.AudioWork && !p.StripSubtitles && !p.HDR10Sidecar
}

// RemuxOnly reports whether the container pass exists solely to strip
// subtitles, with every video and audio stream copied through.
func (p Plan) RemuxOnly() bool {
	return p.StripSubtitles && !p.VideoTranscode && !p.AudioWork
}

// NeedsContainerPass reports whether an ffmpeg run over the whole container
// is required. Sidecar extraction and OCR happen outside this pass.
func (p Plan) NeedsContainerPass() bool {
	return p.VideoTranscode || p.AudioWork || p.StripSubtitles
}

// Build folds per-track decisions and file-level signals into a Plan.
// It is deterministic and performs no I/O.
func Build(decisions []classify.Decision, rules classify.Rules, signals Signals) Plan {
	p := Plan{Decisions: decisions}

	var video *classify.Decision
	for i := range decisions {
		d := &decisions[i]
		switch d.Kind {
		case classify.KindVideo:
			video = d
			if d.Action == classify.ActionTranscode {
				p.VideoTranscode = true
			}
		case classify.KindAudio:
			if d.Action == classify.ActionTranscode || d.Action == classify.ActionDownmix {
				p.AudioWork = true
			}
		case classify.KindSubtitle:
			if d.Extractable {
				p.StripSubtitles = true
			}
		}
	}

	p.HDR10Sidecar = signals.DolbyVisionProfile8
	if p.VideoTranscode && signals.PreferHardware && video != nil {
		p.TryHardware = hardwareEligible(video, rules)
	}
	return p
}

// hardwareEligible mirrors what the VAAPI encode path can actually accept:
// 8-bit sources whose decoder is not on the known-broken list.
func hardwareEligible(video *classify.Decision, rules classify.Rules) bool {
	track := video.Video
	if track == nil {
		return false
	}
	if track.BitDepth > 8 {
		return false
	}
	if _, ok := rules.VAAPIIncompatibleCodecs[track.Codec]; ok {
		return false
	}
	return true
}
