package classify

import (
	"fmt"

	"recast/internal/language"
	"recast/internal/media"
)

// Kind identifies which stream class a decision applies to.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
)

// Action is the single operation chosen for one track. Actions are mutually
// exclusive per track.
type Action string

const (
	ActionCopy      Action = "copy"
	ActionTranscode Action = "transcode"
	ActionDownmix   Action = "downmix"
	ActionExtract   Action = "extract"
	ActionOCR       Action = "ocr"
	ActionDrop      Action = "drop"
)

// Decision records the chosen action for one track and why it was chosen.
// Exactly one Decision exists per track in the probed snapshot.
type Decision struct {
	Kind   Kind
	Index  int
	Action Action
	Reason string

	// Extractable marks subtitle tracks in a known text or image format,
	// including tracks dropped by the language filter. Any extractable track
	// forces a container remux so no embedded subtitles survive.
	Extractable bool

	Video    *media.VideoTrack
	Audio    *media.AudioTrack
	Subtitle *media.SubtitleTrack
}

// Effective reports whether the decision requires any work.
func (d Decision) Effective() bool {
	return d.Action != ActionCopy && d.Action != ActionDrop
}

// Classify derives one Decision per track in info against the device rules.
// It is a pure function: same snapshot and rules, same decisions.
func Classify(info media.Info, rules Rules) []Decision {
	decisions := make([]Decision, 0, 1+len(info.Audio)+len(info.Subtitles))

	if info.Video != nil {
		decisions = append(decisions, classifyVideo(info.Video, rules))
	}
	for i := range info.Audio {
		decisions = append(decisions, classifyAudio(&info.Audio[i], rules))
	}
	for i := range info.Subtitles {
		decisions = append(decisions, classifySubtitle(&info.Subtitles[i], rules))
	}

	return decisions
}

func classifyVideo(track *media.VideoTrack, rules Rules) Decision {
	decision := Decision{Kind: KindVideo, Index: track.Index, Video: track}
	switch {
	case track.Codec == "":
		// Unrecognized metadata: transcode to be safe rather than fail.
		decision.Action = ActionTranscode
		decision.Reason = "unidentified video codec"
	case contains(rules.VideoCodecs, track.Codec):
		decision.Action = ActionCopy
		decision.Reason = fmt.Sprintf("%s plays natively", track.Codec)
	default:
		decision.Action = ActionTranscode
		decision.Reason = fmt.Sprintf("incompatible codec: %s", track.Codec)
	}
	return decision
}

func classifyAudio(track *media.AudioTrack, rules Rules) Decision {
	decision := Decision{Kind: KindAudio, Index: track.Index, Audio: track}
	switch {
	case track.Codec == "":
		decision.Action = ActionDownmix
		decision.Reason = "unidentified audio codec"
	case track.Channels > rules.MaxAudioChannels:
		decision.Action = ActionDownmix
		decision.Reason = fmt.Sprintf("%s %s -> aac stereo", track.Codec, channelLabel(track.Channels))
	case contains(rules.UndecodableAudioCodecs, track.Codec):
		decision.Action = ActionDownmix
		decision.Reason = fmt.Sprintf("undecodable codec %s -> aac stereo", track.Codec)
	default:
		decision.Action = ActionCopy
		decision.Reason = fmt.Sprintf("%s %dch plays natively", track.Codec, track.Channels)
	}
	return decision
}

func classifySubtitle(track *media.SubtitleTrack, rules Rules) Decision {
	decision := Decision{Kind: KindSubtitle, Index: track.Index, Subtitle: track}
	decision.Extractable = contains(rules.TextSubtitleCodecs, track.Codec) ||
		contains(rules.ImageSubtitleCodecs, track.Codec)

	if rules.EnglishOnlySubtitles {
		// Untagged and unparseable language tags are treated as English, the
		// same fallback the sidecar naming applies.
		iso1 := language.ToISO1(track.Language)
		if iso1 != "en" && iso1 != "un" && iso1 != "" {
			decision.Action = ActionDrop
			decision.Reason = fmt.Sprintf("non-english subtitle (%s)", track.Language)
			return decision
		}
	}

	switch {
	case contains(rules.TextSubtitleCodecs, track.Codec):
		decision.Action = ActionExtract
		decision.Reason = fmt.Sprintf("text subtitle %s -> sidecar", track.Codec)
	case contains(rules.ImageSubtitleCodecs, track.Codec):
		decision.Action = ActionOCR
		decision.Reason = fmt.Sprintf("image subtitle %s -> ocr", track.Codec)
	default:
		decision.Action = ActionDrop
		decision.Reason = fmt.Sprintf("unsupported subtitle format %q", track.Codec)
	}
	return decision
}

func channelLabel(channels int) string {
	if channels == 6 || channels == 8 {
		return fmt.Sprintf("%d.1", channels-1)
	}
	return fmt.Sprintf("%dch", channels)
}
