package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"recast/internal/classify"
	"recast/internal/plan"
)

// DownmixFilter folds 5.1/7.1 beds to stereo while keeping dialogue audible:
// centre and LFE are mixed into both fronts at reduced gain.
const DownmixFilter = "pan=stereo|FL=0.5*FC+0.707*FL+0.707*BL+0.5*LFE|FR=0.5*FC+0.707*FR+0.707*BR+0.5*LFE"

// Options carries the encode tunables resolved from configuration.
type Options struct {
	VAAPIDevice string
	VAAPIQP     int
	CRF         int
	Preset      string
}

// Request describes one container pass over a single input file.
type Request struct {
	Input  string
	Output string
	Plan   plan.Plan

	// Hardware selects the VAAPI path for this attempt. The caller flips it
	// off for the software retry.
	Hardware bool
}

// BuildArgs constructs the full ffmpeg argument list (binary excluded) for a
// container pass. Subtitles are always excluded: surviving subtitle tracks
// live in sidecar files.
func BuildArgs(req Request, opts Options) []string {
	args := make([]string, 0, 48)

	hardware := req.Hardware && req.Plan.VideoTranscode
	if hardware {
		args = append(args,
			"-hwaccel", "vaapi",
			"-hwaccel_output_format", "vaapi",
			"-vaapi_device", opts.VAAPIDevice,
		)
	}

	args = append(args, "-i", req.Input)
	args = append(args, "-map", "0:v:0", "-map", "0:a")

	if req.Plan.VideoTranscode {
		if hardware {
			args = append(args,
				"-c:v", "hevc_vaapi",
				"-qp", strconv.Itoa(opts.VAAPIQP),
				"-tag:v", "hvc1",
			)
		} else {
			args = appendSoftwareVideo(args, videoTrackOf(req.Plan), opts)
		}
	} else {
		args = append(args, "-c:v", "copy")
	}

	audio := 0
	for _, d := range req.Plan.Decisions {
		if d.Kind != classify.KindAudio {
			continue
		}
		switch d.Action {
		case classify.ActionTranscode, classify.ActionDownmix:
			args = append(args,
				fmt.Sprintf("-c:a:%d", audio), "aac",
				fmt.Sprintf("-ac:a:%d", audio), "2",
				fmt.Sprintf("-b:a:%d", audio), "256k",
			)
			// The pan matrix only applies to multichannel beds; a stereo track
			// re-encoded for its codec must keep its existing image.
			if d.Audio != nil && d.Audio.Channels > 2 {
				args = append(args, fmt.Sprintf("-filter:a:%d", audio), DownmixFilter)
			}
		default:
			args = append(args, fmt.Sprintf("-c:a:%d", audio), "copy")
		}
		audio++
	}

	args = append(args, "-sn")
	args = append(args, "-max_muxing_queue_size", "65536")
	args = append(args, "-y", req.Output)
	return args
}

func appendSoftwareVideo(args []string, track videoTraits, opts Options) []string {
	args = append(args,
		"-c:v", "libx265",
		"-crf", strconv.Itoa(opts.CRF),
		"-preset", opts.Preset,
		"-tag:v", "hvc1",
	)

	var params []string
	if track.hdr {
		params = append(params, "hdr-opt=1", "repeat-headers=1")
	}
	if track.bitDepth >= 10 {
		args = append(args, "-pix_fmt", "yuv420p10le")
		params = append(params, "profile=main10")
	}
	if len(params) > 0 {
		args = append(args, "-x265-params", strings.Join(params, ":"))
	}
	return args
}

type videoTraits struct {
	hdr      bool
	bitDepth int
}

func videoTrackOf(p plan.Plan) videoTraits {
	for _, d := range p.Decisions {
		if d.Kind == classify.KindVideo && d.Video != nil {
			return videoTraits{hdr: d.Video.HDR, bitDepth: d.Video.BitDepth}
		}
	}
	return videoTraits{}
}
