package media

import (
	"context"
	"strings"

	"recast/internal/media/ffprobe"
	"recast/internal/services"
)

var inspect = ffprobe.Inspect

// Probe runs ffprobe against path and builds an Info snapshot. A probe
// failure is fatal for the file and is tagged with services.ErrProbe.
func Probe(ctx context.Context, ffprobeBinary, path string) (Info, error) {
	result, err := inspect(ctx, ffprobeBinary, path)
	if err != nil {
		return Info{}, services.Wrap(services.ErrProbe, "probe", "inspect", path, err)
	}
	return FromProbe(path, result), nil
}

// FromProbe converts a parsed ffprobe result into an Info snapshot.
func FromProbe(path string, result ffprobe.Result) Info {
	info := Info{
		Path:      path,
		Duration:  result.DurationSeconds(),
		SizeBytes: result.SizeBytes(),
	}

	for _, stream := range result.Streams {
		switch strings.ToLower(stream.CodecType) {
		case "video":
			if info.Video == nil {
				track := buildVideoTrack(stream)
				info.Video = &track
			}
		case "audio":
			info.Audio = append(info.Audio, AudioTrack{
				Index:    stream.Index,
				Codec:    strings.ToLower(stream.CodecName),
				Channels: stream.Channels,
				Language: defaultLanguage(stream.Tags.Language),
			})
		case "subtitle":
			info.Subtitles = append(info.Subtitles, SubtitleTrack{
				Index:    stream.Index,
				Codec:    strings.ToLower(stream.CodecName),
				Language: defaultLanguage(stream.Tags.Language),
				Title:    stream.Tags.Title,
				Default:  stream.Disposition.Default == 1,
				Forced:   stream.Disposition.Forced == 1,
			})
		}
	}

	return info
}

func buildVideoTrack(stream ffprobe.Stream) VideoTrack {
	track := VideoTrack{
		Index:    stream.Index,
		Codec:    strings.ToLower(stream.CodecName),
		Width:    stream.Width,
		Height:   stream.Height,
		BitDepth: bitDepth(stream.PixFmt),
	}

	for _, sd := range stream.SideDataList {
		sdType := strings.ToLower(sd.Type)
		if strings.Contains(sdType, "mastering") || strings.Contains(sdType, "content light") {
			track.HDR = true
		}
		if strings.Contains(sdType, "dovi") || strings.Contains(sdType, "dolby") {
			track.HDR = true
			track.HDRType = "dolby vision"
		}
		if sd.DVProfile != nil {
			track.DolbyVisionProfile = *sd.DVProfile
		}
	}

	transfer := strings.ToLower(stream.ColorTransfer)
	switch {
	case strings.Contains(transfer, "smpte2084"):
		track.HDR = true
		if track.HDRType == "" {
			track.HDRType = "hdr10"
		}
	case strings.Contains(transfer, "arib-std-b67"):
		track.HDR = true
		if track.HDRType == "" {
			track.HDRType = "hlg"
		}
	}
	if strings.Contains(strings.ToLower(stream.ColorPrimaries), "bt2020") {
		track.HDR = true
	}

	return track
}

func bitDepth(pixFmt string) int {
	switch {
	case strings.Contains(pixFmt, "12le"), strings.Contains(pixFmt, "12be"):
		return 12
	case strings.Contains(pixFmt, "10le"), strings.Contains(pixFmt, "10be"), strings.Contains(pixFmt, "p010"):
		return 10
	default:
		return 8
	}
}

func defaultLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "und"
	}
	return lang
}
