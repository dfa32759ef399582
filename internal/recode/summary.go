package recode

import (
	"fmt"
	"strings"

	"recast/internal/classify"
	"recast/internal/plan"
)

// actionSummary fills the human-readable action fields on a Result from the
// plan. The strings match what scan output and the run log show.
func actionSummary(res *Result, p plan.Plan, dovi int) {
	var textSubs, imageSubs int
	for _, d := range p.Decisions {
		switch d.Kind {
		case classify.KindVideo:
			if d.Action == classify.ActionTranscode {
				res.VideoAction = "recode: " + d.Reason
			}
		case classify.KindAudio:
			if d.Effective() {
				res.AudioAction = "recode: " + d.Reason
			}
		case classify.KindSubtitle:
			switch d.Action {
			case classify.ActionExtract:
				textSubs++
			case classify.ActionOCR:
				imageSubs++
			}
		}
	}

	if p.StripSubtitles {
		var parts []string
		if textSubs > 0 {
			parts = append(parts, fmt.Sprintf("%d text", textSubs))
		}
		if imageSubs > 0 {
			parts = append(parts, fmt.Sprintf("%d image", imageSubs))
		}
		if len(parts) == 0 {
			res.SubtitleAction = "remux to strip"
		} else {
			res.SubtitleAction = fmt.Sprintf("extract %s subtitle(s), remux to strip", strings.Join(parts, ", "))
		}
	}

	if p.HDR10Sidecar {
		res.DoViAction = fmt.Sprintf("create HDR10 copy (DoVi Profile %d)", dovi)
	}
}
