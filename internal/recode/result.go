package recode

import (
	"time"

	"github.com/google/uuid"

	"recast/internal/subtitles"
)

// Status is the terminal state of one file's processing run.
type Status string

const (
	// StatusUnchanged means the file already played directly; nothing was
	// touched.
	StatusUnchanged Status = "unchanged"
	// StatusRecoded means at least one output was produced and committed.
	StatusRecoded Status = "recoded"
	// StatusFailed means processing aborted and the original file is intact.
	StatusFailed Status = "failed"
	// StatusDryRun means the file needs work but none was performed.
	StatusDryRun Status = "would_process"
)

// HDR10Outcome records the sidecar attempt for a Dolby Vision profile 8 file.
type HDR10Outcome struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
}

// Result is the per-file record appended to the run log and history store.
type Result struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	Output     string    `json:"output,omitempty"`
	Status     Status    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	VideoAction    string `json:"video_action"`
	AudioAction    string `json:"audio_action"`
	SubtitleAction string `json:"subtitle_action"`
	DoViAction     string `json:"dovi_action"`

	Subtitles []subtitles.TrackResult `json:"subtitles_extracted,omitempty"`
	HDR10     *HDR10Outcome           `json:"hdr10_copy,omitempty"`

	HardwareUsed     bool   `json:"hardware_used"`
	SoftwareFallback bool   `json:"software_fallback,omitempty"`
	Error            string `json:"error,omitempty"`
}

func newResult(path string) Result {
	return Result{
		ID:             uuid.NewString(),
		Path:           path,
		Status:         StatusUnchanged,
		StartedAt:      time.Now().UTC(),
		VideoAction:    "copy",
		AudioAction:    "copy",
		SubtitleAction: "none",
		DoViAction:     "none",
	}
}

func (r Result) finish() Result {
	r.FinishedAt = time.Now().UTC()
	return r
}

func (r Result) failed(err error) Result {
	r.Status = StatusFailed
	if err != nil {
		r.Error = err.Error()
	}
	return r.finish()
}
